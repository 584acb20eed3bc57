// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups test targets.
type Test mg.Namespace

// All runs every package's tests.
func (Test) All() error {
	return sh.RunV(binGo, "test", "./...")
}

// Race runs every package's tests with the race detector. The check
// command and the value factory are exercised concurrently.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Run runs the tests matching --run in --pkg (default ./...).
func (Test) Run() error {
	fs := flag.NewFlagSet("test:run", flag.ContinueOnError)
	run := fs.String("run", "", "test name pattern")
	pkg := fs.String("pkg", "./...", "package pattern")
	verbose := fs.Bool("v", false, "verbose output")
	parseTargetFlags(fs)
	if *run == "" {
		return errors.New("test:run needs --run PATTERN")
	}

	args := []string{"test", "-run", *run}
	if *verbose {
		args = append(args, "-v")
	}
	args = append(args, *pkg)
	return sh.RunV(binGo, args...)
}

// Cover writes a coverage profile to bin/coverage.out and prints the
// per-function summary.
func (Test) Cover() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	profile := filepath.Join(binaryDir, "coverage.out")
	if err := sh.RunV(binGo, "test", "-coverprofile", profile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func", profile)
}
