// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo       = "go"
	binaryName  = "semval"
	binaryDir   = "bin"
	cmdDir      = "./cmd/semval"
	versionVar  = "github.com/mesh-intelligence/semval/internal/cli.Version"
	envVersion  = "SEMVAL_VERSION"
	defaultVers = "0.1.0-dev"
)

// Build compiles the semval binary to bin/. The version comes from
// --version, then SEMVAL_VERSION, then the development default.
func Build() error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	version := fs.String("version", os.Getenv(envVersion), "version stamped into the binary")
	parseTargetFlags(fs)
	if *version == "" {
		*version = defaultVers
	}

	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	ldflags := "-X " + versionVar + "=" + *version
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags, "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
