// Package sqlite provides the public API for the SQLite constraint store.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/semval/internal/sqlite"
	"github.com/mesh-intelligence/semval/pkg/types"
)

// Backend is a Cupboard whose constraint relations can be read as a Store.
type Backend interface {
	types.Cupboard
	types.Store
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	backend := sqlite.NewBackend()
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".semval",
//	})
//	defer backend.Detach()
//	values, err := backend.ConstraintValues("Has_color", types.ConstraintAllowedValues)
func NewBackend() Backend {
	return sqlite.NewBackend()
}
