// This file implements the constraints table accessor for the SQLite backend.
// Constraint rows hold the allowed values and service names of a property.
package sqlite

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/semval/pkg/types"
)

var _ types.Table = (*constraintsTable)(nil)

const constraintColumns = "constraint_id, property_id, constraint_name, value, ordinal"

type constraintsTable struct {
	backend *Backend
}

// Get retrieves a constraint value by ID.
func (ct *constraintsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	var c *types.Constraint
	err := ct.backend.readLocked(func() error {
		row := ct.backend.db.QueryRow(
			"SELECT "+constraintColumns+" FROM constraints WHERE constraint_id = ?", id)
		got, err := hydrateConstraint(row)
		if isNoRows(err) {
			return types.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("getting constraint %s: %w", id, err)
		}
		c = got
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Set persists a constraint value. If id is empty, generates a UUID v7 and
// creates the row after checking that the property exists and that the value
// is not already listed under the same relation.
func (ct *constraintsTable) Set(id string, data any) (string, error) {
	c, ok := data.(*types.Constraint)
	if !ok || c == nil {
		return "", types.ErrInvalidData
	}
	if !types.IsValidConstraint(c.Name) {
		return "", types.ErrInvalidConstraint
	}
	if strings.TrimSpace(c.Value) == "" {
		return "", types.ErrInvalidContent
	}
	if c.PropertyID == "" {
		return "", types.ErrInvalidID
	}

	err := ct.backend.writeLocked(func() error {
		var exists int
		err := ct.backend.db.QueryRow(
			"SELECT 1 FROM properties WHERE property_id = ?", c.PropertyID,
		).Scan(&exists)
		if isNoRows(err) {
			return types.ErrPropertyNotFound
		}
		if err != nil {
			return fmt.Errorf("checking property existence: %w", err)
		}

		if id == "" {
			id = c.ConstraintID
		}
		if id == "" {
			id = generateUUID()
		}
		c.ConstraintID = id

		var dupID string
		err = ct.backend.db.QueryRow(
			`SELECT constraint_id FROM constraints
			WHERE property_id = ? AND constraint_name = ? AND value = ? AND constraint_id != ?`,
			c.PropertyID, c.Name, c.Value, id,
		).Scan(&dupID)
		if err == nil {
			return types.ErrDuplicateName
		}
		if !isNoRows(err) {
			return fmt.Errorf("checking constraint uniqueness: %w", err)
		}

		_, err = ct.backend.db.Exec(`
			INSERT INTO constraints (constraint_id, property_id, constraint_name, value, ordinal)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(constraint_id) DO UPDATE SET
				property_id = excluded.property_id,
				constraint_name = excluded.constraint_name,
				value = excluded.value,
				ordinal = excluded.ordinal`,
			c.ConstraintID, c.PropertyID, c.Name, c.Value, c.Ordinal)
		if err != nil {
			return fmt.Errorf("upserting constraint: %w", err)
		}

		if err := persistTableJSONL(ct.backend, types.ConstraintsTable); err != nil {
			return fmt.Errorf("persisting constraints.jsonl: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Delete removes a constraint value by ID.
func (ct *constraintsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	return ct.backend.writeLocked(func() error {
		res, err := ct.backend.db.Exec("DELETE FROM constraints WHERE constraint_id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting constraint: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return types.ErrNotFound
		}
		if err := persistTableJSONL(ct.backend, types.ConstraintsTable); err != nil {
			return fmt.Errorf("persisting constraints.jsonl: %w", err)
		}
		return nil
	})
}

// Fetch queries constraint values matching the filter, ordered by ordinal and
// then insertion. Supported keys: "property_id", "constraint_name", "value"
// (string), "limit", "offset" (int).
func (ct *constraintsTable) Fetch(filter types.Filter) ([]any, error) {
	query, args, err := buildFetchQuery(
		"SELECT "+constraintColumns+" FROM constraints",
		filter, []string{"property_id", "constraint_name", "value"}, "ordinal ASC, rowid ASC")
	if err != nil {
		return nil, err
	}

	results := []any{}
	err = ct.backend.readLocked(func() error {
		rows, err := ct.backend.db.Query(query, args...)
		if err != nil {
			return fmt.Errorf("fetching constraints: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			c, err := hydrateConstraint(rows)
			if err != nil {
				return fmt.Errorf("hydrating constraint: %w", err)
			}
			results = append(results, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// hydrateConstraint converts a SQLite row into a *types.Constraint.
func hydrateConstraint(row rowScanner) (*types.Constraint, error) {
	var c types.Constraint
	if err := row.Scan(&c.ConstraintID, &c.PropertyID, &c.Name, &c.Value, &c.Ordinal); err != nil {
		return nil, err
	}
	return &c, nil
}
