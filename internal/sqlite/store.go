// This file implements types.Store and name lookups over the attached
// database.
package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/semval/pkg/types"
)

// ConstraintValues returns the raw values of one constraint relation of the
// property whose page key is page, ordered by ordinal and then insertion.
// An unknown property or relation yields an empty slice.
func (b *Backend) ConstraintValues(page, constraint string) ([]string, error) {
	values := []string{}
	err := b.readLocked(func() error {
		rows, err := b.db.Query(`
			SELECT c.value FROM constraints c
			JOIN properties p ON p.property_id = c.property_id
			WHERE p.page = ? AND c.constraint_name = ?
			ORDER BY c.ordinal ASC, c.rowid ASC`,
			page, constraint)
		if err != nil {
			return fmt.Errorf("querying %s values of %s: %w", constraint, page, err)
		}
		defer rows.Close()

		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				return fmt.Errorf("scanning constraint value: %w", err)
			}
			values = append(values, v)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

// PropertyByName looks a property up by name. Names are matched by page key,
// so "has height" finds "Has_height". Predefined properties are matched by
// exact name. Returns ErrPropertyNotFound when nothing matches.
func (b *Backend) PropertyByName(name string) (*types.Property, error) {
	tbl, err := b.GetTable(types.PropertiesTable)
	if err != nil {
		return nil, err
	}
	filter := types.Filter{"name": name}
	if page, ok := (&types.Property{Name: name}).Page(); ok {
		filter = types.Filter{"page": page}
	}
	results, err := tbl.Fetch(filter)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%q: %w", name, types.ErrPropertyNotFound)
	}
	return results[0].(*types.Property), nil
}
