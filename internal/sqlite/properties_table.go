// This file implements the properties table accessor for the SQLite backend.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/semval/pkg/types"
)

var _ types.Table = (*propertiesTable)(nil)

const propertyColumns = "property_id, name, type_id, description, created_at"

type propertiesTable struct {
	backend *Backend
}

// Get retrieves a property by ID.
func (pt *propertiesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	var prop *types.Property
	err := pt.backend.readLocked(func() error {
		row := pt.backend.db.QueryRow(
			"SELECT "+propertyColumns+" FROM properties WHERE property_id = ?", id)
		p, err := hydrateProperty(row)
		if isNoRows(err) {
			return types.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("getting property %s: %w", id, err)
		}
		prop = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prop, nil
}

// Set persists a property. If id is empty a UUID v7 and creation time are
// generated. Property names are unique, and so are their page keys:
// "has height" and "Has_height" collide.
func (pt *propertiesTable) Set(id string, data any) (string, error) {
	p, ok := data.(*types.Property)
	if !ok || p == nil {
		return "", types.ErrInvalidData
	}
	name := strings.TrimSpace(p.Name)
	if name == "" || strings.ContainsAny(name, "\t\n|") {
		return "", types.ErrInvalidName
	}
	if p.TypeID == "" {
		return "", types.ErrUnknownType
	}
	p.Name = name

	err := pt.backend.writeLocked(func() error {
		if id == "" {
			id = p.PropertyID
		}
		if id == "" {
			id = generateUUID()
			p.CreatedAt = time.Now().UTC()
		}
		p.PropertyID = id
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now().UTC()
		}

		var page sql.NullString
		if key, ok := p.Page(); ok {
			page = sql.NullString{String: key, Valid: true}
		}

		var dupID string
		err := pt.backend.db.QueryRow(
			"SELECT property_id FROM properties WHERE (name = ? OR page = ?) AND property_id != ?",
			p.Name, page, id,
		).Scan(&dupID)
		if err == nil {
			return types.ErrDuplicateName
		}
		if !isNoRows(err) {
			return fmt.Errorf("checking property name: %w", err)
		}

		var desc sql.NullString
		if p.Description != "" {
			desc = sql.NullString{String: p.Description, Valid: true}
		}

		_, err = pt.backend.db.Exec(`
			INSERT INTO properties (property_id, name, page, type_id, description, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(property_id) DO UPDATE SET
				name = excluded.name,
				page = excluded.page,
				type_id = excluded.type_id,
				description = excluded.description`,
			p.PropertyID, p.Name, page, p.TypeID, desc,
			p.CreatedAt.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("upserting property: %w", err)
		}

		if err := persistTableJSONL(pt.backend, types.PropertiesTable); err != nil {
			return fmt.Errorf("persisting properties.jsonl: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return p.PropertyID, nil
}

// Delete removes a property and all of its constraints.
func (pt *propertiesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	return pt.backend.writeLocked(func() error {
		tx, err := pt.backend.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer tx.Rollback()

		if _, err := tx.Exec("DELETE FROM constraints WHERE property_id = ?", id); err != nil {
			return fmt.Errorf("deleting property constraints: %w", err)
		}
		res, err := tx.Exec("DELETE FROM properties WHERE property_id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting property: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return types.ErrNotFound
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing property deletion: %w", err)
		}

		if err := persistTableJSONL(pt.backend, types.PropertiesTable); err != nil {
			return fmt.Errorf("persisting properties.jsonl: %w", err)
		}
		if err := persistTableJSONL(pt.backend, types.ConstraintsTable); err != nil {
			return fmt.Errorf("persisting constraints.jsonl: %w", err)
		}
		return nil
	})
}

// Fetch queries properties matching the filter, ordered by name. Supported
// keys: "name", "page", "type_id" (string), "limit", "offset" (int).
func (pt *propertiesTable) Fetch(filter types.Filter) ([]any, error) {
	query, args, err := buildFetchQuery(
		"SELECT "+propertyColumns+" FROM properties",
		filter, []string{"name", "page", "type_id"}, "name ASC")
	if err != nil {
		return nil, err
	}

	results := []any{}
	err = pt.backend.readLocked(func() error {
		rows, err := pt.backend.db.Query(query, args...)
		if err != nil {
			return fmt.Errorf("fetching properties: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			p, err := hydrateProperty(rows)
			if err != nil {
				return fmt.Errorf("hydrating property: %w", err)
			}
			results = append(results, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// hydrateProperty converts a SQLite row into a *types.Property.
func hydrateProperty(row rowScanner) (*types.Property, error) {
	var p types.Property
	var desc sql.NullString
	var createdAt string
	if err := row.Scan(&p.PropertyID, &p.Name, &p.TypeID, &desc, &createdAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		p.Description = desc.String
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &p, nil
}

// buildFetchQuery appends equality conditions for the allowed string filter
// keys, the ordering and the "limit"/"offset" paging keys to base.
func buildFetchQuery(base string, filter types.Filter, keys []string, orderBy string) (string, []any, error) {
	var conditions []string
	var args []any

	for _, key := range keys {
		v, ok := filter[key]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return "", nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, key+" = ?")
		args = append(args, s)
	}

	query := base
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY " + orderBy

	limit, err := intFilter(filter, "limit")
	if err != nil {
		return "", nil, err
	}
	offset, err := intFilter(filter, "offset")
	if err != nil {
		return "", nil, err
	}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	} else if offset > 0 {
		query += " LIMIT -1"
	}
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", offset)
	}
	return query, args, nil
}

// intFilter reads an optional int filter value.
func intFilter(filter types.Filter, key string) (int, error) {
	v, ok := filter[key]
	if !ok {
		return 0, nil
	}
	n, ok := v.(int)
	if !ok {
		return 0, types.ErrInvalidFilter
	}
	return n, nil
}
