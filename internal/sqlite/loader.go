// This file implements JSONL loading on Attach and table persistence after
// each mutation. Malformed lines and unknown fields are tolerated.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mesh-intelligence/semval/pkg/types"
)

// jsonlMapping ties one JSONL file to its SQLite table and persisted columns.
// derive fills the derived columns, which are computed from other fields
// rather than stored in the file.
type jsonlMapping struct {
	file    string
	table   string
	columns []string
	derived []string
	derive  func(obj map[string]any)
}

// jsonlTableMapping maps JSONL filenames to their SQLite tables and column lists.
// The order matters: tables with foreign keys must load after their referenced tables.
var jsonlTableMapping = []jsonlMapping{
	{
		file:    "properties.jsonl",
		table:   types.PropertiesTable,
		columns: []string{"property_id", "name", "type_id", "description", "created_at"},
		derived: []string{"page"},
		derive:  derivePropertyPage,
	},
	{
		file:    "constraints.jsonl",
		table:   types.ConstraintsTable,
		columns: []string{"constraint_id", "property_id", "constraint_name", "value", "ordinal"},
	},
}

// mappingFor returns the JSONL mapping of a table.
func mappingFor(table string) (jsonlMapping, bool) {
	for _, m := range jsonlTableMapping {
		if m.table == table {
			return m, true
		}
	}
	return jsonlMapping{}, false
}

// derivePropertyPage sets the page column from the property name.
func derivePropertyPage(obj map[string]any) {
	name, _ := obj["name"].(string)
	if page, ok := (&types.Property{Name: name}).Page(); ok {
		obj["page"] = page
	}
}

// loadAllJSONL reads each JSONL file from DataDir and inserts records into the
// corresponding SQLite tables. Loading is transactional: all succeed or the
// database remains empty. Malformed lines, records that violate a table
// constraint and unknown fields are skipped.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, mapping := range jsonlTableMapping {
		path := filepath.Join(dataDir, mapping.file)
		records, err := readJSONL(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", mapping.file, err)
		}

		if len(records) == 0 {
			continue
		}

		if err := insertRecords(tx, mapping, records); err != nil {
			return fmt.Errorf("loading %s into %s: %w", mapping.file, mapping.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}

	return nil
}

// insertRecords inserts parsed JSONL records into a SQLite table. Only columns
// listed in the mapping (plus derived ones) are extracted; extra fields from
// other versions do not cause errors.
func insertRecords(tx *sql.Tx, mapping jsonlMapping, records []json.RawMessage) error {
	columns := append(slices.Clip(mapping.columns), mapping.derived...)

	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		mapping.table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", mapping.table, err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}
		if mapping.derive != nil {
			mapping.derive(obj)
		}

		args := make([]any, len(columns))
		for i, col := range columns {
			val, ok := obj[col]
			if !ok {
				args[i] = nil
				continue
			}
			switch v := val.(type) {
			case map[string]any, []any:
				b, err := json.Marshal(v)
				if err != nil {
					args[i] = nil
					continue
				}
				args[i] = string(b)
			default:
				args[i] = val
			}
		}

		if _, err := stmt.Exec(args...); err != nil {
			// Duplicates and orphaned constraints are dropped.
			continue
		}
	}

	return nil
}

// persistTableJSONL reads all rows of a mapped table from SQLite and writes
// them to the table's JSONL file in insertion order, using the atomic write
// pattern. Shared across all table accessors.
func persistTableJSONL(b *Backend, table string) error {
	mapping, ok := mappingFor(table)
	if !ok {
		return fmt.Errorf("persisting %s: %w", table, types.ErrTableNotFound)
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid",
		strings.Join(mapping.columns, ", "), mapping.table)
	rows, err := b.db.Query(query)
	if err != nil {
		return fmt.Errorf("querying %s for JSONL: %w", table, err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		values := make([]any, len(mapping.columns))
		valuePtrs := make([]any, len(mapping.columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return fmt.Errorf("scanning %s row: %w", table, err)
		}
		rec := make(map[string]any, len(mapping.columns))
		for i, col := range mapping.columns {
			if raw, ok := values[i].([]byte); ok {
				values[i] = string(raw)
			}
			rec[col] = values[i]
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling %s row: %w", table, err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating %s for JSONL: %w", table, err)
	}

	return writeJSONL(filepath.Join(b.config.DataDir, mapping.file), records)
}
