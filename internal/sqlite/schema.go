// Schema DDL for the properties and constraints tables.
package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema DDL for all tables.
const (
	createProperties = `CREATE TABLE properties (
    property_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    page TEXT UNIQUE,
    type_id TEXT NOT NULL,
    description TEXT,
    created_at TEXT NOT NULL
);`

	createConstraints = `CREATE TABLE constraints (
    constraint_id TEXT PRIMARY KEY,
    property_id TEXT NOT NULL,
    constraint_name TEXT NOT NULL,
    value TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    FOREIGN KEY (property_id) REFERENCES properties(property_id) ON DELETE CASCADE
);`
)

// Index DDL for common queries.
const (
	idxPropertiesType       = `CREATE INDEX idx_properties_type ON properties(type_id);`
	idxConstraintsProperty  = `CREATE INDEX idx_constraints_property ON constraints(property_id, constraint_name);`
	idxConstraintsUniqueVal = `CREATE UNIQUE INDEX idx_constraints_unique ON constraints(property_id, constraint_name, value);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createProperties,
	createConstraints,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxPropertiesType,
	idxConstraintsProperty,
	idxConstraintsUniqueVal,
}

// createSchema executes the table and index DDL against a fresh database.
func createSchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}
