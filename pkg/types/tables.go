package types

// Standard table names for Cupboard.GetTable.
const (
	PropertiesTable  = "properties"
	ConstraintsTable = "constraints"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	PropertiesTable,
	ConstraintsTable,
}
