package types

// Store provides read access to per-property constraint relations.
type Store interface {
	// ConstraintValues returns the raw values of the named constraint
	// relation on the property with the given page key, in stored order.
	// An unknown property yields an empty slice.
	ConstraintValues(page, constraint string) ([]string, error)
}

// Messages renders localized message templates.
type Messages interface {
	// Render expands the template registered under key with params
	// substituted for $1, $2, ... A missing key renders a placeholder.
	Render(key string, params ...string) string
}
