// Property entity and its constraint relations.
package types

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Constraint relation names. A property's constraints are stored as ordered
// lists of raw string values under one of these names.
const (
	// ConstraintAllowedValues enumerates the values a property may take.
	ConstraintAllowedValues = "_PVAL"
	// ConstraintServiceLinks names the service-link templates of a property.
	ConstraintServiceLinks = "_SERV"
)

// validConstraints is the set of recognized constraint relation names.
var validConstraints = map[string]bool{
	ConstraintAllowedValues: true,
	ConstraintServiceLinks:  true,
}

// IsValidConstraint reports whether name is a recognized constraint relation.
func IsValidConstraint(name string) bool {
	return validConstraints[name]
}

// Property describes a named attribute whose values share one value type.
// A Property is referenced by values for lookups; values never own it.
type Property struct {
	PropertyID  string    // UUID v7, generated on creation.
	Name        string    // Unique human-readable name (required, non-empty).
	TypeID      string    // Value type id, e.g. "_num".
	Description string    // Optional explanation of the property's purpose.
	CreatedAt   time.Time // Timestamp of creation.
}

// Constraint is one value of a constraint relation on a property.
type Constraint struct {
	ConstraintID string // UUID v7, generated on creation.
	PropertyID   string // The property this constraint belongs to.
	Name         string // One of the Constraint* relation names.
	Value        string // Raw user-facing value.
	Ordinal      int    // Sort order; lower ordinals sort first.
}

// PageKey converts a property name into its page key: surrounding space is
// trimmed, inner spaces become underscores and the first letter is upper
// case. "has height" and "Has_height" share the key "Has_height".
func PageKey(name string) string {
	key := strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	key = strings.Trim(key, "_")
	if key == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(key)
	return string(unicode.ToUpper(r)) + key[size:]
}

// Page returns the page-like identity of the property. Predefined
// properties, whose names start with an underscore, and unnamed properties
// have no page.
func (p *Property) Page() (string, bool) {
	if p == nil || strings.HasPrefix(p.Name, "_") {
		return "", false
	}
	key := PageKey(p.Name)
	return key, key != ""
}

// DisplayName returns the canonical display form of the property name.
func (p *Property) DisplayName() string {
	if p == nil {
		return ""
	}
	return strings.ReplaceAll(strings.TrimSpace(p.Name), "_", " ")
}

// DefineConstraint creates and persists a constraint value on this property.
// Returns ErrInvalidConstraint if name is not a recognized relation and
// ErrInvalidContent if value is blank.
func (p *Property) DefineConstraint(cupboard Cupboard, name, value string, ordinal int) (*Constraint, error) {
	if !IsValidConstraint(name) {
		return nil, ErrInvalidConstraint
	}
	if strings.TrimSpace(value) == "" {
		return nil, ErrInvalidContent
	}
	c := &Constraint{
		PropertyID: p.PropertyID,
		Name:       name,
		Value:      value,
		Ordinal:    ordinal,
	}
	tbl, err := cupboard.GetTable(ConstraintsTable)
	if err != nil {
		return nil, err
	}
	if _, err := tbl.Set("", c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetConstraints retrieves the values of one constraint relation of this
// property, ordered by ordinal ascending. Returns an empty slice (not nil)
// if none are defined.
func (p *Property) GetConstraints(cupboard Cupboard, name string) ([]*Constraint, error) {
	if !IsValidConstraint(name) {
		return nil, ErrInvalidConstraint
	}
	tbl, err := cupboard.GetTable(ConstraintsTable)
	if err != nil {
		return nil, err
	}
	results, err := tbl.Fetch(Filter{"property_id": p.PropertyID, "constraint_name": name})
	if err != nil {
		return nil, err
	}
	constraints := make([]*Constraint, 0, len(results))
	for _, r := range results {
		if c, ok := r.(*Constraint); ok {
			constraints = append(constraints, c)
		}
	}
	return constraints, nil
}
