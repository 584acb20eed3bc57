package value

import (
	"fmt"

	"github.com/mesh-intelligence/semval/pkg/types"
)

// FieldCode is the single-letter type code of one internal-key field.
type FieldCode byte

// Field codes.
const (
	FieldTitle     FieldCode = 't' // short string, title-like
	FieldBlob      FieldCode = 'l' // long text
	FieldURI       FieldCode = 'w' // URI
	FieldUnit      FieldCode = 'u' // unit string
	FieldNumber    FieldCode = 'n' // integer
	FieldFloat     FieldCode = 'f' // floating point number
	FieldContainer FieldCode = 'c' // composite encoding, must stand alone
)

// IsNumeric reports whether the field sorts numerically.
func (c FieldCode) IsNumeric() bool {
	return c == FieldNumber || c == FieldFloat
}

// IsString reports whether the field holds text that patterns can match.
func (c FieldCode) IsString() bool {
	return c == FieldTitle || c == FieldBlob || c == FieldURI
}

func (c FieldCode) valid() bool {
	switch c {
	case FieldTitle, FieldBlob, FieldURI, FieldUnit, FieldNumber, FieldFloat, FieldContainer:
		return true
	}
	return false
}

// Signature describes the shape of the internal keys: one field code per key.
type Signature string

// Len returns the number of fields.
func (s Signature) Len() int {
	return len(s)
}

// Field returns the code of field i.
func (s Signature) Field(i int) FieldCode {
	return FieldCode(s[i])
}

// IsContainer reports whether s is the composite encoding.
func (s Signature) IsContainer() bool {
	return s == Signature(FieldContainer)
}

// Validate checks that s is non-empty, uses only known codes and that a
// container code is the only field.
func (s Signature) Validate() error {
	if s == "" {
		return fmt.Errorf("%w: empty", types.ErrInvalidSignature)
	}
	for i := 0; i < len(s); i++ {
		c := FieldCode(s[i])
		if !c.valid() {
			return fmt.Errorf("%w: unknown code %q in %q", types.ErrInvalidSignature, s[i], string(s))
		}
		if c == FieldContainer && len(s) != 1 {
			return fmt.Errorf("%w: %q mixes container with other fields", types.ErrInvalidSignature, string(s))
		}
	}
	return nil
}

// ValidateLayout checks a signature together with the sort and match field
// indexes of a kind. Each index is -1 or addresses a field; the match field
// must be a string field.
func ValidateLayout(s Signature, sortField, matchField int) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if sortField < -1 || sortField >= s.Len() {
		return fmt.Errorf("%w: sort field %d for %q", types.ErrFieldIndex, sortField, string(s))
	}
	if matchField < -1 || matchField >= s.Len() {
		return fmt.Errorf("%w: match field %d for %q", types.ErrFieldIndex, matchField, string(s))
	}
	if matchField >= 0 && !s.Field(matchField).IsString() {
		return fmt.Errorf("%w: match field %d of %q is not a string field", types.ErrFieldIndex, matchField, string(s))
	}
	return nil
}
