// Errors reported while building values from a registry.
package types

import "errors"

// Value registry errors.
var (
	ErrUnknownType       = errors.New("unknown value type")
	ErrDuplicateType     = errors.New("value type already registered")
	ErrInvalidSignature  = errors.New("invalid value signature")
	ErrFieldIndex        = errors.New("field index out of range")
	ErrUnknownComparator = errors.New("unknown comparator token")
)
