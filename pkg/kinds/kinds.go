package kinds

import (
	"errors"

	"github.com/mesh-intelligence/semval/pkg/value"
)

// Built-in type ids.
const (
	TypeText    = "_txt"
	TypeNumber  = "_num"
	TypeBoolean = "_boo"
	TypeURI     = "_uri"
	TypePage    = "_wpg"
)

// Message keys reported by the built-in kinds.
const (
	MsgEmptyString = "smw_emptystring"
	MsgNoFloat     = "smw_nofloat"
	MsgNoBool      = "smw_nobool"
	MsgBadURI      = "smw_baduri"
	MsgBadTitle    = "smw_badtitle"
	MsgBadUnit     = "smw_unitnotallowed"
	MsgMaxLength   = "smw_maxstring"
)

var builtins = []struct {
	typeID string
	ctor   value.Constructor
}{
	{TypeText, func() value.Kind { return &Text{} }},
	{TypeNumber, func() value.Kind { return &Number{} }},
	{TypeBoolean, func() value.Kind { return &Boolean{} }},
	{TypeURI, func() value.Kind { return &URI{} }},
	{TypePage, func() value.Kind { return &Page{} }},
}

// Register adds every built-in kind to f.
func Register(f *value.Factory) error {
	var errs []error
	for _, b := range builtins {
		errs = append(errs, f.Register(b.typeID, b.ctor))
	}
	return errors.Join(errs...)
}
