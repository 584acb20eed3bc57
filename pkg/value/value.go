package value

import (
	"html"
	"log/slog"
	"slices"
	"strings"

	"github.com/mesh-intelligence/semval/pkg/types"
)

// reservedMarkers signal unrepresentable special content, such as the strip
// markers a markup parser leaves in text it has not yet expanded.
var reservedMarkers = []string{"\x7f", "-QINU`"}

// hashSeparator joins keys or errors in Hash.
const hashSeparator = "\t"

// phase is the parse state of a Value.
type phase uint8

const (
	phaseEmpty  phase = iota // nothing ingested
	phaseStub                // keys pending, not yet parsed
	phaseParsed              // kind holds parsed state
)

// Value is one typed value with a textual and an internal representation.
type Value struct {
	typeID  string
	newKind Constructor
	env     *Env
	kind    Kind

	property     *types.Property
	caption      string
	hasCaption   bool
	outputFormat string

	set     bool
	phase   phase
	pending []string
	errs    Errors

	links             []types.Link
	searchLinkAdded   bool
	serviceLinksAdded bool
}

func newValue(typeID string, newKind Constructor, env *Env) *Value {
	return &Value{
		typeID:  typeID,
		newKind: newKind,
		env:     env,
		kind:    newKind(),
	}
}

// TypeID returns the type id the value was created with.
func (v *Value) TypeID() string {
	return v.typeID
}

// SetProperty associates the value with the property it is a value of.
// The property is used for lookups only.
func (v *Value) SetProperty(p *types.Property) {
	v.property = p
	v.links = nil
	v.searchLinkAdded = false
	v.serviceLinksAdded = false
}

// Property returns the associated property, or nil.
func (v *Value) Property() *types.Property {
	return v.property
}

// SetCaption overrides the display label.
func (v *Value) SetCaption(caption string) {
	v.caption = caption
	v.hasCaption = true
}

// Caption returns the display label override, if any.
func (v *Value) Caption() (string, bool) {
	v.unstub()
	return v.caption, v.hasCaption
}

// SetOutputFormat sets the rendering hint passed to the kind. FormatPlain
// requests plain output.
func (v *Value) SetOutputFormat(format string) {
	v.outputFormat = format
}

// OutputFormat returns the rendering hint.
func (v *Value) OutputFormat() string {
	return v.outputFormat
}

// reset clears all state derived from a previous ingestion.
func (v *Value) reset() {
	v.errs.Reset()
	v.links = nil
	v.searchLinkAdded = false
	v.serviceLinksAdded = false
	v.caption = ""
	v.hasCaption = false
	v.set = false
	v.phase = phaseEmpty
	v.pending = nil
	v.kind = v.newKind()
}

// report returns the Report a kind parses into. Only user text may set a
// caption; a report for stored keys has no caption slot.
func (v *Value) report(withCaption bool) *Report {
	r := &Report{
		errs:   &v.errs,
		msgs:   v.env.messages(),
		format: v.outputFormat,
	}
	if withCaption {
		r.caption = &v.caption
		r.hasCaption = &v.hasCaption
	}
	return r
}

// SetUserValue parses user text. A non-blank caption overrides the display
// label; otherwise the kind may choose one. The value is set even if
// parsing fails, except when text carries a reserved marker. A valid value
// with a property is then checked against the property's allowed values.
func (v *Value) SetUserValue(text, caption string) {
	v.reset()
	if c := strings.TrimSpace(caption); c != "" {
		v.caption = c
		v.hasCaption = true
	}
	v.env.observe(v.typeID, EventUserValue)

	for _, m := range reservedMarkers {
		if strings.Contains(text, m) {
			v.errs.Add(v.env.messages().Render(MsgParseError))
			v.env.observe(v.typeID, EventInvalid)
			return
		}
	}

	v.phase = phaseParsed
	v.kind.ParseText(text, v.report(true))
	v.set = true

	if v.errs.HasErrors() {
		v.env.observe(v.typeID, EventInvalid)
		return
	}
	v.checkAllowedValues()
}

// SetKeys stores internal keys for lazy parsing. The keys are parsed on the
// first call that needs parsed state.
func (v *Value) SetKeys(keys []string) {
	v.reset()
	v.pending = slices.Clone(keys)
	v.phase = phaseStub
	v.set = true
	v.env.observe(v.typeID, EventKeys)
}

// unstub parses pending keys. The keys are consumed before the kind runs,
// so a nested call made while parsing does nothing.
func (v *Value) unstub() {
	if v.phase != phaseStub {
		return
	}
	keys := v.pending
	v.pending = nil
	v.phase = phaseParsed
	v.env.observe(v.typeID, EventUnstub)

	if len(keys) == 0 {
		v.errs.Add(v.env.messages().Render(MsgParseError))
	} else {
		v.kind.ParseKeys(keys, v.report(false))
	}
	if v.errs.HasErrors() {
		v.env.logger().Debug("stored keys rejected",
			slog.String("type", v.typeID),
			slog.Int("keys", len(keys)),
			slog.String("error", v.errs.Join("; ")))
		v.env.observe(v.typeID, EventInvalid)
	}
}

// IsSet reports whether a user value or internal keys were accepted as the
// source of the value, whether or not they parsed.
func (v *Value) IsSet() bool {
	return v.set
}

// IsValid reports whether the value is set and has no errors.
func (v *Value) IsValid() bool {
	v.unstub()
	return v.set && !v.errs.HasErrors()
}

// HasErrors reports whether any error was recorded.
func (v *Value) HasErrors() bool {
	v.unstub()
	return v.errs.HasErrors()
}

// Errors returns the recorded error messages in order.
func (v *Value) Errors() []string {
	v.unstub()
	return v.errs.List()
}

// ErrorText returns the error messages joined for display.
func (v *Value) ErrorText() string {
	v.unstub()
	return v.errs.Join("; ")
}

// AddError records an error found outside of parsing.
func (v *Value) AddError(msg string) {
	v.unstub()
	v.errs.Add(msg)
}

// Keys returns the internal keys, or nil if the value is not set or has
// errors. Passing them to SetKeys on a fresh value of the same type yields
// an equal value.
func (v *Value) Keys() []string {
	v.unstub()
	if !v.set || v.errs.HasErrors() {
		return nil
	}
	return slices.Clone(v.kind.Keys())
}

// Signature returns the field codes of the internal keys.
func (v *Value) Signature() Signature {
	return v.kind.Signature()
}

// SortField returns the index of the sortable key, or -1.
func (v *Value) SortField() int {
	return v.kind.SortField()
}

// MatchField returns the index of the key used for pattern matching, or -1.
func (v *Value) MatchField() int {
	return v.kind.MatchField()
}

// IsNumeric reports whether the value sorts numerically.
func (v *Value) IsNumeric() bool {
	i := v.kind.SortField()
	return i >= 0 && v.kind.Signature().Field(i).IsNumeric()
}

// Hash returns a string that is equal for equal values of one type: the
// keys of a valid value, otherwise its error messages.
func (v *Value) Hash() string {
	if v.IsValid() {
		return strings.Join(v.kind.Keys(), hashSeparator)
	}
	return v.errs.Join(hashSeparator)
}

// ShortText renders the value for inline display. A caption replaces the
// kind's label; kinds implementing CaptionRenderer wrap it in their own
// markup, otherwise it is escaped in HTML mode. An invalid value renders
// its errors.
func (v *Value) ShortText(mode OutputMode) string {
	if !v.IsValid() {
		return v.ErrorText()
	}
	if !v.hasCaption {
		return v.kind.ShortText(mode, v.outputFormat)
	}
	if cr, ok := v.kind.(CaptionRenderer); ok {
		return cr.CaptionText(mode, v.outputFormat, v.caption)
	}
	if mode == ModeHTML {
		return html.EscapeString(v.caption)
	}
	return v.caption
}

// LongText renders the value with full detail; an invalid value renders its
// errors.
func (v *Value) LongText(mode OutputMode) string {
	if !v.IsValid() {
		return v.ErrorText()
	}
	return v.kind.LongText(mode, v.outputFormat)
}

// WikiValue returns canonical text that SetUserValue accepts, or "" for an
// invalid value.
func (v *Value) WikiValue() string {
	if !v.IsValid() {
		return ""
	}
	return v.kind.WikiValue()
}
