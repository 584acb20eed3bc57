package value

import (
	"log/slog"
	"strings"

	"github.com/mesh-intelligence/semval/pkg/types"
)

// OutputMode selects the markup of rendered text.
type OutputMode int

// Output modes.
const (
	ModeWiki OutputMode = iota // wiki markup
	ModeHTML                   // rendered HTML
)

// FormatPlain is the output format that asks for plain, unlocalized text
// without markup.
const FormatPlain = "-"

// Message keys used by the value core.
const (
	MsgParseError  = "smw_parseerror"
	MsgNotInEnum   = "smw_notinenum"
	MsgNoPattern   = "smw_nopattern"
	MsgServiceLink = "smw_service_"
)

// Kind is the per-type encoding behind a Value. A fresh Kind is created for
// every ingestion, so implementations keep parsed state in their own fields
// and never need to reset it.
type Kind interface {
	// ParseText interprets user text. Failures are reported through r.
	ParseText(text string, r *Report)

	// ParseKeys restores state from internal keys. keys has at least one
	// element but may be shorter than Keys produces; malformed input is
	// reported through r, never by panicking.
	ParseKeys(keys []string, r *Report)

	// Keys returns the internal keys. It is called repeatedly and must
	// return the same order-significant sequence each time.
	Keys() []string

	// Signature returns one field code per internal key.
	Signature() Signature

	// SortField is the index of the key used for ordering, or -1.
	SortField() int

	// MatchField is the index of the key used for pattern matching, or -1.
	MatchField() int

	// ShortText renders the value for inline display.
	ShortText(mode OutputMode, format string) string

	// LongText renders the value with full detail.
	LongText(mode OutputMode, format string) string

	// WikiValue returns canonical text that ParseText accepts and that
	// reproduces the same keys.
	WikiValue() string
}

// ServiceLinker is implemented by kinds that support service links.
type ServiceLinker interface {
	// ServiceLinkParams returns the template parameters for service links.
	// ok is false when the current value does not support them.
	ServiceLinkParams() (params []string, ok bool)
}

// CaptionRenderer is implemented by kinds whose short text carries markup
// around the label, such as a link. CaptionText renders caption in place of
// the kind's own label; caption is raw text and must be escaped for HTML.
type CaptionRenderer interface {
	CaptionText(mode OutputMode, format, caption string) string
}

// Report collects the outcome of one parse call.
type Report struct {
	errs       *Errors
	msgs       types.Messages
	caption    *string
	hasCaption *bool
	format     string
}

// Error renders the message key with params and records it.
func (r *Report) Error(key string, params ...string) {
	r.errs.Add(r.msgs.Render(key, params...))
}

// Failed reports whether any error has been recorded for the value.
func (r *Report) Failed() bool {
	return r.errs.HasErrors()
}

// SetCaption sets the display caption unless the caller already supplied
// one. It does nothing while stored keys are parsed.
func (r *Report) SetCaption(caption string) {
	if r.caption == nil || *r.hasCaption {
		return
	}
	*r.caption = caption
	*r.hasCaption = true
}

// OutputFormat returns the output format hint of the value.
func (r *Report) OutputFormat() string {
	return r.format
}

// Event is a lifecycle event reported to an Observer.
type Event int

// Events.
const (
	EventUserValue  Event = iota // user text ingested
	EventKeys                    // internal keys ingested
	EventUnstub                  // pending keys parsed
	EventInvalid                 // parsing recorded errors
	EventNotAllowed              // value rejected by allowed values
)

var eventNames = [...]string{
	EventUserValue:  "user_value",
	EventKeys:       "keys",
	EventUnstub:     "unstub",
	EventInvalid:    "invalid",
	EventNotAllowed: "not_allowed",
}

func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[e]
}

// Observer receives value lifecycle events.
type Observer interface {
	Observe(typeID string, e Event)
}

// Env holds the collaborators shared by all values of a Factory. Every
// field is optional.
type Env struct {
	Store    types.Store
	Messages types.Messages
	Logger   *slog.Logger
	Observer Observer
}

func (e *Env) messages() types.Messages {
	if e.Messages == nil {
		return keyMessages{}
	}
	return e.Messages
}

func (e *Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

func (e *Env) observe(typeID string, ev Event) {
	if e.Observer != nil {
		e.Observer.Observe(typeID, ev)
	}
}

// keyMessages renders a message as its key followed by its parameters. It
// stands in when no message service is configured.
type keyMessages struct{}

func (keyMessages) Render(key string, params ...string) string {
	if len(params) == 0 {
		return key
	}
	return key + ": " + strings.Join(params, ", ")
}
