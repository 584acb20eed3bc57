package value

import (
	"errors"
	"net/url"
	"strings"
	"unicode"
)

// codeKind is a test kind holding an upper-case letter code.
type codeKind struct {
	code    string
	parses  *int
	onParse func()
}

func newCodeConstructor(parses *int, onParse func()) Constructor {
	return func() Kind { return &codeKind{parses: parses, onParse: onParse} }
}

func (k *codeKind) ParseText(text string, r *Report) {
	if k.parses != nil {
		*k.parses++
	}
	text = strings.TrimSpace(text)
	if text == "" {
		r.Error("smw_emptystring")
		return
	}
	if strings.IndexFunc(text, func(c rune) bool { return !unicode.IsLetter(c) }) >= 0 {
		r.Error("smw_notcode", text)
		return
	}
	k.code = strings.ToUpper(text)
	r.SetCaption(text)
}

func (k *codeKind) ParseKeys(keys []string, r *Report) {
	if k.parses != nil {
		*k.parses++
	}
	if k.onParse != nil {
		k.onParse()
	}
	if keys[0] == "" || strings.ToUpper(keys[0]) != keys[0] {
		r.Error(MsgParseError)
		return
	}
	k.code = keys[0]
	// Ignored: stored keys never set a caption.
	r.SetCaption(strings.ToLower(keys[0]))
}

func (k *codeKind) Keys() []string       { return []string{k.code} }
func (k *codeKind) Signature() Signature { return "t" }
func (k *codeKind) SortField() int       { return 0 }
func (k *codeKind) MatchField() int      { return 0 }
func (k *codeKind) WikiValue() string    { return k.code }

func (k *codeKind) ShortText(mode OutputMode, format string) string {
	if format == FormatPlain {
		return strings.ToLower(k.code)
	}
	return k.code
}

func (k *codeKind) LongText(mode OutputMode, format string) string {
	if mode == ModeHTML {
		return "<code>" + k.code + "</code>"
	}
	return k.code
}

func (k *codeKind) ServiceLinkParams() ([]string, bool) {
	return []string{url.QueryEscape(k.code)}, true
}

// countKind is a numeric test kind without service links.
type countKind struct{ n string }

func (k *countKind) ParseText(text string, r *Report) {
	text = strings.TrimSpace(text)
	if text == "" || strings.Trim(text, "0123456789") != "" {
		r.Error("smw_nofloat", text)
		return
	}
	k.n = text
}
func (k *countKind) ParseKeys(keys []string, r *Report)  { k.ParseText(keys[0], r) }
func (k *countKind) Keys() []string                      { return []string{k.n} }
func (k *countKind) Signature() Signature                { return "n" }
func (k *countKind) SortField() int                      { return 0 }
func (k *countKind) MatchField() int                     { return -1 }
func (k *countKind) ShortText(OutputMode, string) string { return k.n }
func (k *countKind) LongText(OutputMode, string) string  { return k.n }
func (k *countKind) WikiValue() string                   { return k.n }

// badKind declares an invalid layout.
type badKind struct{ countKind }

func (badKind) MatchField() int { return 0 }

// fakeStore serves constraint values keyed by page and relation and counts
// lookups per relation.
type fakeStore struct {
	values map[string]map[string][]string
	err    error
	calls  map[string]int
}

func (s *fakeStore) ConstraintValues(page, constraint string) ([]string, error) {
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.calls[constraint]++
	if s.err != nil {
		return nil, s.err
	}
	return s.values[page][constraint], nil
}

var errStoreDown = errors.New("store down")

// fakeMessages expands $1..$n in a fixed template map; unknown keys render
// as the key.
type fakeMessages map[string]string

func (m fakeMessages) Render(key string, params ...string) string {
	tmpl, ok := m[key]
	if !ok {
		return key
	}
	for i := len(params); i > 0; i-- {
		tmpl = strings.ReplaceAll(tmpl, "$"+string(rune('0'+i)), params[i-1])
	}
	return tmpl
}

// eventLog records observed events.
type eventLog []Event

func (l *eventLog) Observe(_ string, e Event) { *l = append(*l, e) }

var testMessages = fakeMessages{
	MsgParseError:        "The value could not be parsed.",
	MsgNotInEnum:         `"$1" is not in the list of possible values ($2) for this property.`,
	MsgNoPattern:         `"$1" cannot be used as a pattern.`,
	"smw_emptystring":    "Empty strings are not accepted.",
	"smw_notcode":        `"$1" is not a code.`,
	"smw_service_lookup": "Lookup $1|https://example.org/?q=$1\nbroken line\n Mirror|  https://mirror.example.org/$1  ",
}
