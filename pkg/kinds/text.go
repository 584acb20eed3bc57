package kinds

import (
	"html"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/mesh-intelligence/semval/pkg/value"
)

// maxTextLength bounds text values, in runes.
const maxTextLength = 255

// shortTextLength is the rune count after which ShortText abbreviates.
const shortTextLength = 42

// Text is a string value, normalised to NFC with surrounding space trimmed.
type Text struct {
	s string
}

var _ value.Kind = (*Text)(nil)
var _ value.ServiceLinker = (*Text)(nil)

func (t *Text) ParseText(text string, r *value.Report) {
	s := norm.NFC.String(strings.TrimSpace(text))
	if s == "" {
		r.Error(MsgEmptyString)
		return
	}
	if n := utf8.RuneCountInString(s); n > maxTextLength {
		r.Error(MsgMaxLength, strconv.Itoa(n), strconv.Itoa(maxTextLength))
		return
	}
	t.s = s
}

func (t *Text) ParseKeys(keys []string, r *value.Report) {
	t.ParseText(keys[0], r)
}

func (t *Text) Keys() []string             { return []string{t.s} }
func (t *Text) Signature() value.Signature { return "t" }
func (t *Text) SortField() int             { return 0 }
func (t *Text) MatchField() int            { return 0 }
func (t *Text) WikiValue() string          { return t.s }

// ShortText abbreviates long strings unless plain output is requested.
func (t *Text) ShortText(mode value.OutputMode, format string) string {
	s := t.s
	if format != value.FormatPlain && utf8.RuneCountInString(s) > shortTextLength {
		s = string([]rune(s)[:shortTextLength]) + "…"
	}
	if mode == value.ModeHTML {
		return html.EscapeString(s)
	}
	return s
}

func (t *Text) LongText(mode value.OutputMode, format string) string {
	if mode == value.ModeHTML {
		return html.EscapeString(t.s)
	}
	return t.s
}

// ServiceLinkParams passes the escaped string.
func (t *Text) ServiceLinkParams() ([]string, bool) {
	return []string{escapeParam(t.s)}, true
}
