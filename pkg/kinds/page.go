package kinds

import (
	"html"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/mesh-intelligence/semval/pkg/value"
)

// namespaces maps namespace prefixes to their numbers.
var namespaces = map[string]int{
	"":         0,
	"Talk":     1,
	"User":     2,
	"Project":  4,
	"File":     6,
	"Template": 10,
	"Help":     12,
	"Category": 14,
	"Property": 102,
}

// titleIllegal lists characters a page title cannot contain.
const titleIllegal = "#<>[]|{}"

// Page references a page by namespace and title. Titles are stored with
// underscores and an upper-case first letter.
type Page struct {
	title   string
	ns      int
	sortKey string
}

var _ value.Kind = (*Page)(nil)
var _ value.ServiceLinker = (*Page)(nil)
var _ value.CaptionRenderer = (*Page)(nil)

func (p *Page) ParseText(text string, r *value.Report) {
	raw := norm.NFC.String(strings.TrimSpace(text))
	if raw == "" {
		r.Error(MsgEmptyString)
		return
	}
	ns := 0
	title := raw
	if prefix, rest, ok := strings.Cut(raw, ":"); ok {
		if n, known := namespaces[canonicalTitle(prefix)]; known {
			ns = n
			title = rest
		}
	}
	title = canonicalTitle(title)
	if title == "" || strings.ContainsAny(title, titleIllegal) {
		r.Error(MsgBadTitle, raw)
		return
	}
	p.title = title
	p.ns = ns
	p.sortKey = strings.ReplaceAll(title, "_", " ")
	r.SetCaption(raw)
}

// canonicalTitle trims, joins words with underscores and upper-cases the
// first letter.
func canonicalTitle(s string) string {
	s = strings.Trim(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"), "_")
	if s == "" {
		return ""
	}
	c, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(c)) + s[size:]
}

// ParseKeys accepts [title], [title, namespace] or [title, namespace,
// sortkey].
func (p *Page) ParseKeys(keys []string, r *value.Report) {
	title := canonicalTitle(keys[0])
	if title == "" || strings.ContainsAny(title, titleIllegal) {
		r.Error(value.MsgParseError)
		return
	}
	p.title = title
	if len(keys) > 1 {
		ns, err := strconv.Atoi(keys[1])
		if err != nil || !knownNamespace(ns) {
			r.Error(value.MsgParseError)
			return
		}
		p.ns = ns
	}
	p.sortKey = strings.ReplaceAll(title, "_", " ")
	if len(keys) > 2 && keys[2] != "" {
		p.sortKey = keys[2]
	}
}

func knownNamespace(ns int) bool {
	for _, n := range namespaces {
		if n == ns {
			return true
		}
	}
	return false
}

func (p *Page) Keys() []string {
	return []string{p.title, strconv.Itoa(p.ns), p.sortKey}
}

func (p *Page) Signature() value.Signature { return "tnt" }
func (p *Page) SortField() int             { return 2 }
func (p *Page) MatchField() int            { return 0 }

// prefix returns the namespace prefix including the colon.
func (p *Page) prefix() string {
	if p.ns == 0 {
		return ""
	}
	names := make([]string, 0, 1)
	for name, n := range namespaces {
		if n == p.ns {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names[0] + ":"
}

func (p *Page) WikiValue() string {
	return p.prefix() + strings.ReplaceAll(p.title, "_", " ")
}

// ShortText renders a link to the page, or the bare title for plain output.
func (p *Page) ShortText(mode value.OutputMode, format string) string {
	display := strings.ReplaceAll(p.title, "_", " ")
	if format == value.FormatPlain {
		return p.prefix() + display
	}
	if mode == value.ModeHTML {
		return `<a href="/wiki/` + html.EscapeString(p.prefix()+p.title) + `">` + html.EscapeString(display) + `</a>`
	}
	return "[[" + p.WikiValue() + "|" + display + "]]"
}

// CaptionText links the page with caption as the link text.
func (p *Page) CaptionText(mode value.OutputMode, format, caption string) string {
	if format == value.FormatPlain {
		return p.ShortText(mode, format)
	}
	if mode == value.ModeHTML {
		return `<a href="/wiki/` + html.EscapeString(p.prefix()+p.title) + `">` + html.EscapeString(caption) + `</a>`
	}
	return "[[" + p.WikiValue() + "|" + caption + "]]"
}

func (p *Page) LongText(mode value.OutputMode, format string) string {
	if format == value.FormatPlain {
		return p.WikiValue()
	}
	if mode == value.ModeHTML {
		return `<a href="/wiki/` + html.EscapeString(p.prefix()+p.title) + `">` + html.EscapeString(p.WikiValue()) + `</a>`
	}
	return "[[" + p.WikiValue() + "]]"
}

// ServiceLinkParams passes the title with spaces.
func (p *Page) ServiceLinkParams() ([]string, bool) {
	return []string{escapeParam(strings.ReplaceAll(p.title, "_", " "))}, true
}
