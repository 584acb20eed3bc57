package kinds

import (
	"html"
	"net/url"
	"strings"

	"github.com/mesh-intelligence/semval/pkg/value"
)

// URI is an absolute URI. Scheme and host are lower-cased.
type URI struct {
	u string
}

var _ value.Kind = (*URI)(nil)
var _ value.CaptionRenderer = (*URI)(nil)

func (u *URI) ParseText(text string, r *value.Report) {
	text = strings.TrimSpace(text)
	if text == "" {
		r.Error(MsgEmptyString)
		return
	}
	parsed, err := url.Parse(text)
	if err != nil || parsed.Scheme == "" || (parsed.Host == "" && parsed.Opaque == "" && parsed.Path == "") {
		r.Error(MsgBadURI, text)
		return
	}
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	u.u = parsed.String()
	r.SetCaption(text)
}

func (u *URI) ParseKeys(keys []string, r *value.Report) {
	u.ParseText(keys[0], r)
}

func (u *URI) Keys() []string             { return []string{u.u} }
func (u *URI) Signature() value.Signature { return "w" }
func (u *URI) SortField() int             { return 0 }
func (u *URI) MatchField() int            { return 0 }
func (u *URI) WikiValue() string          { return u.u }

// ShortText links the URI in HTML mode unless plain output is requested.
func (u *URI) ShortText(mode value.OutputMode, format string) string {
	if format == value.FormatPlain {
		return u.u
	}
	if mode == value.ModeHTML {
		esc := html.EscapeString(u.u)
		return `<a href="` + esc + `">` + esc + `</a>`
	}
	return "[" + u.u + "]"
}

// CaptionText links the URI with caption as the link text.
func (u *URI) CaptionText(mode value.OutputMode, format, caption string) string {
	if format == value.FormatPlain {
		return u.u
	}
	if mode == value.ModeHTML {
		return `<a href="` + html.EscapeString(u.u) + `">` + html.EscapeString(caption) + `</a>`
	}
	return "[" + u.u + " " + caption + "]"
}

func (u *URI) LongText(mode value.OutputMode, format string) string {
	return u.ShortText(mode, format)
}
