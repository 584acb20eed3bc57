package kinds

import (
	"html"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"

	"github.com/mesh-intelligence/semval/pkg/value"
)

// Number is a floating point value with an optional unit, e.g. "1,250.5 km".
type Number struct {
	n    float64
	unit string
}

var _ value.Kind = (*Number)(nil)
var _ value.ServiceLinker = (*Number)(nil)

func (n *Number) ParseText(text string, r *value.Report) {
	text = strings.TrimSpace(text)
	if text == "" {
		r.Error(MsgEmptyString)
		return
	}
	num, unit := splitNumber(text)
	f, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", ""), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		r.Error(MsgNoFloat, text)
		return
	}
	if strings.ContainsFunc(unit, unicode.IsDigit) {
		r.Error(MsgBadUnit, unit)
		return
	}
	n.n = f
	n.unit = unit
	r.SetCaption(text)
}

// splitNumber separates the leading numeric part of text from the unit.
func splitNumber(text string) (num, unit string) {
	end := 0
	for i, c := range text {
		if unicode.IsDigit(c) || strings.ContainsRune("+-.,eE", c) {
			end = i + len(string(c))
			continue
		}
		break
	}
	// An "e" at the end belongs to the unit, not to an exponent.
	for end > 0 && strings.ContainsRune("eE", rune(text[end-1])) {
		end--
	}
	return text[:end], strings.TrimSpace(text[end:])
}

// ParseKeys accepts [number] or [number, unit].
func (n *Number) ParseKeys(keys []string, r *value.Report) {
	f, err := strconv.ParseFloat(keys[0], 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		r.Error(value.MsgParseError)
		return
	}
	n.n = f
	if len(keys) > 1 {
		n.unit = keys[1]
	}
}

func (n *Number) Keys() []string {
	return []string{strconv.FormatFloat(n.n, 'g', -1, 64), n.unit}
}

func (n *Number) Signature() value.Signature { return "fu" }
func (n *Number) SortField() int             { return 0 }
func (n *Number) MatchField() int            { return -1 }

func (n *Number) WikiValue() string {
	return joinUnit(strconv.FormatFloat(n.n, 'g', -1, 64), n.unit)
}

// ShortText groups thousands unless plain output is requested.
func (n *Number) ShortText(mode value.OutputMode, format string) string {
	var s string
	if format == value.FormatPlain {
		s = strconv.FormatFloat(n.n, 'g', -1, 64)
	} else {
		s = humanize.Commaf(n.n)
	}
	s = joinUnit(s, n.unit)
	if mode == value.ModeHTML {
		return html.EscapeString(s)
	}
	return s
}

func (n *Number) LongText(mode value.OutputMode, format string) string {
	return n.ShortText(mode, format)
}

// ServiceLinkParams passes the number and the unit.
func (n *Number) ServiceLinkParams() ([]string, bool) {
	return []string{escapeParam(strconv.FormatFloat(n.n, 'g', -1, 64)), escapeParam(n.unit)}, true
}

func joinUnit(num, unit string) string {
	if unit == "" {
		return num
	}
	return num + " " + unit
}
