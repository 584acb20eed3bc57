package kinds

import (
	"strings"

	"github.com/mesh-intelligence/semval/pkg/value"
)

var boolWords = map[string]bool{
	"true": true, "yes": true, "1": true, "on": true,
	"false": false, "no": false, "0": false, "off": false,
}

// Boolean is a truth value. The output format "yes,no" replaces the default
// labels.
type Boolean struct {
	b bool
}

var _ value.Kind = (*Boolean)(nil)

func (b *Boolean) ParseText(text string, r *value.Report) {
	v, ok := boolWords[strings.ToLower(strings.TrimSpace(text))]
	if !ok {
		r.Error(MsgNoBool, strings.TrimSpace(text))
		return
	}
	b.b = v
}

func (b *Boolean) ParseKeys(keys []string, r *value.Report) {
	switch keys[0] {
	case "1":
		b.b = true
	case "0":
		b.b = false
	default:
		r.Error(value.MsgParseError)
	}
}

func (b *Boolean) Keys() []string {
	if b.b {
		return []string{"1"}
	}
	return []string{"0"}
}

func (b *Boolean) Signature() value.Signature { return "n" }
func (b *Boolean) SortField() int             { return 0 }
func (b *Boolean) MatchField() int            { return -1 }

func (b *Boolean) WikiValue() string {
	if b.b {
		return "true"
	}
	return "false"
}

func (b *Boolean) ShortText(mode value.OutputMode, format string) string {
	if format == value.FormatPlain {
		return b.Keys()[0]
	}
	if yes, no, ok := strings.Cut(format, ","); ok {
		if b.b {
			return strings.TrimSpace(yes)
		}
		return strings.TrimSpace(no)
	}
	return b.WikiValue()
}

func (b *Boolean) LongText(mode value.OutputMode, format string) string {
	return b.ShortText(mode, format)
}
