package value

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mesh-intelligence/semval/pkg/types"
)

// Comparator is a relational operator extracted from a query value.
type Comparator int

// Comparators.
const (
	Equal Comparator = iota
	Less
	Greater
	LessOrEqual
	GreaterOrEqual
	NotEqual
	Like
	NotLike
)

var comparatorNames = [...]string{
	Equal:          "equal",
	Less:           "less",
	Greater:        "greater",
	LessOrEqual:    "less_or_equal",
	GreaterOrEqual: "greater_or_equal",
	NotEqual:       "not_equal",
	Like:           "like",
	NotLike:        "not_like",
}

func (c Comparator) String() string {
	if c < 0 || int(c) >= len(comparatorNames) {
		return fmt.Sprintf("comparator(%d)", int(c))
	}
	return comparatorNames[c]
}

// IsPattern reports whether c matches against a string pattern.
func (c Comparator) IsPattern() bool {
	return c == Like || c == NotLike
}

// comparatorToken maps a leading token to its comparator in the default and
// in the strict mode. The bare "<" and ">" are inclusive unless strict.
type comparatorToken struct {
	token  string
	loose  Comparator
	strict Comparator
}

var comparatorTokens = []comparatorToken{
	{"<", LessOrEqual, Less},
	{">", GreaterOrEqual, Greater},
	{"!", NotEqual, NotEqual},
	{"~", Like, Like},
	{"!~", NotLike, NotLike},
	{">=", GreaterOrEqual, GreaterOrEqual},
	{"≥", GreaterOrEqual, GreaterOrEqual},
	{"<=", LessOrEqual, LessOrEqual},
	{"≤", LessOrEqual, LessOrEqual},
}

// ComparatorTokens returns every recognized comparator token.
func ComparatorTokens() []string {
	out := make([]string, len(comparatorTokens))
	for i, t := range comparatorTokens {
		out[i] = t.token
	}
	return out
}

// ComparatorParser extracts a leading comparator token from query values.
// Only the enabled tokens are recognized; they are tried longest first.
type ComparatorParser struct {
	tokens []comparatorToken
	strict bool
}

// NewComparatorParser returns a parser for the given tokens. A nil or empty
// list enables every token. Returns ErrUnknownComparator for a token that is
// not recognized.
func NewComparatorParser(enabled []string, strict bool) (*ComparatorParser, error) {
	var tokens []comparatorToken
	if len(enabled) == 0 {
		tokens = slices.Clone(comparatorTokens)
	} else {
		for _, e := range enabled {
			i := slices.IndexFunc(comparatorTokens, func(t comparatorToken) bool { return t.token == e })
			if i < 0 {
				return nil, fmt.Errorf("%w: %q", types.ErrUnknownComparator, e)
			}
			tokens = append(tokens, comparatorTokens[i])
		}
	}
	slices.SortStableFunc(tokens, func(a, b comparatorToken) int {
		return len(b.token) - len(a.token)
	})
	return &ComparatorParser{tokens: tokens, strict: strict}, nil
}

// Strict reports whether bare "<" and ">" map to the strict comparators.
func (p *ComparatorParser) Strict() bool {
	return p.strict
}

// Parse splits text into its comparator and the remaining value. Without a
// recognized leading token the comparator is Equal and text is returned
// unchanged.
func (p *ComparatorParser) Parse(text string) (Comparator, string) {
	for _, t := range p.tokens {
		if rest, ok := strings.CutPrefix(text, t.token); ok {
			if p.strict {
				return t.strict, rest
			}
			return t.loose, rest
		}
	}
	return Equal, text
}

var (
	looseParser, _  = NewComparatorParser(nil, false)
	strictParser, _ = NewComparatorParser(nil, true)
)

// ParseComparator parses text with every token enabled.
func ParseComparator(text string, strict bool) (Comparator, string) {
	if strict {
		return strictParser.Parse(text)
	}
	return looseParser.Parse(text)
}
