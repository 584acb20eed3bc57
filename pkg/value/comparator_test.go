package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/semval/pkg/types"
)

func TestParseComparator(t *testing.T) {
	tests := []struct {
		in        string
		strict    bool
		wantCmp   Comparator
		wantValue string
	}{
		{"5", false, Equal, "5"},
		{"", false, Equal, ""},
		{">=5", false, GreaterOrEqual, "5"},
		{"<5", false, LessOrEqual, "5"},
		{">5", false, GreaterOrEqual, "5"},
		{"!5", false, NotEqual, "5"},
		{"~fo*", false, Like, "fo*"},
		{"!~foo", false, NotLike, "foo"},
		{"<=5", false, LessOrEqual, "5"},
		{"≤5", false, LessOrEqual, "5"},
		{"≥5", false, GreaterOrEqual, "5"},
		{"<5", true, Less, "5"},
		{">5", true, Greater, "5"},
		{"<=5", true, LessOrEqual, "5"},
		{">=5", true, GreaterOrEqual, "5"},
		{"!~foo", true, NotLike, "foo"},
		{"5<", false, Equal, "5<"},
		{" <5", false, Equal, " <5"},
		{"<<5", false, LessOrEqual, "<5"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cmp, rest := ParseComparator(tt.in, tt.strict)
			assert.Equal(t, tt.wantCmp, cmp)
			assert.Equal(t, tt.wantValue, rest)
		})
	}
}

func TestComparatorParserEnabledTokens(t *testing.T) {
	p, err := NewComparatorParser([]string{"<", "!"}, false)
	require.NoError(t, err)

	cmp, rest := p.Parse("<=5")
	assert.Equal(t, LessOrEqual, cmp)
	assert.Equal(t, "=5", rest, "<= is disabled so only < is consumed")

	cmp, rest = p.Parse("!~x")
	assert.Equal(t, NotEqual, cmp)
	assert.Equal(t, "~x", rest)

	cmp, rest = p.Parse("~x")
	assert.Equal(t, Equal, cmp)
	assert.Equal(t, "~x", rest)
}

func TestNewComparatorParserUnknownToken(t *testing.T) {
	_, err := NewComparatorParser([]string{"<", "=="}, false)
	assert.ErrorIs(t, err, types.ErrUnknownComparator)
}

func TestComparatorString(t *testing.T) {
	assert.Equal(t, "greater_or_equal", GreaterOrEqual.String())
	assert.Equal(t, "comparator(42)", Comparator(42).String())
	assert.True(t, NotLike.IsPattern())
	assert.False(t, NotEqual.IsPattern())
}
