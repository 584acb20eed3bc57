package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/semval/pkg/types"
)

func TestFactoryRegister(t *testing.T) {
	f := NewFactory(Env{})

	require.NoError(t, f.Register("_cnt", func() Kind { return &countKind{} }))

	err := f.Register("_cnt", func() Kind { return &countKind{} })
	assert.ErrorIs(t, err, types.ErrDuplicateType)

	err = f.Register("_bad", func() Kind { return &badKind{} })
	assert.ErrorIs(t, err, types.ErrFieldIndex)

	err = f.Register("", func() Kind { return &countKind{} })
	assert.ErrorIs(t, err, types.ErrUnknownType)

	assert.Equal(t, []string{"_cnt"}, f.TypeIDs())
}

func TestFactoryNew(t *testing.T) {
	f := newTestFactory(t, Env{}, nil)

	_, err := f.New("_nope")
	assert.ErrorIs(t, err, types.ErrUnknownType)

	_, err = f.NewForProperty(&types.Property{Name: "x", TypeID: "_nope"})
	assert.ErrorIs(t, err, types.ErrUnknownType)

	prop := &types.Property{Name: "x", TypeID: "_cnt"}
	v, err := f.NewForProperty(prop)
	require.NoError(t, err)
	assert.Same(t, prop, v.Property())
	assert.Equal(t, "_cnt", v.TypeID())

	assert.Equal(t, []string{"_cnt", "_code"}, f.TypeIDs())
}

func TestFactoryQuery(t *testing.T) {
	tests := []struct {
		name      string
		typeID    string
		text      string
		strict    bool
		wantCmp   Comparator
		wantKeys  []string
		wantValid bool
	}{
		{"plain value", "_cnt", "5", false, Equal, []string{"5"}, true},
		{"at least", "_cnt", ">=5", false, GreaterOrEqual, []string{"5"}, true},
		{"loose less", "_cnt", "<5", false, LessOrEqual, []string{"5"}, true},
		{"strict less", "_cnt", "<5", true, Less, []string{"5"}, true},
		{"not like on text", "_code", "!~foo", false, NotLike, []string{"FOO"}, true},
		{"like on numbers", "_cnt", "~5", false, Like, nil, false},
		{"bad remainder", "_cnt", ">x", false, GreaterOrEqual, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFactory(t, Env{}, nil)
			p, err := NewComparatorParser(nil, tt.strict)
			require.NoError(t, err)
			f.SetComparators(p)
			v, err := f.New(tt.typeID)
			require.NoError(t, err)

			q := f.Query(v, tt.text)

			assert.Equal(t, tt.wantCmp, q.Comparator)
			assert.Same(t, v, q.Value)
			assert.Equal(t, tt.wantKeys, v.Keys())
			assert.Equal(t, tt.wantValid, v.IsValid())
		})
	}
}

func TestFactoryQueryIgnoresAllowedValues(t *testing.T) {
	f := newTestFactory(t, Env{Store: allowedStore("Grade", "A", "B")}, nil)
	v, err := f.NewForProperty(&types.Property{Name: "grade", TypeID: "_code"})
	require.NoError(t, err)

	q := f.Query(v, "<C")

	assert.True(t, q.Value.IsValid())
	assert.NotNil(t, q.Value.Property(), "the property stays attached")

	v.SetUserValue("C", "")
	assert.False(t, v.IsValid())
}
