package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/semval/pkg/types"
)

func serviceStore(page string, services ...string) *fakeStore {
	return &fakeStore{values: map[string]map[string][]string{
		page: {types.ConstraintServiceLinks: services},
	}}
}

func TestLinks(t *testing.T) {
	f := newTestFactory(t, Env{Store: serviceStore("Has_code", "lookup")}, nil)
	v, err := f.NewForProperty(&types.Property{Name: "Has code", TypeID: "_code"})
	require.NoError(t, err)
	v.SetUserValue("abc", "")

	links := v.Links()

	assert.Equal(t, []types.Link{
		{Kind: types.LinkKindSearch, Label: "+", Target: "Special:SearchByProperty/Has_code/ABC"},
		{Kind: types.LinkKindService, Label: "Lookup ABC", Target: "https://example.org/?q=ABC"},
		{Kind: types.LinkKindService, Label: "Mirror", Target: "https://mirror.example.org/ABC"},
	}, links)
}

func TestLinksAreIdempotent(t *testing.T) {
	store := serviceStore("Has_code", "lookup")
	f := newTestFactory(t, Env{Store: store}, nil)
	v, err := f.NewForProperty(&types.Property{Name: "Has code", TypeID: "_code"})
	require.NoError(t, err)
	v.SetUserValue("abc", "")

	first := v.Links()
	second := v.Links()

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.calls[types.ConstraintServiceLinks], "service links are looked up once")
}

func TestLinksFromStub(t *testing.T) {
	f := newTestFactory(t, Env{Store: serviceStore("Has_code")}, nil)
	v, err := f.NewForProperty(&types.Property{Name: "Has code", TypeID: "_code"})
	require.NoError(t, err)
	v.SetKeys([]string{"A B"})

	links := v.Links()

	require.Len(t, links, 1)
	assert.Equal(t, "Special:SearchByProperty/Has_code/A%20B", links[0].Target)
}

func TestLinksRequireValidValueWithPage(t *testing.T) {
	tests := []struct {
		name string
		prop *types.Property
		text string
	}{
		{"no property", nil, "abc"},
		{"predefined property", &types.Property{Name: "_code"}, "abc"},
		{"invalid value", &types.Property{Name: "code"}, "a1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFactory(t, Env{Store: serviceStore("Code", "lookup")}, nil)
			v := newCode(t, f)
			v.SetProperty(tt.prop)
			v.SetUserValue(tt.text, "")

			assert.Empty(t, v.Links())
		})
	}
}

func TestLinksUnknownServiceTemplate(t *testing.T) {
	f := newTestFactory(t, Env{Store: serviceStore("Code", "missing service")}, nil)
	v, err := f.NewForProperty(&types.Property{Name: "code", TypeID: "_code"})
	require.NoError(t, err)
	v.SetUserValue("abc", "")

	links := v.Links()

	require.Len(t, links, 1, "a template without separators yields no service links")
	assert.Equal(t, types.LinkKindSearch, links[0].Kind)
}

func TestLinksWithoutServiceSupport(t *testing.T) {
	store := serviceStore("Count", "lookup")
	f := newTestFactory(t, Env{Store: store}, nil)
	v, err := f.NewForProperty(&types.Property{Name: "count", TypeID: "_cnt"})
	require.NoError(t, err)
	v.SetUserValue("12", "")

	links := v.Links()

	require.Len(t, links, 1)
	assert.Equal(t, 0, store.calls[types.ConstraintServiceLinks])
}

func TestLinksStoreFailure(t *testing.T) {
	f := newTestFactory(t, Env{Store: &fakeStore{err: errStoreDown}}, nil)
	v := newCode(t, f)
	v.SetUserValue("abc", "")
	v.SetProperty(&types.Property{Name: "code"})

	links := v.Links()

	require.Len(t, links, 1)
	assert.Equal(t, types.LinkKindSearch, links[0].Kind)
}
