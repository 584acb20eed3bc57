package value

import (
	"fmt"
	"slices"
	"sync"

	"github.com/mesh-intelligence/semval/pkg/types"
)

// Constructor creates an empty Kind.
type Constructor func() Kind

// Factory creates values by type id.
type Factory struct {
	env         Env
	comparators *ComparatorParser

	mu    sync.RWMutex
	kinds map[string]Constructor
}

// NewFactory creates a Factory whose values share env. Query values are
// parsed with every comparator token enabled in the default mode.
func NewFactory(env Env) *Factory {
	return &Factory{
		env:         env,
		comparators: looseParser,
		kinds:       make(map[string]Constructor),
	}
}

// SetComparators replaces the comparator parser used by Query.
func (f *Factory) SetComparators(p *ComparatorParser) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comparators = p
}

// Register adds a value type. The layout of an empty kind is validated.
// Returns ErrDuplicateType if typeID is taken.
func (f *Factory) Register(typeID string, c Constructor) error {
	if typeID == "" || c == nil {
		return fmt.Errorf("%w: %q", types.ErrUnknownType, typeID)
	}
	k := c()
	if err := ValidateLayout(k.Signature(), k.SortField(), k.MatchField()); err != nil {
		return fmt.Errorf("registering %s: %w", typeID, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.kinds[typeID]; ok {
		return fmt.Errorf("%w: %s", types.ErrDuplicateType, typeID)
	}
	f.kinds[typeID] = c
	return nil
}

// TypeIDs returns the registered type ids in sorted order.
func (f *Factory) TypeIDs() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	ids := make([]string, 0, len(f.kinds))
	for id := range f.kinds {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// New returns an empty value of the given type.
// Returns ErrUnknownType if the type is not registered.
func (f *Factory) New(typeID string) (*Value, error) {
	f.mu.RLock()
	c, ok := f.kinds[typeID]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownType, typeID)
	}
	return newValue(typeID, c, &f.env), nil
}

// NewForProperty returns an empty value of the property's type, associated
// with the property.
func (f *Factory) NewForProperty(p *types.Property) (*Value, error) {
	v, err := f.New(p.TypeID)
	if err != nil {
		return nil, err
	}
	v.SetProperty(p)
	return v, nil
}

// Query is a query condition: a comparator and the value it compares to.
type Query struct {
	Comparator Comparator
	Value      *Value
}

// Query parses a query value: a leading comparator token followed by user
// text for v. v is re-ingested from the remainder. A pattern comparator on
// a type without a match field records an error on v.
func (f *Factory) Query(v *Value, text string) Query {
	f.mu.RLock()
	p := f.comparators
	f.mu.RUnlock()

	cmp, rest := p.Parse(text)

	// Query values are not restricted to the property's allowed values.
	prop := v.property
	v.property = nil
	v.SetUserValue(rest, "")
	v.property = prop

	if cmp.IsPattern() && v.MatchField() < 0 {
		v.AddError(v.env.messages().Render(MsgNoPattern, rest))
	}
	return Query{Comparator: cmp, Value: v}
}
