// Link is an auxiliary navigational link derived from a valid value.
package types

// Link kinds.
const (
	LinkKindSearch  = "search"  // search for other pages with the same property value
	LinkKindService = "service" // external link expanded from a service template
)

// Link is an auxiliary navigational link derived from a value.
type Link struct {
	// Kind is LinkKindSearch or LinkKindService.
	Kind string `json:"kind"`

	// Label is the link text.
	Label string `json:"label"`

	// Target is a page path for search links or a URL for service links.
	Target string `json:"target"`
}
