package value

import (
	"log/slog"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/mesh-intelligence/semval/pkg/types"
)

// searchLinkLabel is the label of the search-by-value link.
const searchLinkLabel = "+"

// serviceLineSplit separates the lines of an expanded service template.
var serviceLineSplit = regexp.MustCompile(`\n\s?`)

// Links returns the search link and service links of a valid value whose
// property has a page. Links are derived once per ingestion.
func (v *Value) Links() []types.Link {
	if !v.IsValid() {
		return nil
	}
	page, ok := v.property.Page()
	if !ok {
		return nil
	}
	if !v.searchLinkAdded {
		v.searchLinkAdded = true
		v.links = append(v.links, types.Link{
			Kind:   types.LinkKindSearch,
			Label:  searchLinkLabel,
			Target: "Special:SearchByProperty/" + url.PathEscape(page) + "/" + url.PathEscape(v.kind.WikiValue()),
		})
	}
	if !v.serviceLinksAdded {
		v.serviceLinksAdded = true
		v.addServiceLinks(page)
	}
	return slices.Clone(v.links)
}

// addServiceLinks expands the service templates named by the property. Each
// line of an expanded template is "label|target"; lines without a separator
// are skipped.
func (v *Value) addServiceLinks(page string) {
	linker, ok := v.kind.(ServiceLinker)
	if !ok || v.env.Store == nil {
		return
	}
	params, ok := linker.ServiceLinkParams()
	if !ok {
		return
	}
	services, err := v.env.Store.ConstraintValues(page, types.ConstraintServiceLinks)
	if err != nil {
		v.env.logger().Warn("service links lookup failed",
			slog.String("property", page),
			slog.String("error", err.Error()))
		return
	}

	msgs := v.env.messages()
	for _, service := range services {
		// Message keys distinguish spaces from underscores.
		key := MsgServiceLink + strings.ReplaceAll(service, " ", "_")
		text := msgs.Render(key, params...)
		for _, line := range serviceLineSplit.Split(text, -1) {
			label, target, found := strings.Cut(line, "|")
			if !found {
				continue
			}
			v.links = append(v.links, types.Link{
				Kind:   types.LinkKindService,
				Label:  label,
				Target: strings.TrimSpace(target),
			})
		}
	}
}
