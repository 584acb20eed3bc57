package value

import (
	"log/slog"
	"strings"

	"github.com/mesh-intelligence/semval/pkg/types"
)

// checkAllowedValues rejects a valid value whose property enumerates allowed
// values and none of them has the same hash. Candidates are parsed by a
// fresh value of the same type without a property, so normalisation done
// while parsing applies to both sides. The candidate value reports no
// events. A candidate that does not parse never matches and is listed as
// written.
func (v *Value) checkAllowedValues() {
	page, ok := v.property.Page()
	if !ok || v.env.Store == nil {
		return
	}
	allowed, err := v.env.Store.ConstraintValues(page, types.ConstraintAllowedValues)
	if err != nil {
		v.env.logger().Warn("allowed values lookup failed",
			slog.String("property", page),
			slog.String("error", err.Error()))
		return
	}
	if len(allowed) == 0 {
		return
	}

	hash := v.Hash()
	quiet := *v.env
	quiet.Observer = nil
	candidateValue := newValue(v.typeID, v.newKind, &quiet)
	alternatives := make([]string, 0, len(allowed))
	for _, candidate := range allowed {
		candidateValue.SetUserValue(candidate, "")
		if !candidateValue.IsValid() {
			v.env.logger().Debug("allowed value does not parse",
				slog.String("property", page),
				slog.String("value", candidate))
			alternatives = append(alternatives, strings.TrimSpace(candidate))
			continue
		}
		if candidateValue.Hash() == hash {
			return
		}
		alternatives = append(alternatives, candidateValue.ShortText(ModeWiki))
	}

	v.errs.Add(v.env.messages().Render(MsgNotInEnum, v.kind.WikiValue(), strings.Join(alternatives, ", ")))
	v.env.observe(v.typeID, EventNotAllowed)
}
