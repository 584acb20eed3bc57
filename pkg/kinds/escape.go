package kinds

import (
	"net/url"
	"strings"
)

// escapeParam percent-encodes s for use inside a service link URL. Spaces
// become %20 rather than "+".
func escapeParam(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
