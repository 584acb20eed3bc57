// Package messages implements the message catalog used to render value
// errors and service-link templates.
package messages

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"regexp"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// paramRef matches a parameter reference such as $1.
var paramRef = regexp.MustCompile(`\$[0-9]+`)

//go:embed en.yaml
var defaultYAML []byte

// Catalog maps message keys to templates. Templates refer to parameters as
// $1, $2, ...
type Catalog struct {
	templates map[string]string
}

// New returns a catalog holding the built-in English messages.
func New() *Catalog {
	c := &Catalog{templates: make(map[string]string)}
	if err := c.merge(defaultYAML); err != nil {
		panic(fmt.Sprintf("messages: built-in catalog: %v", err))
	}
	return c
}

// Load returns the built-in catalog overlaid with the templates in the YAML
// file at path. An empty path loads only the built-in messages.
func Load(path string) (*Catalog, error) {
	c := New()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading messages: %w", err)
	}
	if err := c.merge(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c, nil
}

func (c *Catalog) merge(data []byte) error {
	var m map[string]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		return err
	}
	maps.Copy(c.templates, m)
	return nil
}

// Set adds or replaces one template.
func (c *Catalog) Set(key, template string) {
	c.templates[key] = template
}

// Keys returns the known message keys in sorted order.
func (c *Catalog) Keys() []string {
	return slices.Sorted(maps.Keys(c.templates))
}

// Render expands the template for key. Parameters without a value are left
// as written; an unknown key renders as ⧼key⧽.
func (c *Catalog) Render(key string, params ...string) string {
	tmpl, ok := c.templates[key]
	if !ok {
		return "⧼" + key + "⧽"
	}
	return paramRef.ReplaceAllStringFunc(tmpl, func(ref string) string {
		n, err := strconv.Atoi(ref[1:])
		if err != nil || n < 1 || n > len(params) {
			return ref
		}
		return params[n-1]
	})
}
