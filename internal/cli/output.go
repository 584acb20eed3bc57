package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/semval/pkg/types"
	"github.com/mesh-intelligence/semval/pkg/value"
)

// valueReport is the printable form of a value.
type valueReport struct {
	Type       string       `json:"type"`
	Property   string       `json:"property,omitempty"`
	Comparator string       `json:"comparator,omitempty"`
	Valid      bool         `json:"valid"`
	Keys       []string     `json:"keys,omitempty"`
	Hash       string       `json:"hash"`
	ShortText  string       `json:"short_text,omitempty"`
	LongText   string       `json:"long_text,omitempty"`
	WikiValue  string       `json:"wiki_value,omitempty"`
	Caption    string       `json:"caption,omitempty"`
	Errors     []string     `json:"errors,omitempty"`
	Links      []types.Link `json:"links,omitempty"`
}

// reportValue collects the observable state of v. Texts and links are only
// computed for valid values.
func reportValue(v *value.Value, mode value.OutputMode) valueReport {
	r := valueReport{
		Type:   v.TypeID(),
		Valid:  v.IsValid(),
		Keys:   v.Keys(),
		Hash:   v.Hash(),
		Errors: v.Errors(),
	}
	if p := v.Property(); p != nil {
		r.Property = p.DisplayName()
	}
	if caption, ok := v.Caption(); ok {
		r.Caption = caption
	}
	if r.Valid {
		r.ShortText = v.ShortText(mode)
		r.LongText = v.LongText(mode)
		r.WikiValue = v.WikiValue()
		r.Links = v.Links()
	}
	return r
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printValueReport writes r as aligned "field: value" lines.
func printValueReport(w io.Writer, r valueReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	row := func(label, val string) {
		if val != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", label, val)
		}
	}
	row("type", r.Type)
	row("property", r.Property)
	row("comparator", r.Comparator)
	row("valid", fmt.Sprint(r.Valid))
	row("keys", strings.Join(r.Keys, " | "))
	row("short", r.ShortText)
	row("long", r.LongText)
	row("wiki", r.WikiValue)
	row("caption", r.Caption)
	for _, e := range r.Errors {
		row("error", e)
	}
	for _, l := range r.Links {
		row("link", fmt.Sprintf("%s %s -> %s", l.Kind, l.Label, l.Target))
	}
	return tw.Flush()
}
