package types

import (
	"testing"
)

func TestPageKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"has height", "Has_height"},
		{"Has_height", "Has_height"},
		{"  population  ", "Population"},
		{"_", ""},
		{"", ""},
		{"élan", "Élan"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := PageKey(tt.in); got != tt.want {
				t.Errorf("PageKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPropertyPage(t *testing.T) {
	tests := []struct {
		name     string
		prop     *Property
		wantPage string
		wantOK   bool
	}{
		{"named property", &Property{Name: "has color"}, "Has_color", true},
		{"predefined property", &Property{Name: "_SKEY"}, "", false},
		{"blank name", &Property{Name: "  "}, "", false},
		{"nil property", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, ok := tt.prop.Page()
			if page != tt.wantPage || ok != tt.wantOK {
				t.Errorf("Page() = (%q, %v), want (%q, %v)", page, ok, tt.wantPage, tt.wantOK)
			}
		})
	}
}

func TestPropertyDisplayName(t *testing.T) {
	p := &Property{Name: "Has_color"}
	if got := p.DisplayName(); got != "Has color" {
		t.Errorf("DisplayName() = %q, want %q", got, "Has color")
	}
}

func TestIsValidConstraint(t *testing.T) {
	for _, name := range []string{ConstraintAllowedValues, ConstraintServiceLinks} {
		if !IsValidConstraint(name) {
			t.Errorf("IsValidConstraint(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"", "_TYPE", "pval"} {
		if IsValidConstraint(name) {
			t.Errorf("IsValidConstraint(%q) = true, want false", name)
		}
	}
}

func TestPropertyDefineConstraintValidation(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		value      string
		wantErr    error
	}{
		{"unknown relation", "_TYPE", "A", ErrInvalidConstraint},
		{"blank value", ConstraintAllowedValues, "   ", ErrInvalidContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Property{PropertyID: "prop-1", Name: "status"}

			_, err := p.DefineConstraint(nil, tt.constraint, tt.value, 0)

			if err != tt.wantErr {
				t.Errorf("DefineConstraint(%q, %q) error = %v, want %v", tt.constraint, tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestPropertyGetConstraintsUnknownRelation(t *testing.T) {
	p := &Property{PropertyID: "prop-1"}
	_, err := p.GetConstraints(nil, "_TYPE")
	if err != ErrInvalidConstraint {
		t.Errorf("GetConstraints with unknown relation: error = %v, want %v", err, ErrInvalidConstraint)
	}
}
