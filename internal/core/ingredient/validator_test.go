package ingredient

import (
	"fmt"
	"sort"
	"testing"
)

func TestValidateToken(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"integer quantity with attached unit", "2kg pork", true},
		{"decimal quantity with spaced unit", "0.5 kilograms onions", true},
		{"two word unit", "16 fl oz broth", true},
		{"capacity unit", "2 cups rice", true},
		{"tablespoon", "1 tbsp soy sauce", true},
		{"uppercase unit", "3KG Beef", true},
		{"trailing content ignored", "2kg pork, diced and trimmed", true},
		{"leading and trailing spaces", "  2kg pork  ", true},
		{"no quantity", "pork", false},
		{"quantity without unit", "2 pork", false},
		{"unit without name", "2kg", false},
		{"empty string", "", false},
		{"whitespace only", "   ", false},
		{"unit not at prefix", "pork 2kg", false},
		{"unknown unit", "2 handfuls pork", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := v.ValidateToken(tc.token); got != tc.want {
				t.Errorf("ValidateToken(%q) = %v, want %v", tc.token, got, tc.want)
			}
		})
	}
}

func TestValidateList(t *testing.T) {
	v := NewValidator()

	t.Run("rejects nil list", func(t *testing.T) {
		if v.ValidateList(nil) {
			t.Error("expected nil list to be rejected")
		}
	})

	t.Run("rejects empty list", func(t *testing.T) {
		if v.ValidateList([]string{}) {
			t.Error("expected empty list to be rejected")
		}
	})

	t.Run("rejects more than 20 ingredients", func(t *testing.T) {
		list := make([]string, 21)
		for i := range list {
			list[i] = fmt.Sprintf("%dkg pork", i+1)
		}
		if v.ValidateList(list) {
			t.Error("expected 21 ingredients to be rejected")
		}
	})

	t.Run("accepts exactly 20 valid ingredients", func(t *testing.T) {
		list := make([]string, 20)
		for i := range list {
			list[i] = fmt.Sprintf("%dkg pork", i+1)
		}
		if !v.ValidateList(list) {
			t.Error("expected 20 valid ingredients to be accepted")
		}
	})

	t.Run("accepts valid list", func(t *testing.T) {
		if !v.ValidateList([]string{"2kg pork", "1kg potatoes", "0.5kg onions"}) {
			t.Error("expected valid list to be accepted")
		}
	})

	t.Run("rejects list with one invalid member", func(t *testing.T) {
		if v.ValidateList([]string{"2kg pork", "potatoes"}) {
			t.Error("expected list with invalid member to be rejected")
		}
	})
}

func TestExtractUnit(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"longest match wins over substring", "16 fl oz broth", "fl oz"},
		{"attached short unit", "2kg pork", "kg"},
		{"plural spelled out", "500 grams flour", "grams"},
		{"fluid ounces spelled out", "8 fluid ounces milk", "fluid ounces"},
		{"uppercase input", "2 CUPS Rice", "cups"},
		{"no unit present", "pork", ""},
		{"empty input", "", ""},
		{"unit embedded in word is skipped", "2 gravy cubes", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := v.ExtractUnit(tc.token); got != tc.want {
				t.Errorf("ExtractUnit(%q) = %q, want %q", tc.token, got, tc.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	v := NewValidator()
	units := v.SupportedUnits()

	t.Run("every mass unit classifies as mass", func(t *testing.T) {
		for _, u := range units.Mass {
			if got := v.Classify(u); got != UnitMass {
				t.Errorf("Classify(%q) = %q, want %q", u, got, UnitMass)
			}
		}
	})

	t.Run("every capacity unit classifies as capacity", func(t *testing.T) {
		for _, u := range units.Capacity {
			if got := v.Classify(u); got != UnitCapacity {
				t.Errorf("Classify(%q) = %q, want %q", u, got, UnitCapacity)
			}
		}
	})

	t.Run("vocabularies are disjoint", func(t *testing.T) {
		capacity := make(map[string]bool, len(units.Capacity))
		for _, u := range units.Capacity {
			capacity[u] = true
		}
		for _, u := range units.Mass {
			if capacity[u] {
				t.Errorf("unit %q appears in both vocabularies", u)
			}
		}
	})

	t.Run("case insensitive lookup", func(t *testing.T) {
		if got := v.Classify("KG"); got != UnitMass {
			t.Errorf("Classify(%q) = %q, want %q", "KG", got, UnitMass)
		}
	})

	t.Run("unknown unit", func(t *testing.T) {
		if got := v.Classify("handful"); got != UnitUnknown {
			t.Errorf("Classify(%q) = %q, want %q", "handful", got, UnitUnknown)
		}
	})
}

func TestSupportedUnits(t *testing.T) {
	v := NewValidator()
	units := v.SupportedUnits()

	if len(units.Mass) == 0 || len(units.Capacity) == 0 {
		t.Fatal("expected both vocabularies to be non-empty")
	}

	if !sort.StringsAreSorted(units.Mass) {
		t.Error("mass units are not sorted")
	}
	if !sort.StringsAreSorted(units.Capacity) {
		t.Error("capacity units are not sorted")
	}
}
