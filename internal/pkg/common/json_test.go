package common

import "testing"

func TestQuoteJSONKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"unquoted keys",
			`{title:"x", cooking_time:"y"}`,
			`{"title":"x", "cooking_time":"y"}`,
		},
		{
			"already quoted keys untouched",
			`{"title":"x","ingredients":["a"]}`,
			`{"title":"x","ingredients":["a"]}`,
		},
		{
			"mixed",
			`{"title":"x",ingredients:["a"]}`,
			`{"title":"x","ingredients":["a"]}`,
		},
		{
			"colon inside string value untouched",
			`{"note":"ratio 1:2"}`,
			`{"note":"ratio 1:2"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := QuoteJSONKeys(tc.in); got != tc.want {
				t.Errorf("QuoteJSONKeys(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	t.Run("valid", func(t *testing.T) {
		var p payload
		if err := ParseJSON(`{"title":"x"}`, &p); err != nil {
			t.Fatalf("ParseJSON() error = %v", err)
		}
		if p.Title != "x" {
			t.Errorf("Title = %q", p.Title)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		var p payload
		if err := ParseJSON(`{"title":`, &p); err == nil {
			t.Fatal("expected error for malformed JSON")
		}
	})

	t.Run("trailing data rejected", func(t *testing.T) {
		var p payload
		if err := ParseJSON(`{"title":"x"} {"title":"y"}`, &p); err == nil {
			t.Fatal("expected error for trailing JSON data")
		}
	})
}
