package parse

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseProbability_WellFormed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"bare object", `{"explanation": "directly stated", "probability": 0.73}`},
		{"json fence", "```json\n{\"explanation\": \"directly stated\", \"probability\": 0.73}\n```"},
		{"plain fence", "```\n{\"explanation\": \"directly stated\", \"probability\": 0.73}\n```"},
		{"embedded in prose", `Here is my assessment: {"explanation": "directly stated", "probability": 0.73} as requested.`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseProbability(tc.raw)
			if got.Value != 0.73 {
				t.Errorf("probability = %v, want 0.73", got.Value)
			}
			if got.Explanation != "directly stated" {
				t.Errorf("explanation = %q", got.Explanation)
			}
			if got.Strategy == StrategyNumeric || got.Strategy == StrategyNeutral {
				t.Errorf("expected structured decode, got strategy %s", got.Strategy)
			}
		})
	}
}

func TestParseProbability_NumericFallback(t *testing.T) {
	for _, raw := range []string{"0.42 is my estimate", ".42 is my estimate"} {
		got := ParseProbability(raw)
		if got.Value != 0.42 {
			t.Errorf("ParseProbability(%q) = %v, want 0.42", raw, got.Value)
		}
		if got.Strategy != StrategyNumeric {
			t.Errorf("ParseProbability(%q) strategy = %s, want %s", raw, got.Strategy, StrategyNumeric)
		}
		if got.Explanation != FallbackNote {
			t.Errorf("ParseProbability(%q) explanation = %q", raw, got.Explanation)
		}
	}
}

func TestParseProbability_BareZeroAndOne(t *testing.T) {
	if got := ParseProbability("1"); got.Value != 1 {
		t.Errorf("bare 1 decoded as %v", got.Value)
	}
	if got := ParseProbability("0"); got.Value != 0 {
		t.Errorf("bare 0 decoded as %v", got.Value)
	}
	if got := ParseProbability("I'd say 0.85 at most"); got.Value != 0.85 {
		t.Errorf("decimal token decoded as %v", got.Value)
	}
	// "10" must not yield a bare 0 or 1 token.
	if got := ParseProbability("about 10 sources agree"); got.Strategy != StrategyNeutral {
		t.Errorf("expected neutral for integer-only text, got %v (%s)", got.Value, got.Strategy)
	}
}

func TestParseProbability_TotalFailure(t *testing.T) {
	got := ParseProbability("I cannot determine this.")
	if got.Value != 0.5 {
		t.Errorf("probability = %v, want neutral 0.5", got.Value)
	}
	if got.Strategy != StrategyNeutral {
		t.Errorf("strategy = %s, want %s", got.Strategy, StrategyNeutral)
	}
	if got.Explanation != ParseFailedNote {
		t.Errorf("explanation = %q", got.Explanation)
	}
}

func TestParseProbability_Clamped(t *testing.T) {
	got := ParseProbability(`{"explanation": "overconfident", "probability": 1.7}`)
	if got.Value != 1 {
		t.Errorf("probability = %v, want clamped 1", got.Value)
	}
	got = ParseProbability(`{"explanation": "negative", "probability": -0.3}`)
	if got.Value != 0 {
		t.Errorf("probability = %v, want clamped 0", got.Value)
	}
}

func TestParseProbability_MissingKeyIgnored(t *testing.T) {
	// An object lacking either key must not satisfy the structured path.
	got := ParseProbability(`{"probability": 0.9}`)
	if got.Strategy != StrategyNumeric {
		t.Errorf("strategy = %s, want numeric fallback", got.Strategy)
	}
	if got.Value != 0.9 {
		t.Errorf("probability = %v, want 0.9 from token scan", got.Value)
	}
}

func TestParseClaimList(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"bare array", `["The economy is improving", "Unemployment is falling"]`,
			[]string{"The economy is improving", "Unemployment is falling"}},
		{"fenced array", "```json\n[\"A claim\", \"Another claim\"]\n```",
			[]string{"A claim", "Another claim"}},
		{"array in prose", `Claims found: ["Only one claim"] — done.`,
			[]string{"Only one claim"}},
		{"empty array", `[]`, nil},
		{"blank entries trimmed", `["  spaced  ", ""]`, []string{"spaced"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseClaimList(tc.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseClaimList_Undecodable(t *testing.T) {
	_, err := ParseClaimList("The sentence makes no claims worth listing.")
	if err == nil {
		t.Fatal("expected error for undecodable response")
	}
	var target *ClaimListError
	if !errors.As(err, &target) {
		t.Errorf("expected *ClaimListError, got %T", err)
	}
}

func TestStripFences(t *testing.T) {
	if got := StripFences("```json\n[1]\n```"); got != "[1]" {
		t.Errorf("got %q", got)
	}
	if got := StripFences("no fences here"); got != "no fences here" {
		t.Errorf("got %q", got)
	}
}
