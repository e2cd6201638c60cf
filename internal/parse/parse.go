// Package parse decodes semi-structured generative-model output into
// typed results. Model responses carry no enforced schema: they may be
// fenced, wrapped in prose, or plain malformed, so every decoder here is
// a pure function over strings with an ordered fallback chain that
// always produces a usable value.
package parse

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Strategy identifies which decode path produced a probability
type Strategy string

const (
	StrategyStructured Strategy = "structured_json"  // whole response decoded
	StrategyEmbedded   Strategy = "embedded_json"    // object found inside prose
	StrategyNumeric    Strategy = "numeric_fallback" // first probability-like token
	StrategyNeutral    Strategy = "unparseable"      // nothing usable, neutral prior
)

// Explanations recorded when the structured decode failed
const (
	FallbackNote    = "extracted probability from unstructured response"
	ParseFailedNote = "could not parse model response; using neutral probability 0.5"
)

// Probability is the decoded (probability, explanation) pair
type Probability struct {
	Value       float64
	Explanation string
	Strategy    Strategy
}

type probabilityPayload struct {
	Explanation *string  `json:"explanation"`
	Probability *float64 `json:"probability"`
}

var (
	fenceRe  = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")
	objectRe = regexp.MustCompile(`\{[^{}]*\}`)
	arrayRe  = regexp.MustCompile(`(?s)\[.*\]`)
	// A probability token: a decimal with an optional leading zero, or a
	// bare 0/1. No boundary anchor on the decimal branch: ".42" at the
	// start of a response has no word boundary before the dot.
	numberRe = regexp.MustCompile(`(0?\.[0-9]+|\b[01]\b)`)
)

// ParseProbability decodes a model response into a probability and its
// explanation. Decode order: strip code fences, look for an embedded
// object carrying both keys, decode the whole text, then fall back to
// the first numeric token, then to the 0.5 neutral prior. The value is
// clamped to [0,1] on every path.
func ParseProbability(raw string) Probability {
	cleaned := StripFences(raw)

	for _, fragment := range objectRe.FindAllString(cleaned, -1) {
		if p, ok := decodePayload(fragment); ok {
			p.Strategy = StrategyEmbedded
			return p
		}
	}

	if p, ok := decodePayload(cleaned); ok {
		p.Strategy = StrategyStructured
		return p
	}

	if match := numberRe.FindString(raw); match != "" {
		value, err := strconv.ParseFloat(match, 64)
		if err == nil {
			return Probability{
				Value:       Clamp(value),
				Explanation: FallbackNote,
				Strategy:    StrategyNumeric,
			}
		}
	}

	return Probability{
		Value:       0.5,
		Explanation: ParseFailedNote,
		Strategy:    StrategyNeutral,
	}
}

// ParseClaimList decodes a model response into claim strings. The
// response is expected to be a JSON array of strings, possibly fenced,
// possibly buried in surrounding prose. Undecodable output is an error;
// the caller decides how to degrade.
func ParseClaimList(raw string) ([]string, error) {
	cleaned := StripFences(raw)

	var claims []string
	if err := json.Unmarshal([]byte(cleaned), &claims); err == nil {
		return trimNonEmpty(claims), nil
	}

	if fragment := arrayRe.FindString(cleaned); fragment != "" {
		if err := json.Unmarshal([]byte(fragment), &claims); err == nil {
			return trimNonEmpty(claims), nil
		}
	}

	return nil, &ClaimListError{Raw: raw}
}

// ClaimListError reports an undecodable claim-extraction response
type ClaimListError struct {
	Raw string
}

func (e *ClaimListError) Error() string {
	preview := e.Raw
	if len(preview) > 80 {
		preview = preview[:80] + "..."
	}
	return "undecodable claim list: " + strconv.Quote(preview)
}

// StripFences removes surrounding triple-backtick markers, optionally
// tagged with a json language hint
func StripFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if m := fenceRe.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}
	return trimmed
}

// Clamp forces a value into [0,1]
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func decodePayload(fragment string) (Probability, bool) {
	var payload probabilityPayload
	if err := json.Unmarshal([]byte(fragment), &payload); err != nil {
		return Probability{}, false
	}
	if payload.Probability == nil || payload.Explanation == nil {
		return Probability{}, false
	}
	return Probability{
		Value:       Clamp(*payload.Probability),
		Explanation: *payload.Explanation,
	}, true
}

func trimNonEmpty(claims []string) []string {
	out := claims[:0]
	for _, c := range claims {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
