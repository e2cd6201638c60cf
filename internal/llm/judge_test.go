package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// scriptedProvider returns canned completions keyed by the system prompt
type scriptedProvider struct {
	responses map[string]string
	err       error
	calls     int
}

func (s *scriptedProvider) Name() string { return "scripted" }

func (s *scriptedProvider) IsAvailable(ctx context.Context) bool { return true }

func (s *scriptedProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.responses[req.System], nil
}

func TestJudge_ExtractClaims(t *testing.T) {
	provider := &scriptedProvider{responses: map[string]string{
		extractionSystem: "```json\n[\"Sales increased\", \"The company is healthy\"]\n```",
	}}
	judge := NewJudgeWithProvider(provider, Config{})

	claims, err := judge.ExtractClaims(context.Background(), "Sales rose sharply this quarter.")
	if err != nil {
		t.Fatalf("ExtractClaims failed: %v", err)
	}
	if len(claims) != 2 || claims[0] != "Sales increased" {
		t.Errorf("Unexpected claims: %v", claims)
	}
}

func TestJudge_ExtractClaims_Undecodable(t *testing.T) {
	provider := &scriptedProvider{responses: map[string]string{
		extractionSystem: "I found no claims worth mentioning here.",
	}}
	judge := NewJudgeWithProvider(provider, Config{})

	_, err := judge.ExtractClaims(context.Background(), "A sentence.")
	if err == nil {
		t.Fatal("Expected error for undecodable claim list")
	}
}

func TestJudge_Probabilities(t *testing.T) {
	provider := &scriptedProvider{responses: map[string]string{
		interpretationSystem: `{"explanation": "stated outright", "probability": 0.95}`,
		truthSystem:          `{"explanation": "contradicted by the data", "probability": 0.1}`,
	}}
	judge := NewJudgeWithProvider(provider, Config{})

	p, expl, err := judge.JudgeInterpretation(context.Background(), "Sales rose.", "Sales increased", "article")
	if err != nil {
		t.Fatalf("JudgeInterpretation failed: %v", err)
	}
	if p != 0.95 || expl != "stated outright" {
		t.Errorf("interpretation = (%v, %q)", p, expl)
	}

	p, expl, err = judge.JudgeTruth(context.Background(), "Sales increased", "article")
	if err != nil {
		t.Fatalf("JudgeTruth failed: %v", err)
	}
	if p != 0.1 || expl != "contradicted by the data" {
		t.Errorf("truth = (%v, %q)", p, expl)
	}
}

func TestJudge_ProbabilityParseNeverFails(t *testing.T) {
	// Garbage output still yields a usable pair once transport succeeded.
	provider := &scriptedProvider{responses: map[string]string{
		truthSystem: "Honestly, who can say?",
	}}
	judge := NewJudgeWithProvider(provider, Config{})

	p, expl, err := judge.JudgeTruth(context.Background(), "claim", "article")
	if err != nil {
		t.Fatalf("JudgeTruth failed: %v", err)
	}
	if p != 0.5 {
		t.Errorf("probability = %v, want neutral 0.5", p)
	}
	if !strings.Contains(expl, "neutral") {
		t.Errorf("explanation should record the parse failure, got %q", expl)
	}
}

func TestJudge_TransportErrorPropagates(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("connection refused")}
	judge := NewJudgeWithProvider(provider, Config{})

	if _, _, err := judge.JudgeInterpretation(context.Background(), "s", "c", "a"); err == nil {
		t.Fatal("Expected transport error to propagate")
	}
	if _, err := judge.ExtractClaims(context.Background(), "s"); err == nil {
		t.Fatal("Expected transport error to propagate")
	}
}

func TestNewJudge_EmptyProviderRejected(t *testing.T) {
	judge, err := NewJudge(Config{Provider: ""})
	if err == nil {
		t.Fatal("Expected error for empty provider")
	}
	if judge != nil {
		t.Error("Expected no judge when construction fails")
	}
}

func TestNewJudge_UnknownProvider(t *testing.T) {
	_, err := NewJudge(Config{Provider: "palm"})
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
}

func TestJudge_ProviderName(t *testing.T) {
	judge := NewJudgeWithProvider(&scriptedProvider{}, Config{})
	if got := judge.ProviderName(); got != "scripted" {
		t.Errorf("ProviderName() = %q, want scripted", got)
	}
}
