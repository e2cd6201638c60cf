package evaluate

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync/atomic"
	"testing"
)

// mockJudge counts calls and returns scripted values
type mockJudge struct {
	claims            []string
	extractErr        error
	interpretation    float64
	truth             float64
	interpretationErr error
	truthErr          error

	extractCalls        int32
	interpretationCalls int32
	truthCalls          int32
}

func (m *mockJudge) ExtractClaims(ctx context.Context, sentence string) ([]string, error) {
	atomic.AddInt32(&m.extractCalls, 1)
	if m.extractErr != nil {
		return nil, m.extractErr
	}
	return m.claims, nil
}

func (m *mockJudge) JudgeInterpretation(ctx context.Context, sentence, claim, article string) (float64, string, error) {
	atomic.AddInt32(&m.interpretationCalls, 1)
	if m.interpretationErr != nil {
		return 0, "", m.interpretationErr
	}
	return m.interpretation, "interpretation rationale", nil
}

func (m *mockJudge) JudgeTruth(ctx context.Context, claim, article string) (float64, string, error) {
	atomic.AddInt32(&m.truthCalls, 1)
	if m.truthErr != nil {
		return 0, "", m.truthErr
	}
	return m.truth, "truth rationale", nil
}

func TestEvaluate_FullClaimRecords(t *testing.T) {
	judge := &mockJudge{
		claims:         []string{"Sales increased", "The company is thriving"},
		interpretation: 0.8,
		truth:          0.3,
	}
	ev := NewEvaluator(judge)

	claims, err := ev.Evaluate(context.Background(), "Sales rose sharply.", "full article", 0)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(claims))
	}

	want := math.Pow(0.8*0.7, 3) * 1_000_000
	for i, c := range claims {
		if c.ProbabilityInterpreted != 0.8 || c.ProbabilityTrue != 0.3 {
			t.Errorf("claim %d probabilities = (%v, %v)", i, c.ProbabilityInterpreted, c.ProbabilityTrue)
		}
		if math.Abs(c.Microlies-want) > 1e-9 {
			t.Errorf("claim %d microlies = %v, want %v", i, c.Microlies, want)
		}
		if c.InterpretationExplanation != "interpretation rationale" || c.TruthExplanation != "truth rationale" {
			t.Errorf("claim %d explanations = (%q, %q)", i, c.InterpretationExplanation, c.TruthExplanation)
		}
	}

	// Claim order must match extraction order.
	if claims[0].Text != "Sales increased" || claims[1].Text != "The company is thriving" {
		t.Errorf("claim order not preserved: %v, %v", claims[0].Text, claims[1].Text)
	}
}

func TestEvaluate_MaxClaimsTruncatesBeforeScoring(t *testing.T) {
	judge := &mockJudge{
		claims: []string{"one", "two", "three", "four", "five"},
		truth:  0.5, interpretation: 0.5,
	}
	ev := NewEvaluator(judge)

	claims, err := ev.Evaluate(context.Background(), "sentence", "article", 2)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if len(claims) != 2 {
		t.Fatalf("expected 2 claims after truncation, got %d", len(claims))
	}
	if claims[0].Text != "one" || claims[1].Text != "two" {
		t.Errorf("truncation must keep the first claims: %v", claims)
	}
	// Discarded claims must cost no probability calls.
	if judge.interpretationCalls != 2 || judge.truthCalls != 2 {
		t.Errorf("probability calls = (%d, %d), want (2, 2)",
			judge.interpretationCalls, judge.truthCalls)
	}
}

func TestEvaluate_ZeroMaxClaimsIsUnbounded(t *testing.T) {
	judge := &mockJudge{claims: []string{"one", "two", "three"}}
	ev := NewEvaluator(judge)

	claims, err := ev.Evaluate(context.Background(), "sentence", "article", 0)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if len(claims) != 3 {
		t.Errorf("expected all 3 claims, got %d", len(claims))
	}
}

func TestEvaluate_ExtractionFailurePropagates(t *testing.T) {
	judge := &mockJudge{extractErr: errors.New("undecodable claim list")}
	ev := NewEvaluator(judge)

	_, err := ev.Evaluate(context.Background(), "sentence", "article", 0)
	if err == nil {
		t.Fatal("expected extraction error")
	}
	if judge.interpretationCalls != 0 || judge.truthCalls != 0 {
		t.Error("no probability calls should be made when extraction fails")
	}
}

func TestEvaluate_ProbabilityFailureDegradesToNeutral(t *testing.T) {
	judge := &mockJudge{
		claims:            []string{"a claim"},
		interpretationErr: errors.New("rate limited"),
		truth:             0.2,
	}
	ev := NewEvaluator(judge)

	claims, err := ev.Evaluate(context.Background(), "sentence", "article", 0)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if len(claims) != 1 {
		t.Fatalf("claim record must still be produced, got %d claims", len(claims))
	}
	c := claims[0]
	if c.ProbabilityInterpreted != 0.5 {
		t.Errorf("failed call should substitute 0.5, got %v", c.ProbabilityInterpreted)
	}
	if !strings.Contains(c.InterpretationExplanation, "rate limited") {
		t.Errorf("error text should land in the explanation, got %q", c.InterpretationExplanation)
	}
	if c.ProbabilityTrue != 0.2 || c.TruthExplanation != "truth rationale" {
		t.Errorf("healthy call should be untouched: (%v, %q)", c.ProbabilityTrue, c.TruthExplanation)
	}
}
