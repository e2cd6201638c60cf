// Package evaluate orchestrates per-sentence claim scoring: one
// extraction call, then two probability judgments per retained claim.
package evaluate

import (
	"context"
	"sync"

	"github.com/avetrov/claimscope/internal/model"
	"github.com/avetrov/claimscope/internal/score"
)

// Judge is the generative-model capability the evaluator depends on.
// The probability judgments return an explanation alongside the value;
// an error from any method means the call itself failed (transport or,
// for extraction, undecodable output) — parse-level trouble inside a
// probability response is already absorbed below this interface.
type Judge interface {
	ExtractClaims(ctx context.Context, sentence string) ([]string, error)
	JudgeInterpretation(ctx context.Context, sentence, claim, article string) (probability float64, explanation string, err error)
	JudgeTruth(ctx context.Context, claim, article string) (probability float64, explanation string, err error)
}

// neutralProbability substitutes for a failed judgment call. The claim
// record is still produced; the error text lands in the explanation.
const neutralProbability = 0.5

// Evaluator turns one sentence into fully scored claim records
type Evaluator struct {
	judge Judge
}

// NewEvaluator creates an evaluator backed by the given judge
func NewEvaluator(judge Judge) *Evaluator {
	return &Evaluator{judge: judge}
}

// Evaluate extracts claims from the sentence, truncates to maxClaims
// (0 = unbounded) before any probability call is made, and scores each
// retained claim. A failed extraction degrades to zero claims; a failed
// probability call degrades to the neutral prior. Nothing here aborts
// the surrounding article analysis.
func (e *Evaluator) Evaluate(ctx context.Context, sentence, article string, maxClaims int) ([]model.Claim, error) {
	claimTexts, err := e.judge.ExtractClaims(ctx, sentence)
	if err != nil {
		return nil, err
	}

	if maxClaims > 0 && len(claimTexts) > maxClaims {
		claimTexts = claimTexts[:maxClaims]
	}

	claims := make([]model.Claim, 0, len(claimTexts))
	for _, text := range claimTexts {
		claims = append(claims, e.scoreClaim(ctx, sentence, text, article))
	}

	return claims, nil
}

// scoreClaim runs the two probability judgments for one claim. The two
// are independent, so they run concurrently; each writes its own slot.
func (e *Evaluator) scoreClaim(ctx context.Context, sentence, text, article string) model.Claim {
	claim := model.Claim{Text: text}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		p, explanation, err := e.judge.JudgeInterpretation(ctx, sentence, text, article)
		if err != nil {
			p, explanation = neutralProbability, err.Error()
		}
		claim.ProbabilityInterpreted = p
		claim.InterpretationExplanation = explanation
	}()

	go func() {
		defer wg.Done()
		p, explanation, err := e.judge.JudgeTruth(ctx, text, article)
		if err != nil {
			p, explanation = neutralProbability, err.Error()
		}
		claim.ProbabilityTrue = p
		claim.TruthExplanation = explanation
	}()

	wg.Wait()

	claim.Microlies = score.Microlies(claim.ProbabilityInterpreted, claim.ProbabilityTrue)
	return claim
}
