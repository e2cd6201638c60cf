package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/avetrov/claimscope/internal/parse"
)

// Judge performs the three judgment operations on top of a Provider:
// claim extraction, interpretation-probability estimation, and
// truth-probability estimation. Raw provider output goes through the
// parse package, so the two estimators always return a usable pair once
// the transport call itself succeeded.
type Judge struct {
	provider Provider
	limiter  *rate.Limiter // nil = unlimited
	config   Config
}

// NewJudge creates a Judge for the configured provider. Returns an
// error when the provider name is empty, unknown, or misconfigured, so
// a constructed Judge always has a provider behind it.
func NewJudge(config Config) (*Judge, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return NewJudgeWithProvider(provider, config), nil
}

// NewJudgeWithProvider wraps an existing provider, mainly for tests
func NewJudgeWithProvider(provider Provider, config Config) *Judge {
	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}
	return &Judge{
		provider: provider,
		limiter:  limiter,
		config:   config,
	}
}

// ProviderName returns the name of the underlying provider
func (j *Judge) ProviderName() string {
	return j.provider.Name()
}

// ExtractClaims asks the model which claims a reader might take the
// sentence to assert. The returned error covers both transport failure
// and undecodable output; the caller degrades to zero claims.
func (j *Judge) ExtractClaims(ctx context.Context, sentence string) ([]string, error) {
	raw, err := j.complete(ctx, extractionSystem, BuildExtractionPrompt(sentence))
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}

	claims, err := parse.ParseClaimList(raw)
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}
	return claims, nil
}

// JudgeInterpretation estimates the probability a reader interprets the
// sentence as asserting the claim, given full-article context
func (j *Judge) JudgeInterpretation(ctx context.Context, sentence, claim, article string) (float64, string, error) {
	raw, err := j.complete(ctx, interpretationSystem, BuildInterpretationPrompt(sentence, claim, article))
	if err != nil {
		return 0, "", fmt.Errorf("interpretation probability: %w", err)
	}

	p := parse.ParseProbability(raw)
	return p.Value, p.Explanation, nil
}

// JudgeTruth estimates the probability the claim is true, given
// full-article context
func (j *Judge) JudgeTruth(ctx context.Context, claim, article string) (float64, string, error) {
	raw, err := j.complete(ctx, truthSystem, BuildTruthPrompt(claim, article))
	if err != nil {
		return 0, "", fmt.Errorf("truth probability: %w", err)
	}

	p := parse.ParseProbability(raw)
	return p.Value, p.Explanation, nil
}

func (j *Judge) complete(ctx context.Context, system, prompt string) (string, error) {
	if j.limiter != nil {
		if err := j.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}
	return j.provider.Complete(ctx, CompletionRequest{
		System: system,
		Prompt: prompt,
	})
}
