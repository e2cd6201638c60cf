package pipeline

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/avetrov/claimscope/internal/cache"
	"github.com/avetrov/claimscope/internal/evaluate"
	"github.com/avetrov/claimscope/internal/model"
	"github.com/avetrov/claimscope/internal/score"
	"github.com/avetrov/claimscope/internal/segment"
)

// DirectTextSource labels results analyzed from supplied text rather
// than a fetched URL
const DirectTextSource = "direct text input"

// Pipeline orchestrates the complete analysis: fetch or accept text,
// segment, apply limits, evaluate each retained sentence, and roll the
// claim scores up to the article level.
type Pipeline struct {
	fetcher   *Fetcher
	segmenter *segment.Segmenter
	evaluator *evaluate.Evaluator
	config    *model.Config
}

// NewPipeline creates a pipeline with the given configuration and judge
func NewPipeline(cfg *model.Config, judge evaluate.Judge) *Pipeline {
	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayered(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		fetcher:   NewFetcher(cfg.HTTP, store),
		segmenter: segment.NewSegmenter(),
		evaluator: evaluate.NewEvaluator(judge),
		config:    cfg,
	}
}

// AnalyzeURL fetches the URL, extracts its text, and analyzes it. Fetch
// failures are fatal: no partial result is produced.
func (p *Pipeline) AnalyzeURL(ctx context.Context, rawURL string, limits model.Limits) (*model.AnalysisResult, error) {
	if err := limits.Validate(); err != nil {
		return nil, fmt.Errorf("invalid limits: %w", err)
	}

	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Fetching article from: %s\n", rawURL)
	}

	text, err := p.fetcher.FetchText(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch source: %w", err)
	}

	return p.analyze(ctx, rawURL, text, limits)
}

// AnalyzeText analyzes text supplied directly by the caller
func (p *Pipeline) AnalyzeText(ctx context.Context, text string, limits model.Limits) (*model.AnalysisResult, error) {
	if err := limits.Validate(); err != nil {
		return nil, fmt.Errorf("invalid limits: %w", err)
	}
	return p.analyze(ctx, DirectTextSource, text, limits)
}

// analyze runs segmentation, skip/max trimming, and per-sentence
// evaluation. Every retained sentence is judged against the entire
// original text, not just itself. Sentences may be evaluated
// concurrently, but the result always preserves segmentation order.
func (p *Pipeline) analyze(ctx context.Context, source, text string, limits model.Limits) (*model.AnalysisResult, error) {
	limits = limits.Clamp()

	sentences := p.segmenter.Split(text)
	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Found %d sentences\n", len(sentences))
	}

	if limits.SkipSentences >= len(sentences) {
		sentences = nil
	} else {
		sentences = sentences[limits.SkipSentences:]
	}
	if limits.MaxSentences > 0 && len(sentences) > limits.MaxSentences {
		sentences = sentences[:limits.MaxSentences]
	}

	analyses := make([]model.SentenceAnalysis, len(sentences))

	workers := p.config.Concurrency.SentenceWorkers
	if workers <= 0 {
		workers = 1
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i, sentence := range sentences {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, sentence string) {
			defer wg.Done()
			defer func() { <-sem }()
			analyses[i] = p.analyzeSentence(ctx, i, len(sentences), sentence, text, limits.MaxClaims)
		}(i, sentence)
	}
	wg.Wait()

	result := &model.AnalysisResult{
		Source:     source,
		AnalyzedAt: time.Now().UTC().Format(time.RFC3339),
		Limits:     limits,
		Sentences:  analyses,
	}
	score.Rollup(result)

	return result, nil
}

// analyzeSentence evaluates one sentence. A failed extraction degrades
// to an empty claim list; the sentence still appears in the result.
func (p *Pipeline) analyzeSentence(ctx context.Context, index, total int, sentence, article string, maxClaims int) model.SentenceAnalysis {
	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Analyzing sentence %d/%d: %s\n", index+1, total, preview(sentence, 100))
	}

	claims, err := p.evaluator.Evaluate(ctx, sentence, article, maxClaims)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: claim extraction failed for sentence %d: %v\n", index+1, err)
		claims = []model.Claim{} // empty, not absent, in the rendered result
	} else if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, "  %d claims scored\n", len(claims))
	}

	return model.SentenceAnalysis{
		Sentence:          sentence,
		Claims:            claims,
		SentenceMicrolies: score.SumSentence(claims),
	}
}

func preview(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
