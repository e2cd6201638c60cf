package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/avetrov/claimscope/internal/model"
	"github.com/avetrov/claimscope/internal/util"
)

// Analyzer scores a single article URL
type Analyzer interface {
	AnalyzeURL(ctx context.Context, url string, limits model.Limits) (*model.AnalysisResult, error)
}

// AnalyzeJob scores one URL through the shared analyzer
type AnalyzeJob struct {
	URL      string
	Limits   model.Limits
	Analyzer Analyzer
	Limiter  *Limiter            // nil = no throttling
	Robots   *util.RobotsChecker // nil = ignore declared crawl delays
}

// Execute runs the analysis. Before fetching it waits for per-domain
// rate budget, then for any crawl delay the host's robots.txt declares.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.URL); err != nil {
			return &AnalyzeResult{URL: j.URL, Error: err}
		}
	}
	if j.Robots != nil {
		if delay := j.Robots.CrawlDelay(ctx, j.URL); delay > 0 {
			select {
			case <-ctx.Done():
				return &AnalyzeResult{URL: j.URL, Error: ctx.Err()}
			case <-time.After(delay):
			}
		}
	}

	result, err := j.Analyzer.AnalyzeURL(ctx, j.URL, j.Limits)
	if err != nil {
		return &AnalyzeResult{URL: j.URL, Error: err}
	}
	return &AnalyzeResult{URL: j.URL, Result: result}
}

// AnalyzeResult holds one URL's outcome
type AnalyzeResult struct {
	URL    string
	Result *model.AnalysisResult
	Error  error
}

// GetError returns the job error, if any
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor scores many URLs concurrently with the same limits
type BatchProcessor struct {
	analyzer    Analyzer
	limiter     *Limiter
	robots      *util.RobotsChecker
	concurrency int
}

// NewBatchProcessor creates a processor running up to concurrency
// analyses at once. requestsPerSecond throttles each domain; zero or
// negative disables throttling. A non-nil robots checker makes each job
// honor the crawl delay its target host declares.
func NewBatchProcessor(analyzer Analyzer, concurrency int, requestsPerSecond float64, robots *util.RobotsChecker) *BatchProcessor {
	var limiter *Limiter
	if requestsPerSecond > 0 {
		limiter = NewLimiter(requestsPerSecond, 0)
	}

	return &BatchProcessor{
		analyzer:    analyzer,
		limiter:     limiter,
		robots:      robots,
		concurrency: concurrency,
	}
}

// ProcessURLs analyzes the given URLs and returns results in
// completion order.
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string, limits model.Limits) []*AnalyzeResult {
	if len(urls) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, url := range urls {
		pool.Submit(&AnalyzeJob{
			URL:      url,
			Limits:   limits,
			Analyzer: b.analyzer,
			Limiter:  b.limiter,
			Robots:   b.robots,
		})
	}

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}
	return analyzeResults
}

// ProcessFile analyzes every URL listed in filePath
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string, limits model.Limits) ([]*AnalyzeResult, error) {
	urls, err := ReadURLsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}
	return b.ProcessURLs(ctx, urls, limits), nil
}

// ReadURLsFromFile reads one URL per line, skipping blanks, comments,
// and duplicates.
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}
