package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/avetrov/claimscope/internal/llm"
	"github.com/avetrov/claimscope/internal/model"
	"github.com/avetrov/claimscope/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	inputText  string
	inputFile  string
	outJSON    string
	outMD      string
	timeout    time.Duration
	userAgent  string
	maxBytes   int64
	noCache    bool
	noFooter   bool
	noRobots   bool
	httpProxy  string
	httpsProxy string

	skipSentences int
	maxSentences  int
	maxClaims     int

	llmProvider string
	llmModel    string
	llmBaseURL  string
	llmRate     float64
	workers     int
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [url]",
	Short: "Analyze an article and score its veracity gap",
	Long: `Analyze fetches an article (or takes text directly), splits it into
sentences, extracts the factual claims each sentence makes, and scores
every claim:
- probability a reader interprets the claim as fact
- probability the claim is actually true
- microlies: (p_interpreted * (1 - p_true))^3 * 1,000,000

Sentence scores sum their claims; the article score sums sentences.

Example:
  claimscope analyze https://example.com/article
  claimscope analyze https://example.com/article --skip 2 --max-sentences 10
  claimscope analyze --text "Sales rose. The CEO announced new plans."
  claimscope analyze --file article.txt --json result.json --md report.md
  claimscope analyze https://example.com --provider ollama --model llama3.2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Input flags
	analyzeCmd.Flags().StringVar(&inputText, "text", "", "analyze this text instead of fetching a URL")
	analyzeCmd.Flags().StringVar(&inputFile, "file", "", "analyze the contents of this file")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Limit flags
	analyzeCmd.Flags().IntVar(&skipSentences, "skip", 0, "skip this many sentences from the start")
	analyzeCmd.Flags().IntVar(&maxSentences, "max-sentences", 5, "analyze at most this many sentences (cap: 50)")
	analyzeCmd.Flags().IntVar(&maxClaims, "max-claims", 10, "score at most this many claims per sentence (cap: 10)")

	// HTTP flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "Claimscope/0.2 (+https://github.com/avetrov/claimscope)", "HTTP User-Agent")
	analyzeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	analyzeCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")
	analyzeCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	analyzeCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags
	analyzeCmd.Flags().StringVar(&llmProvider, "provider", "openai", "LLM provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "model", "", "LLM model name (provider default if empty)")
	analyzeCmd.Flags().StringVar(&llmBaseURL, "base-url", "", "LLM base URL (for ollama or compatible endpoints)")
	analyzeCmd.Flags().Float64Var(&llmRate, "rate-limit", 0, "max judgment calls per second (0 = unlimited)")
	analyzeCmd.Flags().IntVar(&workers, "workers", 1, "concurrent sentence analyses")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	text, url, err := resolveInput(args)
	if err != nil {
		return err
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	judge, err := llm.NewJudge(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return fmt.Errorf("configure LLM: %w", err)
	}

	p := pipeline.NewPipeline(cfg, judge)

	if verbose {
		if url != "" {
			fmt.Fprintf(os.Stderr, "Analyzing: %s\n", url)
		} else {
			fmt.Fprintf(os.Stderr, "Analyzing direct text (%d bytes)\n", len(text))
		}
		fmt.Fprintf(os.Stderr, "Provider: %s\n", judge.ProviderName())
		fmt.Fprintf(os.Stderr, "Limits: skip=%d max-sentences=%d max-claims=%d\n",
			cfg.Limits.SkipSentences, cfg.Limits.MaxSentences, cfg.Limits.MaxClaims)
		fmt.Fprintln(os.Stderr)
	}

	var result *model.AnalysisResult
	if url != "" {
		result, err = p.AnalyzeURL(ctx, url, cfg.Limits)
	} else {
		result, err = p.AnalyzeText(ctx, text, cfg.Limits)
	}
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	renderer := pipeline.NewRenderer(!noFooter)
	renderer.RenderSummary(result)

	if outJSON != "" {
		if err := renderer.RenderJSON(result, outJSON); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(result, outMD); err != nil {
			return fmt.Errorf("write Markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", outMD)
		}
	}

	return nil
}

// resolveInput picks exactly one input source from the URL argument,
// --text, and --file
func resolveInput(args []string) (text, url string, err error) {
	sources := 0
	if len(args) == 1 {
		sources++
		url = args[0]
	}
	if inputText != "" {
		sources++
		text = inputText
	}
	if inputFile != "" {
		sources++
		data, readErr := os.ReadFile(inputFile)
		if readErr != nil {
			return "", "", fmt.Errorf("read input file: %w", readErr)
		}
		text = string(data)
	}

	if sources == 0 {
		return "", "", fmt.Errorf("nothing to analyze: pass a URL, --text, or --file")
	}
	if sources > 1 {
		return "", "", fmt.Errorf("pass exactly one of: URL argument, --text, --file")
	}
	return text, url, nil
}

// buildConfig assembles the run configuration from defaults and flags
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.RespectRobots = !noRobots
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter
	cfg.Concurrency.SentenceWorkers = workers

	cfg.Limits = model.Limits{
		SkipSentences: skipSentences,
		MaxSentences:  maxSentences,
		MaxClaims:     maxClaims,
	}
	if err := cfg.Limits.Validate(); err != nil {
		return nil, err
	}

	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.LLM.RateLimit = llmRate
	if llmBaseURL != "" {
		cfg.LLM.BaseURL = llmBaseURL
	}

	switch llmProvider {
	case "openai", "anthropic", "claude":
		cfg.LLM.APIKey = llm.APIKeyFromEnv(llmProvider)
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("no API key for %s: set %s or add it to .env",
				llmProvider, keyEnvVar(llmProvider))
		}
	case "ollama":
		if cfg.LLM.BaseURL == "" {
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}

func keyEnvVar(provider string) string {
	if provider == "openai" {
		return "OPENAI_API_KEY"
	}
	return "ANTHROPIC_API_KEY"
}
