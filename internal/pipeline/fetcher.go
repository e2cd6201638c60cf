package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"github.com/avetrov/claimscope/internal/cache"
	"github.com/avetrov/claimscope/internal/model"
	"github.com/avetrov/claimscope/internal/util"
)

// ErrRobotsDisallowed marks a fetch refused by the target's robots.txt
var ErrRobotsDisallowed = errors.New("fetch disallowed by robots.txt")

// Fetcher retrieves a URL and reduces it to cleaned plain text:
// script/style content stripped, whitespace collapsed to single spaces.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker // nil = skip the check
	store      cache.Cache         // nil = no caching
}

// NewFetcher creates a fetcher from HTTP configuration. A nil store
// disables caching of extracted text.
func NewFetcher(cfg model.HTTPConfig, store cache.Cache) *Fetcher {
	var robots *util.RobotsChecker
	if cfg.RespectRobots {
		robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    robots,
		store:     store,
	}
}

// FetchText retrieves the URL and returns its visible text as one
// document-level string. Any failure here is fatal to the analysis and
// propagates to the caller.
func (f *Fetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	key := cache.Key(rawURL)
	if f.store != nil {
		if cached, found := f.store.Get(key); found {
			return string(cached), nil
		}
	}

	if f.robots != nil && !f.robots.IsAllowed(ctx, rawURL) {
		return "", fmt.Errorf("fetch %s: %w", rawURL, ErrRobotsDisallowed)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	text, err := ExtractText(string(body))
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}

	if f.store != nil {
		_ = f.store.Set(key, []byte(text), 0)
	}

	return text, nil
}

// ExtractText parses HTML and returns its visible text with whitespace
// collapsed. Script, style, noscript, and iframe subtrees are skipped.
func ExtractText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(buf.String()), " "), nil
}
