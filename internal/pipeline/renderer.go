package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/avetrov/claimscope/internal/model"
)

// Renderer writes analysis results as JSON, Markdown, and a stdout summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the result tree to a JSON file
func (r *Renderer) RenderJSON(result *model.AnalysisResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(result *model.AnalysisResult, path string) error {
	var b strings.Builder

	b.WriteString("# Claimscope Report\n\n")
	fmt.Fprintf(&b, "- **Source:** %s\n", result.Source)
	fmt.Fprintf(&b, "- **Analyzed:** %s\n", result.AnalyzedAt)
	fmt.Fprintf(&b, "- **Article microlies:** %.2f\n", result.ArticleMicrolies)
	fmt.Fprintf(&b, "- **Sentences analyzed:** %d\n", result.TotalSentences)
	fmt.Fprintf(&b, "- **Claims scored:** %d\n\n", result.TotalClaims)

	fmt.Fprintf(&b, "Averages: %.2f claims/sentence, %.2f microlies/sentence, %.2f microlies/claim\n\n",
		result.Rates.AvgClaimsPerSentence,
		result.Rates.AvgMicroliesPerSentence,
		result.Rates.AvgMicroliesPerClaim)

	for i, s := range result.Sentences {
		fmt.Fprintf(&b, "## Sentence %d — %.2f microlies\n\n", i+1, s.SentenceMicrolies)
		fmt.Fprintf(&b, "> %s\n\n", s.Sentence)

		if len(s.Claims) == 0 {
			b.WriteString("_No claims scored._\n\n")
			continue
		}

		for _, c := range s.Claims {
			fmt.Fprintf(&b, "- **%s** — %.2f microlies\n", c.Text, c.Microlies)
			fmt.Fprintf(&b, "  - P(interpreted) = %.3f: %s\n", c.ProbabilityInterpreted, c.InterpretationExplanation)
			fmt.Fprintf(&b, "  - P(true) = %.3f: %s\n", c.ProbabilityTrue, c.TruthExplanation)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("Generated by Claimscope. Microlies quantify how strongly a claim is both confidently implied and confidently false; they are not a verdict on the author.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints the headline numbers to stdout
func (r *Renderer) RenderSummary(result *model.AnalysisResult) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println("  Claimscope Analysis")
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  Source:             %s\n", result.Source)
	fmt.Printf("  Sentences analyzed: %d\n", result.TotalSentences)
	fmt.Printf("  Claims scored:      %d\n", result.TotalClaims)
	fmt.Printf("  Article microlies:  %.2f\n", result.ArticleMicrolies)
	fmt.Printf("  Avg claims/sent:    %.2f\n", result.Rates.AvgClaimsPerSentence)
	fmt.Printf("  Avg microlies/sent: %.2f\n", result.Rates.AvgMicroliesPerSentence)
	fmt.Printf("  Avg microlies/claim:%.2f\n", result.Rates.AvgMicroliesPerClaim)
	fmt.Println("═══════════════════════════════════════════════════════════")
}
