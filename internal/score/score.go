// Package score computes the microlies metric and its rollups.
//
// A claim's microlies is the cubed joint probability that the claim is
// both asserted and false, scaled to millionths. Cubing makes the score
// steeply nonlinear: claims that are confidently implied and confidently
// false dominate, while any real uncertainty in either dimension drives
// the contribution toward zero.
package score

import (
	"math"

	"github.com/avetrov/claimscope/internal/model"
)

// Scale turns the cubed joint probability into a human-legible number:
// a claim that is certainly asserted and certainly false scores exactly
// one million microlies.
const Scale = 1_000_000

// Microlies scores a single claim from its two probabilities
func Microlies(probabilityInterpreted, probabilityTrue float64) float64 {
	probabilityFalse := 1 - probabilityTrue
	joint := probabilityInterpreted * probabilityFalse
	return math.Pow(joint, 3) * Scale
}

// SumSentence computes a sentence's microlies as the sum over its claims
func SumSentence(claims []model.Claim) float64 {
	var total float64
	for _, c := range claims {
		total += c.Microlies
	}
	return total
}

// Rollup fills in the derived article-level fields of a result: the
// article microlies sum, the sentence and claim counts, and the three
// average rates. Every rate is 0 when its denominator is 0.
func Rollup(result *model.AnalysisResult) {
	result.TotalSentences = len(result.Sentences)
	result.TotalClaims = 0
	result.ArticleMicrolies = 0

	for _, s := range result.Sentences {
		result.TotalClaims += len(s.Claims)
		result.ArticleMicrolies += s.SentenceMicrolies
	}

	result.Rates = model.Rates{}
	if result.TotalSentences > 0 {
		result.Rates.AvgClaimsPerSentence = float64(result.TotalClaims) / float64(result.TotalSentences)
		result.Rates.AvgMicroliesPerSentence = result.ArticleMicrolies / float64(result.TotalSentences)
	}
	if result.TotalClaims > 0 {
		result.Rates.AvgMicroliesPerClaim = result.ArticleMicrolies / float64(result.TotalClaims)
	}
}
