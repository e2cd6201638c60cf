package model

// Claim represents a single proposition a reader might take a sentence to assert
type Claim struct {
	Text                      string  `json:"text"`                       // The claim as phrased by the model
	ProbabilityInterpreted    float64 `json:"probability_interpreted"`    // P(reader interprets the source as asserting it)
	ProbabilityTrue           float64 `json:"probability_true"`           // P(the claim is factually true)
	InterpretationExplanation string  `json:"interpretation_explanation"` // Rationale, or an error placeholder
	TruthExplanation          string  `json:"truth_explanation"`          // Rationale, or an error placeholder
	Microlies                 float64 `json:"microlies"`                  // (p_interpreted * (1 - p_true))^3 * 1e6
}

// SentenceAnalysis holds every claim scored for one retained sentence.
// Claims preserve extraction order and may be empty when extraction
// failed or the sentence asserts nothing.
type SentenceAnalysis struct {
	Sentence          string  `json:"sentence"`
	SentenceMicrolies float64 `json:"sentence_microlies"` // Always the sum of Claims[].Microlies
	Claims            []Claim `json:"claims"`
}

// AnalysisResult is the full article-level output tree
type AnalysisResult struct {
	Source           string             `json:"source"`      // URL or "direct text input"
	AnalyzedAt       string             `json:"analyzed_at"` // RFC 3339
	ArticleMicrolies float64            `json:"article_microlies"`
	TotalSentences   int                `json:"total_sentences"`
	TotalClaims      int                `json:"total_claims"`
	Rates            Rates              `json:"rates"`
	Limits           Limits             `json:"limits"` // Limits actually applied, for reproducibility
	Sentences        []SentenceAnalysis `json:"sentences"`
}

// Rates are derived averages, each 0 when its denominator is 0
type Rates struct {
	AvgClaimsPerSentence    float64 `json:"avg_claims_per_sentence"`
	AvgMicroliesPerSentence float64 `json:"avg_microlies_per_sentence"`
	AvgMicroliesPerClaim    float64 `json:"avg_microlies_per_claim"`
}

// Limits are the caller-supplied analysis bounds.
// Zero MaxSentences or MaxClaims means unbounded.
type Limits struct {
	SkipSentences int `json:"skip_sentences" yaml:"skip_sentences"`
	MaxSentences  int `json:"max_sentences" yaml:"max_sentences"`
	MaxClaims     int `json:"max_claims" yaml:"max_claims"`
}
