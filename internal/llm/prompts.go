package llm

import "fmt"

// Prompt templates for the three judgment operations. Each asks for
// machine-decodable output, but the parser downstream never trusts the
// model to comply.

const extractionSystem = `You are an expert at identifying claims made in text.
Given a sentence, identify all possible claims that someone might interpret the author as making.
A claim is a statement that can be true or false.

Return your response as a JSON list of strings, where each string is a potential claim.
Example: ["The economy is improving", "Unemployment rates are falling"]`

const interpretationSystem = `You are an expert at understanding how people interpret text.
Given a sentence and a potential claim, estimate the probability (0-1) that someone would
interpret the author as making that claim.

Consider:
- How directly the sentence states the claim
- Whether the claim requires inference
- How reasonable the interpretation is given the surrounding article

Return a JSON object with exactly two keys:
{"explanation": "<one or two sentences of rationale>", "probability": <number between 0 and 1>}`

const truthSystem = `You are an expert at evaluating the truth of claims.
Given a claim, estimate the probability (0-1) that the claim is true.

Consider:
- Available evidence
- Common knowledge
- Logical consistency
- Uncertainty and ambiguity

Return a JSON object with exactly two keys:
{"explanation": "<one or two sentences of rationale>", "probability": <number between 0 and 1>}`

// maxContextChars bounds how much of the article rides along as context
// in probability prompts, to keep token usage predictable.
const maxContextChars = 6000

// BuildExtractionPrompt constructs the claim-extraction user prompt
func BuildExtractionPrompt(sentence string) string {
	return fmt.Sprintf("Sentence: %s", sentence)
}

// BuildInterpretationPrompt constructs the interpretation-probability
// user prompt, carrying the full article as context
func BuildInterpretationPrompt(sentence, claim, article string) string {
	return fmt.Sprintf("Article context:\n%s\n\nSentence: %s\nPotential claim: %s",
		truncate(article, maxContextChars), sentence, claim)
}

// BuildTruthPrompt constructs the truth-probability user prompt
func BuildTruthPrompt(claim, article string) string {
	return fmt.Sprintf("Article context:\n%s\n\nClaim: %s",
		truncate(article, maxContextChars), claim)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
