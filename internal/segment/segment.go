package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minSentenceLen filters out headers, navigation fragments, and stray
// punctuation left over from HTML extraction.
const minSentenceLen = 10

// Segmenter splits article text into an ordered sequence of sentences
type Segmenter struct{}

// NewSegmenter creates a new sentence segmenter
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Split segments text into sentences. A boundary is a terminator
// (. ! ?) followed by whitespace and an uppercase letter — requiring the
// next visible character to open a new clause avoids splitting on most
// abbreviations. Fragments whose trimmed length is <= 10 characters are
// dropped. Text with no boundary at all comes back as a single sentence,
// subject to the same length filter.
func (s *Segmenter) Split(text string) []string {
	runes := []rune(strings.ReplaceAll(text, "\n", " "))

	var sentences []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j == i+1 || j >= len(runes) || !unicode.IsUpper(runes[j]) {
			continue
		}
		if candidate := strings.TrimSpace(string(runes[start:j])); longEnough(candidate) {
			sentences = append(sentences, candidate)
		}
		start = j
		i = j - 1
	}

	if tail := strings.TrimSpace(string(runes[start:])); longEnough(tail) {
		sentences = append(sentences, tail)
	}

	return sentences
}

// longEnough counts characters, not bytes: multibyte text must clear
// the same fragment filter as ASCII.
func longEnough(s string) bool {
	return utf8.RuneCountInString(s) > minSentenceLen
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
