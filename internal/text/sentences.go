package text

import (
	"strings"
	"unicode"
)

// sentenceTerminators end a sentence when followed by whitespace.
var sentenceTerminators = map[rune]bool{'.': true, '!': true, '?': true}

// SplitSentences breaks prose into sentences on terminal punctuation
// followed by whitespace. Transcripts without punctuation fall back to
// newline splits; a fully unpunctuated blob comes back as one sentence.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if sentenceTerminators[r] {
			atEnd := i == len(runes)-1
			followedBySpace := !atEnd && unicode.IsSpace(runes[i+1])
			if atEnd || followedBySpace {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	if len(sentences) == 1 && strings.Contains(sentences[0], "\n") {
		var fallback []string
		for _, line := range strings.Split(sentences[0], "\n") {
			if s := strings.TrimSpace(line); s != "" {
				fallback = append(fallback, s)
			}
		}
		if len(fallback) > 1 {
			return fallback
		}
	}

	return sentences
}
