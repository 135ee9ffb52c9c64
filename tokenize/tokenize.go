// Package tokenize provides a basic whitespace-and-punctuation splitter that
// tracks byte offsets. It stands in for a full linguistic parser when none is
// wired up: it fills only word forms and offsets, leaving lemma, POS and
// named-entity attributes empty.
package tokenize

import (
	"unicode"

	"github.com/gonlp/go-tempann/document"
)

// Split tokenizes text into offset-carrying tokens. Runs of
// non-whitespace are split further so every punctuation rune becomes its own
// token. Offsets are byte offsets into text; leading characters stripped
// upstream are accounted for by the caller via offset, which is subtracted
// from every token position (matching the parser convention that token
// offsets are relative to the stripped text).
func Split(text string, offset int) []document.Token {
	var tokens []document.Token
	wordStart := -1

	flushWord := func(end int) {
		if wordStart < 0 {
			return
		}
		tokens = append(tokens, document.Token{
			WordForm: text[wordStart:end],
			Start:    wordStart - offset,
			End:      end - offset,
		})
		wordStart = -1
	}

	for i, r := range text {
		switch {
		case isWhitespace(r):
			flushWord(i)
		case isPunctuation(r):
			flushWord(i)
			end := i + len(string(r))
			tokens = append(tokens, document.Token{
				WordForm: text[i:end],
				Start:    i - offset,
				End:      end - offset,
			})
		default:
			if wordStart < 0 {
				wordStart = i
			}
		}
	}
	flushWord(len(text))
	return tokens
}

// Sentences splits text into sentences on sentence-final punctuation and
// tokenizes each one. The sentence split is deliberately naive (".", "!",
// "?" followed by whitespace); a real parser replaces this wholesale.
func Sentences(text string, offset int) []document.Sentence {
	var sentences []document.Sentence
	start := 0
	flush := func(end int) {
		chunk := text[start:end]
		toks := Split(chunk, 0)
		for i := range toks {
			toks[i].Start += start - offset
			toks[i].End += start - offset
		}
		if len(toks) > 0 {
			sentences = append(sentences, document.Sentence{Text: chunk, Tokens: toks})
		}
		start = end
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && (i+1 == len(text) || text[i+1] == ' ' || text[i+1] == '\n') {
			flush(i + 1)
		}
	}
	if start < len(text) {
		flush(len(text))
	}
	return sentences
}

func isWhitespace(r rune) bool {
	if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func isPunctuation(r rune) bool {
	// ASCII punctuation first, then the Unicode category.
	if (r >= 33 && r <= 47) || (r >= 58 && r <= 64) ||
		(r >= 91 && r <= 96) || (r >= 123 && r <= 126) {
		return true
	}
	return unicode.IsPunct(r)
}
