// Package preprocessing normalizes raw clinical text: whitespace cleanup,
// abbreviation expansion, sentence segmentation and entity extraction.
package preprocessing

import (
	"regexp"
	"strings"
)

// Options control the normalization pipeline. The zero value performs only
// whitespace cleanup.
type Options struct {
	Lowercase           bool
	RemovePunctuation   bool
	ExpandAbbreviations bool
}

// DefaultOptions match the shipped service configuration: lowercase and
// expand, keep punctuation for downstream sentence segmentation.
func DefaultOptions() Options {
	return Options{Lowercase: true, RemovePunctuation: false, ExpandAbbreviations: true}
}

const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var whitespaceRun = regexp.MustCompile(`\s+`)

// Clean collapses whitespace runs to single spaces, trims the ends, and
// optionally lowercases and strips punctuation.
func Clean(text string, lowercase, removePunct bool) string {
	text = whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " ")

	if lowercase {
		text = strings.ToLower(text)
	}

	if removePunct {
		text = strings.Map(func(r rune) rune {
			if strings.ContainsRune(punctuation, r) {
				return -1
			}
			return r
		}, text)
	}

	return text
}

// Preprocess runs the full normalization pipeline. It never fails: the worst
// case is the cleaned input text unchanged. Punctuation stripping happens
// after abbreviation expansion so slash forms like "c/o" still match.
func Preprocess(text string, opts Options) string {
	cleaned := Clean(text, opts.Lowercase, false)

	if opts.ExpandAbbreviations {
		cleaned = ExpandAbbreviations(cleaned)
	}

	if opts.RemovePunctuation {
		cleaned = Clean(cleaned, false, true)
	}

	return cleaned
}

var (
	singleLetterAbbrev = regexp.MustCompile(`\b([A-Za-z]\.)(\s)`)
	sentenceBoundary   = regexp.MustCompile(`[.?!]\s+`)
)

// SegmentSentences splits text into sentences, guarding single-letter
// initials ("J. Smith") against spurious breaks.
func SegmentSentences(text string) []string {
	guarded := singleLetterAbbrev.ReplaceAllString(text, "$1\x00$2")

	var sentences []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(guarded, -1) {
		// keep the terminating punctuation, drop the separating whitespace
		end := loc[0] + 1
		if s := strings.TrimSpace(guarded[start:end]); s != "" {
			sentences = append(sentences, strings.ReplaceAll(s, "\x00", ""))
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(guarded[start:]); s != "" {
		sentences = append(sentences, strings.ReplaceAll(s, "\x00", ""))
	}

	return sentences
}

var (
	hyphenated = regexp.MustCompile(`(\w+)-(\w+)`)
	tokenWord  = regexp.MustCompile(`\b\w+\b|[^\w\s]`)
)

// Tokenize splits text into word and punctuation tokens, preserving
// hyphenated medical terms as single tokens.
func Tokenize(text string) []string {
	guarded := hyphenated.ReplaceAllString(text, "${1}_hyph_${2}")

	tokens := tokenWord.FindAllString(guarded, -1)
	for i, tok := range tokens {
		tokens[i] = strings.ReplaceAll(tok, "_hyph_", "-")
	}
	return tokens
}
