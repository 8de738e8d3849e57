package textutil

import (
	"regexp"
	"strings"
)

var (
	wordRe     = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)*`)
	spaceRe    = regexp.MustCompile(`\s+`)
	sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
)

// Collapse normalizes all whitespace runs to single spaces and trims.
func Collapse(text string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

// Tokenize splits text into lowercased word tokens on non-alphanumeric
// boundaries. Stopwords are kept.
func Tokenize(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// Keywords tokenizes text and removes stopwords. Order follows the text;
// duplicates are kept (callers dedupe when they need a set).
func Keywords(text string) []string {
	toks := Tokenize(text)
	out := toks[:0]
	for _, t := range toks {
		if _, ok := stopwords[t]; ok {
			continue
		}
		out = append(out, t)
	}
	return out
}

// KeywordSet returns the deduplicated stopword-filtered token set of text.
func KeywordSet(text string) map[string]struct{} {
	toks := Keywords(text)
	m := make(map[string]struct{}, len(toks))
	for _, t := range toks {
		m[t] = struct{}{}
	}
	return m
}

// IsStopword reports whether the lowercased token is a stopword.
func IsStopword(tok string) bool {
	_, ok := stopwords[tok]
	return ok
}

// Sentences splits text into trimmed sentences. Text with no terminal
// punctuation yields a single sentence; a trailing fragment after the last
// terminal mark is kept as a final sentence; whitespace-only text yields none.
func Sentences(text string) []string {
	matches := sentenceRe.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []string{Collapse(trimmed)}
	}
	out := make([]string, 0, len(matches)+1)
	for _, m := range matches {
		s := Collapse(text[m[0]:m[1]])
		if s != "" {
			out = append(out, s)
		}
	}
	if rest := Collapse(text[matches[len(matches)-1][1]:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

// Truncate cuts text to at most maxChars runes, never mid-rune.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars])
}

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
