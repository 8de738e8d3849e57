package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapse(t *testing.T) {
	assert.Equal(t, "a b c", Collapse("  a \n\t b   c "))
	assert.Equal(t, "", Collapse("   \n "))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"hello", "world", "2"}, Tokenize("Hello, World-2!"))
	assert.Empty(t, Tokenize("..."))
}

func TestKeywordsRemovesStopwords(t *testing.T) {
	got := Keywords("The cat and the dog")
	assert.Equal(t, []string{"cat", "dog"}, got)
}

func TestKeywordSetDedupes(t *testing.T) {
	set := KeywordSet("graph graph networks")
	assert.Len(t, set, 2)
	assert.Contains(t, set, "graph")
	assert.Contains(t, set, "networks")
}

func TestSentences(t *testing.T) {
	assert.Equal(t, []string{"One.", "Two!", "Three?"}, Sentences("One. Two! Three?"))
	assert.Equal(t, []string{"no terminal punctuation"}, Sentences("no terminal punctuation"))
	assert.Nil(t, Sentences("   \n\t"))
}

func TestSentencesKeepsTrailingFragment(t *testing.T) {
	got := Sentences("The method works well. Key limitations include memory use and training time")
	assert.Equal(t, []string{
		"The method works well.",
		"Key limitations include memory use and training time",
	}, got)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hel", Truncate("hello", 3))
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hello", Truncate("hello", 0))
}
