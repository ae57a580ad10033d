// Package phrase holds the emergency phrase books shown on the emergency page.
package phrase

import (
	"fmt"
	"slices"
	"strings"
)

// Phrase is one English phrase with its translation and a pronunciation guide.
type Phrase struct {
	English       string
	Translation   string
	Pronunciation string
}

// Book is the set of emergency phrases for one language.
type Book struct {
	Language string
	Locale   string
	Phrases  []Phrase
}

// Validate checks the book has a language and complete phrases.
func (b Book) Validate() error {
	if b.Language == "" {
		return fmt.Errorf("phrase book: language is required")
	}
	for i, p := range b.Phrases {
		if p.English == "" || p.Translation == "" {
			return fmt.Errorf("phrase book %s: phrase %d is incomplete", b.Language, i)
		}
	}
	return nil
}

// Find returns the book for language, matched on name or locale, ignoring case.
func Find(books []Book, language string) (Book, bool) {
	i := slices.IndexFunc(books, func(b Book) bool {
		return strings.EqualFold(b.Language, language) || strings.EqualFold(b.Locale, language)
	})
	if i < 0 {
		return Book{}, false
	}
	return books[i], true
}

// Languages lists the book languages in catalog order.
func Languages(books []Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Language
	}
	return out
}
