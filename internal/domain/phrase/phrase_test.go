package phrase

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func books() []Book {
	return []Book{
		{Language: "Spanish", Locale: "es-ES", Phrases: []Phrase{{English: "Help me!", Translation: "¡Ayúdame!", Pronunciation: "ah-YOO-dah-meh"}}},
		{Language: "German", Locale: "de-DE", Phrases: []Phrase{{English: "Help me!", Translation: "Hilfe!", Pronunciation: "HIL-feh"}}},
	}
}

func TestFind(t *testing.T) {
	for _, lang := range []string{"German", "german", "de-DE", "DE-de"} {
		b, ok := Find(books(), lang)
		if !ok || b.Language != "German" {
			t.Errorf("Find(%q) = %q, %v", lang, b.Language, ok)
		}
	}
	if _, ok := Find(books(), "Klingon"); ok {
		t.Error("Find(Klingon) should miss")
	}
}

func TestLanguages(t *testing.T) {
	if diff := cmp.Diff([]string{"Spanish", "German"}, Languages(books())); diff != "" {
		t.Errorf("languages (-want +got):\n%s", diff)
	}
}

func TestBook_Validate(t *testing.T) {
	if err := books()[0].Validate(); err != nil {
		t.Errorf("valid book: %v", err)
	}
	if err := (Book{}).Validate(); err == nil {
		t.Error("missing language should fail")
	}
	if err := (Book{Language: "French", Phrases: []Phrase{{English: "Help me!"}}}).Validate(); err == nil {
		t.Error("missing translation should fail")
	}
}
