package nlp

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultWords is the built-in list of common Swahili words, in suggestion order.
var DefaultWords = []string{
	"habari", "jambo", "nzuri", "sana", "asante",
	"karibu", "tafadhali", "samahani", "kwaheri",
	"ndiyo", "hapana", "leo", "kesho", "jana",
	"asubuhi", "mchana", "jioni", "usiku",
	"chakula", "maji", "nyumba", "shule", "kazi",
}

// CommonPhrases are whole greetings and courtesies offered as phrase completions.
var CommonPhrases = []string{
	"Habari yako",
	"Jambo",
	"Asante sana",
	"Karibu",
	"Tafadhali",
	"Samahani",
	"Kwaheri",
	"Ndiyo",
	"Hapana",
	"Habari za asubuhi",
	"Habari za mchana",
	"Habari za jioni",
}

// Vocabulary is an ordered, read-only word list. It is safe for concurrent use
// because nothing mutates it after NewVocabulary returns.
type Vocabulary struct {
	words []string
	keys  []string // Swahili-lowercased words, parallel to words
}

// NewVocabulary copies words, dropping empty entries and later duplicates
// while keeping the original order. Words keep their spelling; duplicates
// are detected case-insensitively.
func NewVocabulary(words []string) *Vocabulary {
	lower := cases.Lower(language.Swahili)
	seen := make(map[string]struct{}, len(words))
	v := &Vocabulary{
		words: make([]string, 0, len(words)),
		keys:  make([]string, 0, len(words)),
	}
	for _, w := range words {
		if w == "" {
			continue
		}
		key := lower.String(w)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		v.words = append(v.words, w)
		v.keys = append(v.keys, key)
	}
	return v
}

func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(DefaultWords)
}

func (v *Vocabulary) Len() int { return len(v.words) }

// Words returns a copy of the list.
func (v *Vocabulary) Words() []string {
	out := make([]string, len(v.words))
	copy(out, v.words)
	return out
}
