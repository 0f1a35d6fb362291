// Package nlp implements the rule-based Swahili text helpers: sentence
// correction, word autocomplete and phrase lookup.
package nlp

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DefaultMaxSuggestions = 5

// Change descriptions reported by Correct.
const (
	ChangeCapitalized = "Capitalized first letter"
	ChangeAddedPeriod = "Added period"
)

const sentenceEnders = ".!?"

type Service struct {
	vocab          *Vocabulary
	phrases        []string
	maxSuggestions int
}

// NewService builds the engine over vocab. A nil vocab uses the built-in
// word list; a negative maxSuggestions uses DefaultMaxSuggestions.
func NewService(vocab *Vocabulary, maxSuggestions int) *Service {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	if maxSuggestions < 0 {
		maxSuggestions = DefaultMaxSuggestions
	}
	return &Service{
		vocab:          vocab,
		phrases:        CommonPhrases,
		maxSuggestions: maxSuggestions,
	}
}

func (s *Service) MaxSuggestions() int { return s.maxSuggestions }

func (s *Service) VocabularySize() int { return s.vocab.Len() }

// Correct trims text, capitalizes its first letter and terminates it with a
// period when it lacks final punctuation. The returned slice lists the
// applied changes in order and is never nil.
func (s *Service) Correct(text string) (string, []string) {
	corrected := strings.TrimSpace(text)
	changes := []string{}

	if corrected == "" {
		return corrected, changes
	}

	first, size := utf8.DecodeRuneInString(corrected)
	if unicode.IsLower(first) {
		upper := cases.Upper(language.Swahili).String(string(first))
		corrected = upper + corrected[size:]
		changes = append(changes, ChangeCapitalized)
	}

	last, _ := utf8.DecodeLastRuneInString(corrected)
	if !strings.ContainsRune(sentenceEnders, last) {
		corrected += "."
		changes = append(changes, ChangeAddedPeriod)
	}

	return corrected, changes
}

// Autocomplete returns up to maxSuggestions vocabulary words starting with
// text, compared case-insensitively, in vocabulary order.
func (s *Service) Autocomplete(text string, maxSuggestions int) []string {
	suggestions := []string{}
	if text == "" || maxSuggestions <= 0 {
		return suggestions
	}

	prefix := cases.Lower(language.Swahili).String(text)
	for i, key := range s.vocab.keys {
		if strings.HasPrefix(key, prefix) {
			suggestions = append(suggestions, s.vocab.words[i])
			if len(suggestions) == maxSuggestions {
				break
			}
		}
	}
	return suggestions
}

// WordSuggestions is Autocomplete with the service's default bound.
func (s *Service) WordSuggestions(word string) []string {
	return s.Autocomplete(word, s.maxSuggestions)
}

// PhraseMatches returns every common phrase containing partial, ignoring case.
func (s *Service) PhraseMatches(partial string) []string {
	matches := []string{}
	if partial == "" {
		return matches
	}

	lower := cases.Lower(language.Swahili)
	needle := lower.String(partial)
	for _, phrase := range s.phrases {
		if strings.Contains(lower.String(phrase), needle) {
			matches = append(matches, phrase)
		}
	}
	return matches
}
