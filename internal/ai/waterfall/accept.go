package waterfall

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spigell/hh-autofill/internal/ai"
	"github.com/spigell/hh-autofill/internal/extract"
	"github.com/spigell/hh-autofill/internal/similarity"
)

func acceptNonEmpty(raw string) (*ai.GeneratedPayload, error) {
	answer := extract.ExtractPlainAnswer(raw)
	if answer == "" {
		return nil, errors.New("empty answer")
	}
	return &ai.GeneratedPayload{RawText: answer}, nil
}

func acceptOption(options []string) acceptFunc {
	return func(raw string) (*ai.GeneratedPayload, error) {
		answer := extract.ExtractPlainAnswer(raw)
		if answer == "" {
			return nil, errors.New("empty answer")
		}

		option, ok := MatchOption(answer, options)
		if !ok {
			return nil, fmt.Errorf("answer %q matches none of %d options", answer, len(options))
		}
		return &ai.GeneratedPayload{RawText: option}, nil
	}
}

// MatchOption finds the option an answer refers to. An exact match wins, then a
// case-insensitive match, then whole-word containment in either direction.
// Containment must align with word boundaries, so "No" does not match "None".
// Placeholder options are never matched.
func MatchOption(answer string, options []string) (string, bool) {
	answer = strings.TrimSpace(answer)

	for _, option := range options {
		if !similarity.IsPlaceholder(option) && strings.TrimSpace(option) == answer {
			return option, true
		}
	}

	for _, option := range options {
		if !similarity.IsPlaceholder(option) && strings.EqualFold(strings.TrimSpace(option), answer) {
			return option, true
		}
	}

	lowerAnswer := strings.ToLower(answer)
	for _, option := range options {
		if similarity.IsPlaceholder(option) {
			continue
		}
		lowerOption := strings.ToLower(strings.TrimSpace(option))
		if containsWords(lowerAnswer, lowerOption) || containsWords(lowerOption, lowerAnswer) {
			return option, true
		}
	}

	return "", false
}

// containsWords reports whether needle occurs in haystack on word boundaries.
func containsWords(haystack, needle string) bool {
	if needle == "" {
		return false
	}

	for offset := 0; offset <= len(haystack)-len(needle); {
		idx := strings.Index(haystack[offset:], needle)
		if idx == -1 {
			return false
		}
		start := offset + idx
		end := start + len(needle)
		if boundaryBefore(haystack, start) && boundaryAfter(haystack, end) {
			return true
		}
		offset = start + 1
	}

	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
