// Package similarity scores how closely a free-text value matches a dropdown option.
package similarity

import (
	"strings"
	"unicode"
)

// MinOptionScore is the lowest score FindBestOption accepts.
const MinOptionScore = 0.5

const (
	containmentScore = 0.8
	minTokenLength   = 3
)

// Match is the option picked by FindBestOption.
type Match struct {
	Option string
	Index  int
	Score  float64
}

// StringSimilarity returns a heuristic score in [0,1] describing how similar a and b are.
// Comparison ignores case and surrounding whitespace.
func StringSimilarity(a, b string) float64 {
	s1 := normalize(a)
	s2 := normalize(b)

	if s1 == s2 {
		return 1
	}

	// An empty string is contained in everything; it must not count as a 0.8 match.
	if s1 == "" || s2 == "" {
		return 0
	}

	score := 0.0
	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		score = containmentScore
	} else {
		score = max(tokenOverlap(s1, s2), positionalRatio(s1, s2))
	}

	if boost, ok := familyBoost(s1, s2); ok && boost > score {
		score = boost
	}

	return score
}

// FindBestOption scores every non-placeholder option against target and returns
// the highest scoring one. The first option wins ties. It reports false when no
// option reaches MinOptionScore.
func FindBestOption(options []string, target string) (Match, bool) {
	if strings.TrimSpace(target) == "" {
		return Match{}, false
	}

	best := Match{Index: -1}
	for i, option := range options {
		if IsPlaceholder(option) {
			continue
		}

		score := StringSimilarity(option, target)
		if best.Index == -1 || score > best.Score {
			best = Match{Option: option, Index: i, Score: score}
		}
	}

	if best.Index == -1 || best.Score < MinOptionScore {
		return Match{}, false
	}

	return best, true
}

var placeholders = map[string]struct{}{
	"":                 {},
	"select":           {},
	"select...":        {},
	"select one":       {},
	"select one...":    {},
	"select an option": {},
	"choose":           {},
	"choose...":        {},
	"choose one":       {},
	"choose one...":    {},
	"choose an option": {},
	"please select":    {},
	"please select...": {},
	"--":               {},
	"-":                {},
}

// IsPlaceholder reports whether option looks like a "please choose" prompt rather than a real answer.
func IsPlaceholder(option string) bool {
	normalized := normalize(option)
	if _, ok := placeholders[normalized]; ok {
		return true
	}
	return strings.HasPrefix(normalized, "--")
}

// FirstRealOption returns the first option that is not a placeholder.
func FirstRealOption(options []string) (string, bool) {
	for _, option := range options {
		if !IsPlaceholder(option) {
			return option, true
		}
	}
	return "", false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func tokens(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	result := fields[:0]
	for _, field := range fields {
		if len([]rune(field)) >= minTokenLength {
			result = append(result, field)
		}
	}
	return result
}

// tokenOverlap is the share of the shorter string's tokens that have a
// counterpart in the longer one, where one token contains the other.
func tokenOverlap(s1, s2 string) float64 {
	shorter, longer := s1, s2
	if len(s2) < len(s1) {
		shorter, longer = s2, s1
	}

	short := tokens(shorter)
	if len(short) == 0 {
		return 0
	}
	long := tokens(longer)

	matched := 0
	for _, st := range short {
		for _, lt := range long {
			if strings.Contains(st, lt) || strings.Contains(lt, st) {
				matched++
				break
			}
		}
	}

	return float64(matched) / float64(len(short))
}

// positionalRatio counts equal runes at equal positions over the shared
// prefix length and divides by the longer length.
func positionalRatio(s1, s2 string) float64 {
	r1 := []rune(s1)
	r2 := []rune(s2)

	shared := min(len(r1), len(r2))
	longest := max(len(r1), len(r2))
	if longest == 0 {
		return 0
	}

	matches := 0
	for i := 0; i < shared; i++ {
		if r1[i] == r2[i] {
			matches++
		}
	}

	return float64(matches) / float64(longest)
}
