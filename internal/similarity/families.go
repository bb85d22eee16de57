package similarity

import (
	"regexp"
	"strings"
)

// family groups canonical phrasings of one short answer. Generic overlap
// scoring under-weights these, so two strings in the same family are boosted.
type family struct {
	name  string
	boost float64
	match func(s string) bool
}

var (
	reMale        = regexp.MustCompile(`\b(male|man)\b`)
	reFemale      = regexp.MustCompile(`\b(female|woman)\b`)
	reNegation    = regexp.MustCompile(`\b(no|not|non|don't|dont|do not|without)\b|\bnon-`)
	reBlack       = regexp.MustCompile(`\bblack\b|african american`)
	reWhite       = regexp.MustCompile(`\bwhite\b|caucasian`)
	reAsian       = regexp.MustCompile(`\basian\b`)
	reHispanic    = regexp.MustCompile(`hispanic|latin[oax]`)
	reDecline     = regexp.MustCompile(`decline|prefer not|do not wish|don't wish|choose not|not to (say|answer|disclose|self-identify)`)
	reYesStart    = regexp.MustCompile(`^yes\b`)
	reNoStart     = regexp.MustCompile(`^no\b`)
	reNonVeteran  = regexp.MustCompile(`\b(not|non|no)\b[^.]*veteran|non-?veteran`)
	reNoDisabilty = regexp.MustCompile(`\b(no|not|don't|dont|do not|without)\b[^.]*disabilit`)
)

var families = []family{
	{name: "decline", boost: 0.95, match: func(s string) bool { return reDecline.MatchString(s) }},
	{name: "male", boost: 0.95, match: func(s string) bool { return reMale.MatchString(s) && !reFemale.MatchString(s) }},
	{name: "female", boost: 0.95, match: func(s string) bool { return reFemale.MatchString(s) && !reMale.MatchString(s) }},
	{name: "not_veteran", boost: 0.95, match: func(s string) bool { return reNonVeteran.MatchString(s) }},
	{name: "veteran", boost: 0.9, match: func(s string) bool {
		return strings.Contains(s, "veteran") && !reNonVeteran.MatchString(s) && !reDecline.MatchString(s)
	}},
	{name: "no_disability", boost: 0.95, match: func(s string) bool { return reNoDisabilty.MatchString(s) }},
	{name: "disability", boost: 0.9, match: func(s string) bool {
		return strings.Contains(s, "disabilit") && !reNoDisabilty.MatchString(s) && !reDecline.MatchString(s)
	}},
	{name: "black", boost: 0.95, match: func(s string) bool { return reBlack.MatchString(s) }},
	{name: "white", boost: 0.95, match: func(s string) bool { return reWhite.MatchString(s) }},
	{name: "asian", boost: 0.95, match: func(s string) bool { return reAsian.MatchString(s) }},
	{name: "not_hispanic", boost: 0.95, match: func(s string) bool { return reHispanic.MatchString(s) && reNegation.MatchString(s) }},
	{name: "hispanic", boost: 0.95, match: func(s string) bool { return reHispanic.MatchString(s) && !reNegation.MatchString(s) }},
	{name: "yes", boost: 0.9, match: func(s string) bool { return reYesStart.MatchString(s) }},
	{name: "no", boost: 0.9, match: func(s string) bool { return reNoStart.MatchString(s) }},
}

// familyBoost returns the highest boost of any family both strings belong to.
// Inputs are already normalized.
func familyBoost(s1, s2 string) (float64, bool) {
	boost, found := 0.0, false
	for _, f := range families {
		if f.match(s1) && f.match(s2) && f.boost > boost {
			boost = f.boost
			found = true
		}
	}
	return boost, found
}
