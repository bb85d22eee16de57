package resolver

import (
	"regexp"
	"strings"

	"github.com/spigell/hh-autofill/internal/form"
	"github.com/spigell/hh-autofill/internal/profile"
)

// Category derives option candidates from a profile for labels of one
// semantic category. Only the label is consulted, never the name or id.
type Category struct {
	Name    string
	Pattern *regexp.Regexp
	Value   func(p *profile.Profile) []string
}

func yesNo(b *bool) []string {
	v, ok := profile.Flag(b)
	if !ok {
		return nil
	}
	if v {
		return []string{"Yes"}
	}
	return []string{"No"}
}

func texts(values ...*string) []string {
	var out []string
	for _, s := range values {
		if v, ok := profile.Text(s); ok {
			out = append(out, v)
		}
	}
	return out
}

// DefaultCategories is ordered: hispanic precedes race because such labels
// often mention ethnicity, and sponsorship precedes work authorization.
var DefaultCategories = []Category{
	{
		Name:    "hispanic",
		Pattern: regexp.MustCompile(`hispanic|latin[oax]`),
		Value: func(p *profile.Profile) []string {
			v, ok := profile.Flag(p.Demographics.Hispanic)
			switch {
			case !ok:
				return nil
			case v:
				return []string{"Hispanic or Latino", "Yes"}
			default:
				return []string{"Not Hispanic or Latino", "No"}
			}
		},
	},
	{Name: "race", Pattern: regexp.MustCompile(`\brace\b|ethnic`), Value: func(p *profile.Profile) []string { return texts(p.Demographics.Race) }},
	{Name: "gender", Pattern: regexp.MustCompile(`gender|\bsex\b|identify as`), Value: func(p *profile.Profile) []string { return texts(p.Demographics.Gender) }},
	{Name: "veteran", Pattern: regexp.MustCompile(`veteran|military|armed forces`), Value: func(p *profile.Profile) []string { return texts(p.Demographics.Veteran) }},
	{Name: "disability", Pattern: regexp.MustCompile(`disab|impairment`), Value: func(p *profile.Profile) []string { return texts(p.Demographics.Disability) }},
	{Name: "sponsorship", Pattern: regexp.MustCompile(`sponsor|visa`), Value: func(p *profile.Profile) []string { return yesNo(p.Authorization.RequiresSponsorship) }},
	{Name: "work_authorization", Pattern: regexp.MustCompile(`authori[sz]|eligib|legally|permit`), Value: func(p *profile.Profile) []string { return yesNo(p.Authorization.AuthorizedToWork) }},
	{Name: "relocation", Pattern: regexp.MustCompile(`relocat|move to`), Value: func(p *profile.Profile) []string { return yesNo(p.Authorization.WillingToRelocate) }},
	{Name: "over_18", Pattern: regexp.MustCompile(`\b18\b|legal age`), Value: func(p *profile.Profile) []string { return yesNo(p.Authorization.Over18) }},
	{Name: "degree", Pattern: regexp.MustCompile(`degree|education|qualification`), Value: func(p *profile.Profile) []string { return texts(p.Education.Degree) }},
	{Name: "country", Pattern: regexp.MustCompile(`country|nation`), Value: func(p *profile.Profile) []string { return texts(p.Contact.Country) }},
	{Name: "state", Pattern: regexp.MustCompile(statePattern.String() + `|\bregion\b`), Value: func(p *profile.Profile) []string { return texts(p.Contact.State) }},
}

// Matches reports whether the category applies to a field label.
func (c Category) Matches(f form.Field) bool {
	return c.Pattern.MatchString(strings.ToLower(f.Label))
}
