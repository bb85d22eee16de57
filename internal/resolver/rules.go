package resolver

import (
	"regexp"
	"slices"

	"github.com/spigell/hh-autofill/internal/form"
	"github.com/spigell/hh-autofill/internal/profile"
)

// Accessor reads one attribute from a profile. It reports false when the
// attribute is unknown or blank.
type Accessor func(p *profile.Profile) (form.Value, bool)

// Rule maps fields whose text matches Pattern to a profile attribute.
// An empty Kinds list applies to every kind except checkbox.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Kinds   []form.Kind
	Value   Accessor
}

// Applies reports whether the rule handles a field of the given kind.
func (r Rule) Applies(kind form.Kind) bool {
	if len(r.Kinds) == 0 {
		return kind != form.KindCheckbox
	}
	return slices.Contains(r.Kinds, kind)
}

// Matches reports whether the rule applies to the field.
func (r Rule) Matches(f form.Field) bool {
	return r.Applies(f.Kind) && r.Pattern.MatchString(f.Haystack())
}

func text(get func(p *profile.Profile) *string) Accessor {
	return func(p *profile.Profile) (form.Value, bool) {
		v, ok := profile.Text(get(p))
		return form.Text(v), ok
	}
}

func flag(get func(p *profile.Profile) *bool) Accessor {
	return func(p *profile.Profile) (form.Value, bool) {
		v, ok := profile.Flag(get(p))
		return form.Bool(v), ok
	}
}

func always(v form.Value) Accessor {
	return func(*profile.Profile) (form.Value, bool) { return v, true }
}

func fullName(p *profile.Profile) (form.Value, bool) {
	v, ok := p.FullName()
	return form.Text(v), ok
}

// statePattern matches "state" as a noun only, so "Please state your salary" is not a location question.
var statePattern = regexp.MustCompile(`^state\b|\b(which|what|home|your|current|residential)[\s_-]?state\b|\bstate[\s/_-]*(or[\s_-]*)?province|\bstate[\s_-]?of[\s_-]?residence|[_-]state\b|\bprovince\b`)

var anyKind = []form.Kind{form.KindInput, form.KindTextarea, form.KindSelect, form.KindRadio, form.KindCheckbox}

// DefaultRules is evaluated top to bottom and the first match wins, so
// specific patterns must precede generic ones ("first name" before "name").
var DefaultRules = []Rule{
	{
		Name:    "consent",
		Pattern: regexp.MustCompile(`\b(i agree|agree to|consent|acknowledge|i certify|i understand|terms|privacy policy|i confirm)`),
		Kinds:   []form.Kind{form.KindCheckbox},
		Value:   always(form.Bool(true)),
	},
	{Name: "referral_source", Pattern: regexp.MustCompile(`how did you (hear|find|learn)|referral[\s_-]?source|referred by`), Value: text(func(p *profile.Profile) *string { return p.Answers.ReferralSource })},
	{Name: "why_interested", Pattern: regexp.MustCompile(`why (are you|do you want|would you like)|interest(ed)? in (this|the|our)|motivat`), Kinds: []form.Kind{form.KindInput, form.KindTextarea}, Value: text(func(p *profile.Profile) *string { return p.Answers.WhyInterested })},
	{Name: "cover_letter", Pattern: regexp.MustCompile(`cover[\s_-]?letter`), Value: text(func(p *profile.Profile) *string { return p.Answers.CoverLetter })},
	{Name: "additional_info", Pattern: regexp.MustCompile(`additional[\s_-]?(info|information|comments)|anything else`), Value: text(func(p *profile.Profile) *string { return p.Answers.AdditionalInfo })},
	{Name: "sponsorship", Pattern: regexp.MustCompile(`sponsor`), Kinds: anyKind, Value: flag(func(p *profile.Profile) *bool { return p.Authorization.RequiresSponsorship })},
	{Name: "work_authorization", Pattern: regexp.MustCompile(`authori[sz]ed to work|legally (authori[sz]ed|eligible|able) to work|right to work|work authori[sz]ation`), Kinds: anyKind, Value: flag(func(p *profile.Profile) *bool { return p.Authorization.AuthorizedToWork })},
	{Name: "relocation", Pattern: regexp.MustCompile(`relocat`), Kinds: anyKind, Value: flag(func(p *profile.Profile) *bool { return p.Authorization.WillingToRelocate })},
	{Name: "over_18", Pattern: regexp.MustCompile(`18 years|over 18|at least 18|age of 18`), Kinds: anyKind, Value: flag(func(p *profile.Profile) *bool { return p.Authorization.Over18 })},
	{Name: "preferred_name", Pattern: regexp.MustCompile(`preferred[\s_-]?(first[\s_-]?)?name|nickname`), Value: text(func(p *profile.Profile) *string { return p.Identity.PreferredName })},
	{Name: "first_name", Pattern: regexp.MustCompile(`first[\s_-]?name|given[\s_-]?name|\bfname\b`), Value: text(func(p *profile.Profile) *string { return p.Identity.FirstName })},
	{Name: "last_name", Pattern: regexp.MustCompile(`last[\s_-]?name|family[\s_-]?name|surname|\blname\b`), Value: text(func(p *profile.Profile) *string { return p.Identity.LastName })},
	{Name: "pronouns", Pattern: regexp.MustCompile(`pronoun`), Value: text(func(p *profile.Profile) *string { return p.Identity.Pronouns })},
	{Name: "email", Pattern: regexp.MustCompile(`e-?mail`), Value: text(func(p *profile.Profile) *string { return p.Contact.Email })},
	{Name: "phone", Pattern: regexp.MustCompile(`phone|mobile|telephone|\btel\b`), Value: text(func(p *profile.Profile) *string { return p.Contact.Phone })},
	{Name: "linkedin", Pattern: regexp.MustCompile(`linkedin`), Value: text(func(p *profile.Profile) *string { return p.Links.LinkedIn })},
	{Name: "github", Pattern: regexp.MustCompile(`github`), Value: text(func(p *profile.Profile) *string { return p.Links.GitHub })},
	{Name: "portfolio", Pattern: regexp.MustCompile(`portfolio|personal[\s_-]?(web)?site|\bwebsite\b`), Value: text(func(p *profile.Profile) *string { return p.Links.Portfolio })},
	{Name: "postal_code", Pattern: regexp.MustCompile(`postal|zip[\s_-]?(code)?\b|postcode`), Value: text(func(p *profile.Profile) *string { return p.Contact.PostalCode })},
	{Name: "city", Pattern: regexp.MustCompile(`\bcity\b|\btown\b`), Value: text(func(p *profile.Profile) *string { return p.Contact.City })},
	{Name: "state", Pattern: statePattern, Value: text(func(p *profile.Profile) *string { return p.Contact.State })},
	{Name: "country", Pattern: regexp.MustCompile(`country`), Value: text(func(p *profile.Profile) *string { return p.Contact.Country })},
	{Name: "address", Pattern: regexp.MustCompile(`address|street`), Value: text(func(p *profile.Profile) *string { return p.Contact.Address })},
	{Name: "school", Pattern: regexp.MustCompile(`school|university|college|institution`), Value: text(func(p *profile.Profile) *string { return p.Education.School })},
	{Name: "major", Pattern: regexp.MustCompile(`\bmajor\b|field[\s_-]?of[\s_-]?study|discipline`), Value: text(func(p *profile.Profile) *string { return p.Education.Major })},
	{Name: "graduation_year", Pattern: regexp.MustCompile(`graduat`), Value: text(func(p *profile.Profile) *string { return p.Education.GraduationYear })},
	{Name: "gpa", Pattern: regexp.MustCompile(`\bgpa\b|grade[\s_-]?point`), Value: text(func(p *profile.Profile) *string { return p.Education.GPA })},
	{Name: "degree", Pattern: regexp.MustCompile(`\bdegree\b`), Value: text(func(p *profile.Profile) *string { return p.Education.Degree })},
	{Name: "current_company", Pattern: regexp.MustCompile(`current[\s_-]?(company|employer)|\bcompany\b|\bemployer\b`), Value: text(func(p *profile.Profile) *string { return p.Work.CurrentCompany })},
	{Name: "current_title", Pattern: regexp.MustCompile(`current[\s_-]?(job[\s_-]?)?(title|role|position)|job[\s_-]?title`), Value: text(func(p *profile.Profile) *string { return p.Work.CurrentTitle })},
	{Name: "years_of_experience", Pattern: regexp.MustCompile(`years[\s_-]?of[\s_-]?(professional[\s_-]?)?experience|experience[\s_-]?years`), Value: text(func(p *profile.Profile) *string { return p.Work.YearsOfExperience })},
	{Name: "salary", Pattern: regexp.MustCompile(`salary|compensation|pay[\s_-]?expectation`), Value: text(func(p *profile.Profile) *string { return p.Work.SalaryExpectation })},
	{Name: "notice_period", Pattern: regexp.MustCompile(`notice[\s_-]?period`), Value: text(func(p *profile.Profile) *string { return p.Work.NoticePeriod })},
	{Name: "start_date", Pattern: regexp.MustCompile(`start[\s_-]?date|when can you start|earliest start|availability`), Value: text(func(p *profile.Profile) *string { return p.Work.StartDate })},
	{Name: "gender", Pattern: regexp.MustCompile(`\bgender\b|\bsex\b`), Value: text(func(p *profile.Profile) *string { return p.Demographics.Gender })},
	{Name: "veteran", Pattern: regexp.MustCompile(`veteran`), Value: text(func(p *profile.Profile) *string { return p.Demographics.Veteran })},
	{Name: "disability", Pattern: regexp.MustCompile(`disabilit`), Value: text(func(p *profile.Profile) *string { return p.Demographics.Disability })},
	{Name: "full_name", Pattern: regexp.MustCompile(`full[\s_-]?name|^name$|^your name$|legal[\s_-]?name`), Value: fullName},
}
