// Package profile holds the applicant facts used to fill forms.
//
// Every attribute is optional. A nil pointer means "not provided" and must
// never be replaced by a guessed default; a pointer to an empty string means
// the applicant explicitly left it blank.
package profile

import (
	"strings"
)

// Profile is everything known about the applicant, grouped by domain.
type Profile struct {
	Identity      Identity      `yaml:"identity"`
	Contact       Contact       `yaml:"contact"`
	Links         Links         `yaml:"links"`
	Education     Education     `yaml:"education"`
	Work          Work          `yaml:"work"`
	Demographics  Demographics  `yaml:"demographics"`
	Authorization Authorization `yaml:"authorization"`
	Answers       Answers       `yaml:"answers"`
}

// Identity holds how the applicant is named and addressed.
type Identity struct {
	FirstName     *string `yaml:"first-name"`
	LastName      *string `yaml:"last-name"`
	PreferredName *string `yaml:"preferred-name"`
	Pronouns      *string `yaml:"pronouns"`
}

// Contact holds ways to reach the applicant and where they live.
type Contact struct {
	Email      *string `yaml:"email"`
	Phone      *string `yaml:"phone"`
	Address    *string `yaml:"address"`
	City       *string `yaml:"city"`
	State      *string `yaml:"state"`
	PostalCode *string `yaml:"postal-code"`
	Country    *string `yaml:"country"`
}

// Links are public profile URLs.
type Links struct {
	LinkedIn  *string `yaml:"linkedin"`
	GitHub    *string `yaml:"github"`
	Portfolio *string `yaml:"portfolio"`
}

// Education describes the applicant's highest or most relevant degree.
type Education struct {
	School         *string `yaml:"school"`
	Degree         *string `yaml:"degree"`
	Major          *string `yaml:"major"`
	GraduationYear *string `yaml:"graduation-year"`
	GPA            *string `yaml:"gpa"`
}

// Work holds the current position and job expectations.
type Work struct {
	CurrentCompany    *string `yaml:"current-company"`
	CurrentTitle      *string `yaml:"current-title"`
	YearsOfExperience *string `yaml:"years-of-experience"`
	SalaryExpectation *string `yaml:"salary-expectation"`
	StartDate         *string `yaml:"start-date"`
	NoticePeriod      *string `yaml:"notice-period"`
}

// Demographics are voluntary self-identification answers.
type Demographics struct {
	Gender     *string `yaml:"gender"`
	Race       *string `yaml:"race"`
	Hispanic   *bool   `yaml:"hispanic"`
	Veteran    *string `yaml:"veteran"`
	Disability *string `yaml:"disability"`
}

// Authorization holds yes/no eligibility facts.
type Authorization struct {
	AuthorizedToWork    *bool `yaml:"authorized-to-work"`
	RequiresSponsorship *bool `yaml:"requires-sponsorship"`
	WillingToRelocate   *bool `yaml:"willing-to-relocate"`
	Over18              *bool `yaml:"over-18"`
}

// Answers are free-text responses the applicant wrote in advance.
type Answers struct {
	WhyInterested  *string `yaml:"why-interested"`
	AdditionalInfo *string `yaml:"additional-info"`
	CoverLetter    *string `yaml:"cover-letter"`
	ReferralSource *string `yaml:"referral-source"`
	// Custom maps a question fragment to a prepared answer.
	Custom []CustomAnswer `yaml:"custom"`
}

// CustomAnswer is a prepared answer for questions containing Question.
type CustomAnswer struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Text returns the trimmed value and whether it was provided and non-blank.
func Text(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	v := strings.TrimSpace(*s)
	return v, v != ""
}

// Flag returns the boolean and whether it was provided.
func Flag(b *bool) (bool, bool) {
	if b == nil {
		return false, false
	}
	return *b, true
}

// String returns a pointer to s. It is a helper for building profiles in code.
func String(s string) *string { return &s }

// Bool returns a pointer to b. It is a helper for building profiles in code.
func Bool(b bool) *bool { return &b }

// FullName joins the first and last name when both are known.
func (p *Profile) FullName() (string, bool) {
	first, okFirst := Text(p.Identity.FirstName)
	last, okLast := Text(p.Identity.LastName)
	if !okFirst || !okLast {
		return "", false
	}
	return first + " " + last, true
}

// CustomAnswer returns the first prepared answer whose question occurs in text.
func (p *Profile) CustomAnswer(text string) (string, bool) {
	text = strings.ToLower(text)
	for _, c := range p.Answers.Custom {
		question := strings.ToLower(strings.TrimSpace(c.Question))
		answer := strings.TrimSpace(c.Answer)
		if question == "" || answer == "" {
			continue
		}
		if strings.Contains(text, question) {
			return answer, true
		}
	}
	return "", false
}
