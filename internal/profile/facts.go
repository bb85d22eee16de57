package profile

// NotProvided is the placeholder shown to a model for an unknown fact.
const NotProvided = "Not provided"

// Fact is one labeled profile attribute as it is presented to a model.
type Fact struct {
	Label string
	Value string
}

// Facts lists the attributes relevant to form filling in a stable order.
// Unknown attributes are kept and marked NotProvided so a model cannot assume a default.
func (p *Profile) Facts() []Fact {
	facts := []Fact{
		textFact("First name", p.Identity.FirstName),
		textFact("Last name", p.Identity.LastName),
		textFact("Preferred name", p.Identity.PreferredName),
		textFact("Pronouns", p.Identity.Pronouns),
		textFact("Email", p.Contact.Email),
		textFact("Phone", p.Contact.Phone),
		textFact("City", p.Contact.City),
		textFact("State", p.Contact.State),
		textFact("Country", p.Contact.Country),
		textFact("LinkedIn", p.Links.LinkedIn),
		textFact("GitHub", p.Links.GitHub),
		textFact("Portfolio", p.Links.Portfolio),
		textFact("School", p.Education.School),
		textFact("Degree", p.Education.Degree),
		textFact("Major", p.Education.Major),
		textFact("Graduation year", p.Education.GraduationYear),
		textFact("Current company", p.Work.CurrentCompany),
		textFact("Current title", p.Work.CurrentTitle),
		textFact("Years of experience", p.Work.YearsOfExperience),
		textFact("Salary expectation", p.Work.SalaryExpectation),
		textFact("Earliest start date", p.Work.StartDate),
		textFact("Notice period", p.Work.NoticePeriod),
		flagFact("Authorized to work", p.Authorization.AuthorizedToWork),
		flagFact("Requires visa sponsorship", p.Authorization.RequiresSponsorship),
		flagFact("Willing to relocate", p.Authorization.WillingToRelocate),
		flagFact("At least 18 years old", p.Authorization.Over18),
		textFact("Gender", p.Demographics.Gender),
		textFact("Race/ethnicity", p.Demographics.Race),
		flagFact("Hispanic or Latino", p.Demographics.Hispanic),
		textFact("Veteran status", p.Demographics.Veteran),
		textFact("Disability status", p.Demographics.Disability),
	}

	for _, c := range p.Answers.Custom {
		facts = append(facts, Fact{Label: "Prepared answer to \"" + c.Question + "\"", Value: c.Answer})
	}

	return facts
}

func textFact(label string, s *string) Fact {
	if s == nil {
		return Fact{Label: label, Value: NotProvided}
	}
	if v, ok := Text(s); ok {
		return Fact{Label: label, Value: v}
	}
	return Fact{Label: label, Value: "(left blank by the applicant)"}
}

func flagFact(label string, b *bool) Fact {
	v, ok := Flag(b)
	if !ok {
		return Fact{Label: label, Value: NotProvided}
	}
	if v {
		return Fact{Label: label, Value: "Yes"}
	}
	return Fact{Label: label, Value: "No"}
}
