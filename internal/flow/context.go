// Package flow implements the guided four-step state machine behind the two
// analysis flows: upload, context collection, processing, results.
package flow

import "strings"

// WizardPage tracks which selection page of the review context wizard is
// showing.
type WizardPage int

const (
	PageCategory WizardPage = iota
	PageRole
	PageLevel
)

func (p WizardPage) String() string {
	switch p {
	case PageCategory:
		return "category"
	case PageRole:
		return "role"
	case PageLevel:
		return "level"
	default:
		return "unknown"
	}
}

func (p WizardPage) Title() string {
	switch p {
	case PageCategory:
		return "Select Domain"
	case PageRole:
		return "Specific Role"
	case PageLevel:
		return "Experience Level"
	default:
		return ""
	}
}

// ReviewContext holds the wizard selections for the review flow. All fields
// are optional on the wire; an empty selection is simply omitted from the
// request.
type ReviewContext struct {
	Category string
	Role     string
	Level    string
}

// MatcherContext holds the pasted job description for the matcher flow.
type MatcherContext struct {
	JobDescription string
}

// MinJobDescriptionWords is the submission threshold for the matcher's job
// description field.
const MinJobDescriptionWords = 100

// WordCount counts whitespace-separated tokens, discarding empty ones.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ExperienceLevel pairs a level label with its rough years-of-experience
// band for display.
type ExperienceLevel struct {
	Label string
	Years string
}

var categories = []string{
	"Software Engineering",
	"Business & Finance",
	"Design & Creative",
	"Marketing & Comms",
	"Education & Research",
}

var rolesByCategory = map[string][]string{
	"Software Engineering": {
		"General Software Engineering", "Frontend Engineering", "Mobile Engineering",
		"DevOps Engineering", "Backend Engineering", "Full-Stack Engineering",
		"Data Engineering", "ML/AI Engineering",
	},
	"Business & Finance":   {"Financial Analyst", "Accountant", "Investment Banker", "Business Analyst"},
	"Design & Creative":    {"Product Designer", "Graphic Designer", "UX Researcher", "Art Director"},
	"Marketing & Comms":    {"Marketing Manager", "Content Strategist", "SEO Specialist"},
	"Education & Research": {"Researcher", "Professor", "Lecturer"},
}

var experienceLevels = []ExperienceLevel{
	{Label: "Intern"},
	{Label: "Entry", Years: "0-2y"},
	{Label: "Mid", Years: "3-5y"},
	{Label: "Senior", Years: "6-10y"},
	{Label: "Staff+", Years: "10y+"},
}

// Categories returns the selectable job domains in display order.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// RolesFor returns the roles offered for category, falling back to the
// software engineering list for unknown categories.
func RolesFor(category string) []string {
	roles, ok := rolesByCategory[category]
	if !ok {
		roles = rolesByCategory["Software Engineering"]
	}
	out := make([]string, len(roles))
	copy(out, roles)
	return out
}

// Levels returns the selectable experience levels in display order.
func Levels() []ExperienceLevel {
	out := make([]ExperienceLevel, len(experienceLevels))
	copy(out, experienceLevels)
	return out
}
