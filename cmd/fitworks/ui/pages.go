package ui

import (
	"fmt"
	"strings"
)

// Static page content for the marketing and informational views. These
// screens carry no state; the interactive flows live in the app package.

// Landing renders the marketing hero.
func Landing() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("The Only Free Resume Helper You'll Ever Need"))
	b.WriteString("\n\n")
	b.WriteString(BodyStyle.Render(
		"Build ATS-optimized resumes that pass screening systems and let AI\ncraft compelling bullet points from your experience."))
	b.WriteString("\n\n")
	b.WriteString(SubScoreBar("ATS Pass Rate", 9))
	b.WriteString("\n")
	b.WriteString(SubScoreBar("Keyword Coverage", 8))
	b.WriteString("\n")
	b.WriteString(SubScoreBar("Recruiter Readability", 9))
	b.WriteString("\n\n")
	b.WriteString(SuccessStyle.Render("Get Started Free") + HintStyle.Render("  (press d for the dashboard)"))
	return b.String()
}

// Dashboard renders the signed-in home screen.
func Dashboard(name string) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Hey, %s", name)))
	b.WriteString("\n\n")
	b.WriteString(BodyStyle.Render("What are we working on today?"))
	b.WriteString("\n\n")

	cards := []struct {
		key, title, desc string
	}{
		{"r", "AI Review", "Upload your resume and get an ATS score with targeted fixes."},
		{"m", "ResuMatcher", "Match your resume against a job description."},
		{"t", "Templates", "Download battle-tested resume templates."},
	}
	for _, card := range cards {
		b.WriteString(CardStyle.Render(
			SelectedItemStyle.Render(card.key) + "  " +
				AccentStyle.Render(card.title) + "\n" +
				BodyStyle.Render(card.desc)))
		b.WriteString("\n")
	}
	return b.String()
}

// Template describes one downloadable resume template.
type Template struct {
	Title string
	File  string
}

// Templates returns the built-in template catalog.
func Templates() []Template {
	return []Template{
		{Title: "Classic Executive", File: "/templates/jakes-resume.pdf"},
		{Title: "Modern Professional", File: "/templates/faangpath-simple-template.pdf"},
	}
}

// TemplatesPage renders the template catalog.
func TemplatesPage() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Resume Templates"))
	b.WriteString("\n")
	b.WriteString(BodyStyle.Render("Universally accepted by 99% of companies worldwide."))
	b.WriteString("\n\n")
	for _, tpl := range Templates() {
		b.WriteString(CardStyle.Render(
			AccentStyle.Render(tpl.Title) + "\n" +
				HintStyle.Render(tpl.File)))
		b.WriteString("\n")
	}
	return b.String()
}

// Support renders the donation and contact screen.
func Support() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Support FitForWorks"))
	b.WriteString("\n\n")
	b.WriteString(BodyStyle.Render("FitForWorks is free and always will be. If it helped you land an\ninterview, consider buying me a coffee."))
	b.WriteString("\n\n")
	b.WriteString(HintStyle.Render("Connect with me"))
	b.WriteString("\n")
	b.WriteString(BodyStyle.Render("  GitHub    https://github.com/jayesh-cmd"))
	b.WriteString("\n")
	b.WriteString(BodyStyle.Render("  LinkedIn  https://www.linkedin.com/in/cmd-jayesh"))
	b.WriteString("\n")
	b.WriteString(BodyStyle.Render("  YouTube   https://youtube.com/@jey_script"))
	b.WriteString("\n\n")
	b.WriteString(HintStyle.Render("Built for job seekers who want to stand out."))
	return b.String()
}
