package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fitforworks/cmd/fitworks/ui"
	"fitforworks/internal/analysis"
	"fitforworks/internal/flow"
	"fitforworks/internal/nav"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "\n  " + m.spin.View() + ui.BodyStyle.Render(" Restoring your session...") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.authPrompt {
		b.WriteString(m.renderAuthPrompt())
	} else if ctrl := m.activeFlow(); ctrl != nil {
		b.WriteString(m.renderFlow(ctrl))
	} else {
		b.WriteString(m.renderStaticView())
	}

	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(ui.NoticeStyle.Render(m.notice))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderHeader() string {
	brand := ui.TitleStyle.Render("FitForWorks")
	view := ui.BodyStyle.Render(" / " + m.deps.Nav.Current().Title())

	var who string
	if session := m.deps.Session.Session(); session.User != nil {
		who = ui.SuccessStyle.Render(session.User.DisplayName())
	} else {
		who = ui.HintStyle.Render("guest")
	}

	left := brand + view
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(who)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + who
}

func (m *Model) renderStaticView() string {
	switch m.deps.Nav.Current() {
	case nav.ViewDashboard:
		name := "there"
		if s := m.deps.Session.Session(); s.User != nil {
			name = firstName(s.User.DisplayName())
		}
		return ui.Dashboard(name)
	case nav.ViewTemplates:
		return ui.TemplatesPage()
	case nav.ViewSupport:
		return ui.Support()
	default:
		return ui.Landing()
	}
}

func (m *Model) renderAuthPrompt() string {
	body := ui.TitleStyle.Render("Sign in to continue") + "\n\n" +
		ui.BodyStyle.Render("This area needs an account. Sign in with Google to\nanalyze your resume and track your progress.") + "\n\n"
	if m.signingIn {
		body += m.spin.View() + ui.BodyStyle.Render(" Waiting for the browser sign-in to finish...")
	} else {
		body += ui.KeyHints("enter", "sign in with Google", "esc", "not now")
	}
	return ui.CardStyle.Render(body)
}

func (m *Model) renderFlow(ctrl *flow.Controller) string {
	switch ctrl.Step() {
	case flow.StepUpload:
		return m.renderUpload(ctrl)
	case flow.StepContext:
		if ctrl.Kind() == analysis.KindMatcher {
			return m.renderJobDescription(ctrl)
		}
		return m.renderWizard(ctrl)
	case flow.StepProcessing:
		return m.renderProcessing(ctrl)
	case flow.StepResults:
		return m.renderResults(ctrl)
	}
	return ""
}

func (m *Model) renderUpload(ctrl *flow.Controller) string {
	title := "Upload Your Resume"
	if ctrl.Kind() == analysis.KindMatcher {
		title = "Upload the Resume to Match"
	}

	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(ui.HintStyle.Render("Accepted formats: .pdf, .docx, .txt"))
	b.WriteString("\n\n")
	b.WriteString(m.pathInput.View())
	return ui.CardStyle.Render(b.String())
}

func (m *Model) renderWizard(ctrl *flow.Controller) string {
	page := ctrl.Page()

	var b strings.Builder
	b.WriteString(ui.AccentStyle.Render(fmt.Sprintf("STEP 0%d", int(page)+1)))
	b.WriteString("  ")
	b.WriteString(renderDocumentLine(ctrl))
	b.WriteString("\n")
	b.WriteString(ui.TitleStyle.Render(page.Title()))
	b.WriteString("\n\n")

	if page == flow.PageLevel {
		var items []string
		for _, lvl := range flow.Levels() {
			label := lvl.Label
			if lvl.Years != "" {
				label += ui.HintStyle.Render("  " + lvl.Years)
			}
			items = append(items, label)
		}
		b.WriteString(ui.SelectList(items, m.cursor))
	} else {
		b.WriteString(ui.SelectList(m.wizardItems(ctrl), m.cursor))
	}
	return b.String()
}

func (m *Model) renderJobDescription(ctrl *flow.Controller) string {
	count := ctrl.JobWordCount()
	counter := fmt.Sprintf("%d / %d words", count, flow.MinJobDescriptionWords)
	if ctrl.CanSubmitJobDescription() {
		counter = ui.SuccessStyle.Render(counter + "  ready to match")
	} else {
		counter = ui.HintStyle.Render(counter)
	}

	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render("Paste the Job Description"))
	b.WriteString("  ")
	b.WriteString(renderDocumentLine(ctrl))
	b.WriteString("\n\n")
	b.WriteString(m.jdInput.View())
	b.WriteString("\n")
	b.WriteString(counter)
	return b.String()
}

func (m *Model) renderProcessing(ctrl *flow.Controller) string {
	what := "Analyzing your resume..."
	if ctrl.Kind() == analysis.KindMatcher {
		what = "Matching your resume against the job description..."
	}
	return "\n  " + m.spin.View() + ui.BodyStyle.Render(" "+what) + "\n\n  " +
		ui.HintStyle.Render("This usually takes under a minute.")
}

func (m *Model) renderResults(ctrl *flow.Controller) string {
	result, ok := ctrl.Result()
	if !ok {
		return ""
	}
	if result.Kind == analysis.KindMatcher {
		return m.renderMatchResults(result)
	}
	return m.renderReviewResults(result)
}

func (m *Model) renderReviewResults(r analysis.DisplayResult) string {
	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render("ATS Review"))
	b.WriteString("  ")
	b.WriteString(ui.AccentStyle.Render(r.StatusLabel))
	b.WriteString("\n\n")
	b.WriteString(ui.ScoreBar(r.Score, 30, "ATS score"))
	b.WriteString("\n")
	b.WriteString(ui.ScoreBar(r.PotentialScore, 30, "potential after fixes"))
	b.WriteString("\n\n")

	if r.DomainMismatch && r.DomainMismatchAdvice != "" {
		b.WriteString(ui.NoticeStyle.Render(r.DomainMismatchAdvice))
		b.WriteString("\n\n")
	}

	b.WriteString(ui.BodyStyle.Render(r.Summary))
	b.WriteString("\n\n")

	b.WriteString(ui.HeaderStyle.Render("Score Breakdown"))
	b.WriteString("\n")
	b.WriteString(ui.SubScoreBar("Content Quality", r.Breakdown.ContentQuality))
	b.WriteString("\n")
	b.WriteString(ui.SubScoreBar("ATS Structure", r.Breakdown.ATSStructure))
	b.WriteString("\n")
	b.WriteString(ui.SubScoreBar("Job Optimization", r.Breakdown.JobOptimization))
	b.WriteString("\n")
	b.WriteString(ui.SubScoreBar("Writing Quality", r.Breakdown.WritingQuality))
	b.WriteString("\n")
	b.WriteString(ui.SubScoreBar("Application Ready", r.Breakdown.ApplicationReady))
	b.WriteString("\n\n")

	b.WriteString(ui.HeaderStyle.Render("Strengths"))
	b.WriteString("\n")
	b.WriteString(ui.BulletList(r.Strengths))
	b.WriteString("\n\n")
	b.WriteString(ui.HeaderStyle.Render("Improvements"))
	b.WriteString("\n")
	b.WriteString(ui.BulletList(r.Improvements))

	if len(r.DetailedImprovements) > 0 {
		b.WriteString("\n\n")
		b.WriteString(ui.HeaderStyle.Render("Targeted Rewrites"))
		for _, d := range r.DetailedImprovements {
			b.WriteString("\n")
			b.WriteString(ui.AccentStyle.Render(d.Section) + ui.BodyStyle.Render(": "+d.Item))
			if d.SuggestedText != "" {
				b.WriteString("\n" + ui.SuccessStyle.Render("  suggested: ") + ui.BodyStyle.Render(d.SuggestedText))
			}
		}
	}

	b.WriteString("\n\n")
	b.WriteString(ui.HintStyle.Render("GitHub: " + r.GithubFeedback))
	return b.String()
}

func (m *Model) renderMatchResults(r analysis.DisplayResult) string {
	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render("Match Report"))
	b.WriteString("  ")
	b.WriteString(ui.AccentStyle.Render(r.StatusLabel))
	b.WriteString("\n\n")
	b.WriteString(ui.ScoreBar(r.Score, 30, "match score"))
	b.WriteString("\n")
	b.WriteString(ui.ScoreBar(r.PotentialScore, 30, "potential"))
	b.WriteString("\n\n")

	b.WriteString(ui.BodyStyle.Render(r.Recommendation))
	b.WriteString("\n\n")

	width := m.width - 4
	if width < 40 {
		width = 40
	}
	b.WriteString(ui.HeaderStyle.Render("Matching Keywords"))
	b.WriteString("\n")
	b.WriteString(ui.Chips(r.MatchingKeywords, ui.ChipStyle, width))
	b.WriteString("\n\n")
	b.WriteString(ui.HeaderStyle.Render("Missing Keywords"))
	b.WriteString("\n")
	b.WriteString(ui.Chips(r.MissingKeywords, ui.MissingChipStyle, width))
	b.WriteString("\n\n")
	b.WriteString(ui.HeaderStyle.Render("Improvements"))
	b.WriteString("\n")
	b.WriteString(ui.BulletList(r.Improvements))
	return b.String()
}

func (m *Model) renderFooter() string {
	if m.authPrompt {
		return ""
	}
	if ctrl := m.activeFlow(); ctrl != nil {
		switch ctrl.Step() {
		case flow.StepUpload:
			return ui.KeyHints("enter", "upload", "esc", "dashboard")
		case flow.StepContext:
			if ctrl.Kind() == analysis.KindMatcher {
				return ui.KeyHints("ctrl+s", "match", "esc", "back")
			}
			return ui.KeyHints("↑/↓", "choose", "enter", "select", "esc", "back")
		case flow.StepResults:
			return ui.KeyHints("n", "new analysis", "esc", "dashboard", "q", "quit")
		}
		return ""
	}
	hints := []string{
		"h", "home", "d", "dashboard", "r", "review", "m", "matcher",
		"t", "templates", "s", "support", "[ ]", "back/forward",
	}
	if m.deps.Session.IsAuthenticated() {
		hints = append(hints, "x", "sign out")
	}
	hints = append(hints, "q", "quit")
	return ui.KeyHints(hints...)
}

// renderDocumentLine names the accepted resume and its extracted word count.
func renderDocumentLine(ctrl *flow.Controller) string {
	doc := ctrl.Document()
	if doc == nil {
		return ""
	}
	return ui.HintStyle.Render(fmt.Sprintf("%s · %d words", doc.Name, doc.Words))
}

// firstName trims a display name to its first word, the way the dashboard
// greets users.
func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}
