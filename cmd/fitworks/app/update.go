package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"fitforworks/internal/analysis"
	"fitforworks/internal/auth"
	"fitforworks/internal/document"
	"fitforworks/internal/flow"
	"fitforworks/internal/nav"
)

// signInTimeout bounds the interactive browser sign-in round trip.
const signInTimeout = 3 * time.Minute

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.jdInput.SetWidth(min(msg.Width-8, 90))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case sessionReadyMsg:
		m.ready = true
		view := m.deps.Nav.ResolveInitialView(msg.result.Fragment, msg.result.ForceDashboard)
		m.deps.Nav.Start(view)
		m.enterView(view)
		return m, textinput.Blink

	case authEventMsg:
		m.applyAuthEvent(msg.event)
		return m, m.waitAuthEvent()

	case signInDoneMsg:
		m.signingIn = false
		if msg.err != nil {
			m.notice = "Sign-in failed: " + msg.err.Error()
			return m, nil
		}
		// The signed_in event comes back through the auth stream, carrying
		// the interactive flag taken from the prompt state.
		m.deps.Provider.NotifySignedIn(msg.user, m.deps.Session.PromptOpen())
		return m, nil

	case analysisDoneMsg:
		if ctrl, ok := m.flows[msg.view]; ok {
			ctrl.CompleteProcessing(msg.req, msg.raw, msg.err)
			if msg.err != nil {
				m.notice = ctrl.LastError()
				ctrl.ClearError()
				m.resetFlowInputs()
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.updateInputs(msg)
}

// applyAuthEvent reacts to session transitions. The manager has already
// updated the session cell; here we only adjust navigation and the prompt.
func (m *Model) applyAuthEvent(ev auth.Event) {
	switch ev.Kind {
	case auth.EventSignedIn:
		// Passive restores keep the current view; only an interactive
		// sign-in redirects to the dashboard.
		if ev.Interactive {
			m.authPrompt = false
			m.deps.Session.SetPromptOpen(false)
			prev := m.deps.Nav.Current()
			if m.deps.Nav.Replace(nav.ViewDashboard) == nav.NavChanged {
				m.afterViewChange(prev)
			}
		}
	case auth.EventSignedOut:
		prev := m.deps.Nav.Current()
		if m.deps.Nav.Replace(nav.ViewLanding) == nav.NavChanged {
			m.afterViewChange(prev)
		}
	}
}

func (m *Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if k.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	if !m.ready {
		return m, nil
	}

	m.notice = ""

	if m.authPrompt {
		switch k.String() {
		case "enter", "s":
			if !m.signingIn {
				m.signingIn = true
				return m, m.signIn()
			}
		case "esc", "q":
			m.authPrompt = false
			m.deps.Session.SetPromptOpen(false)
		}
		return m, nil
	}

	if ctrl := m.activeFlow(); ctrl != nil {
		return m.handleFlowKey(ctrl, k)
	}

	switch k.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "h":
		m.navigateTo(nav.ViewLanding)
	case "d":
		m.navigateTo(nav.ViewDashboard)
	case "r":
		m.navigateTo(nav.ViewReview)
	case "m":
		m.navigateTo(nav.ViewMatcher)
	case "t":
		m.navigateTo(nav.ViewTemplates)
	case "s":
		m.navigateTo(nav.ViewSupport)
	case "[", "backspace":
		m.goBack()
	case "]":
		m.goForward()
	case "x":
		if m.deps.Session.IsAuthenticated() {
			return m, m.signOut()
		}
	}
	return m, nil
}

func (m *Model) handleFlowKey(ctrl *flow.Controller, k tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.deps.Nav.Current()

	switch ctrl.Step() {
	case flow.StepUpload:
		switch k.String() {
		case "esc":
			m.navigateTo(nav.ViewDashboard)
			return m, nil
		case "enter":
			m.acceptDocument(ctrl)
			return m, nil
		default:
			var cmd tea.Cmd
			m.pathInput, cmd = m.pathInput.Update(k)
			return m, cmd
		}

	case flow.StepContext:
		if ctrl.Kind() == analysis.KindMatcher {
			switch k.String() {
			case "esc":
				ctrl.WizardBack()
				m.pathInput.Focus()
				return m, nil
			case "ctrl+s":
				if err := ctrl.SubmitJobDescription(); err != nil {
					m.notice = err.Error()
					return m, nil
				}
				return m, m.startProcessing(view)
			default:
				var cmd tea.Cmd
				m.jdInput, cmd = m.jdInput.Update(k)
				_ = ctrl.SetJobDescription(m.jdInput.Value())
				return m, cmd
			}
		}
		return m.handleWizardKey(ctrl, view, k)

	case flow.StepResults:
		switch k.String() {
		case "n":
			ctrl.Restart()
			m.resetFlowInputs()
		case "esc", "d":
			m.navigateTo(nav.ViewDashboard)
		case "q":
			m.quitting = true
			return m, tea.Quit
		case "[", "backspace":
			m.goBack()
		}
		return m, nil
	}

	// Processing step: the spinner runs, keys are ignored.
	return m, nil
}

func (m *Model) handleWizardKey(ctrl *flow.Controller, view nav.ViewId, k tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.wizardItems(ctrl)

	switch k.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "esc":
		ctrl.WizardBack()
		m.cursor = 0
		if ctrl.Step() == flow.StepUpload {
			m.pathInput.Focus()
		}
	case "enter":
		if m.cursor >= len(items) {
			return m, nil
		}
		choice := items[m.cursor]
		m.cursor = 0
		switch ctrl.Page() {
		case flow.PageCategory:
			_ = ctrl.SelectCategory(choice)
		case flow.PageRole:
			_ = ctrl.SelectRole(choice)
		case flow.PageLevel:
			if err := ctrl.SelectLevel(choice); err == nil {
				return m, m.startProcessing(view)
			}
		}
	}
	return m, nil
}

// wizardItems returns the selection list for the wizard's current page.
func (m *Model) wizardItems(ctrl *flow.Controller) []string {
	switch ctrl.Page() {
	case flow.PageRole:
		return flow.RolesFor(ctrl.ReviewSelections().Category)
	case flow.PageLevel:
		levels := flow.Levels()
		items := make([]string, len(levels))
		for i, lvl := range levels {
			items[i] = lvl.Label
		}
		return items
	default:
		return flow.Categories()
	}
}

func (m *Model) acceptDocument(ctrl *flow.Controller) {
	path := strings.TrimSpace(m.pathInput.Value())
	if path == "" {
		m.notice = "Enter the path to your resume file."
		return
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	doc, err := document.Load(path)
	if err != nil {
		m.notice = err.Error()
		return
	}
	if err := ctrl.AcceptDocument(doc); err != nil {
		return
	}

	m.cursor = 0
	if ctrl.Kind() == analysis.KindMatcher {
		m.jdInput.Reset()
		m.jdInput.Focus()
	}
}

// startProcessing arms the one-shot analysis request for view. Re-entry
// while the request is in flight yields no command.
func (m *Model) startProcessing(view nav.ViewId) tea.Cmd {
	ctrl, ok := m.flows[view]
	if !ok {
		return nil
	}
	req, fire := ctrl.BeginProcessing()
	if !fire {
		return nil
	}

	client := m.deps.Client
	timeout := m.deps.Config.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var raw *analysis.RawResult
		var err error
		switch req.Kind {
		case analysis.KindMatcher:
			raw, err = client.Match(ctx, req.Key, req.Doc, req.JobDescription)
		default:
			raw, err = client.Analyze(ctx, req.Key, req.Doc, analysis.ReviewParams{
				Category: req.Review.Category,
				Role:     req.Review.Role,
				Level:    req.Review.Level,
			})
		}
		return analysisDoneMsg{view: view, req: req, raw: raw, err: err}
	}
}

func (m *Model) navigateTo(target nav.ViewId) {
	prev := m.deps.Nav.Current()
	switch m.deps.Nav.Navigate(target) {
	case nav.NavChanged:
		m.afterViewChange(prev)
	case nav.NavAuthRequired:
		m.authPrompt = true
		m.deps.Session.SetPromptOpen(true)
	}
}

func (m *Model) goBack() {
	prev := m.deps.Nav.Current()
	if _, ok := m.deps.Nav.Back(); ok {
		m.afterViewChange(prev)
	}
}

func (m *Model) goForward() {
	prev := m.deps.Nav.Current()
	if _, ok := m.deps.Nav.Forward(); ok {
		m.afterViewChange(prev)
	}
}

// afterViewChange reconciles flow instances with the view switch: the old
// view's instance dies with it, the new view gets a fresh one.
func (m *Model) afterViewChange(prev nav.ViewId) {
	cur := m.deps.Nav.Current()
	if prev == cur {
		return
	}
	if prev == nav.ViewReview || prev == nav.ViewMatcher {
		delete(m.flows, prev)
	}
	m.enterView(cur)
}

func (m *Model) enterView(view nav.ViewId) {
	switch view {
	case nav.ViewReview:
		if _, ok := m.flows[view]; !ok {
			m.flows[view] = flow.New(analysis.KindReview)
		}
		m.resetFlowInputs()
	case nav.ViewMatcher:
		if _, ok := m.flows[view]; !ok {
			m.flows[view] = flow.New(analysis.KindMatcher)
		}
		m.resetFlowInputs()
	}
}

func (m *Model) resetFlowInputs() {
	m.cursor = 0
	m.pathInput.Reset()
	m.pathInput.Focus()
	m.jdInput.Reset()
}

// signIn runs the interactive browser OAuth round trip off the render loop.
func (m *Model) signIn() tea.Cmd {
	provider := m.deps.Provider
	port := m.deps.Config.Auth.CallbackPort
	return func() tea.Msg {
		redirect := "http://localhost" + port + "/callback"
		if err := auth.OpenBrowser(provider.AuthorizeURL("google", redirect)); err != nil {
			return signInDoneMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), signInTimeout)
		defer cancel()

		payload, err := auth.WaitForCallback(ctx, port)
		if err != nil {
			return signInDoneMsg{err: err}
		}
		user, err := provider.ExchangeTokens(ctx, payload)
		return signInDoneMsg{user: user, err: err}
	}
}

// signOut revokes the session off the render loop. The signed_out event
// comes back through the auth stream and redirects to the landing view.
func (m *Model) signOut() tea.Cmd {
	session := m.deps.Session
	return func() tea.Msg {
		session.SignOut(context.Background())
		return nil
	}
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	cmds = append(cmds, cmd)
	m.jdInput, cmd = m.jdInput.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}
