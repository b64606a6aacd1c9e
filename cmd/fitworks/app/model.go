// Package app implements the interactive fitworks client: a multi-page
// terminal program wiring the session manager, view controller, and guided
// flow controllers to the rendering loop.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fitforworks/cmd/fitworks/ui"
	"fitforworks/internal/analysis"
	"fitforworks/internal/auth"
	"fitforworks/internal/config"
	"fitforworks/internal/flow"
	"fitforworks/internal/nav"
)

// Deps bundles the long-lived collaborators the model drives.
type Deps struct {
	Config   *config.Config
	Session  *auth.Manager
	Provider *auth.HTTPProvider
	Nav      *nav.Controller
	Client   *analysis.Client
	Fragment string
}

// Messages delivered to Update.
type (
	// sessionReadyMsg carries the resolved startup session state.
	sessionReadyMsg struct {
		result auth.InitResult
	}

	// authEventMsg relays one provider auth event into the program loop.
	authEventMsg struct {
		event auth.Event
	}

	// signInDoneMsg reports the outcome of an interactive browser sign-in.
	signInDoneMsg struct {
		user *auth.UserIdentity
		err  error
	}

	// analysisDoneMsg reports the outcome of the one-shot analysis request
	// for the named flow view.
	analysisDoneMsg struct {
		view nav.ViewId
		req  *flow.Request
		raw  *analysis.RawResult
		err  error
	}
)

// Model is the root bubbletea model.
type Model struct {
	deps Deps

	width  int
	height int

	// ready flips once the session manager has resolved the startup state;
	// until then every screen is gated behind a loading indicator.
	ready    bool
	quitting bool

	spin      spinner.Model
	pathInput textinput.Model
	jdInput   textarea.Model

	// flows holds one controller per active flow view, created on entry and
	// discarded on exit.
	flows  map[nav.ViewId]*flow.Controller
	cursor int

	authPrompt bool
	signingIn  bool
	notice     string

	authEvents chan auth.Event
}

// New builds the root model and subscribes to the provider's auth stream.
func New(deps Deps) *Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(ui.Amber)

	pathInput := textinput.New()
	pathInput.Placeholder = "path/to/resume.pdf"
	pathInput.CharLimit = 512
	pathInput.Width = 48

	jdInput := textarea.New()
	jdInput.Placeholder = "Paste the job description here..."
	jdInput.SetWidth(72)
	jdInput.SetHeight(10)

	m := &Model{
		deps:       deps,
		spin:       spin,
		pathInput:  pathInput,
		jdInput:    jdInput,
		flows:      make(map[nav.ViewId]*flow.Controller),
		authEvents: make(chan auth.Event, 16),
	}

	deps.Session.Subscribe(func(ev auth.Event) {
		m.authEvents <- ev
	})

	return m
}

// Init starts the spinner, the async session resolution, and the auth event
// pump.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.resolveSession(), m.waitAuthEvent())
}

// resolveSession runs the startup session resolution off the render loop.
func (m *Model) resolveSession() tea.Cmd {
	return func() tea.Msg {
		res := m.deps.Session.Initialize(context.Background(), m.deps.Fragment)
		return sessionReadyMsg{result: res}
	}
}

// waitAuthEvent blocks on the auth event channel; Update re-issues it after
// each delivery.
func (m *Model) waitAuthEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.authEvents
		if !ok {
			return nil
		}
		return authEventMsg{event: ev}
	}
}

// activeFlow returns the flow controller for the current view, if the
// current view is a flow view.
func (m *Model) activeFlow() *flow.Controller {
	return m.flows[m.deps.Nav.Current()]
}
