package tui

import (
	"context"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/soares-ari/HelpDesk-AI/internal/api"
	"github.com/soares-ari/HelpDesk-AI/internal/session"
)

const loginFallbackError = "Login failed. Check your credentials."

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	user *api.User
	err  error
}

// loginModel is the sign-in form: idle, in-flight while the request runs,
// or showing an error.
type loginModel struct {
	client *api.Client
	sess   *session.Manager
	theme  Theme

	email    textinput.Model
	password textinput.Model
	focused  int

	loading bool
	errMsg  string
}

func newLoginModel(client *api.Client, sess *session.Manager, theme Theme) loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	return loginModel{
		client:   client,
		sess:     sess,
		theme:    theme,
		email:    email,
		password: password,
	}
}

func (m loginModel) enter() (loginModel, tea.Cmd) {
	cmd := m.email.Focus()
	return m, cmd
}

func (m loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focused = (m.focused + 1) % 2
			if m.focused == 0 {
				m.password.Blur()
				return m, m.email.Focus()
			}
			m.email.Blur()
			return m, m.password.Focus()

		case "enter":
			// Submit is disabled while a request is in flight.
			if m.loading {
				return m, nil
			}
			if m.email.Value() == "" || m.password.Value() == "" {
				return m, nil
			}
			m.loading = true
			m.errMsg = ""
			return m, m.submit()

		case "ctrl+r":
			return m, navigate(routeRegister)
		}

	case loginResultMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = api.ErrorMessage(msg.err, loginFallbackError)
			return m, nil
		}
		return m, navigate(routeDashboard)
	}

	var cmd tea.Cmd
	if m.focused == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

// submit runs the login request off the UI loop.
func (m loginModel) submit() tea.Cmd {
	email := m.email.Value()
	password := m.password.Value()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		user, err := m.sess.Login(ctx, m.client, email, password)
		return loginResultMsg{user: user, err: err}
	}
}

func (m loginModel) view() string {
	s := m.theme.titleStyle().Render("Sign in") + "\n\n"
	s += "  " + m.email.View() + "\n"
	s += "  " + m.password.View() + "\n\n"

	if m.errMsg != "" {
		s += m.theme.errorStyle().Render("  "+m.errMsg) + "\n\n"
	}
	if m.loading {
		s += m.theme.hintStyle().Render("  Signing in...") + "\n\n"
	}

	s += m.theme.hintStyle().Render("  enter submit • tab next field • ctrl+r register • ctrl+c quit")
	return s
}
