package tui

import (
	"context"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/soares-ari/HelpDesk-AI/internal/api"
	"github.com/soares-ari/HelpDesk-AI/internal/session"
)

const registerFallbackError = "Registration failed."

// registerResultMsg carries the outcome of a registration attempt.
type registerResultMsg struct {
	user *api.User
	err  error
}

// registerModel is the account creation form.
type registerModel struct {
	client *api.Client
	sess   *session.Manager
	theme  Theme

	inputs  []textinput.Model // name, email, password
	focused int

	loading bool
	errMsg  string
}

func newRegisterModel(client *api.Client, sess *session.Manager, theme Theme) registerModel {
	name := textinput.New()
	name.Placeholder = "name"
	name.CharLimit = 100

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	return registerModel{
		client: client,
		sess:   sess,
		theme:  theme,
		inputs: []textinput.Model{name, email, password},
	}
}

func (m registerModel) enter() (registerModel, tea.Cmd) {
	cmd := m.inputs[0].Focus()
	return m, cmd
}

func (m registerModel) update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab", "down":
			return m.focus((m.focused + 1) % len(m.inputs))
		case "shift+tab", "up":
			return m.focus((m.focused + len(m.inputs) - 1) % len(m.inputs))

		case "enter":
			if m.loading {
				return m, nil
			}
			for _, in := range m.inputs {
				if in.Value() == "" {
					return m, nil
				}
			}
			m.loading = true
			m.errMsg = ""
			return m, m.submit()

		case "ctrl+l":
			return m, navigate(routeLogin)
		}

	case registerResultMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = api.ErrorMessage(msg.err, registerFallbackError)
			return m, nil
		}
		return m, navigate(routeDashboard)
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m registerModel) focus(i int) (registerModel, tea.Cmd) {
	m.inputs[m.focused].Blur()
	m.focused = i
	return m, m.inputs[i].Focus()
}

func (m registerModel) submit() tea.Cmd {
	name := m.inputs[0].Value()
	email := m.inputs[1].Value()
	password := m.inputs[2].Value()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		user, err := m.sess.Register(ctx, m.client, name, email, password)
		return registerResultMsg{user: user, err: err}
	}
}

func (m registerModel) view() string {
	s := m.theme.titleStyle().Render("Create account") + "\n\n"
	for _, in := range m.inputs {
		s += "  " + in.View() + "\n"
	}
	s += "\n"

	if m.errMsg != "" {
		s += m.theme.errorStyle().Render("  "+m.errMsg) + "\n\n"
	}
	if m.loading {
		s += m.theme.hintStyle().Render("  Creating account...") + "\n\n"
	}

	s += m.theme.hintStyle().Render("  enter submit • tab next field • ctrl+l sign in • ctrl+c quit")
	return s
}
