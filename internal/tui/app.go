// Package tui implements the full-screen terminal UI: routed views for
// login, register, the document dashboard, and chat, backed by the API
// client and the session manager.
package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/soares-ari/HelpDesk-AI/internal/api"
	"github.com/soares-ari/HelpDesk-AI/internal/session"
)

// route identifies a view. Unknown values redirect to the login view.
type route int

const (
	routeLogin route = iota
	routeRegister
	routeDashboard
	routeChat
)

// guarded reports whether a route requires an active session.
func (r route) guarded() bool {
	return r == routeDashboard || r == routeChat
}

// navigateMsg switches the active view.
type navigateMsg struct {
	to route
}

func navigate(to route) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{to: to}
	}
}

// App is the root model. It owns routing and delegates everything else to
// the view models.
type App struct {
	sess   *session.Manager
	client *api.Client
	theme  Theme

	route     route
	login     loginModel
	register  registerModel
	dashboard dashboardModel
	chat      chatModel

	// initCmd carries the starting view's enter command; Init runs on a
	// copy, so entering happens in NewApp.
	initCmd tea.Cmd

	width  int
	height int
}

// NewApp builds the root model. The starting route is derived from the
// persisted session: signed in lands on the dashboard, anything else on
// login.
func NewApp(client *api.Client, sess *session.Manager) App {
	a := App{
		sess:      sess,
		client:    client,
		theme:     defaultTheme,
		route:     routeLogin,
		login:     newLoginModel(client, sess, defaultTheme),
		register:  newRegisterModel(client, sess, defaultTheme),
		dashboard: newDashboardModel(client, sess, defaultTheme),
		chat:      newChatModel(client, defaultTheme),
	}
	if sess.Active() {
		a.route = routeDashboard
		a.dashboard, a.initCmd = a.dashboard.enter()
	} else {
		a.login, a.initCmd = a.login.enter()
	}
	return a
}

// Init starts the initial view.
func (a App) Init() tea.Cmd {
	return a.initCmd
}

// Update handles routing and forwards everything else to the active view.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case navigateMsg:
		to := msg.to
		// Route guard: admission is a token-presence check only, the
		// server re-validates on every call.
		if to.guarded() && !a.sess.Active() {
			to = routeLogin
		}
		a.route = to
		var cmd tea.Cmd
		switch to {
		case routeLogin:
			a.login = newLoginModel(a.client, a.sess, a.theme)
			a.login, cmd = a.login.enter()
		case routeRegister:
			a.register = newRegisterModel(a.client, a.sess, a.theme)
			a.register, cmd = a.register.enter()
		case routeDashboard:
			a.dashboard = newDashboardModel(a.client, a.sess, a.theme)
			a.dashboard, cmd = a.dashboard.enter()
		case routeChat:
			a.chat = newChatModel(a.client, a.theme)
			a.chat, cmd = a.chat.enter()
		}
		return a, cmd
	}

	var cmd tea.Cmd
	switch a.route {
	case routeLogin:
		a.login, cmd = a.login.update(msg)
	case routeRegister:
		a.register, cmd = a.register.update(msg)
	case routeDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case routeChat:
		a.chat, cmd = a.chat.update(msg)
	}
	return a, cmd
}

// View renders the active view under a shared header.
func (a App) View() tea.View {
	header := a.theme.titleStyle().Render("Helpdesk AI")
	if user := a.sess.CurrentUser(); user != nil {
		header += a.theme.hintStyle().Render(fmt.Sprintf("  %s", user.Name))
	}

	var body string
	switch a.route {
	case routeLogin:
		body = a.login.view()
	case routeRegister:
		body = a.register.view()
	case routeDashboard:
		body = a.dashboard.view()
	case routeChat:
		body = a.chat.view()
	}

	return tea.NewView(header + "\n\n" + body)
}

// Run starts the terminal UI and blocks until the user quits.
func Run(client *api.Client, sess *session.Manager) error {
	p := tea.NewProgram(NewApp(client, sess))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui error: %w", err)
	}
	return nil
}
