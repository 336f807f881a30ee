package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/soares-ari/HelpDesk-AI/internal/api"
)

const chatFallbackError = "Unknown error"

// chatResultMsg carries the assistant's reply, or the failure.
type chatResultMsg struct {
	resp *api.ChatResponse
	err  error
}

// chatModel holds the active conversation. The user's turn is appended
// optimistically and stays even when the exchange fails; the assistant's
// turn is appended only on success.
type chatModel struct {
	client *api.Client
	theme  Theme

	messages       []api.Message
	conversationID *int64

	input   textinput.Model
	spin    spinner.Model
	sending bool

	// alert blocks input until dismissed, standing in for the browser's
	// blocking alert dialog.
	alert string
}

func newChatModel(client *api.Client, theme Theme) chatModel {
	input := textinput.New()
	input.Placeholder = "Ask a question about your documents..."
	input.CharLimit = api.MaxMessageLength

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return chatModel{
		client: client,
		theme:  theme,
		input:  input,
		spin:   spin,
	}
}

func (m chatModel) enter() (chatModel, tea.Cmd) {
	cmd := m.input.Focus()
	return m, cmd
}

func (m chatModel) update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if m.alert != "" {
			// Blocking alert: any key dismisses it.
			m.alert = ""
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, navigate(routeDashboard)
		case "enter":
			return m.send()
		}

	case chatResultMsg:
		m.sending = false
		if msg.err != nil {
			m.alert = "Failed to send message: " + api.ErrorMessage(msg.err, chatFallbackError)
			return m, nil
		}
		m.conversationID = &msg.resp.ConversationID
		m.messages = append(m.messages, api.Message{
			ID:        time.Now().UnixMilli() + 1,
			Role:      api.RoleAssistant,
			Content:   msg.resp.Message,
			CreatedAt: msg.resp.Timestamp,
			Citations: msg.resp.Citations,
		})
		return m, nil

	case spinner.TickMsg:
		if !m.sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send appends the user's turn immediately and fires the request. The
// input control is disabled while a send is in flight.
func (m chatModel) send() (chatModel, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.sending {
		return m, nil
	}

	m.messages = append(m.messages, api.Message{
		ID:        time.Now().UnixMilli(),
		Role:      api.RoleUser,
		Content:   text,
		CreatedAt: time.Now(),
	})
	m.input.Reset()
	m.sending = true

	conversationID := m.conversationID
	send := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		resp, err := m.client.SendMessage(ctx, text, conversationID)
		return chatResultMsg{resp: resp, err: err}
	}
	return m, tea.Batch(send, m.spin.Tick)
}

func (m chatModel) view() string {
	s := m.theme.titleStyle().Render("Chat") + "\n\n"

	if len(m.messages) == 0 && !m.sending {
		s += m.theme.hintStyle().Render("  Ask a question about your documents") + "\n"
	}

	for _, msg := range m.messages {
		s += m.renderMessage(msg)
	}

	if m.sending {
		s += m.spin.View() + m.theme.hintStyle().Render(" thinking...") + "\n"
	}

	if m.alert != "" {
		s += "\n" + m.theme.errorStyle().Render("  "+m.alert)
		s += "\n" + m.theme.hintStyle().Render("  press any key to continue") + "\n"
	}

	s += "\n  " + m.input.View() + "\n"
	s += m.theme.hintStyle().Render("  enter send • esc back to documents • ctrl+c quit")
	return s
}

func (m chatModel) renderMessage(msg api.Message) string {
	var s string
	if msg.Role == api.RoleUser {
		s += m.theme.userStyle().Render("You: ") + msg.Content + "\n"
	} else {
		s += m.theme.assistantStyle().Render("Assistant: "+msg.Content) + "\n"
	}

	if len(msg.Citations) > 0 {
		s += m.theme.hintStyle().Render("  Sources:") + "\n"
		for _, cite := range msg.Citations {
			s += m.theme.hintStyle().Render(fmt.Sprintf("  • %s (%.1f%%)%s",
				cite.Metadata.DocumentName,
				cite.SimilarityScore*100,
				pageRef(cite.Metadata.Page),
			)) + "\n"
		}
	}
	return s + "\n"
}

func pageRef(page *int) string {
	if page == nil {
		return ""
	}
	return fmt.Sprintf(", p.%d", *page)
}
