package cli

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/soares-ari/HelpDesk-AI/internal/api"
)

const pollInterval = 2 * time.Second

// Theme holds the color scheme for the processing display.
type Theme struct {
	Status  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// tickMsg triggers polling the document status
type tickMsg time.Time

// docUpdateMsg carries the re-fetched document
type docUpdateMsg struct {
	doc *api.Document
	err error
}

// processingModel polls a document until the server finishes chunking and
// embedding it. Status transitions happen server-side only; the client can
// merely re-fetch.
type processingModel struct {
	client   *api.Client
	docID    int64
	doc      *api.Document
	spin     spinner.Model
	theme    Theme
	done     bool
	quitting bool
	err      error
}

func newProcessingModel(c *api.Client, docID int64) processingModel {
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return processingModel{
		client: c,
		docID:  docID,
		spin:   spin,
		theme:  defaultTheme,
	}
}

// Init returns the initial command (start polling).
func (m processingModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		m.spin.Tick,
	)
}

// Update handles messages and returns the updated model.
func (m processingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case tickMsg:
		return m, m.fetchDoc()

	case docUpdateMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("failed to fetch document status: %w", msg.err)
			m.done = true
			return m, tea.Quit
		}

		m.doc = msg.doc

		switch m.doc.Status {
		case api.StatusCompleted:
			m.done = true
			return m, tea.Quit
		case api.StatusFailed:
			m.done = true
			m.err = fmt.Errorf("document processing failed")
			return m, tea.Quit
		}

		// Still processing, keep polling
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the processing display.
func (m processingModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m processingModel) renderContent() string {
	if m.done {
		return m.finalView()
	}

	status := m.theme.statusStyle().Render("[processing]")
	hint := m.theme.hintStyle().Render("Press Ctrl+C to stop waiting, processing continues server-side")

	return fmt.Sprintf("%s %s chunking and embedding...\n%s\n", m.spin.View(), status, hint)
}

func (m processingModel) finalView() string {
	if m.quitting {
		msg := fmt.Sprintf("\nProcessing continues on the server.\nUse 'helpdesk docs get %d' to check status.\n", m.docID)
		return m.theme.hintStyle().Render(msg)
	}

	if m.err != nil {
		return m.theme.errorStyle().Render(fmt.Sprintf("\n✗ %s\n", m.err))
	}

	if m.doc != nil {
		return m.theme.completedStyle().Render("✓ Ready") +
			fmt.Sprintf("\n\n  %s split into %d chunks\n", m.doc.Filename, m.doc.TotalChunks)
	}

	return m.theme.completedStyle().Render("✓ Ready\n")
}

// fetchDoc re-fetches the document off the UI loop.
func (m processingModel) fetchDoc() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		doc, err := m.client.GetDocument(ctx, m.docID)
		return docUpdateMsg{doc: doc, err: err}
	}
}

// tickCmd returns a command that sends a tick after the poll interval.
func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// RunProcessingWait runs the interactive wait UI for a freshly uploaded
// document. Returns nil on success or Ctrl+C, an error when processing
// failed.
func RunProcessingWait(c *api.Client, docID int64) error {
	model := newProcessingModel(c, docID)
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("progress UI error: %w", err)
	}

	if m, ok := finalModel.(processingModel); ok {
		// Ctrl+C just stops waiting, the server keeps going - not an error
		if m.quitting {
			return nil
		}
		if m.err != nil {
			return m.err
		}
	}

	return nil
}
