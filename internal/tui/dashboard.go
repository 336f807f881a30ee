package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/soares-ari/HelpDesk-AI/internal/api"
	"github.com/soares-ari/HelpDesk-AI/internal/session"
)

const (
	uploadFallbackError = "Failed to upload document."
	deleteFallbackError = "Failed to delete document."

	// Documents stuck in PROCESSING are re-fetched on this cadence; the
	// status transition itself happens server-side.
	docPollInterval = 2 * time.Second
)

type docsLoadedMsg struct {
	docs []api.Document
	err  error
}

type uploadDoneMsg struct {
	resp *api.UploadResponse
	err  error
}

type deleteDoneMsg struct {
	err error
}

type docPollMsg struct{}

type reloadMsg struct{}

// dashboardModel lists the user's documents and takes uploads.
type dashboardModel struct {
	client *api.Client
	sess   *session.Manager
	theme  Theme

	docs     []api.Document
	selected int
	loading  bool
	polling  bool

	uploadMode bool
	uploadPath textinput.Model
	uploading  bool
	uploadErr  string
	uploadOK   string

	confirmDelete bool
	errMsg        string
}

func newDashboardModel(client *api.Client, sess *session.Manager, theme Theme) dashboardModel {
	path := textinput.New()
	path.Placeholder = "path to PDF file"

	return dashboardModel{
		client:     client,
		sess:       sess,
		theme:      theme,
		uploadPath: path,
	}
}

func (m dashboardModel) enter() (dashboardModel, tea.Cmd) {
	m.loading = true
	return m, m.loadDocs()
}

func (m dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if m.uploadMode {
			return m.updateUploadMode(msg)
		}
		if m.confirmDelete {
			return m.updateConfirmDelete(msg)
		}
		return m.updateKeys(msg)

	case docsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			// A failed list load just stops the loading state, the
			// previous list stays.
			return m, nil
		}
		m.docs = msg.docs
		if m.selected >= len(m.docs) {
			m.selected = max(0, len(m.docs)-1)
		}
		// Re-fetch while anything is still processing.
		if !m.polling && anyProcessing(m.docs) {
			m.polling = true
			return m, pollTick()
		}
		return m, nil

	case docPollMsg:
		m.polling = false
		return m, m.loadDocs()

	case reloadMsg:
		return m, m.loadDocs()

	case uploadDoneMsg:
		m.uploading = false
		if msg.err != nil {
			m.uploadErr = uploadErrorText(msg.err)
			return m, nil
		}
		m.uploadOK = msg.resp.Message
		if m.uploadOK == "" {
			m.uploadOK = "Document uploaded successfully!"
		}
		// The fresh document shows up as PROCESSING shortly after.
		return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
			return reloadMsg{}
		})

	case deleteDoneMsg:
		if msg.err != nil {
			m.errMsg = api.ErrorMessage(msg.err, deleteFallbackError)
			return m, nil
		}
		return m, m.loadDocs()
	}

	if m.uploadMode {
		var cmd tea.Cmd
		m.uploadPath, cmd = m.uploadPath.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m dashboardModel) updateKeys(msg tea.KeyPressMsg) (dashboardModel, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j", "down":
		if m.selected < len(m.docs)-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "r":
		m.loading = true
		m.errMsg = ""
		return m, m.loadDocs()
	case "c":
		return m, navigate(routeChat)
	case "u":
		if m.uploading {
			return m, nil
		}
		m.uploadMode = true
		m.uploadErr = ""
		m.uploadOK = ""
		m.uploadPath.Reset()
		return m, m.uploadPath.Focus()
	case "d":
		if len(m.docs) > 0 {
			m.confirmDelete = true
			m.errMsg = ""
		}
	case "ctrl+l":
		m.sess.Logout()
		return m, navigate(routeLogin)
	}
	return m, nil
}

func (m dashboardModel) updateUploadMode(msg tea.KeyPressMsg) (dashboardModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.uploadMode = false
		m.uploadPath.Blur()
		return m, nil
	case "enter":
		path := m.uploadPath.Value()
		if path == "" || m.uploading {
			return m, nil
		}
		m.uploadMode = false
		m.uploadPath.Blur()
		m.uploading = true
		m.uploadErr = ""
		m.uploadOK = ""
		return m, m.upload(path)
	}

	var cmd tea.Cmd
	m.uploadPath, cmd = m.uploadPath.Update(msg)
	return m, cmd
}

func (m dashboardModel) updateConfirmDelete(msg tea.KeyPressMsg) (dashboardModel, tea.Cmd) {
	m.confirmDelete = false
	if msg.String() != "y" {
		return m, nil
	}
	id := m.docs[m.selected].ID
	return m, m.deleteDoc(id)
}

func (m dashboardModel) loadDocs() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		docs, err := m.client.ListDocuments(ctx)
		return docsLoadedMsg{docs: docs, err: err}
	}
}

func anyProcessing(docs []api.Document) bool {
	for _, doc := range docs {
		if doc.Status == api.StatusProcessing {
			return true
		}
	}
	return false
}

func pollTick() tea.Cmd {
	return tea.Tick(docPollInterval, func(time.Time) tea.Msg {
		return docPollMsg{}
	})
}

// upload validates the file locally, then sends it. The PDF and size gates
// reject before any network call.
func (m dashboardModel) upload(path string) tea.Cmd {
	return func() tea.Msg {
		file, err := os.Open(path)
		if err != nil {
			return uploadDoneMsg{err: err}
		}
		defer file.Close()

		info, err := file.Stat()
		if err != nil {
			return uploadDoneMsg{err: err}
		}
		if err := api.ValidateUpload(info.Name(), "", info.Size()); err != nil {
			return uploadDoneMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		resp, err := m.client.Upload(ctx, info.Name(), info.Size(), file)
		return uploadDoneMsg{resp: resp, err: err}
	}
}

func (m dashboardModel) deleteDoc(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return deleteDoneMsg{err: m.client.DeleteDocument(ctx, id)}
	}
}

// uploadErrorText keeps the fixed gate messages verbatim and falls back to
// the server message for everything else.
func uploadErrorText(err error) string {
	if errors.Is(err, api.ErrNotPDF) || errors.Is(err, api.ErrFileTooLarge) {
		return err.Error()
	}
	return api.ErrorMessage(err, uploadFallbackError)
}

func (m dashboardModel) view() string {
	s := m.theme.titleStyle().Render("My Documents") + "\n\n"

	switch {
	case m.uploading:
		s += m.theme.hintStyle().Render("  Uploading document...") + "\n\n"
	case m.uploadMode:
		s += "  Upload: " + m.uploadPath.View() + "\n"
		s += m.theme.hintStyle().Render("  enter upload • esc cancel") + "\n\n"
	}

	if m.uploadErr != "" {
		s += m.theme.errorStyle().Render("  "+m.uploadErr) + "\n\n"
	}
	if m.uploadOK != "" {
		s += m.theme.successStyle().Render("  "+m.uploadOK) + "\n\n"
	}
	if m.errMsg != "" {
		s += m.theme.errorStyle().Render("  "+m.errMsg) + "\n\n"
	}

	switch {
	case m.loading:
		s += m.theme.hintStyle().Render("  Loading documents...") + "\n"
	case len(m.docs) == 0:
		s += m.theme.hintStyle().Render("  No documents uploaded yet") + "\n"
	default:
		for i, doc := range m.docs {
			s += m.renderDoc(i, doc)
		}
	}

	if m.confirmDelete && len(m.docs) > 0 {
		s += "\n" + m.theme.errorStyle().Render(
			fmt.Sprintf("  Delete %q? [y/N]", m.docs[m.selected].Filename)) + "\n"
	}

	s += "\n" + m.theme.hintStyle().Render(
		"  u upload • d delete • r refresh • c chat • ctrl+l sign out • q quit")
	return s
}

func (m dashboardModel) renderDoc(i int, doc api.Document) string {
	cursor := "  "
	if i == m.selected {
		cursor = m.theme.selectedStyle().Render("> ")
	}
	badge := m.theme.statusStyle(string(doc.Status)).Render(statusText(doc.Status))
	line := fmt.Sprintf("%s%-40s %s  %3d chunks  %s\n",
		cursor,
		truncate(doc.Filename, 40),
		badge,
		doc.TotalChunks,
		doc.UploadedAt.Format("2006-01-02"),
	)
	return line
}

// statusText maps a document status to its display label.
func statusText(status api.DocumentStatus) string {
	switch status {
	case api.StatusProcessing:
		return "Processing"
	case api.StatusCompleted:
		return "Completed "
	case api.StatusFailed:
		return "Failed    "
	default:
		return string(status)
	}
}

// truncate shortens s to at most n runes, never splitting a rune.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
