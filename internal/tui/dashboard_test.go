package tui

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/soares-ari/HelpDesk-AI/internal/api"
)

func testDashboard(t *testing.T) dashboardModel {
	t.Helper()
	return newDashboardModel(api.New("http://localhost:1"), inactiveSession(), defaultTheme)
}

func TestUploadErrorText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "pdf gate message kept verbatim",
			err:  api.ErrNotPDF,
			want: "only PDF files are allowed",
		},
		{
			name: "size gate message kept verbatim",
			err:  api.ErrFileTooLarge,
			want: "file is too large (max 50MB)",
		},
		{
			name: "server message shown when present",
			err:  &api.Error{StatusCode: 422, Message: "Document could not be parsed"},
			want: "Document could not be parsed",
		},
		{
			name: "fixed fallback otherwise",
			err:  errors.New("connection refused"),
			want: uploadFallbackError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := uploadErrorText(tt.err); got != tt.want {
				t.Errorf("uploadErrorText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDashboard_LoadFailureKeepsList(t *testing.T) {
	m := testDashboard(t)
	m.docs = []api.Document{{ID: 1, Filename: "a.pdf"}}
	m.loading = true

	m, _ = m.update(docsLoadedMsg{err: errors.New("boom")})

	if m.loading {
		t.Error("loading flag must reset")
	}
	if len(m.docs) != 1 {
		t.Error("previous list must survive a failed load")
	}
}

func TestDashboard_DeleteNotFoundLeavesListUnchanged(t *testing.T) {
	m := testDashboard(t)
	m.docs = []api.Document{{ID: 1, Filename: "a.pdf"}, {ID: 2, Filename: "b.pdf"}}

	m, cmd := m.update(deleteDoneMsg{err: &api.Error{StatusCode: 404, Message: "Document not found with id: 2"}})

	if cmd != nil {
		t.Error("failed delete must not trigger a reload")
	}
	if len(m.docs) != 2 {
		t.Error("list must stay unchanged on a failed delete")
	}
	if m.errMsg != "Document not found with id: 2" {
		t.Errorf("errMsg = %q", m.errMsg)
	}
}

func TestDashboard_DeleteSuccessReloads(t *testing.T) {
	m := testDashboard(t)
	m.docs = []api.Document{{ID: 1}}

	_, cmd := m.update(deleteDoneMsg{})
	if cmd == nil {
		t.Error("successful delete must reload the list")
	}
}

func TestDashboard_PollsWhileProcessing(t *testing.T) {
	m := testDashboard(t)

	m, cmd := m.update(docsLoadedMsg{docs: []api.Document{
		{ID: 1, Status: api.StatusCompleted},
		{ID: 2, Status: api.StatusProcessing},
	}})

	if !m.polling || cmd == nil {
		t.Error("a PROCESSING document must schedule a poll")
	}

	m.polling = false
	m, cmd = m.update(docsLoadedMsg{docs: []api.Document{
		{ID: 1, Status: api.StatusCompleted},
		{ID: 2, Status: api.StatusCompleted},
	}})
	if m.polling || cmd != nil {
		t.Error("no poll once everything is settled")
	}
}

func TestDashboard_UploadResultMessages(t *testing.T) {
	m := testDashboard(t)
	m.uploading = true

	m, _ = m.update(uploadDoneMsg{resp: &api.UploadResponse{DocumentID: 7, Message: "Document uploaded, processing started"}})
	if m.uploading {
		t.Error("uploading flag must reset")
	}
	if m.uploadOK != "Document uploaded, processing started" {
		t.Errorf("uploadOK = %q", m.uploadOK)
	}

	m.uploading = true
	m, _ = m.update(uploadDoneMsg{err: api.ErrNotPDF})
	if m.uploadErr != "only PDF files are allowed" {
		t.Errorf("uploadErr = %q", m.uploadErr)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("é", 50) + ".pdf"
	got := truncate(long, 40)

	if !utf8.ValidString(got) {
		t.Errorf("truncate produced invalid UTF-8: %q", got)
	}
	if utf8.RuneCountInString(got) != 40 {
		t.Errorf("rune count = %d, want 40", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated name must end in ellipsis: %q", got)
	}

	if got := truncate("short.pdf", 40); got != "short.pdf" {
		t.Errorf("short name must pass through, got %q", got)
	}
}

func TestStatusText(t *testing.T) {
	if got := statusText(api.StatusProcessing); got != "Processing" {
		t.Errorf("statusText(PROCESSING) = %q", got)
	}
	if got := statusText(api.StatusCompleted); got == "" {
		t.Error("statusText(COMPLETED) must not be empty")
	}
}
