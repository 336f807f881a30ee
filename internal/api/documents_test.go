package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		mimeType string
		size     int64
		wantErr  error
	}{
		{
			name:     "pdf within limit",
			filename: "manual.pdf",
			size:     1024,
		},
		{
			name:     "explicit pdf mime type",
			filename: "upload.bin",
			mimeType: "application/pdf",
			size:     1024,
		},
		{
			name:     "uppercase extension",
			filename: "MANUAL.PDF",
			size:     1024,
		},
		{
			name:     "not a pdf",
			filename: "notes.txt",
			size:     1024,
			wantErr:  ErrNotPDF,
		},
		{
			name:     "wrong mime type",
			filename: "manual.pdf",
			mimeType: "text/plain",
			size:     1024,
			wantErr:  ErrNotPDF,
		},
		{
			name:     "exactly at the limit",
			filename: "big.pdf",
			size:     MaxUploadSize,
		},
		{
			name:     "over the limit",
			filename: "huge.pdf",
			size:     MaxUploadSize + 1,
			wantErr:  ErrFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.filename, tt.mimeType, tt.size)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUpload_RejectedBeforeNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("rejected upload must not reach the server")
	}))
	defer server.Close()

	client := New(server.URL)

	_, err := client.Upload(context.Background(), "notes.txt", 10, strings.NewReader("hi"))
	assert.ErrorIs(t, err, ErrNotPDF)

	_, err = client.Upload(context.Background(), "huge.pdf", MaxUploadSize+1, strings.NewReader(""))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestUpload(t *testing.T) {
	content := "%PDF-1.4 fake"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/documents/upload", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "manual.pdf", header.Filename)
		got, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, content, string(got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"documentId":7,"filename":"manual.pdf","status":"PROCESSING","message":"Document uploaded, processing started"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	resp, err := client.Upload(context.Background(), "manual.pdf", int64(len(content)), strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.DocumentID)
	assert.Equal(t, "PROCESSING", resp.Status)
	assert.Equal(t, "Document uploaded, processing started", resp.Message)
}

func TestListDocuments_PreservesOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/documents", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":3,"filename":"c.pdf","status":"COMPLETED","totalChunks":12},
			{"id":1,"filename":"a.pdf","status":"PROCESSING","totalChunks":0},
			{"id":2,"filename":"b.pdf","status":"FAILED","totalChunks":0}
		]`))
	}))
	defer server.Close()

	client := New(server.URL)
	docs, err := client.ListDocuments(context.Background())
	require.NoError(t, err)

	require.Len(t, docs, 3)
	assert.Equal(t, []int64{3, 1, 2}, []int64{docs[0].ID, docs[1].ID, docs[2].ID})
	assert.Equal(t, StatusProcessing, docs[1].Status)
}

func TestGetDocument_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":404,"error":"Resource Not Found","message":"Document not found with id: 9"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.GetDocument(context.Background(), 9)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestDeleteDocument(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := New(server.URL)
	require.NoError(t, client.DeleteDocument(context.Background(), 42))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/documents/42", gotPath)
}
