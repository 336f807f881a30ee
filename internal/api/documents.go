package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"
)

// MaxUploadSize is the largest file the client will send, matching the
// server's 50MB limit.
const MaxUploadSize = 50 * 1024 * 1024

// pdfContentType is the only MIME type the service ingests.
const pdfContentType = "application/pdf"

// ValidateUpload applies the client-side gates: PDF only, at most 50MB.
// It runs before any network call; mimeType may be empty, in which case the
// filename extension decides.
func ValidateUpload(filename, mimeType string, size int64) error {
	if mimeType == "" {
		if strings.EqualFold(filepath.Ext(filename), ".pdf") {
			mimeType = pdfContentType
		}
	}
	if mimeType != pdfContentType {
		return ErrNotPDF
	}
	if size > MaxUploadSize {
		return ErrFileTooLarge
	}
	return nil
}

// Upload sends a PDF as a multipart request with a single field "file".
// The gates in ValidateUpload are enforced first, so an invalid file never
// reaches the wire.
func (c *Client) Upload(ctx context.Context, filename string, size int64, content io.Reader) (*UploadResponse, error) {
	if err := ValidateUpload(filename, "", size); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, filepath.Base(filename)))
	header.Set("Content-Type", pdfContentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create form part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copy file content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/documents/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp UploadResponse
	if err := c.send(req, "/documents/upload", &resp); err != nil {
		return nil, wrapError(err, "Upload")
	}
	return &resp, nil
}

// ListDocuments returns the caller's documents in server order.
func (c *Client) ListDocuments(ctx context.Context) ([]Document, error) {
	var docs []Document
	if err := c.do(ctx, http.MethodGet, "/documents", nil, &docs); err != nil {
		return nil, wrapError(err, "ListDocuments")
	}
	return docs, nil
}

// GetDocument fetches a single document. Its status is the source of truth
// for whether its chunks are queryable; poll by re-fetching.
func (c *Client) GetDocument(ctx context.Context, id int64) (*Document, error) {
	var doc Document
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/documents/%d", id), nil, &doc); err != nil {
		return nil, wrapError(err, "GetDocument")
	}
	return &doc, nil
}

// DeleteDocument removes a document and its chunks.
func (c *Client) DeleteDocument(ctx context.Context, id int64) error {
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/documents/%d", id), nil, nil)
	return wrapError(err, "DeleteDocument")
}
