package api

import "time"

// User is the identity of the signed-in principal.
type User struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// AuthResponse is returned by both login and register.
type AuthResponse struct {
	Token     string     `json:"token"`
	Type      string     `json:"type"` // always "Bearer"
	UserID    int64      `json:"userId"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// User builds the persisted identity from an auth response.
func (r *AuthResponse) User() User {
	return User{ID: r.UserID, Email: r.Email, Name: r.Name}
}

// ValidateResponse is the result of a token validation check.
type ValidateResponse struct {
	Valid bool `json:"valid"`
}

// DocumentStatus is the server-side processing state of an uploaded
// document. Transitions happen on the server and are only observed by
// re-fetching.
type DocumentStatus string

const (
	StatusProcessing DocumentStatus = "PROCESSING"
	StatusCompleted  DocumentStatus = "COMPLETED"
	StatusFailed     DocumentStatus = "FAILED"
)

// Document represents an uploaded PDF and its processing state.
type Document struct {
	ID          int64          `json:"id"`
	Filename    string         `json:"filename"`
	FileSize    int64          `json:"fileSize"`
	MimeType    string         `json:"mimeType"`
	Status      DocumentStatus `json:"status"`
	TotalChunks int            `json:"totalChunks"`
	UploadedAt  time.Time      `json:"uploadedAt"`
	UserID      int64          `json:"userId"`
}

// UploadResponse is returned by a document upload.
type UploadResponse struct {
	DocumentID  int64     `json:"documentId"`
	Filename    string    `json:"filename"`
	FileSize    int64     `json:"fileSize"`
	MimeType    string    `json:"mimeType"`
	Status      string    `json:"status"`
	TotalChunks int       `json:"totalChunks"`
	UploadedAt  time.Time `json:"uploadedAt"`
	Message     string    `json:"message"`
}

// Role distinguishes user turns from assistant turns.
type Role string

const (
	RoleUser      Role = "USER"
	RoleAssistant Role = "ASSISTANT"
)

// Message is a single turn in a conversation.
type Message struct {
	ID        int64      `json:"id"`
	Role      Role       `json:"role"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	Citations []Citation `json:"citations,omitempty"`
}

// Citation points at a source passage an assistant answer was grounded in.
type Citation struct {
	ChunkID         int64            `json:"chunkId"`
	Content         string           `json:"content"`
	SimilarityScore float64          `json:"similarityScore"`
	Metadata        CitationMetadata `json:"metadata"`
}

// CitationMetadata locates a citation within its source document.
type CitationMetadata struct {
	Page         *int    `json:"page,omitempty"`
	Section      *string `json:"section,omitempty"`
	DocumentName string  `json:"documentName"`
	DocumentID   int64   `json:"documentId"`
}

// Conversation is a container for messages.
type Conversation struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"createdAt"`
	MessageCount int       `json:"messageCount"`
}

// ChatRequest asks the assistant a question. ConversationID is nil to start
// a new conversation.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID *int64 `json:"conversationId,omitempty"`
}

// ChatResponse is the assistant's answer with its supporting citations.
type ChatResponse struct {
	Message        string     `json:"message"`
	ConversationID int64      `json:"conversationId"`
	Citations      []Citation `json:"citations"`
	Timestamp      time.Time  `json:"timestamp"`
}
