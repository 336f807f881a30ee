package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// MaxMessageLength mirrors the server's limit on a chat message.
const MaxMessageLength = 2000

// ErrEmptyMessage rejects blank chat input before it reaches the wire.
var ErrEmptyMessage = errors.New("message must not be empty")

// ErrMessageTooLong rejects messages over the server's 2000 character limit.
var ErrMessageTooLong = errors.New("message must not exceed 2000 characters")

// SendMessage asks the assistant a question. conversationID is nil to start
// a new conversation; the response carries the id to continue it.
func (c *Client) SendMessage(ctx context.Context, message string, conversationID *int64) (*ChatResponse, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	if len(message) > MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	var resp ChatResponse
	err := c.do(ctx, http.MethodPost, "/chat", ChatRequest{
		Message:        message,
		ConversationID: conversationID,
	}, &resp)
	if err != nil {
		return nil, wrapError(err, "SendMessage")
	}
	return &resp, nil
}

// ListConversations returns the caller's conversations in server order.
func (c *Client) ListConversations(ctx context.Context) ([]Conversation, error) {
	var convs []Conversation
	if err := c.do(ctx, http.MethodGet, "/chat/conversations", nil, &convs); err != nil {
		return nil, wrapError(err, "ListConversations")
	}
	return convs, nil
}

// GetMessages returns a conversation's messages ordered by creation time.
func (c *Client) GetMessages(ctx context.Context, conversationID int64) ([]Message, error) {
	var msgs []Message
	path := fmt.Sprintf("/chat/conversations/%d/messages", conversationID)
	if err := c.do(ctx, http.MethodGet, path, nil, &msgs); err != nil {
		return nil, wrapError(err, "GetMessages")
	}
	return msgs, nil
}

// DeleteConversation removes a conversation and its messages.
func (c *Client) DeleteConversation(ctx context.Context, conversationID int64) error {
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/chat/conversations/%d", conversationID), nil, nil)
	return wrapError(err, "DeleteConversation")
}
