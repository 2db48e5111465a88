package api

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/domain"
)

// ConversationFilter narrows ListConversations. Zero values mean no
// filtering on that field.
type ConversationFilter struct {
	Status         domain.ConversationStatus
	AssignedUserID string
}

func (f ConversationFilter) query() string {
	q := ""
	sep := "?"
	if f.Status != "" {
		q += sep + "status=" + string(f.Status)
		sep = "&"
	}
	if f.AssignedUserID != "" {
		q += sep + "assignedUserId=" + f.AssignedUserID
	}
	return q
}

// ListConversations lists conversations, optionally filtered.
func (c *Client) ListConversations(ctx context.Context, filter ConversationFilter) ([]domain.Conversation, error) {
	var conversations []domain.Conversation
	path := endpointConversations + filter.query()
	if err := c.do(ctx, consts.MethodGet, path, nil, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// GetConversation fetches a single conversation by id.
func (c *Client) GetConversation(ctx context.Context, id string) (*domain.Conversation, error) {
	var conv domain.Conversation
	if err := c.do(ctx, consts.MethodGet, fmt.Sprintf(endpointConversationsByID, id), nil, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// CreateConversation opens a conversation with a contact.
func (c *Client) CreateConversation(ctx context.Context, req domain.CreateConversationRequest) (*domain.Conversation, error) {
	var conv domain.Conversation
	if err := c.do(ctx, consts.MethodPost, endpointConversations, req, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// UpdateConversationStatus moves a conversation between workflow states.
func (c *Client) UpdateConversationStatus(ctx context.Context, id string, status domain.ConversationStatus) (*domain.Conversation, error) {
	var conv domain.Conversation
	body := map[string]string{"status": string(status)}
	if err := c.do(ctx, consts.MethodPut, fmt.Sprintf(endpointConversationsByID, id), body, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// AssignConversation assigns a conversation to a user.
func (c *Client) AssignConversation(ctx context.Context, id, userID string) (*domain.Conversation, error) {
	var conv domain.Conversation
	body := map[string]string{"userId": userID}
	if err := c.do(ctx, consts.MethodPost, fmt.Sprintf(endpointConversationsAssign, id), body, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}
