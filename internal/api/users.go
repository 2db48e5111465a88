package api

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/domain"
)

// ListUsers lists dashboard users visible to the current session.
func (c *Client) ListUsers(ctx context.Context) ([]domain.UserProfile, error) {
	var users []domain.UserProfile
	if err := c.do(ctx, consts.MethodGet, endpointUsers, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches a single user by id.
func (c *Client) GetUser(ctx context.Context, id string) (*domain.UserProfile, error) {
	var user domain.UserProfile
	if err := c.do(ctx, consts.MethodGet, fmt.Sprintf(endpointUsersByID, id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a dashboard user.
func (c *Client) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.UserProfile, error) {
	var user domain.UserProfile
	if err := c.do(ctx, consts.MethodPost, endpointUsers, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial update to a user.
func (c *Client) UpdateUser(ctx context.Context, id string, req domain.UpdateUserRequest) (*domain.UserProfile, error) {
	var user domain.UserProfile
	if err := c.do(ctx, consts.MethodPut, fmt.Sprintf(endpointUsersByID, id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, consts.MethodDelete, fmt.Sprintf(endpointUsersByID, id), nil, nil)
}
