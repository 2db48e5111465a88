package api

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/domain"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the account creation payload.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company,omitempty"`
}

// authResponse is the body returned by login and register.
type authResponse struct {
	Token string             `json:"token"`
	User  domain.UserProfile `json:"user"`
}

// Login authenticates and returns a ready-to-persist session.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	var resp authResponse
	err := c.do(ctx, consts.MethodPost, endpointLogin, LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &domain.Session{
		Token:    resp.Token,
		User:     resp.User,
		IssuedAt: time.Now(),
	}, nil
}

// Register creates an account and returns the session issued for it.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*domain.Session, error) {
	var resp authResponse
	if err := c.do(ctx, consts.MethodPost, endpointRegister, req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &domain.Session{
		Token:    resp.Token,
		User:     resp.User,
		IssuedAt: time.Now(),
	}, nil
}

// ForgotPassword requests a reset email for the given address.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, consts.MethodPost, endpointForgotPassword, body, nil)
}

// ResetPassword consumes a reset token and sets a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "password": newPassword}
	return c.do(ctx, consts.MethodPost, endpointResetPassword, body, nil)
}

// VerifyEmail consumes an email verification token.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	body := map[string]string{"token": token}
	return c.do(ctx, consts.MethodPost, endpointVerifyEmail, body, nil)
}

// Me returns the profile behind the current credential.
func (c *Client) Me(ctx context.Context) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := c.do(ctx, consts.MethodGet, endpointMe, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
