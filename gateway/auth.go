package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type Session struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	RefreshToken string   `json:"refresh_token"`
	User         AuthUser `json:"user"`
}

type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SignIn exchanges email+password for a session with the gateway's auth
// service.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return c.authSession(ctx, c.baseURL+"/auth/v1/token?grant_type=password", email, password)
}

// SignUp registers a new user and returns the resulting session.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return c.authSession(ctx, c.baseURL+"/auth/v1/signup", email, password)
}

func (c *Client) authSession(ctx context.Context, u, email, password string) (*Session, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req, err := c.newRequest(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	var session Session
	if err := c.do(req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SignOut revokes the given access token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	return c.do(req, nil)
}

// RecoverPassword asks the gateway to send a password reset email.
func (c *Client) RecoverPassword(ctx context.Context, email string) error {
	body, _ := json.Marshal(map[string]string{"email": email})
	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+"/auth/v1/recover", bytes.NewReader(body))
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// UpdatePassword changes the password of the user the access token belongs to.
func (c *Client) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	body, _ := json.Marshal(map[string]string{"password": newPassword})
	req, err := c.newRequest(ctx, http.MethodPut, c.baseURL+"/auth/v1/user", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("password update rejected: %w", err)
	}
	return nil
}
