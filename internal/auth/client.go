// Package auth is the typed client for the rider principal lifecycle:
// signup, login, profile reads and edits, password change.
package auth

import (
	"context"
	"fmt"

	"zippgo/internal/domain/principal"
	"zippgo/internal/gateway"
	"zippgo/internal/session"
)

// Client speaks to the /auth endpoints through the gateway.
type Client struct {
	gw *gateway.Gateway
}

// it doubles as the session manager's rider authenticator
var _ session.Authenticator = (*Client)(nil)

func NewClient(gw *gateway.Gateway) *Client {
	return &Client{gw: gw}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// authPayload is the {token, user} pair login and signup return.
type authPayload struct {
	Token string           `json:"token"`
	User  *principal.Rider `json:"user"`
}

// userPayload is the {user} shape the profile endpoints return.
type userPayload struct {
	User *principal.Rider `json:"user"`
}

// Login authenticates a rider and returns the issued token plus profile.
func (client *Client) Login(ctx context.Context, creds session.Credentials) (string, principal.Principal, error) {
	var payload authPayload
	err := client.gw.Post(ctx, "/auth/login", loginRequest{Email: creds.Email, Password: creds.Password}, &payload)
	if err != nil {
		return "", nil, err
	}
	if payload.Token == "" || payload.User == nil {
		return "", nil, fmt.Errorf("auth: login response missing token or user")
	}
	return payload.Token, payload.User, nil
}

// Register creates a rider account; the vehicle fields and attachments of
// the registration are driver-only and ignored here.
func (client *Client) Register(ctx context.Context, reg session.Registration) (string, principal.Principal, error) {
	req := signupRequest{Name: reg.Name, Email: reg.Email, Phone: reg.Phone, Password: reg.Password}
	var payload authPayload
	if err := client.gw.Post(ctx, "/auth/signup", req, &payload); err != nil {
		return "", nil, err
	}
	if payload.Token == "" || payload.User == nil {
		return "", nil, fmt.Errorf("auth: signup response missing token or user")
	}
	return payload.Token, payload.User, nil
}

// Profile fetches the authenticated rider's profile.
func (client *Client) Profile(ctx context.Context) (principal.Principal, error) {
	var payload userPayload
	if err := client.gw.Get(ctx, "/auth/profile", &payload); err != nil {
		return nil, err
	}
	if payload.User == nil {
		return nil, fmt.Errorf("auth: profile response missing user")
	}
	return payload.User, nil
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// UpdateProfile edits the rider profile and returns the server's copy.
func (client *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*principal.Rider, error) {
	var payload userPayload
	if err := client.gw.Put(ctx, "/auth/profile", update, &payload); err != nil {
		return nil, err
	}
	if payload.User == nil {
		return nil, fmt.Errorf("auth: profile response missing user")
	}
	return payload.User, nil
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword rotates the rider's password.
func (client *Client) ChangePassword(ctx context.Context, current, next string) error {
	return client.gw.Put(ctx, "/auth/change-password", changePasswordRequest{CurrentPassword: current, NewPassword: next}, nil)
}
