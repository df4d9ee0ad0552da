package supabase

import (
	"fmt"
	"strings"

	"github.com/supabase-community/gotrue-go/types"
)

// UserIDForToken resolves a Supabase-issued access token to a user id
// via GoTrue. Locally-issued fallback tokens are not handled here; the
// auth middleware verifies those itself.
func (c *Client) UserIDForToken(token string) (string, error) {
	resp, err := c.Supabase.Auth.WithToken(token).GetUser()
	if err != nil {
		return "", fmt.Errorf("failed to resolve token: %w", err)
	}
	return resp.ID.String(), nil
}

// SignUp creates an auth user with the nickname stored in user metadata
// and returns the new user id.
func (c *Client) SignUp(email, password, nickname string) (string, error) {
	resp, err := c.Supabase.Auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
		Data: map[string]interface{}{
			"nickname": nickname,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign up user: %w", err)
	}
	return resp.ID.String(), nil
}

// SignIn performs a password grant and returns the session access token
// plus the user id.
func (c *Client) SignIn(email, password string) (string, string, error) {
	session, err := c.Supabase.SignInWithEmailPassword(email, password)
	if err != nil {
		return "", "", err
	}
	return session.AccessToken, session.User.ID.String(), nil
}

// IsEmailNotConfirmed reports whether a sign-in error is the GoTrue
// "email not confirmed" rejection, which the login handler downgrades
// to a locally-issued token.
func IsEmailNotConfirmed(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "not confirmed")
}

// FindUserIDByEmail looks a user up through the admin API. Used only on
// the login fallback path when the password grant is blocked by email
// confirmation.
func (c *Client) FindUserIDByEmail(email string) (string, error) {
	resp, err := c.Supabase.Auth.AdminListUsers()
	if err != nil {
		return "", fmt.Errorf("failed to list users: %w", err)
	}
	for _, u := range resp.Users {
		if strings.EqualFold(u.Email, email) {
			return u.ID.String(), nil
		}
	}
	return "", fmt.Errorf("no user with email %q", email)
}

// SendRecovery triggers the password-recovery email.
func (c *Client) SendRecovery(email string) error {
	if err := c.Supabase.Auth.Recover(types.RecoverRequest{Email: email}); err != nil {
		return fmt.Errorf("failed to send recovery email: %w", err)
	}
	return nil
}

// UpdatePassword sets a new password for the user the token belongs to.
func (c *Client) UpdatePassword(token, newPassword string) error {
	_, err := c.Supabase.Auth.WithToken(token).UpdateUser(types.UpdateUserRequest{
		Password: &newPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
