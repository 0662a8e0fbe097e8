// ABOUTME: Session states and error taxonomy for GitHub authentication
// ABOUTME: Defines the signedOut/authenticating/signedIn machine and AuthError

package github

import (
	"errors"
	"fmt"
	"net/url"
)

// State is the authentication session state.
type State string

const (
	StateSignedOut      State = "signed_out"
	StateAuthenticating State = "authenticating"
	StateSignedIn       State = "signed_in"
)

// Session is a snapshot of the auth service's observable state.
// Profile is non-nil only when State is StateSignedIn.
type Session struct {
	State   State
	Profile *UserProfile
}

// UserProfile holds the authenticated GitHub user's identity.
type UserProfile struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// ErrAuthInProgress is returned when Authenticate is called while another
// authentication attempt is already in flight.
var ErrAuthInProgress = errors.New("authentication already in progress")

// Reason classifies why an authentication attempt failed.
type Reason string

const (
	ReasonUserDenied  Reason = "user_denied"
	ReasonNetwork     Reason = "network"
	ReasonBadStatus   Reason = "bad_status"
	ReasonBadResponse Reason = "bad_response"
)

// AuthError is the error type for all authentication failures. Callers
// surface it to the user as a dismissible message; nothing retries.
type AuthError struct {
	Reason Reason
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("authentication failed (%s)", e.Reason)
	}
	return fmt.Sprintf("authentication failed (%s): %v", e.Reason, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ParseCallback extracts the authorization code from OAuth callback query
// parameters. A denial by the user comes back as error=access_denied and
// is reported as an AuthError with ReasonUserDenied.
func ParseCallback(query url.Values) (string, error) {
	if errCode := query.Get("error"); errCode != "" {
		reason := ReasonBadResponse
		if errCode == "access_denied" {
			reason = ReasonUserDenied
		}
		return "", &AuthError{
			Reason: reason,
			Err:    fmt.Errorf("authorization callback returned %q", errCode),
		}
	}

	code := query.Get("code")
	if code == "" {
		return "", &AuthError{
			Reason: ReasonBadResponse,
			Err:    errors.New("authorization callback missing code"),
		}
	}
	return code, nil
}
