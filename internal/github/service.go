// ABOUTME: GitHub OAuth authorization-code flow and session state machine
// ABOUTME: Guarantees a single in-flight authentication attempt per service

package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"golang.org/x/oauth2"
	oauthgithub "golang.org/x/oauth2/github"

	"github.com/stridelog/stride/internal/credentials"
)

// DefaultRedirectURI is the app-scheme callback GitHub redirects to.
const DefaultRedirectURI = "stride://github/callback"

// Options configure the auth service. Zero values fall back to the
// public GitHub endpoints and the default redirect URI.
type Options struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string

	// AuthURL and TokenURL override the GitHub OAuth endpoints (tests).
	AuthURL  string
	TokenURL string
}

// Service performs the OAuth authorization-code flow and exposes the
// session state machine. All methods are safe for concurrent use; at
// most one authentication attempt is in flight at a time.
type Service struct {
	oauth  *oauth2.Config
	creds  credentials.Store
	client *Client
	logger *slog.Logger

	mu          sync.Mutex
	state       State
	profile     *UserProfile
	subscribers []chan Session
}

// NewService creates an auth service in the signed-out state. Call
// Resume to pick up a previously stored token.
func NewService(opts Options, creds credentials.Store, client *Client) *Service {
	endpoint := oauthgithub.Endpoint
	if opts.AuthURL != "" {
		endpoint.AuthURL = opts.AuthURL
	}
	if opts.TokenURL != "" {
		endpoint.TokenURL = opts.TokenURL
	}
	redirect := opts.RedirectURI
	if redirect == "" {
		redirect = DefaultRedirectURI
	}
	scopes := opts.Scopes
	if len(scopes) == 0 {
		scopes = []string{"read:user", "repo"}
	}

	return &Service{
		oauth: &oauth2.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			Endpoint:     endpoint,
			RedirectURL:  redirect,
			Scopes:       scopes,
		},
		creds:  creds,
		client: client,
		logger: slog.Default().With("component", "github-auth"),
		state:  StateSignedOut,
	}
}

// Session returns a snapshot of the current session.
func (s *Service) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Session{State: s.state, Profile: s.profile}
}

// Subscribe returns a channel that receives a session snapshot after
// every state transition. Slow receivers miss intermediate snapshots
// rather than blocking the service.
func (s *Service) Subscribe() <-chan Session {
	ch := make(chan Session, 8)
	s.mu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.mu.Unlock()
	return ch
}

// setState must be called with s.mu held.
func (s *Service) setState(state State, profile *UserProfile) {
	s.state = state
	s.profile = profile
	snapshot := Session{State: state, Profile: profile}
	for _, ch := range s.subscribers {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// AuthorizeURL returns the GitHub authorization endpoint URL the caller
// opens in a browser. state is the CSRF token round-tripped through the
// callback.
func (s *Service) AuthorizeURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// Authenticate exchanges an authorization code for an access token,
// stores the token, fetches the user profile, and transitions to
// signed-in. A second call while an attempt is in flight returns
// ErrAuthInProgress. On any failure the session returns to signed-out
// and no token remains in the credential store.
func (s *Service) Authenticate(ctx context.Context, code string) (*UserProfile, error) {
	s.mu.Lock()
	if s.state == StateAuthenticating {
		s.mu.Unlock()
		return nil, ErrAuthInProgress
	}
	s.setState(StateAuthenticating, nil)
	s.mu.Unlock()

	profile, err := s.exchange(ctx, code)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if s.state == StateAuthenticating {
			s.setState(StateSignedOut, nil)
		}
		return nil, err
	}
	if s.state != StateAuthenticating {
		// A sign-out landed while the exchange was in flight and wins:
		// drop the token the exchange just stored, leave the session as
		// the sign-out left it.
		if delErr := s.creds.Delete(credentials.KeyGitHubAccessToken); delErr != nil {
			s.logger.Warn("failed to remove token after sign-out", "error", delErr)
		}
		return nil, &AuthError{
			Reason: ReasonUserDenied,
			Err:    errors.New("signed out during authentication"),
		}
	}
	s.setState(StateSignedIn, profile)
	s.logger.Info("signed in", "login", profile.Login)
	return profile, nil
}

// exchange runs the token exchange and profile fetch without holding the
// state lock, so the network calls never block Session readers.
func (s *Service) exchange(ctx context.Context, code string) (*UserProfile, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, classifyExchangeError(err)
	}
	if token.AccessToken == "" {
		return nil, &AuthError{
			Reason: ReasonBadResponse,
			Err:    errors.New("token response missing access_token"),
		}
	}

	if err := s.creds.Set(credentials.KeyGitHubAccessToken, token.AccessToken); err != nil {
		// Token store failures are security-relevant, never silent
		return nil, &AuthError{
			Reason: ReasonBadResponse,
			Err:    fmt.Errorf("storing access token: %w", err),
		}
	}

	profile, err := s.client.User(ctx, token.AccessToken)
	if err != nil {
		// Don't keep a token the app could not validate
		if delErr := s.creds.Delete(credentials.KeyGitHubAccessToken); delErr != nil {
			s.logger.Warn("failed to remove unvalidated token", "error", delErr)
		}
		return nil, classifyProfileError(err)
	}

	return profile, nil
}

// classifyExchangeError maps token-endpoint failures onto the AuthError taxonomy.
func classifyExchangeError(err error) *AuthError {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return &AuthError{Reason: ReasonBadStatus, Err: err}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &AuthError{Reason: ReasonNetwork, Err: err}
	}
	return &AuthError{Reason: ReasonBadResponse, Err: err}
}

// classifyProfileError maps profile-fetch failures onto the AuthError taxonomy.
func classifyProfileError(err error) *AuthError {
	if errors.Is(err, ErrUnauthorized) {
		return &AuthError{Reason: ReasonBadStatus, Err: err}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &AuthError{Reason: ReasonNetwork, Err: err}
	}
	return &AuthError{Reason: ReasonBadResponse, Err: err}
}

// SignOut deletes the stored access token and transitions to signed-out.
// It makes no network call and always succeeds, token or no token.
func (s *Service) SignOut() {
	if err := s.creds.Delete(credentials.KeyGitHubAccessToken); err != nil {
		s.logger.Warn("failed to delete access token", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.setState(StateSignedOut, nil)
	s.logger.Info("signed out")
}

// Resume validates a previously stored token at startup. A rejected
// token is removed and the session stays signed-out. Transient failures
// (network down) keep the token for a later attempt and are returned to
// the caller.
func (s *Service) Resume(ctx context.Context) error {
	token, found, err := s.creds.Get(credentials.KeyGitHubAccessToken)
	if err != nil {
		return fmt.Errorf("reading stored token: %w", err)
	}
	if !found {
		return nil
	}

	profile, err := s.client.User(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			s.logger.Info("stored token rejected, removing")
			if delErr := s.creds.Delete(credentials.KeyGitHubAccessToken); delErr != nil {
				s.logger.Warn("failed to remove stale token", "error", delErr)
			}
			return nil
		}
		return fmt.Errorf("validating stored token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.setState(StateSignedIn, profile)
	s.logger.Info("resumed session", "login", profile.Login)
	return nil
}

// Token returns the stored access token, if any.
func (s *Service) Token() (string, bool, error) {
	return s.creds.Get(credentials.KeyGitHubAccessToken)
}
