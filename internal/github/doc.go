// Package github implements the GitHub integration: the OAuth
// authorization-code flow, the session state machine, a minimal REST
// client, and the commit activity sync.
//
// # Session state machine
//
// The Service moves between three states:
//
//	signedOut -> authenticating -> signedIn
//	authenticating -> signedOut (on any failure)
//
// At most one authentication attempt is in flight per Service; a second
// Authenticate call while authenticating returns ErrAuthInProgress.
// Transitions can be observed through Subscribe without polling.
//
// # Tokens
//
// The access token lives in the credential store under the
// github_access_token key, never in the database. On every failure path
// the store ends up without a token the app could not validate.
//
// # Errors
//
// All authentication failures are *AuthError with a Reason of
// user_denied, network, bad_status, or bad_response. Nothing retries
// automatically; the user re-triggers the action.
package github
