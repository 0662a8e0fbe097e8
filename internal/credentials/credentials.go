// ABOUTME: Secure secret storage behind a pluggable key-value interface
// ABOUTME: Keys are a fixed enumeration of credential names used by stride

package credentials

import "errors"

// Key names the secrets stride stores. The set is fixed; callers never
// invent key strings at runtime.
type Key string

const (
	KeyAnthropicAPIKey    Key = "anthropic_api_key"
	KeyGitHubAccessToken  Key = "github_access_token"
	KeyGitHubClientID     Key = "github_client_id"
	KeyGitHubClientSecret Key = "github_client_secret"
)

// ErrUnknownKey is returned when a key outside the fixed enumeration is used
var ErrUnknownKey = errors.New("unknown credential key")

// knownKeys is the closed set of valid credential names.
var knownKeys = map[Key]struct{}{
	KeyAnthropicAPIKey:    {},
	KeyGitHubAccessToken:  {},
	KeyGitHubClientID:     {},
	KeyGitHubClientSecret: {},
}

// Valid reports whether k is part of the fixed key enumeration.
func (k Key) Valid() bool {
	_, ok := knownKeys[k]
	return ok
}

// Store persists small secret strings outside the main database.
// Implementations hold no encryption logic of their own; the OS-backed
// implementation delegates entirely to the platform's secure storage.
type Store interface {
	// Set stores or overwrites the secret for a key.
	Set(key Key, value string) error
	// Get returns the stored secret. A key that was never set is not an
	// error: found is false and err is nil.
	Get(key Key) (value string, found bool, err error)
	// Delete removes the stored secret. Deleting an absent key is a no-op.
	Delete(key Key) error
}
