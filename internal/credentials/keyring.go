// ABOUTME: OS-backed credential store implementation using the system keyring
// ABOUTME: Secrets are scoped by an application service identifier

package credentials

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/zalando/go-keyring"
)

// DefaultService is the keyring service identifier used when none is configured.
const DefaultService = "dev.stride.app"

// Keyring stores secrets in the operating system's secure storage
// (Keychain on macOS, Secret Service on Linux, Credential Manager on
// Windows). Encryption at rest is the platform's problem, not ours.
type Keyring struct {
	service string
	logger  *slog.Logger
}

// NewKeyring creates an OS-backed store scoped to the given service
// identifier. An empty service falls back to DefaultService.
func NewKeyring(service string) *Keyring {
	if service == "" {
		service = DefaultService
	}
	return &Keyring{
		service: service,
		logger:  slog.Default().With("component", "credentials"),
	}
}

// Set stores or overwrites the secret for a key.
func (k *Keyring) Set(key Key, value string) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err := keyring.Set(k.service, string(key), value); err != nil {
		return fmt.Errorf("storing %s in keyring: %w", key, err)
	}
	k.logger.Debug("stored credential", "key", key)
	return nil
}

// Get returns the stored secret, or found=false if the key was never set.
func (k *Keyring) Get(key Key) (string, bool, error) {
	if !key.Valid() {
		return "", false, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	value, err := keyring.Get(k.service, string(key))
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s from keyring: %w", key, err)
	}
	return value, true, nil
}

// Delete removes the stored secret. Absent keys are not an error.
func (k *Keyring) Delete(key Key) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	err := keyring.Delete(k.service, string(key))
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("deleting %s from keyring: %w", key, err)
	}
	k.logger.Debug("deleted credential", "key", key)
	return nil
}

// Ensure Keyring implements Store
var _ Store = (*Keyring)(nil)
