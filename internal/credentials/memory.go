// ABOUTME: In-memory credential store for tests and keyring-less platforms
// ABOUTME: Mutex-guarded map with the same semantics as the OS-backed store

package credentials

import (
	"fmt"
	"sync"
)

// Memory is an in-memory credential store. It is safe for concurrent use
// and is the implementation tests run against.
type Memory struct {
	mu      sync.RWMutex
	secrets map[Key]string
}

// NewMemory creates an empty in-memory credential store.
func NewMemory() *Memory {
	return &Memory{
		secrets: make(map[Key]string),
	}
}

// Set stores or overwrites the secret for a key.
func (m *Memory) Set(key Key, value string) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secrets[key] = value
	return nil
}

// Get returns the stored secret, or found=false if the key was never set.
func (m *Memory) Get(key Key) (string, bool, error) {
	if !key.Valid() {
		return "", false, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, found := m.secrets[key]
	return value, found, nil
}

// Delete removes the stored secret. Absent keys are not an error.
func (m *Memory) Delete(key Key) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.secrets, key)
	return nil
}

// Ensure Memory implements Store
var _ Store = (*Memory)(nil)
