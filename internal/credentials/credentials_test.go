// ABOUTME: Tests for credential store semantics against the in-memory backend
// ABOUTME: Covers round-trips, delete idempotence, and key validation

package credentials

import (
	"errors"
	"testing"
)

func TestSetThenGet(t *testing.T) {
	s := NewMemory()

	if err := s.Set(KeyGitHubAccessToken, "abc123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, found, err := s.Get(KeyGitHubAccessToken)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found {
		t.Fatal("expected credential to be found")
	}
	if value != "abc123" {
		t.Errorf("value = %q, want %q", value, "abc123")
	}
}

func TestSet_Overwrites(t *testing.T) {
	s := NewMemory()

	if err := s.Set(KeyGitHubClientID, "old"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(KeyGitHubClientID, "new"); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}

	value, found, _ := s.Get(KeyGitHubClientID)
	if !found || value != "new" {
		t.Errorf("Get = %q/%v, want new/true", value, found)
	}
}

func TestGet_AbsentIsNotAnError(t *testing.T) {
	s := NewMemory()

	value, found, err := s.Get(KeyAnthropicAPIKey)
	if err != nil {
		t.Fatalf("Get of absent key returned error: %v", err)
	}
	if found {
		t.Error("expected found=false for never-set key")
	}
	if value != "" {
		t.Errorf("value = %q, want empty", value)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	s := NewMemory()

	// Deleting a key that was never set must succeed
	if err := s.Delete(KeyGitHubAccessToken); err != nil {
		t.Fatalf("Delete of absent key failed: %v", err)
	}

	if err := s.Set(KeyGitHubAccessToken, "abc123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Delete(KeyGitHubAccessToken); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	// And again, after the key is gone
	if err := s.Delete(KeyGitHubAccessToken); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}

	_, found, err := s.Get(KeyGitHubAccessToken)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("expected credential to be gone after delete")
	}
}

func TestUnknownKeyRejected(t *testing.T) {
	s := NewMemory()

	if err := s.Set(Key("random_key"), "v"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Set: expected ErrUnknownKey, got %v", err)
	}
	if _, _, err := s.Get(Key("random_key")); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Get: expected ErrUnknownKey, got %v", err)
	}
	if err := s.Delete(Key("random_key")); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Delete: expected ErrUnknownKey, got %v", err)
	}
}

func TestKeyValid(t *testing.T) {
	for _, k := range []Key{KeyAnthropicAPIKey, KeyGitHubAccessToken, KeyGitHubClientID, KeyGitHubClientSecret} {
		if !k.Valid() {
			t.Errorf("Valid(%s) = false, want true", k)
		}
	}
	if Key("github_token").Valid() {
		t.Error("Valid(github_token) = true, want false")
	}
}
