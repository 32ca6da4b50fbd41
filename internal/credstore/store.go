// Package credstore persists the session credentials — bearer token plus
// serialized principal — across process restarts. Both live in one JSON file
// so a reader can never observe a token without its matching principal.
package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"zippgo/internal/domain/principal"
)

// record is the on-disk document. Token and principal are written together
// or not at all.
type record struct {
	Token     string          `json:"token"`
	Principal json.RawMessage `json:"principal"`
}

// Store is a file-backed credential store. All operations are synchronous
// and local; an unreadable or corrupt file reads as "absent" so the client
// fails open to logged-out rather than erroring at startup.
type Store struct {
	path string
}

// New returns a store rooted at path. The parent directory is created on
// first Put, not here.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath is the conventional credentials location under the user's
// config directory, with a working-directory fallback when the home
// directory cannot be resolved.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".zippgo", "credentials.json")
	}
	return filepath.Join(dir, "zippgo", "credentials.json")
}

// Put persists the pair. The write goes through a temp file and rename so a
// concurrent Get sees either the previous pair or the new one, never a torn
// document.
func (store *Store) Put(token string, p principal.Principal) error {
	if token == "" || p == nil {
		return fmt.Errorf("credstore: refusing to persist a partial session")
	}

	encoded, err := principal.Encode(p)
	if err != nil {
		return fmt.Errorf("credstore: %w", err)
	}
	doc, err := json.Marshal(record{Token: token, Principal: encoded})
	if err != nil {
		return fmt.Errorf("credstore: marshal record: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return fmt.Errorf("credstore: create dir: %w", err)
	}

	tmp := store.path + ".tmp"
	if err := os.WriteFile(tmp, doc, 0o600); err != nil {
		return fmt.Errorf("credstore: write: %w", err)
	}
	if err := os.Rename(tmp, store.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("credstore: rename: %w", err)
	}
	return nil
}

// Get returns the persisted pair, or ok=false if nothing (valid) is stored.
func (store *Store) Get() (token string, p principal.Principal, ok bool) {
	raw, err := os.ReadFile(store.path)
	if err != nil {
		return "", nil, false
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return "", nil, false
	}
	if rec.Token == "" || len(rec.Principal) == 0 {
		return "", nil, false
	}

	decoded, err := principal.Decode(rec.Principal)
	if err != nil {
		return "", nil, false
	}
	return rec.Token, decoded, true
}

// Clear removes the persisted pair. Clearing an empty store is a no-op.
func (store *Store) Clear() error {
	if err := os.Remove(store.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("credstore: clear: %w", err)
	}
	return nil
}
