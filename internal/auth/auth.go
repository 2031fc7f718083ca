// Package auth persists and loads the CoSoft session credential.
// Tokens are stored in a small JSON file (default ~/.config/cowork/auth.json)
// and threaded through every API call as an explicit Session value; this
// package never refreshes or re-acquires tokens on its own.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Session is the credential pair the remote API expects as cookies.
type Session struct {
	Token   string `json:"authToken"`
	Refresh string `json:"refreshToken"`
}

// Valid reports whether the session carries a usable auth token.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.Token) != ""
}

// ErrNotLoggedIn is returned when no stored session exists.
var ErrNotLoggedIn = errors.New("not logged in: run `cowork login` first")

// Load reads the stored session from path.
func Load(path string) (Session, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, ErrNotLoggedIn
		}
		return Session{}, fmt.Errorf("read auth file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(bytes, &session); err != nil {
		return Session{}, fmt.Errorf("parse auth file: %w", err)
	}
	if !session.Valid() {
		return Session{}, ErrNotLoggedIn
	}
	return session, nil
}

// Save writes the session to path, creating directories as needed. The file
// is written 0600 since it holds live credentials.
func Save(path string, session Session) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create auth dir: %w", err)
	}

	bytes, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.WriteFile(path, bytes, 0o600); err != nil {
		return fmt.Errorf("write auth file: %w", err)
	}
	return nil
}
