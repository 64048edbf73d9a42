package fintrack

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Session is the only state persisted outside the in-memory mirror: the
// authentication credential and the user-set monthly spending limit. It
// survives restarts and is cleared on logout.
type Session struct {
	Token         string `json:"token,omitempty"`
	SpendingLimit Money  `json:"spendingLimit"`
}

// DefaultSessionPath returns the session file location under the user
// config directory.
func DefaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "fintrack", "session.json")
}

// LoadSession reads the session file. A missing file is an empty session,
// not an error.
func LoadSession(path string) (*Session, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read session file %q: %w", path, err)
	}
	session := new(Session)
	if err := json.Unmarshal(content, session); err != nil {
		return nil, fmt.Errorf("cannot decode session file %q: %w", path, err)
	}
	return session, nil
}

// SaveSession writes the session file, creating parent directories as
// needed. The file is user-readable only, it holds a credential.
func SaveSession(path string, session *Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("cannot create session directory: %w", err)
	}
	content, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("cannot write session file %q: %w", path, err)
	}
	return nil
}

// ClearSession removes the persisted credential but keeps the spending
// limit, which belongs to the user rather than the session.
func ClearSession(path string) error {
	session, err := LoadSession(path)
	if err != nil {
		return err
	}
	session.Token = ""
	return SaveSession(path, session)
}
