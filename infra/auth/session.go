package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stylesense/stylesense/domain"
)

// Session stores the bearer token and the signed-in user on disk.
type Session struct {
	tokenPath string
	userPath  string
}

// NewSession creates a Session backed by the two files.
func NewSession(tokenPath, userPath string) *Session {
	return &Session{tokenPath: tokenPath, userPath: userPath}
}

type storedUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Save persists the token and user after a successful login.
func (s *Session) Save(token string, user domain.User) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("refusing to store an empty token")
	}
	if err := writeFile(s.tokenPath, []byte(strings.TrimSpace(token))); err != nil {
		return fmt.Errorf("writing token: %w", err)
	}
	data, err := json.Marshal(storedUser{ID: user.ID, Email: user.Email, Username: user.Username})
	if err != nil {
		return fmt.Errorf("serializing user: %w", err)
	}
	if err := writeFile(s.userPath, data); err != nil {
		return fmt.Errorf("writing user: %w", err)
	}
	return nil
}

// User returns the stored user record.
func (s *Session) User() (domain.User, error) {
	data, err := os.ReadFile(s.userPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.User{}, fmt.Errorf("no stored user: %w", domain.ErrUnauthorized)
		}
		return domain.User{}, fmt.Errorf("reading user: %w", err)
	}
	var u storedUser
	if err := json.Unmarshal(data, &u); err != nil {
		return domain.User{}, fmt.Errorf("parsing user: %w", err)
	}
	return domain.User{ID: u.ID, Email: u.Email, Username: u.Username}, nil
}

// Clear removes both files. Missing files are not an error.
func (s *Session) Clear() error {
	for _, p := range []string{s.tokenPath, s.userPath} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", p, err)
		}
	}
	return nil
}

// Tokens returns a TokenProvider reading this session's token file.
func (s *Session) Tokens() *FileTokenProvider {
	return NewFileTokenProvider(s.tokenPath)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// CurrentUser implements app.AccountService from the stored record.
func (s *Session) CurrentUser(context.Context) (domain.User, error) {
	return s.User()
}
