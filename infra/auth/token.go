package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stylesense/stylesense/domain"
)

// TokenProvider supplies an access token for API authentication.
type TokenProvider interface {
	AccessToken() (string, error)
}

// FileTokenProvider reads a bearer token from a file on disk.
type FileTokenProvider struct {
	path string
	now  func() time.Time
}

// NewFileTokenProvider creates a TokenProvider that reads from the given file path.
func NewFileTokenProvider(path string) *FileTokenProvider {
	return &FileTokenProvider{path: path, now: time.Now}
}

// AccessToken reads and returns the token, trimming whitespace. An expired
// token is reported as domain.ErrUnauthorized without a network round trip.
func (f *FileTokenProvider) AccessToken() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("no session at %s: %w", f.path, domain.ErrUnauthorized)
		}
		return "", fmt.Errorf("reading token from %s: %w", f.path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty: %w", f.path, domain.ErrUnauthorized)
	}
	if exp, ok := Expiry(token); ok && !f.now().Before(exp) {
		return "", fmt.Errorf("session expired at %s: %w", exp.Format(time.RFC3339), domain.ErrUnauthorized)
	}

	return token, nil
}

// Expiry returns the exp claim of a JWT. The signature is not checked; the
// server remains the authority and this only spares a doomed request.
func Expiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
