package stylesense

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/stylesense/stylesense/domain"
)

type authResponse struct {
	Data struct {
		User  apiUser `json:"user"`
		Token struct {
			AccessToken string `json:"access_token"`
		} `json:"token"`
	} `json:"data"`
}

// Login exchanges credentials for a bearer token and the user record.
func (c *Client) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", domain.User{}, errors.New("email and password are required")
	}
	body := map[string]string{"email": email, "password": password}
	return c.authenticate(ctx, "/api/auth/login", "logging in", body)
}

// Signup registers a new account. The server signs the new user in, so it
// returns a token just like Login.
func (c *Client) Signup(ctx context.Context, email, username, password string) (string, domain.User, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if email == "" || username == "" || password == "" {
		return "", domain.User{}, errors.New("email, username and password are required")
	}
	body := map[string]string{"email": email, "username": username, "password": password}
	return c.authenticate(ctx, "/api/auth/signup", "signing up", body)
}

func (c *Client) authenticate(ctx context.Context, path, action string, body map[string]string) (string, domain.User, error) {
	req, err := c.request(ctx, false)
	if err != nil {
		return "", domain.User{}, err
	}
	var out authResponse
	if err := c.execute(req, http.MethodPost, path, body, &out); err != nil {
		return "", domain.User{}, fmt.Errorf("%s: %w", action, err)
	}

	token := strings.TrimSpace(out.Data.Token.AccessToken)
	if token == "" {
		return "", domain.User{}, fmt.Errorf("%s: response missing access token", action)
	}
	return token, domain.User{
		ID:       out.Data.User.ID,
		Email:    out.Data.User.Email,
		Username: sanitizeForTerminal(out.Data.User.Username),
	}, nil
}
