package stylesense

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stylesense/stylesense/domain"
	"github.com/stylesense/stylesense/infra/auth"
)

const requestIDHeader = "X-Request-ID"

// Client is a thin wrapper over the StyleSense REST API.
// It handles base URL construction, bearer token injection and status mapping.
type Client struct {
	baseURL       string
	tokenProvider auth.TokenProvider
	http          *resty.Client
	log           *logrus.Entry
}

// NewClient creates an API client. tp may be nil for unauthenticated calls
// such as Login.
func NewClient(baseURL string, tp auth.TokenProvider, timeout time.Duration) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		tokenProvider: tp,
		http:          resty.New().SetBaseURL(strings.TrimRight(baseURL, "/")).SetTimeout(timeout),
		log:           logrus.WithField("component", "api"),
	}
	c.http.SetHeader("Accept", "application/json")
	c.http.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		c.log.WithFields(logrus.Fields{
			"method":     resp.Request.Method,
			"path":       resp.Request.URL,
			"status":     resp.StatusCode(),
			"request_id": resp.Request.Header.Get(requestIDHeader),
			"duration":   resp.Time().String(),
		}).Debug("api request")
		return nil
	})
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string { return c.baseURL }

// ImageURL returns the public URL of an uploaded outfit photo.
func (c *Client) ImageURL(filename string) string {
	return c.baseURL + "/uploads/" + filename
}

// request prepares an authenticated request bound to ctx.
func (c *Client) request(ctx context.Context, authenticated bool) (*resty.Request, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, uuid.NewString())
	if !authenticated {
		return req, nil
	}
	if c.tokenProvider == nil {
		return nil, fmt.Errorf("auth: no token provider: %w", domain.ErrUnauthorized)
	}
	token, err := c.tokenProvider.AccessToken()
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	return req.SetAuthToken(token), nil
}

// do executes method on path, decoding a 2xx JSON body into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.request(ctx, true)
	if err != nil {
		return err
	}
	return c.execute(req, method, path, body, out)
}

func (c *Client) execute(req *resty.Request, method, path string, body, out any) error {
	raw, err := c.send(req, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parsing %s response: %w", path, err)
	}
	return nil
}

// doRaw is do without decoding: it returns the 2xx body as received.
func (c *Client) doRaw(ctx context.Context, method, path string, body any) ([]byte, error) {
	req, err := c.request(ctx, true)
	if err != nil {
		return nil, err
	}
	return c.send(req, method, path, body)
}

func (c *Client) send(req *resty.Request, method, path string, body any) ([]byte, error) {
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	if err := statusError(method, path, resp); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func statusError(method, path string, resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= 200 && code < 300 {
		return nil
	}
	detail := errorDetail(resp.Body())
	switch code {
	case http.StatusUnauthorized:
		return fmt.Errorf("API %s %s: %s: %w", method, path, detail, domain.ErrUnauthorized)
	case http.StatusNotFound:
		return fmt.Errorf("API %s %s: %s: %w", method, path, detail, domain.ErrNotFound)
	}
	return fmt.Errorf("API %s %s returned %d: %s", method, path, code, detail)
}

// errorDetail extracts FastAPI's {"detail": ...} message when present.
func errorDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			return s
		}
		return string(payload.Detail)
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}

// IsUnauthorized reports whether err means the session must be renewed.
func IsUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}
