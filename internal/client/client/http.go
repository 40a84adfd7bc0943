package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/userauth/internal/client/models"
	"github.com/dmitrijs2005/userauth/internal/common"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the server at baseURL
// (e.g. "http://127.0.0.1:5000"). If httpClient is nil, one with the given
// timeout is created.
func NewHTTPClient(baseURL string, timeout time.Duration, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPClient) Register(ctx context.Context, name, email string, password []byte) (*models.AuthResponse, error) {
	var out models.AuthResponse
	req := registerRequest{Name: name, Email: email, Password: string(password)}
	if err := c.do(ctx, http.MethodPost, "/api/register", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (*models.AuthResponse, error) {
	var out models.AuthResponse
	req := loginRequest{Email: email, Password: string(password)}
	if err := c.do(ctx, http.MethodPost, "/api/login", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Profile(ctx context.Context, accessToken string) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/api/user", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health checks /healthz; any non-200 answer is an error.
func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", "", nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var er errorResponse
		if json.Unmarshal(data, &er) == nil {
			apiErr.Message = er.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
