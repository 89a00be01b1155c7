// Package whop is a thin client for the parts of the Whop platform the app
// depends on: user-token verification, access checks and resource lookups.
package whop

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultBaseURL is the root of the public REST API.
const DefaultBaseURL = "https://api.whop.com/api/v1"

// Config holds the settings needed to build a Client.
type Config struct {
	APIKey  string
	AppID   string
	BaseURL string

	// TokenPublicKey is the PEM encoded ES256 public key for user tokens.
	// Token verification fails closed when it is empty.
	TokenPublicKey string

	// HTTPClient overrides the default client (30s timeout).
	HTTPClient *http.Client
}

// Client talks to the Whop REST API with a bearer API key. Requests are
// never retried; failures surface to the caller immediately.
type Client struct {
	baseURL    string
	apiKey     string
	appID      string
	tokenKey   *ecdsa.PublicKey
	httpClient *http.Client
}

// NewClient creates a new Whop client.
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.APIKey,
		appID:      cfg.AppID,
		httpClient: cfg.HTTPClient,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	if cfg.TokenPublicKey != "" {
		key, err := jwt.ParseECPublicKeyFromPEM([]byte(cfg.TokenPublicKey))
		if err != nil {
			return nil, fmt.Errorf("parsing token public key: %w", err)
		}
		c.tokenKey = key
	}

	return c, nil
}

// CheckAccess asks whether userID may access resourceID. The same call
// serves experiences (access level) and companies (has-access flag).
func (c *Client) CheckAccess(
	ctx context.Context,
	resourceID string,
	userID string,
) (AccessCheck, error) {
	var check AccessCheck
	path := "/users/" + url.PathEscape(userID) + "/access/" + url.PathEscape(resourceID)
	if err := c.get(ctx, path, &check); err != nil {
		return AccessCheck{}, err
	}
	return check, nil
}

// RetrieveExperience fetches an experience by ID.
func (c *Client) RetrieveExperience(ctx context.Context, id string) (*Experience, error) {
	var exp Experience
	if err := c.get(ctx, "/experiences/"+url.PathEscape(id), &exp); err != nil {
		return nil, err
	}
	return &exp, nil
}

// RetrieveCompany fetches a company by ID.
func (c *Client) RetrieveCompany(ctx context.Context, id string) (*Company, error) {
	var company Company
	if err := c.get(ctx, "/companies/"+url.PathEscape(id), &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// RetrieveUser fetches a platform user by ID.
func (c *Client) RetrieveUser(ctx context.Context, id string) (*User, error) {
	var user User
	if err := c.get(ctx, "/users/"+url.PathEscape(id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, result)
}

// do builds the request, applies auth and decodes the JSON response.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	result interface{},
) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
		}
		var payload errorResponse
		if json.Unmarshal(respBody, &payload) == nil && payload.message() != "" {
			apiErr.Message = payload.message()
		} else {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		return apiErr
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshaling response from %s %s: %w", method, path, err)
	}

	return nil
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("whop API error (%d) on %s %s: %s", e.StatusCode, e.Method, e.Path, e.Message)
}

// IsNotFound reports whether err (or any error in its chain) is a 404 APIError.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

func (r errorResponse) message() string {
	if r.Error.Message != "" {
		return r.Error.Message
	}
	return r.Message
}
