// Package backend is the HTTP client for the learning-platform REST API.
// The backend keeps all durable state; this client only carries the
// browser's backend session cookies along with each request.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"metroeval/frontend/internal/model"
)

// ErrUnauthenticated marks a profile fetch that resolved to "anonymous":
// a non-2xx response or a payload without an identifier.
var ErrUnauthenticated = errors.New("unauthenticated")

// SessionCookieNames are the cookies the backend issues to hold its session.
// The gateway relays and expires only these; other cookies on its domain are
// not its to touch.
var SessionCookieNames = []string{"session", "remember_token"}

func IsSessionCookie(name string) bool {
	for _, known := range SessionCookieNames {
		if name == known {
			return true
		}
	}
	return false
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// AuthResult is the backend's envelope for login and register responses.
type AuthResult struct {
	Success bool           `json:"success"`
	Role    string         `json:"role"`
	User    *model.Profile `json:"user"`
	Error   string         `json:"error"`
}

type RegisterRequest struct {
	Email      string
	Password   string
	Name       string
	Role       string
	Department string
}

// Profile fetches the current user's profile using the given backend
// cookies. Returns ErrUnauthenticated when the backend rejects the request
// or the payload carries no id.
func (c *Client) Profile(ctx context.Context, cookies []*http.Cookie) (*model.Profile, error) {
	resp, err := c.get(ctx, "/v1/user/profile", cookies)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ErrUnauthenticated
	}

	var payload struct {
		Success bool `json:"success"`
		model.Profile
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if payload.ID == "" {
		return nil, ErrUnauthenticated
	}
	profile := payload.Profile
	return &profile, nil
}

// Login submits credentials form-encoded. A transport failure returns an
// error; a backend-reported rejection returns AuthResult with Success=false
// and no error. Cookies set by the backend are returned for the caller to
// adopt.
func (c *Client) Login(ctx context.Context, cookies []*http.Cookie, email, password string) (*AuthResult, []*http.Cookie, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)
	return c.postAuthForm(ctx, "/v1/login", cookies, form)
}

// Register submits the registration form. Same contract shape as Login.
func (c *Client) Register(ctx context.Context, cookies []*http.Cookie, req RegisterRequest) (*AuthResult, []*http.Cookie, error) {
	form := url.Values{}
	form.Set("email", req.Email)
	form.Set("password", req.Password)
	form.Set("name", req.Name)
	form.Set("role", req.Role)
	form.Set("department", req.Department)
	return c.postAuthForm(ctx, "/v1/register", cookies, form)
}

// Logout asks the backend to end the session. The response body is ignored;
// any cookies the backend sets (typically expirations) are returned.
func (c *Client) Logout(ctx context.Context, cookies []*http.Cookie) ([]*http.Cookie, error) {
	resp, err := c.get(ctx, "/v1/logout", cookies)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Cookies(), nil
}

// Bookmarks lists the current user's bookmarks. The backend wraps lists in a
// {success, data} envelope, but older deployments returned a bare array;
// both are accepted.
func (c *Client) Bookmarks(ctx context.Context, cookies []*http.Cookie) ([]model.Bookmark, error) {
	resp, err := c.get(ctx, "/v1/bookmarks", cookies)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read bookmarks: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("bookmarks: %s", envelopeError(body, resp.StatusCode))
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var bookmarks []model.Bookmark
		if err := json.Unmarshal(trimmed, &bookmarks); err != nil {
			return nil, fmt.Errorf("decode bookmarks: %w", err)
		}
		return bookmarks, nil
	}

	var payload struct {
		Success bool             `json:"success"`
		Data    []model.Bookmark `json:"data"`
		Error   string           `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, fmt.Errorf("decode bookmarks: %w", err)
	}
	return payload.Data, nil
}

func (c *Client) DeleteBookmark(ctx context.Context, cookies []*http.Cookie, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/bookmark/"+url.PathEscape(id)+"/delete", nil)
	if err != nil {
		return err
	}
	addCookies(req, cookies)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete bookmark: %s", envelopeError(body, resp.StatusCode))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) SetDepartment(ctx context.Context, cookies []*http.Cookie, department string) error {
	payload, err := json.Marshal(map[string]string{"department": department})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/user/department", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	addCookies(req, cookies)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("set department: %s", envelopeError(body, resp.StatusCode))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) get(ctx context.Context, path string, cookies []*http.Cookie) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	addCookies(req, cookies)
	return c.httpClient.Do(req)
}

func (c *Client) postAuthForm(ctx context.Context, path string, cookies []*http.Cookie, form url.Values) (*AuthResult, []*http.Cookie, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	addCookies(req, cookies)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	// Auth rejections arrive as non-2xx with the same envelope, so the body
	// is decoded regardless of status.
	var result AuthResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, nil, fmt.Errorf("decode auth response: %w", err)
	}
	return &result, resp.Cookies(), nil
}

func addCookies(req *http.Request, cookies []*http.Cookie) {
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
}

func envelopeError(body []byte, status int) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return fmt.Sprintf("status %d", status)
}
