package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Profile is the client-side decoding of a profile document.
type Profile struct {
	ID             string            `json:"id"`
	UserID         string            `json:"user_id"`
	Status         string            `json:"status"`
	Company        string            `json:"company,omitempty"`
	Location       string            `json:"location,omitempty"`
	Bio            string            `json:"bio,omitempty"`
	GithubUsername string            `json:"githubusername,omitempty"`
	Skills         []string          `json:"skills"`
	Social         map[string]string `json:"social"`
	Experience     []HistoryEntry    `json:"experience"`
	Education      []HistoryEntry    `json:"education"`
	User           UserInfo          `json:"user"`
}

// HistoryEntry covers both experience and education entries; the unused
// fields of the other kind decode to their zero values.
type HistoryEntry struct {
	ID           string `json:"id"`
	Company      string `json:"company,omitempty"`
	Title        string `json:"title,omitempty"`
	School       string `json:"school,omitempty"`
	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"fieldofstudy,omitempty"`
	Current      bool   `json:"current"`
}

type apiMessage struct {
	Msg string `json:"msg"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Msg        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Msg)
}

// Client issues requests against the REST API and settles results into the
// shared store.
type Client struct {
	baseURL string
	http    *http.Client
	store   *Store
}

func New(baseURL string, store *Store) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   store,
	}
}

// Store exposes the state tree the client writes into.
func (c *Client) Store() *Store {
	return c.store
}

// Login authenticates and settles the auth slice.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login", body, &resp); err != nil {
		c.store.setAuth(AuthState{Loading: false})
		return err
	}

	c.store.setAuth(AuthState{Loading: false, Authenticated: true, Token: resp.Token})
	return nil
}

// Register creates an account and settles the auth slice.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/register", body, &resp); err != nil {
		c.store.setAuth(AuthState{Loading: false})
		return err
	}

	c.store.setAuth(AuthState{Loading: false, Authenticated: true, Token: resp.Token})
	return nil
}

// LoadCurrentProfile fetches the authenticated user's profile. A 400 "no
// profile" settles the state with a nil profile rather than failing: the
// dashboard renders an empty state for it.
func (c *Client) LoadCurrentProfile(ctx context.Context) error {
	c.store.setProfileLoading()

	var profile Profile
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/profile/me", nil, &profile)
	if err != nil {
		c.store.setProfile(nil)
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			return nil
		}
		return err
	}

	c.store.setProfile(&profile)
	return nil
}

// LoadProfiles fetches the full profile collection.
func (c *Client) LoadProfiles(ctx context.Context) error {
	c.store.setProfileLoading()

	var profiles []Profile
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/profile", nil, &profiles); err != nil {
		c.store.setProfiles(nil)
		return err
	}

	c.store.setProfiles(profiles)
	return nil
}

// LoadProfileByUser fetches one profile by its owner's user id.
func (c *Client) LoadProfileByUser(ctx context.Context, userID string) error {
	c.store.setProfileLoading()

	var profile Profile
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/profile/user/"+userID, nil, &profile); err != nil {
		c.store.setProfile(nil)
		return err
	}

	c.store.setProfile(&profile)
	return nil
}

// DeleteAccount removes the account and resets the whole state tree.
func (c *Client) DeleteAccount(ctx context.Context) error {
	var resp apiMessage
	if err := c.doJSON(ctx, http.MethodDelete, "/api/v1/profile", nil, &resp); err != nil {
		return err
	}

	c.store.Reset()
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.store.Auth().Token; token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg apiMessage
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		return &APIError{StatusCode: resp.StatusCode, Msg: msg.Msg}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
