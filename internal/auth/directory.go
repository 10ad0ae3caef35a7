package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"skystash/internal/model"
)

// HTTPDirectory resolves users through the identity provider's admin API.
type HTTPDirectory struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ Directory = (*HTTPDirectory)(nil)

// NewHTTPDirectory creates a directory client for baseURL authorized with the admin apiKey.
// A nil client gets a traced client with a 10s timeout.
func NewHTTPDirectory(baseURL, apiKey string, client *http.Client) (*HTTPDirectory, error) {
	if baseURL == "" || apiKey == "" {
		return nil, fmt.Errorf("identity admin url and key are required")
	}
	if client == nil {
		client = &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &HTTPDirectory{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}, nil
}

type adminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// LookupByID fetches a single user.
func (d *HTTPDirectory) LookupByID(ctx context.Context, id string) (*model.User, error) {
	var u adminUser
	if err := d.get(ctx, "/admin/users/"+url.PathEscape(id), &u); err != nil {
		return nil, err
	}
	if u.ID == "" {
		return nil, ErrUserNotFound
	}
	return &model.User{ID: u.ID, Email: u.Email}, nil
}

const (
	lookupPageSize = 100
	lookupMaxPages = 50
)

// LookupByEmail pages through the admin user listing filtered by email and returns the exact match.
func (d *HTTPDirectory) LookupByEmail(ctx context.Context, email string) (*model.User, error) {
	for p := 1; p <= lookupMaxPages; p++ {
		var page struct {
			Users []adminUser `json:"users"`
		}
		path := fmt.Sprintf("/admin/users?email=%s&page=%d&per_page=%d", url.QueryEscape(email), p, lookupPageSize)
		if err := d.get(ctx, path, &page); err != nil {
			return nil, err
		}
		for _, u := range page.Users {
			if strings.EqualFold(u.Email, email) {
				return &model.User{ID: u.ID, Email: u.Email}, nil
			}
		}
		if len(page.Users) < lookupPageSize {
			break
		}
	}
	return nil, ErrUserNotFound
}

func (d *HTTPDirectory) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+d.apiKey)
	req.Header.Set("apikey", d.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrUserNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}
