package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/paservices/auth-service/internal/errors"
)

// GoTrueProvider implements Provider against a GoTrue-compatible admin REST
// API (the identity stack behind Supabase). All calls authenticate with the
// service role key.
type GoTrueProvider struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewGoTrueProvider creates a Provider for the GoTrue admin API at baseURL.
// Passing a nil httpClient uses a client with a 30 second timeout.
func NewGoTrueProvider(baseURL, serviceKey string, httpClient *http.Client) *GoTrueProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &GoTrueProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: httpClient,
	}
}

// gotrueUser is the subset of the GoTrue user representation this service reads.
type gotrueUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type gotrueUserList struct {
	Users []gotrueUser `json:"users"`
}

type createUserRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	EmailConfirm bool   `json:"email_confirm"`
}

// CreateAccount provisions a new account with a pre-confirmed email.
func (g *GoTrueProvider) CreateAccount(ctx context.Context, email, password string) (*Identity, error) {
	payload, err := json.Marshal(createUserRequest{
		Email:        email,
		Password:     password,
		EmailConfirm: true,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal create account request")
	}

	resp, err := g.do(ctx, http.MethodPost, "/admin/users", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var user gotrueUser
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			return nil, apperrors.Wrap(err, "failed to decode create account response")
		}
		return toIdentity(user), nil
	case resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusConflict:
		// GoTrue reports an already-registered email as 422
		return nil, apperrors.Wrap(apperrors.ErrConflict, "account already exists")
	default:
		return nil, unexpectedStatus(resp)
	}
}

// FindAccountByEmail looks up an account via the admin user listing filtered
// by email. Returns ErrIdentityNotFound when no account matches.
func (g *GoTrueProvider) FindAccountByEmail(ctx context.Context, email string) (*Identity, error) {
	path := "/admin/users?filter=" + url.QueryEscape(email)

	resp, err := g.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, unexpectedStatus(resp)
	}

	var list gotrueUserList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode account list response")
	}

	// The filter matches substrings, so require an exact email match
	for _, user := range list.Users {
		if strings.EqualFold(user.Email, email) {
			return toIdentity(user), nil
		}
	}

	return nil, ErrIdentityNotFound
}

func (g *GoTrueProvider) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build identity request")
	}

	req.Header.Set("Authorization", "Bearer "+g.serviceKey)
	req.Header.Set("apikey", g.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnavailable, fmt.Sprintf("identity provider unreachable: %v", err))
	}

	return resp, nil
}

func toIdentity(user gotrueUser) *Identity {
	return &Identity{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func unexpectedStatus(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return apperrors.Wrap(
		apperrors.ErrUnavailable,
		fmt.Sprintf("identity provider returned status %d: %s", resp.StatusCode, string(body)),
	)
}
