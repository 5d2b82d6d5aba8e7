package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/paservices/auth-service/internal/errors"
)

func TestGoTrueProvider_CreateAccount(t *testing.T) {
	t.Run("Success_CreatesAccount", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/admin/users", r.URL.Path)
			assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
			assert.Equal(t, "service-key", r.Header.Get("apikey"))

			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "admin@example.com", req["email"])
			assert.Equal(t, true, req["email_confirm"])

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":    "user-123",
				"email": "admin@example.com",
			})
		}))
		defer server.Close()

		provider := NewGoTrueProvider(server.URL, "service-key", nil)

		identity, err := provider.CreateAccount(context.Background(), "admin@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "user-123", identity.ID)
		assert.Equal(t, "admin@example.com", identity.Email)
	})

	t.Run("Failure_AlreadyExists", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer server.Close()

		provider := NewGoTrueProvider(server.URL, "service-key", nil)

		identity, err := provider.CreateAccount(context.Background(), "admin@example.com", "password123")
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Nil(t, identity)
	})

	t.Run("Failure_ServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		provider := NewGoTrueProvider(server.URL, "service-key", nil)

		identity, err := provider.CreateAccount(context.Background(), "admin@example.com", "password123")
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
		assert.Nil(t, identity)
	})
}

func TestGoTrueProvider_FindAccountByEmail(t *testing.T) {
	t.Run("Success_ExactMatch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/admin/users", r.URL.Path)
			assert.Equal(t, "admin@example.com", r.URL.Query().Get("filter"))

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"users": []map[string]any{
					{"id": "user-456", "email": "other-admin@example.com"},
					{"id": "user-123", "email": "admin@example.com"},
				},
			})
		}))
		defer server.Close()

		provider := NewGoTrueProvider(server.URL, "service-key", nil)

		identity, err := provider.FindAccountByEmail(context.Background(), "admin@example.com")
		require.NoError(t, err)
		assert.Equal(t, "user-123", identity.ID)
	})

	t.Run("Failure_NotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"users": []map[string]any{}})
		}))
		defer server.Close()

		provider := NewGoTrueProvider(server.URL, "service-key", nil)

		identity, err := provider.FindAccountByEmail(context.Background(), "missing@example.com")
		assert.ErrorIs(t, err, ErrIdentityNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Nil(t, identity)
	})

	t.Run("Failure_Unreachable", func(t *testing.T) {
		provider := NewGoTrueProvider("http://127.0.0.1:1", "service-key", nil)

		identity, err := provider.FindAccountByEmail(context.Background(), "admin@example.com")
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
		assert.Nil(t, identity)
	})
}
