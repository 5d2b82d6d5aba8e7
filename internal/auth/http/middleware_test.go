package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
	authService "github.com/paservices/auth-service/internal/auth/service"
	httpMocks "github.com/paservices/auth-service/internal/auth/http/mocks"
)

func testClaims(permissions ...string) *authService.AccessTokenClaims {
	return &authService.AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: uuid.Must(uuid.NewV7()).String(),
		},
		Roles:       []string{"admin"},
		Permissions: permissions,
		TokenType:   authService.TokenTypeM2M,
	}
}

// setupProtectedRouter builds a router with the authentication middleware and
// an optional permission guard in front of a probe handler.
func setupProtectedRouter(
	mockTokenUseCase *httpMocks.MockTokenUseCase,
	requiredPermission string,
) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := testLogger()

	router := gin.New()
	handlers := []gin.HandlerFunc{AuthenticationMiddleware(mockTokenUseCase, logger)}
	if requiredPermission != "" {
		handlers = append(handlers, RequirePermission(requiredPermission, logger))
	}
	handlers = append(handlers, func(c *gin.Context) {
		claims, ok := GetClaims(c.Request.Context())
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no claims"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"subject": claims.Subject})
	})
	router.GET("/protected", handlers...)

	return router
}

func TestAuthenticationMiddleware(t *testing.T) {
	t.Run("Success_ValidBearerToken", func(t *testing.T) {
		mockTokenUseCase := &httpMocks.MockTokenUseCase{}
		claims := testClaims("users:read")

		mockTokenUseCase.On("Verify", mock.Anything, "valid-token").
			Return(claims, nil).
			Once()

		router := setupProtectedRouter(mockTokenUseCase, "")

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), claims.Subject)

		mockTokenUseCase.AssertExpectations(t)
	})

	t.Run("Success_CaseInsensitiveBearerPrefix", func(t *testing.T) {
		mockTokenUseCase := &httpMocks.MockTokenUseCase{}
		mockTokenUseCase.On("Verify", mock.Anything, "valid-token").
			Return(testClaims(), nil).
			Once()

		router := setupProtectedRouter(mockTokenUseCase, "")

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "bearer valid-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockTokenUseCase.AssertExpectations(t)
	})

	t.Run("Error_MissingHeader", func(t *testing.T) {
		mockTokenUseCase := &httpMocks.MockTokenUseCase{}
		router := setupProtectedRouter(mockTokenUseCase, "")

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockTokenUseCase.AssertNotCalled(t, "Verify")
	})

	t.Run("Error_MalformedHeader", func(t *testing.T) {
		mockTokenUseCase := &httpMocks.MockTokenUseCase{}
		router := setupProtectedRouter(mockTokenUseCase, "")

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockTokenUseCase.AssertNotCalled(t, "Verify")
	})

	t.Run("Error_EmptyToken", func(t *testing.T) {
		mockTokenUseCase := &httpMocks.MockTokenUseCase{}
		router := setupProtectedRouter(mockTokenUseCase, "")

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer ")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockTokenUseCase.AssertNotCalled(t, "Verify")
	})

	t.Run("Error_ExpiredToken", func(t *testing.T) {
		mockTokenUseCase := &httpMocks.MockTokenUseCase{}
		mockTokenUseCase.On("Verify", mock.Anything, "stale-token").
			Return(nil, authDomain.ErrTokenExpired).
			Once()

		router := setupProtectedRouter(mockTokenUseCase, "")

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer stale-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockTokenUseCase.AssertExpectations(t)
	})
}

func TestRequirePermission(t *testing.T) {
	t.Run("Success_TokenCarriesPermission", func(t *testing.T) {
		mockTokenUseCase := &httpMocks.MockTokenUseCase{}
		mockTokenUseCase.On("Verify", mock.Anything, "valid-token").
			Return(testClaims("role:admin_manage"), nil).
			Once()

		router := setupProtectedRouter(mockTokenUseCase, "role:admin_manage")

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockTokenUseCase.AssertExpectations(t)
	})

	t.Run("Error_MissingPermission", func(t *testing.T) {
		mockTokenUseCase := &httpMocks.MockTokenUseCase{}
		mockTokenUseCase.On("Verify", mock.Anything, "valid-token").
			Return(testClaims("users:read"), nil).
			Once()

		router := setupProtectedRouter(mockTokenUseCase, "role:admin_manage")

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockTokenUseCase.AssertExpectations(t)
	})

	t.Run("Error_NoClaimsInContext", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.GET("/guarded",
			RequirePermission("users:read", testLogger()),
			func(c *gin.Context) { c.Status(http.StatusOK) },
		)

		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestWithClaimsGetClaims(t *testing.T) {
	claims := testClaims("users:read")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := WithClaims(req.Context(), claims)

	got, ok := GetClaims(ctx)
	assert.True(t, ok)
	assert.Equal(t, claims, got)

	_, ok = GetClaims(req.Context())
	assert.False(t, ok)
}

func TestTokenRateLimitMiddleware(t *testing.T) {
	t.Run("AllowsWithinLimit", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.POST("/auth/token",
			TokenRateLimitMiddleware(100, 10, testLogger()),
			func(c *gin.Context) { c.Status(http.StatusOK) },
		)

		req := httptest.NewRequest(http.MethodPost, "/auth/token", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("RejectsOverLimit", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.POST("/auth/token",
			TokenRateLimitMiddleware(1, 1, testLogger()),
			func(c *gin.Context) { c.Status(http.StatusOK) },
		)

		// Burst of 1: first request passes, second is throttled.
		req := httptest.NewRequest(http.MethodPost, "/auth/token", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		req2 := httptest.NewRequest(http.MethodPost, "/auth/token", nil)
		w2 := httptest.NewRecorder()
		router.ServeHTTP(w2, req2)
		assert.Equal(t, http.StatusTooManyRequests, w2.Code)
		assert.NotEmpty(t, w2.Header().Get("Retry-After"))
	})

	t.Run("IndependentLimitsPerIP", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.POST("/auth/token",
			TokenRateLimitMiddleware(1, 1, testLogger()),
			func(c *gin.Context) { c.Status(http.StatusOK) },
		)

		exhaust := httptest.NewRequest(http.MethodPost, "/auth/token", nil)
		exhaust.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, exhaust)
		assert.Equal(t, http.StatusOK, w.Code)

		otherIP := httptest.NewRequest(http.MethodPost, "/auth/token", nil)
		otherIP.RemoteAddr = "10.0.0.2:1234"
		w2 := httptest.NewRecorder()
		router.ServeHTTP(w2, otherIP)
		assert.Equal(t, http.StatusOK, w2.Code)
	})
}
