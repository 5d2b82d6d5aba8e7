package metrics

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider("authservice")
	require.NoError(t, err)
	require.NotNil(t, provider)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	assert.NotNil(t, provider.MeterProvider())
	assert.NotNil(t, provider.Handler())
}

func TestProviderExposesRecordedMetrics(t *testing.T) {
	provider, err := NewProvider("authservice")
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	business, err := NewBusinessMetrics(provider.MeterProvider(), "authservice")
	require.NoError(t, err)

	ctx := context.Background()
	business.RecordOperation(ctx, "auth", "token_issue", "success")
	business.RecordDuration(ctx, "auth", "token_issue", 25*time.Millisecond, "success")

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	provider.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "authservice_operations_total")
}

func TestNoOpBusinessMetrics(t *testing.T) {
	m := NewNoOpBusinessMetrics()
	// Must not panic
	m.RecordOperation(context.Background(), "auth", "token_issue", "success")
	m.RecordDuration(context.Background(), "auth", "token_issue", time.Second, "error")
}
