package fetch

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryableStatus(t *testing.T) {
	retryable := []int{
		http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
	}
	for _, code := range retryable {
		assert.True(t, isRetryableStatus(code), "status %d", code)
	}

	for _, code := range []int{http.StatusOK, http.StatusNotFound, http.StatusUnauthorized, http.StatusForbidden, http.StatusInternalServerError} {
		assert.False(t, isRetryableStatus(code), "status %d", code)
	}
}

func TestBackoffDelayIsCappedAndGrowing(t *testing.T) {
	assert.Equal(t, baseDelay, backoffDelay(0))
	assert.Equal(t, 2*baseDelay, backoffDelay(1))
	assert.LessOrEqual(t, backoffDelay(20), maxDelay)
}

func TestRetryableStatusErrorIsNetError(t *testing.T) {
	var err net.Error = &retryableStatusError{StatusCode: http.StatusBadGateway}
	assert.True(t, err.Timeout())
	assert.Equal(t, http.StatusText(http.StatusBadGateway), err.Error())
}

func TestDoRequestWithRetryRecoversFromTransientStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := doRequestWithRetry(context.Background(), req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDoRequestWithRetryHonorsContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	_, err = doRequestWithRetry(ctx, req)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
