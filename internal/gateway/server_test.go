package gateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"shareit/internal/cache"
	"shareit/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUpstream stands in for the server tier. It echoes a fixed body and
// counts how many requests actually got through the gateway.
type fakeUpstream struct {
	server *httptest.Server
	calls  atomic.Int64
	status int
	body   string

	lastPath   string
	lastHeader string
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	f := &fakeUpstream{status: http.StatusOK, body: `{"ok":true}`}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		f.lastPath = r.URL.String()
		f.lastHeader = r.Header.Get(sharerUserHeader)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.body))
	}))
	t.Cleanup(f.server.Close)
	return f
}

func setupGateway(t *testing.T, upstream *fakeUpstream, cc cache.Cache) http.Handler {
	logger := zerolog.New(os.Stdout)

	client := NewServerClient(upstream.server.URL)
	if cc != nil {
		client.UseCache(cc)
	}

	cfg := config.GatewayConfig{
		Port:      0,
		ServerURL: upstream.server.URL,
		RateLimit: config.RateLimitConfig{RPS: 1000, Burst: 1000},
	}
	return NewServer(cfg, client, &logger).Handler()
}

func doGatewayRequest(t *testing.T, h http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req.Header.Set(sharerUserHeader, userID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGatewayRelaysUpstreamResponse(t *testing.T) {
	upstream := newFakeUpstream(t)
	upstream.status = http.StatusConflict
	upstream.body = `{"error":"user with this email already exists: a@b.com","errorCode":409}`
	h := setupGateway(t, upstream, nil)

	rec := doGatewayRequest(t, h, http.MethodPost, "/users", "", map[string]string{
		"name": "Anna", "email": "a@b.com",
	})

	// Status and body come back untouched.
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, upstream.body, rec.Body.String())
	assert.Equal(t, int64(1), upstream.calls.Load())
}

func TestGatewayForwardsSharerHeader(t *testing.T) {
	upstream := newFakeUpstream(t)
	h := setupGateway(t, upstream, nil)

	rec := doGatewayRequest(t, h, http.MethodGet, "/items", "7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", upstream.lastHeader)
}

func TestGatewayUserValidation(t *testing.T) {
	upstream := newFakeUpstream(t)
	h := setupGateway(t, upstream, nil)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing name", map[string]string{"email": "a@b.com"}},
		{"blank name", map[string]string{"name": "   ", "email": "a@b.com"}},
		{"missing email", map[string]string{"name": "Anna"}},
		{"malformed email", map[string]string{"name": "Anna", "email": "not-an-email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGatewayRequest(t, h, http.MethodPost, "/users", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	// No invalid payload ever reached the server.
	assert.Zero(t, upstream.calls.Load())
}

func TestGatewayItemValidation(t *testing.T) {
	upstream := newFakeUpstream(t)
	h := setupGateway(t, upstream, nil)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"blank name", map[string]any{"name": " ", "description": "d", "available": true}},
		{"blank description", map[string]any{"name": "Drill", "description": "", "available": true}},
		{"missing available", map[string]any{"name": "Drill", "description": "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGatewayRequest(t, h, http.MethodPost, "/items", "1", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	// Without the sharer header the body is not even examined.
	rec := doGatewayRequest(t, h, http.MethodPost, "/items",
		"", map[string]any{"name": "Drill", "description": "d", "available": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Zero(t, upstream.calls.Load())
}

func TestGatewayBookingValidation(t *testing.T) {
	upstream := newFakeUpstream(t)
	h := setupGateway(t, upstream, nil)

	future := time.Now().Add(time.Hour).UTC()
	later := future.Add(time.Hour)
	past := time.Now().Add(-time.Hour).UTC()

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing itemId", map[string]any{"start": future, "end": later}},
		{"missing start", map[string]any{"itemId": 1, "end": later}},
		{"missing end", map[string]any{"itemId": 1, "start": future}},
		{"start after end", map[string]any{"itemId": 1, "start": later, "end": future}},
		{"start equals end", map[string]any{"itemId": 1, "start": future, "end": future}},
		{"start in the past", map[string]any{"itemId": 1, "start": past, "end": later}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGatewayRequest(t, h, http.MethodPost, "/bookings", "1", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	assert.Zero(t, upstream.calls.Load())

	// A valid payload goes through.
	rec := doGatewayRequest(t, h, http.MethodPost, "/bookings", "1",
		map[string]any{"itemId": 1, "start": future, "end": later})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), upstream.calls.Load())
}

func TestGatewayUnknownState(t *testing.T) {
	upstream := newFakeUpstream(t)
	h := setupGateway(t, upstream, nil)

	rec := doGatewayRequest(t, h, http.MethodGet, "/bookings?state=SOMETIMES", "1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr apiError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "Unknown state: SOMETIMES", apiErr.Error)
	assert.Zero(t, upstream.calls.Load())

	// Lower-case states are fine.
	rec = doGatewayRequest(t, h, http.MethodGet, "/bookings?state=future", "1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGatewayBlankSearchShortCircuits(t *testing.T) {
	upstream := newFakeUpstream(t)
	h := setupGateway(t, upstream, nil)

	for _, path := range []string{"/items/search", "/items/search?text=", "/items/search?text=%20%20"} {
		rec := doGatewayRequest(t, h, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	}

	// The server never saw those searches.
	assert.Zero(t, upstream.calls.Load())

	rec := doGatewayRequest(t, h, http.MethodGet, "/items/search?text=drill", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), upstream.calls.Load())
}

func TestGatewaySearchCache(t *testing.T) {
	upstream := newFakeUpstream(t)
	upstream.body = `[{"id":1,"name":"Drill"}]`
	h := setupGateway(t, upstream, cache.NewMemory(time.Minute))

	rec := doGatewayRequest(t, h, http.MethodGet, "/items/search?text=drill", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(1), upstream.calls.Load())

	// The repeat is served from the cache.
	rec = doGatewayRequest(t, h, http.MethodGet, "/items/search?text=drill", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, upstream.body, rec.Body.String())
	assert.Equal(t, int64(1), upstream.calls.Load())

	// A different query misses.
	rec = doGatewayRequest(t, h, http.MethodGet, "/items/search?text=saw", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), upstream.calls.Load())
}

func TestGatewayCommentAndRequestValidation(t *testing.T) {
	upstream := newFakeUpstream(t)
	h := setupGateway(t, upstream, nil)

	rec := doGatewayRequest(t, h, http.MethodPost, "/items/1/comment", "1", map[string]string{"text": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGatewayRequest(t, h, http.MethodPost, "/requests", "1", map[string]string{"description": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Zero(t, upstream.calls.Load())
}

func TestGatewayApprovedParam(t *testing.T) {
	upstream := newFakeUpstream(t)
	h := setupGateway(t, upstream, nil)

	rec := doGatewayRequest(t, h, http.MethodPatch, "/bookings/1?approved=maybe", "1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, upstream.calls.Load())

	rec = doGatewayRequest(t, h, http.MethodPatch, "/bookings/1?approved=true", "1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/bookings/1?approved=true", upstream.lastPath)
}

func TestGatewayRateLimit(t *testing.T) {
	upstream := newFakeUpstream(t)
	logger := zerolog.New(os.Stdout)

	client := NewServerClient(upstream.server.URL)
	cfg := config.GatewayConfig{
		ServerURL: upstream.server.URL,
		RateLimit: config.RateLimitConfig{RPS: 1, Burst: 2},
	}
	h := NewServer(cfg, client, &logger).Handler()

	var limited bool
	for i := 0; i < 5; i++ {
		rec := doGatewayRequest(t, h, http.MethodGet, "/items", "1", nil)
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	assert.True(t, limited)

	// A different user has their own bucket.
	rec := doGatewayRequest(t, h, http.MethodGet, "/items", "2", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
