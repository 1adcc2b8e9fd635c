package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	values map[string]string
}

func (m *memStore) Get(ctx context.Context, key string) (string, error) {
	return m.values[key], nil
}

func (m *memStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.values[key] = value
	return nil
}

func TestIdempotencyReplaysCachedResponse(t *testing.T) {
	store := &memStore{values: map[string]string{}}

	calls := 0
	handler := Idempotency(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"id":%d}`, calls)
	}))

	first := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader("{}"))
	first.Header.Set("Idempotency-Key", "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `{"id":1}`, rec.Body.String())

	// Same key replays the stored body without re-running the handler
	second := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader("{}"))
	second.Header.Set("Idempotency-Key", "abc-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	assert.Equal(t, `{"id":1}`, rec.Body.String())
	assert.Equal(t, "true", rec.Header().Get("Idempotency-Replayed"))
	assert.Equal(t, 1, calls)
}

func TestIdempotencySkipsWithoutKey(t *testing.T) {
	store := &memStore{values: map[string]string{}}

	calls := 0
	handler := Idempotency(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader("{}"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}
	assert.Equal(t, 2, calls)
	assert.Empty(t, store.values)
}

func TestIdempotencyIgnoresFailedResponses(t *testing.T) {
	store := &memStore{values: map[string]string{}}

	handler := Idempotency(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))

	req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader("{}"))
	req.Header.Set("Idempotency-Key", "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// Validation failures are never cached, a retry runs the handler again
	assert.Empty(t, store.values)
}

func TestIdempotencyIgnoresGET(t *testing.T) {
	store := &memStore{values: map[string]string{}}

	calls := 0
	handler := Idempotency(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	req := httptest.NewRequest(http.MethodGet, "/accommodations", nil)
	req.Header.Set("Idempotency-Key", "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, 1, calls)
	assert.Empty(t, store.values)
}
