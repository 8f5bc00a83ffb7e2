package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkin/pkg/platform/sentinel"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, "test-key", "doc-1")
}

func TestHTTPClient_Titles(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v4/spreadsheets/doc-1", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"sheets": []map[string]any{
				{"properties": map[string]string{"title": "Staffs"}},
				{"properties": map[string]string{"title": "Credenciamento Dia 1"}},
			},
		})
	})

	titles, err := client.Titles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Staffs", "Credenciamento Dia 1"}, titles)
}

func TestHTTPClient_Rows(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/spreadsheets/doc-1/values/Staffs", r.URL.Path)
		_ = json.NewEncoder(w).Encode(valueRange{Values: [][]string{
			{"CPF", "Nome", "Inscrição"},
			{"12345678901", "Ana Souza", "A42"},
		}})
	})

	rows, err := client.Rows(context.Background(), "Staffs")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ana Souza", rows[1][1])
}

func TestHTTPClient_Append(t *testing.T) {
	var got valueRange
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":append")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	err := client.Append(context.Background(), "Credenciamento Dia 1", []string{"A42", "Ana Souza", "21/11/2025", "08:15:00"})
	require.NoError(t, err)
	require.Len(t, got.Values, 1)
	assert.Equal(t, "A42", got.Values[0][0])
}

func TestHTTPClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"quota exceeded", http.StatusTooManyRequests, sentinel.ErrRateLimited},
		{"bad credentials", http.StatusForbidden, sentinel.ErrUnauthorized},
		{"missing document", http.StatusNotFound, sentinel.ErrNotFound},
		{"server error", http.StatusBadGateway, sentinel.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := client.Rows(context.Background(), "Staffs")
			require.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(sentinel.ErrRateLimited))
	assert.True(t, IsTransient(context.DeadlineExceeded))
	assert.False(t, IsTransient(nil))
	assert.False(t, IsTransient(sentinel.ErrUnauthorized))
	assert.False(t, IsTransient(sentinel.ErrNotFound))
}
