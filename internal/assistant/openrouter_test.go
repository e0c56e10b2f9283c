package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRouter_Complete(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "Kanban Assistant", r.Header.Get("X-Title"))
		assert.Equal(t, "http://localhost:3000", r.Header.Get("HTTP-Referer"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Focus on Design first."}}]}`))
	}))
	defer server.Close()

	client := NewOpenRouter(server.URL+"/", "test-key", "test/model", 5*time.Second)
	reply, err := client.Complete(context.Background(), Request{
		Messages: []Message{{Role: "system", Content: "ctx"}, {Role: "user", Content: "What next?"}},
		Referer:  "http://localhost:3000",
	})

	require.NoError(t, err)
	assert.Equal(t, "Focus on Design first.", reply)
	assert.Equal(t, "test/model", got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, 1000, got.MaxTokens)
	assert.False(t, got.Stream)
	assert.Len(t, got.Messages, 2)
}

func TestOpenRouter_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	reply, err := NewOpenRouter(server.URL, "k", "m", time.Second).Complete(context.Background(), Request{})

	require.NoError(t, err)
	assert.Equal(t, FallbackResponse, reply)
}

func TestOpenRouter_ProviderErrors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		message      string
		rateLimited  bool
		unauthorized bool
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"No auth credentials found"}}`, "No auth credentials found", false, true},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"type":"rate_limit","message":"slow down"}}`, "slow down", true, false},
		{"plain body", http.StatusBadGateway, `upstream down`, "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewOpenRouter(server.URL, "k", "m", time.Second).Complete(context.Background(), Request{})

			var providerErr *ProviderError
			require.True(t, errors.As(err, &providerErr))
			assert.Equal(t, tt.status, providerErr.StatusCode)
			assert.Equal(t, tt.message, providerErr.Message)
			assert.Contains(t, providerErr.Error(), "HTTP")
			assert.Equal(t, tt.rateLimited, providerErr.IsRateLimited())
			assert.Equal(t, tt.unauthorized, providerErr.IsUnauthorized())
		})
	}
}
