package teams_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dispatch/internal/adapters/out/teams"

	"github.com/stretchr/testify/require"
)

func TestWebhookSender_Send_PostsTextPayload(t *testing.T) {
	var received struct {
		Text string `json:"text"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := teams.NewWebhookSender(server.URL)
	err := sender.Send(t.Context(), "Order SO-10421 is now In Delivery")
	require.NoError(t, err)
	require.Equal(t, "Order SO-10421 is now In Delivery", received.Text)
}

func TestWebhookSender_Send_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	sender := teams.NewWebhookSender(server.URL)
	err := sender.Send(t.Context(), "hello")
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestWebhookSender_Send_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	server.Close()

	sender := teams.NewWebhookSender(server.URL)
	err := sender.Send(t.Context(), "hello")
	require.Error(t, err)
}
