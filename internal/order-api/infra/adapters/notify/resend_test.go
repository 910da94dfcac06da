package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
)

func TestResendSender_Send(t *testing.T) {
	var got resendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		assert.Equal(t, "msg-1", r.Header.Get("Idempotency-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer srv.Close()

	s := NewResendSender("re_test", srv.URL)
	err := s.Send(context.Background(), ports.Message{
		ID: "msg-1", From: "a@fitforge.test", To: []string{"b@example.com"}, Subject: "hi", HTML: "<p>hi</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "a@fitforge.test", got.From)
	assert.Equal(t, []string{"b@example.com"}, got.To)
	assert.Equal(t, "hi", got.Subject)
}

func TestResendSender_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"domain not verified"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	err := NewResendSender("re_test", srv.URL).Send(context.Background(), ports.Message{To: []string{"b@example.com"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.Contains(t, err.Error(), "domain not verified")

	err = NewResendSender("", srv.URL).Send(context.Background(), ports.Message{To: []string{"b@example.com"}})
	assert.ErrorContains(t, err, "api key not configured")
}
