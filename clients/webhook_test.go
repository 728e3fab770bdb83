package clients

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xronetech/leads/config"
	"github.com/xronetech/leads/models/shared_models"
)

func testPayload(t *testing.T) shared_models.SubmissionPayload {
	t.Helper()
	p, err := shared_models.NewSubmissionPayload(shared_models.FormTypeBooking,
		map[string]string{"fullName": "Ramesh"}, time.Date(2026, 10, 19, 4, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return p
}

func TestCredentialedDispatchSendsHeadersAndEnvelope(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	d := NewWebhookDispatcher(config.WebhookConfig{URL: srv.URL, APIKey: "secret", Mode: config.ModeCredentialed})
	res, err := d.Dispatch(context.Background(), testPayload(t))
	require.NoError(t, err)
	assert.True(t, res.Dispatched)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	assert.Equal(t, "xronetech-website", got["source"])
	assert.Equal(t, "book-drone-spray", got["formType"])
	assert.Equal(t, "2026-10-19T04:00:00.000Z", got["timestamp"])
	assert.Equal(t, map[string]any{"fullName": "Ramesh"}, got["data"])
}

func TestCredentialedDispatchFailsOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	d := NewWebhookDispatcher(config.WebhookConfig{URL: srv.URL, APIKey: "secret"})
	_, err := d.Dispatch(context.Background(), testPayload(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
	assert.Contains(t, se.Body, "boom")
}

func TestFireAndForgetIgnoresReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewWebhookDispatcher(config.WebhookConfig{URL: srv.URL, Mode: config.ModeFireAndForget})
	res, err := d.Dispatch(context.Background(), testPayload(t))
	require.NoError(t, err)
	assert.True(t, res.Dispatched)
	assert.Zero(t, res.StatusCode)
}

func TestFireAndForgetStillFailsWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	d := NewWebhookDispatcher(config.WebhookConfig{URL: url, Mode: config.ModeFireAndForget})
	_, err := d.Dispatch(context.Background(), testPayload(t))
	assert.Error(t, err)
}

func TestUnconfiguredDispatchMakesNoCall(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits.Add(1) }))
	defer srv.Close()

	for name, cfg := range map[string]config.WebhookConfig{
		"no url":              {Mode: config.ModeCredentialed, APIKey: "secret"},
		"credentialed no key": {URL: srv.URL, Mode: config.ModeCredentialed},
		"fire and forget":     {Mode: config.ModeFireAndForget},
	} {
		t.Run(name, func(t *testing.T) {
			d := NewWebhookDispatcher(cfg)
			assert.False(t, d.Configured())
			res, err := d.Dispatch(context.Background(), testPayload(t))
			require.NoError(t, err)
			assert.False(t, res.Dispatched)
		})
	}
	assert.Zero(t, hits.Load())
}

func TestDispatchHonoursContextCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewWebhookDispatcher(config.WebhookConfig{URL: srv.URL, APIKey: "k"})
	_, err := d.Dispatch(ctx, testPayload(t))
	assert.ErrorIs(t, err, context.Canceled)
}
