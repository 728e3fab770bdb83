package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/xronetech/leads/config"
	"github.com/xronetech/leads/logger"
	"github.com/xronetech/leads/models/shared_models"
)

// ErrUnexpectedStatus is wrapped by StatusError.
var ErrUnexpectedStatus = errors.New("webhook returned non-2xx status")

// StatusError reports a non-2xx reply from a credentialed webhook.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: %d", ErrUnexpectedStatus, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// DispatchResult describes what happened to a submission.
type DispatchResult struct {
	// Dispatched is false when no endpoint is configured and the call was skipped.
	Dispatched bool
	// StatusCode is the reply status; zero in fire-and-forget mode.
	StatusCode int
}

// WebhookDispatcher posts form submissions to an external function or webhook.
//
// It makes exactly one attempt. There is no retry and no client-side timeout;
// the caller's context is the only bound on the call.
type WebhookDispatcher struct {
	Endpoint   string
	APIKey     string
	Mode       config.WebhookMode
	HTTPClient *http.Client
}

func NewWebhookDispatcher(cfg config.WebhookConfig) *WebhookDispatcher {
	mode := cfg.Mode
	if mode == "" {
		mode = config.ModeCredentialed
	}
	return &WebhookDispatcher{
		Endpoint:   cfg.URL,
		APIKey:     cfg.APIKey,
		Mode:       mode,
		HTTPClient: &http.Client{},
	}
}

// Configured reports whether Dispatch will make a network call. Without an
// endpoint (or, when credentialed, without a key) submissions succeed locally.
func (d *WebhookDispatcher) Configured() bool {
	if d.Endpoint == "" {
		return false
	}
	return d.Mode != config.ModeCredentialed || d.APIKey != ""
}

// Dispatch sends the payload.
func (d *WebhookDispatcher) Dispatch(ctx context.Context, payload shared_models.SubmissionPayload) (DispatchResult, error) {
	if !d.Configured() {
		logger.WarnLogger.Warnf("Webhook for %s not configured; accepting submission without sending", payload.FormType())
		return DispatchResult{Dispatched: false}, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return DispatchResult{}, fmt.Errorf("failed to marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.Endpoint, bytes.NewReader(body))
	if err != nil {
		return DispatchResult{}, fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if d.Mode == config.ModeCredentialed {
		req.Header.Set("apikey", d.APIKey)
		req.Header.Set("Authorization", "Bearer "+d.APIKey)
	}

	client := d.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		logger.ErrorLogger.Errorf("Webhook request for %s failed: %v", payload.FormType(), err)
		return DispatchResult{}, fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if d.Mode == config.ModeFireAndForget {
		// The endpoint's reply is opaque in this mode; reaching it is success.
		logger.InfoLogger.Infof("Submission %s sent (fire-and-forget)", payload.FormType())
		return DispatchResult{Dispatched: true}, nil
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		logger.ErrorLogger.Errorf("Webhook returned %d for %s: %s", resp.StatusCode, payload.FormType(), string(b))
		return DispatchResult{Dispatched: true, StatusCode: resp.StatusCode},
			&StatusError{StatusCode: resp.StatusCode, Body: string(b)}
	}

	logger.InfoLogger.Infof("Submission %s accepted with status %d", payload.FormType(), resp.StatusCode)
	return DispatchResult{Dispatched: true, StatusCode: resp.StatusCode}, nil
}
