package geolocation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/xronetech/leads/logger"
	"github.com/xronetech/leads/models/booking_models"
	"github.com/xronetech/leads/models/shared_models"
)

const notifyTimeout = 15 * time.Second

// Notifier reports freshly captured browser coordinates to an external
// endpoint. Every call is fire-and-forget: it runs detached from the request
// and its outcome is discarded, so a failing endpoint never reaches the user.
type Notifier struct {
	Endpoint   string
	APIKey     string
	HTTPClient *http.Client

	now func() time.Time
	wg  sync.WaitGroup
}

func NewNotifier(endpoint, apiKey string) *Notifier {
	return &Notifier{
		Endpoint:   endpoint,
		APIKey:     apiKey,
		HTTPClient: &http.Client{},
		now:        time.Now,
	}
}

type locationUpdate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp string  `json:"timestamp"`
}

// Notify starts the background report. A nil or unconfigured notifier does nothing.
func (n *Notifier) Notify(coord booking_models.GeoCoordinate) {
	if n == nil || n.Endpoint == "" {
		return
	}

	update := locationUpdate{
		Latitude:  coord.Latitude,
		Longitude: coord.Longitude,
		Timestamp: shared_models.FormatISO(n.clock()),
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		// The error is dropped on purpose: this report is best-effort.
		if err := n.send(update); err != nil {
			logger.DebugLogger.Debugf("Background location update failed: %v", err)
		}
	}()
}

// Wait blocks until in-flight reports finish. Used on shutdown and in tests.
func (n *Notifier) Wait() {
	if n != nil {
		n.wg.Wait()
	}
}

func (n *Notifier) clock() time.Time {
	if n.now == nil {
		return time.Now()
	}
	return n.now()
}

func (n *Notifier) send(update locationUpdate) error {
	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal location update: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create location update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.APIKey != "" {
		req.Header.Set("apikey", n.APIKey)
		req.Header.Set("Authorization", "Bearer "+n.APIKey)
	}

	client := n.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("location update request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
