package shared_models

import (
	"encoding/json"
	"time"
)

// Source tags every submission sent from the website.
const Source = "xronetech-website"

// Form types carried in the payload envelope.
const (
	FormTypeBooking = "book-drone-spray"
	FormTypeContact = "contact"
)

// ISOTimestamp matches the browser's Date.toISOString output.
const ISOTimestamp = "2006-01-02T15:04:05.000Z07:00"

// FormatISO renders t in UTC with millisecond precision.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOTimestamp)
}

// SubmissionPayload is the JSON envelope posted to a submission webhook.
// It is built once at submit time; its fields are unexported so nothing can
// change it after construction.
type SubmissionPayload struct {
	formType  string
	timestamp time.Time
	data      json.RawMessage
}

// NewSubmissionPayload snapshots data (marshalled immediately) into an envelope.
func NewSubmissionPayload(formType string, data any, now time.Time) (SubmissionPayload, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return SubmissionPayload{}, err
	}
	return SubmissionPayload{formType: formType, timestamp: now, data: raw}, nil
}

func (p SubmissionPayload) Source() string       { return Source }
func (p SubmissionPayload) FormType() string     { return p.formType }
func (p SubmissionPayload) Timestamp() time.Time { return p.timestamp }

// Data returns a copy of the serialized form fields.
func (p SubmissionPayload) Data() json.RawMessage {
	out := make(json.RawMessage, len(p.data))
	copy(out, p.data)
	return out
}

// IsZero reports whether the payload was never constructed.
func (p SubmissionPayload) IsZero() bool {
	return p.formType == "" && p.data == nil
}

func (p SubmissionPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Source    string          `json:"source"`
		FormType  string          `json:"formType"`
		Timestamp string          `json:"timestamp"`
		Data      json.RawMessage `json:"data"`
	}{
		Source:    Source,
		FormType:  p.formType,
		Timestamp: FormatISO(p.timestamp),
		Data:      p.data,
	})
}
