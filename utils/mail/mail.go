package mail

import (
	"bytes"
	"crypto/tls"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"sort"
	"sync"

	"github.com/xronetech/leads/config"
	"github.com/xronetech/leads/logger"
	"github.com/xronetech/leads/models/session_models"
	"github.com/xronetech/leads/models/shared_models"
	gomail "gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

const submissionAlertTemplate = "submission_alert.html"

// Sender delivers a composed message. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer emails the operations inbox whenever a form is submitted.
type Mailer struct {
	from   string
	to     string
	sender Sender
	tmpl   *template.Template
	wg     sync.WaitGroup
}

// NewMailer builds a mailer from SMTP settings. It returns nil when SMTP is
// not configured; a nil *Mailer is valid and sends nothing.
func NewMailer(cfg config.SMTPConfig) (*Mailer, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.TLSConfig = &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         cfg.Host,
	}
	return NewMailerWithSender(cfg.From, cfg.To, dialer)
}

func NewMailerWithSender(from, to string, sender Sender) (*Mailer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	return &Mailer{from: from, to: to, sender: sender, tmpl: tmpl}, nil
}

type alertField struct {
	Name  string
	Value string
}

type alertData struct {
	Title     string
	FormType  string
	SessionID string
	Timestamp string
	Fields    []alertField
	Year      int
}

// SendSubmissionAlert mails a summary of the submitted payload.
func (m *Mailer) SendSubmissionAlert(s *session_models.FormSession, payload shared_models.SubmissionPayload) error {
	if m == nil {
		return nil
	}

	fields, err := flatten(payload.Data())
	if err != nil {
		return fmt.Errorf("failed to read submission data: %w", err)
	}

	data := alertData{
		Title:     alertTitle(s),
		FormType:  payload.FormType(),
		SessionID: s.ID.String(),
		Timestamp: shared_models.FormatISO(payload.Timestamp()),
		Fields:    fields,
		Year:      payload.Timestamp().Year(),
	}

	var body bytes.Buffer
	if err := m.tmpl.ExecuteTemplate(&body, submissionAlertTemplate, data); err != nil {
		logger.ErrorLogger.Errorf("Failed to execute email template %s: %v", submissionAlertTemplate, err)
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", data.Title)
	msg.SetBody("text/html", body.String())

	if err := m.sender.DialAndSend(msg); err != nil {
		logger.ErrorLogger.Errorf("Failed to send submission alert to %s: %v", m.to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.InfoLogger.Infof("Submission alert for session %s sent to %s", s.ID, m.to)
	return nil
}

// NotifyAsync sends the alert in the background. Its signature matches
// sessions.SubmitHook; a failed send is logged and otherwise ignored.
func (m *Mailer) NotifyAsync(s *session_models.FormSession, payload shared_models.SubmissionPayload) {
	if m == nil {
		return
	}
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		_ = m.SendSubmissionAlert(s, payload)
	}()
}

// Wait blocks until in-flight alerts finish.
func (m *Mailer) Wait() {
	if m != nil {
		m.wg.Wait()
	}
}

func alertTitle(s *session_models.FormSession) string {
	name := ""
	switch {
	case s.Booking != nil:
		name = s.Booking.FullName
	case s.Wizard != nil:
		name = s.Wizard.FullName
	case s.Contact != nil:
		name = s.Contact.Name
	}
	if s.Kind == session_models.KindContact {
		return fmt.Sprintf("New contact message from %s", name)
	}
	return fmt.Sprintf("New drone spraying booking from %s", name)
}

// flatten turns the payload data object into sorted name/value rows;
// nested objects become dotted names.
func flatten(raw json.RawMessage) ([]alertField, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}

	var out []alertField
	var walk func(prefix string, v any)
	walk = func(prefix string, v any) {
		switch val := v.(type) {
		case map[string]any:
			for k, inner := range val {
				walk(prefix+k+".", inner)
			}
		case nil:
			out = append(out, alertField{Name: prefix[:len(prefix)-1], Value: "-"})
		default:
			out = append(out, alertField{Name: prefix[:len(prefix)-1], Value: fmt.Sprint(val)})
		}
	}
	walk("", obj)

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
