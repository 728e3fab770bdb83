// Package sessions runs form sessions end to end: edits, location capture,
// wizard navigation, submission and the delayed reset after success.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xronetech/leads/clients"
	"github.com/xronetech/leads/geolocation"
	"github.com/xronetech/leads/logger"
	"github.com/xronetech/leads/models/booking_models"
	"github.com/xronetech/leads/models/contact_models"
	"github.com/xronetech/leads/models/session_models"
	"github.com/xronetech/leads/models/shared_models"
	"github.com/xronetech/leads/validation"
)

const DefaultResetDelay = 3 * time.Second

// ErrDispatchFailed wraps the dispatcher's error when a submission could not
// be delivered. The session is back in the editing phase with its draft intact.
var ErrDispatchFailed = errors.New("submission could not be delivered")

// Dispatcher delivers a submission payload. *clients.WebhookDispatcher satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload shared_models.SubmissionPayload) (clients.DispatchResult, error)
}

// SubmitHook runs after a submission succeeded. It receives a copy of the
// session as it was submitted and must not block.
type SubmitHook func(s *session_models.FormSession, payload shared_models.SubmissionPayload)

type Option func(*Manager)

func WithDispatcher(kind session_models.FormKind, d Dispatcher) Option {
	return func(m *Manager) { m.dispatchers[kind] = d }
}

// WithLocationNotifier sets where browser positions are reported in the background.
func WithLocationNotifier(n *geolocation.Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

func WithSubmitHook(h SubmitHook) Option {
	return func(m *Manager) { m.hooks = append(m.hooks, h) }
}

func WithResetDelay(d time.Duration) Option {
	return func(m *Manager) { m.resetDelay = d }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Manager serialises every read-modify-write on a session. The only work done
// outside its lock is the dispatch itself, during which the session sits in
// the submitting phase and rejects edits.
type Manager struct {
	store       Store
	validator   *validation.Validator
	dispatchers map[session_models.FormKind]Dispatcher
	notifier    *geolocation.Notifier
	hooks       []SubmitHook
	resetDelay  time.Duration
	now         func() time.Time

	mu     sync.Mutex
	timers map[uuid.UUID]*time.Timer
	closed bool
}

func NewManager(store Store, v *validation.Validator, opts ...Option) *Manager {
	m := &Manager{
		store:       store,
		validator:   v,
		dispatchers: make(map[session_models.FormKind]Dispatcher),
		resetDelay:  DefaultResetDelay,
		now:         time.Now,
		timers:      make(map[uuid.UUID]*time.Timer),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts an empty session of the given kind.
func (m *Manager) Create(ctx context.Context, kind session_models.FormKind) (*session_models.FormSession, error) {
	s, err := session_models.NewFormSession(kind, m.now())
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	logger.InfoLogger.Infof("Created %s form session %s", kind, s.ID)
	return s, nil
}

// Get returns the session if it exists and is of the given kind.
func (m *Manager) Get(ctx context.Context, id uuid.UUID, kind session_models.FormKind) (*session_models.FormSession, error) {
	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Kind != kind {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// UpdateBooking applies field edits and clears the errors of the edited fields
// without re-validating them.
func (m *Manager) UpdateBooking(ctx context.Context, id uuid.UUID, p booking_models.BookingPatch) (*session_models.FormSession, error) {
	return m.mutate(ctx, id, session_models.KindBooking, func(s *session_models.FormSession) error {
		if err := s.Editable(); err != nil {
			return err
		}
		s.Errors.Clear(s.Booking.Apply(p)...)
		return nil
	})
}

func (m *Manager) UpdateWizard(ctx context.Context, id uuid.UUID, p booking_models.WizardPatch) (*session_models.FormSession, error) {
	return m.mutate(ctx, id, session_models.KindWizard, func(s *session_models.FormSession) error {
		if err := s.Editable(); err != nil {
			return err
		}
		s.Errors.Clear(s.Wizard.Apply(p)...)
		return nil
	})
}

func (m *Manager) UpdateContact(ctx context.Context, id uuid.UUID, p contact_models.ContactPatch) (*session_models.FormSession, error) {
	return m.mutate(ctx, id, session_models.KindContact, func(s *session_models.FormSession) error {
		if err := s.Editable(); err != nil {
			return err
		}
		s.Errors.Clear(s.Contact.Apply(p)...)
		return nil
	})
}

// ReportPosition records the browser's geolocation outcome on a single-step
// booking. A classified failure is stored on the session rather than returned,
// and a later report replaces it. A previously captured coordinate survives a
// failed retry.
func (m *Manager) ReportPosition(ctx context.Context, id uuid.UUID, report geolocation.PositionReport) (*session_models.FormSession, error) {
	return m.mutate(ctx, id, session_models.KindBooking, func(s *session_models.FormSession) error {
		if err := s.Editable(); err != nil {
			return err
		}

		coord, err := geolocation.Automatic{Report: report, Notifier: m.notifier}.Acquire(ctx)
		var failure *geolocation.Failure
		if errors.As(err, &failure) {
			s.Location = &session_models.LocationState{Status: session_models.LocationFailed, Failure: failure}
			return nil
		}
		if err != nil {
			return err
		}
		return s.SetCoordinate(coord)
	})
}

// PickLocation stores the coordinate of a map click on a wizard session that
// has reached the location step. The latest click wins.
func (m *Manager) PickLocation(ctx context.Context, id uuid.UUID, click geolocation.MapClick) (*session_models.FormSession, error) {
	return m.mutate(ctx, id, session_models.KindWizard, func(s *session_models.FormSession) error {
		if err := s.Editable(); err != nil {
			return err
		}
		if s.Step != session_models.StepLocation {
			return session_models.ErrStepOrder
		}

		coord, err := geolocation.Interactive{Click: click}.Acquire(ctx)
		if err != nil {
			return err
		}
		return s.SetCoordinate(coord)
	})
}

// Next validates the wizard's current step and advances on success.
func (m *Manager) Next(ctx context.Context, id uuid.UUID) (*session_models.FormSession, error) {
	return m.mutate(ctx, id, session_models.KindWizard, func(s *session_models.FormSession) error {
		return s.Next(m.validator)
	})
}

func (m *Manager) Back(ctx context.Context, id uuid.UUID) (*session_models.FormSession, error) {
	return m.mutate(ctx, id, session_models.KindWizard, func(s *session_models.FormSession) error {
		return s.Back()
	})
}

// Submit validates the whole draft and dispatches it once. On success the
// session becomes submitted and is reset after the reset delay. On a delivery
// failure it returns to editing with the draft unchanged, ready for the user
// to try again.
func (m *Manager) Submit(ctx context.Context, id uuid.UUID, kind session_models.FormKind) (*session_models.FormSession, error) {
	var payload shared_models.SubmissionPayload
	s, err := m.mutate(ctx, id, kind, func(s *session_models.FormSession) error {
		if err := s.ReadyToSubmit(); err != nil {
			return err
		}
		if errs := s.Validate(m.validator); !errs.Valid() {
			return session_models.ErrValidationFailed
		}

		p, err := s.Payload(m.now())
		if err != nil {
			return err
		}
		payload = p
		s.Phase = session_models.PhaseSubmitting
		return nil
	})
	if err != nil {
		return s, err
	}

	res, dispatchErr := m.dispatch(ctx, kind, payload)

	// The outcome is recorded even if the client went away mid-request.
	saveCtx := context.WithoutCancel(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if current, err := m.store.Get(saveCtx, id); err == nil {
		s = current
	}
	s.UpdatedAt = m.now()

	if dispatchErr != nil {
		s.Phase = session_models.PhaseEditing
		if err := m.store.Save(saveCtx, s); err != nil {
			logger.ErrorLogger.Errorf("Failed to restore session %s after dispatch failure: %v", id, err)
		}
		return s, fmt.Errorf("%w: %w", ErrDispatchFailed, dispatchErr)
	}

	s.MarkSubmitted(m.now())
	if err := m.store.Save(saveCtx, s); err != nil {
		logger.ErrorLogger.Errorf("Failed to store submitted session %s: %v", id, err)
	}
	logger.InfoLogger.Infof("Form session %s submitted (dispatched=%t)", id, res.Dispatched)

	m.scheduleResetLocked(id)
	for _, h := range m.hooks {
		h(s.Clone(), payload)
	}
	return s, nil
}

func (m *Manager) dispatch(ctx context.Context, kind session_models.FormKind, payload shared_models.SubmissionPayload) (clients.DispatchResult, error) {
	d, ok := m.dispatchers[kind]
	if !ok || d == nil {
		logger.WarnLogger.Warnf("No dispatcher for %s forms; accepting submission without sending", kind)
		return clients.DispatchResult{}, nil
	}
	return d.Dispatch(ctx, payload)
}

func (m *Manager) scheduleResetLocked(id uuid.UUID) {
	if m.closed {
		return
	}
	if t, ok := m.timers[id]; ok {
		t.Stop()
	}
	m.timers[id] = time.AfterFunc(m.resetDelay, func() { m.reset(id) })
}

// reset empties a submitted session so the visitor can start over.
func (m *Manager) reset(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.timers, id)

	ctx := context.Background()
	s, err := m.store.Get(ctx, id)
	if err != nil {
		logger.DebugLogger.Debugf("Skipping reset of session %s: %v", id, err)
		return
	}
	if s.Phase != session_models.PhaseSubmitted {
		return
	}

	s.Reset(m.now())
	if err := m.store.Save(ctx, s); err != nil {
		logger.ErrorLogger.Errorf("Failed to reset session %s: %v", id, err)
		return
	}
	logger.DebugLogger.Debugf("Form session %s reset", id)
}

// mutate loads a session, applies fn and stores the result. Validation
// failures are stored too so the session carries the new error set.
func (m *Manager) mutate(ctx context.Context, id uuid.UUID, kind session_models.FormKind, fn func(*session_models.FormSession) error) (*session_models.FormSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Kind != kind {
		return nil, ErrSessionNotFound
	}

	fnErr := fn(s)
	if fnErr != nil && !errors.Is(fnErr, session_models.ErrValidationFailed) {
		return s, fnErr
	}

	s.UpdatedAt = m.now()
	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, fnErr
}

// Close stops pending resets and waits for background location reports.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	for id, t := range m.timers {
		t.Stop()
		delete(m.timers, id)
	}
	m.mu.Unlock()

	m.notifier.Wait()
}
