package session_models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xronetech/leads/geolocation"
	"github.com/xronetech/leads/models/booking_models"
	"github.com/xronetech/leads/models/contact_models"
	"github.com/xronetech/leads/models/shared_models"
	"github.com/xronetech/leads/validation"
)

// FormKind identifies which form a session holds.
type FormKind string

const (
	KindBooking FormKind = "booking"
	KindWizard  FormKind = "wizard"
	KindContact FormKind = "contact"
)

// Step is the wizard position. Non-wizard sessions stay at StepNone.
type Step int

const (
	StepNone         Step = 0
	StepIdentity     Step = 1
	StepFieldDetails Step = 2
	StepLocation     Step = 3
)

func (s Step) String() string {
	switch s {
	case StepIdentity:
		return "identity"
	case StepFieldDetails:
		return "field_details"
	case StepLocation:
		return "location"
	default:
		return "none"
	}
}

// Phase is the submission lifecycle shared by every form.
type Phase string

const (
	PhaseEditing    Phase = "editing"
	PhaseSubmitting Phase = "submitting"
	PhaseSubmitted  Phase = "submitted"
)

// LocationStatus tracks the automatic acquirer for single-step bookings.
type LocationStatus string

const (
	LocationPending  LocationStatus = "pending"
	LocationAcquired LocationStatus = "acquired"
	LocationFailed   LocationStatus = "failed"
)

type LocationState struct {
	Status  LocationStatus                `json:"status"`
	Source  booking_models.LocationSource `json:"source,omitempty"`
	Failure *geolocation.Failure          `json:"failure,omitempty"`
}

var (
	ErrWrongKind        = errors.New("operation not available for this form")
	ErrSessionLocked    = errors.New("form has already been submitted")
	ErrStepOrder        = errors.New("wizard step not reached")
	ErrLastStep         = errors.New("already at the last step")
	ErrValidationFailed = errors.New("validation failed")
)

// FormSession owns one draft for the lifetime of a visitor's form. Only the
// user's edits and the two submit outcomes ever change it.
type FormSession struct {
	ID          uuid.UUID                     `json:"id"`
	Kind        FormKind                      `json:"kind"`
	Step        Step                          `json:"step,omitempty"`
	Phase       Phase                         `json:"phase"`
	Booking     *booking_models.BookingDraft  `json:"booking,omitempty"`
	Wizard      *booking_models.WizardDraft   `json:"wizard,omitempty"`
	Contact     *contact_models.ContactDraft  `json:"contact,omitempty"`
	Errors      validation.ValidationErrorSet `json:"errors"`
	Location    *LocationState                `json:"location,omitempty"`
	CreatedAt   time.Time                     `json:"createdAt"`
	UpdatedAt   time.Time                     `json:"updatedAt"`
	SubmittedAt *time.Time                    `json:"submittedAt,omitempty"`
}

// NewFormSession creates a session with an empty draft for kind.
func NewFormSession(kind FormKind, now time.Time) (*FormSession, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}
	s := &FormSession{ID: id, Kind: kind, CreatedAt: now, UpdatedAt: now}
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FormSession) reset() error {
	s.Phase = PhaseEditing
	s.Errors = validation.ValidationErrorSet{}
	s.SubmittedAt = nil
	s.Step = StepNone
	s.Booking, s.Wizard, s.Contact, s.Location = nil, nil, nil, nil

	switch s.Kind {
	case KindBooking:
		s.Booking = booking_models.NewBookingDraft()
		s.Location = &LocationState{Status: LocationPending}
	case KindWizard:
		s.Wizard = booking_models.NewWizardDraft()
		s.Step = StepIdentity
	case KindContact:
		s.Contact = contact_models.NewContactDraft()
	default:
		return fmt.Errorf("%w: unknown form kind %q", ErrWrongKind, s.Kind)
	}
	return nil
}

// Reset empties the draft after a successful submission and returns the
// wizard to its first step. The session id is kept.
func (s *FormSession) Reset(now time.Time) {
	_ = s.reset()
	s.UpdatedAt = now
}

// Editable fails once a submission is in flight or done.
func (s *FormSession) Editable() error {
	if s.Phase != PhaseEditing {
		return ErrSessionLocked
	}
	return nil
}

// Next advances the wizard when the current step's fields pass. The step's
// errors replace the session's error set either way.
func (s *FormSession) Next(v *validation.Validator) error {
	if s.Kind != KindWizard {
		return ErrWrongKind
	}
	if err := s.Editable(); err != nil {
		return err
	}
	if s.Step >= StepLocation {
		return ErrLastStep
	}

	s.Errors = v.ValidateWizardStep(*s.Wizard, int(s.Step))
	if !s.Errors.Valid() {
		return ErrValidationFailed
	}
	s.Step++
	return nil
}

// Back moves the wizard one step back without validating. It is a no-op on
// the first step.
func (s *FormSession) Back() error {
	if s.Kind != KindWizard {
		return ErrWrongKind
	}
	if err := s.Editable(); err != nil {
		return err
	}
	if s.Step > StepIdentity {
		s.Step--
	}
	return nil
}

// Validate runs a full pass over the draft and stores the result.
func (s *FormSession) Validate(v *validation.Validator) validation.ValidationErrorSet {
	switch s.Kind {
	case KindBooking:
		s.Errors = v.ValidateBooking(*s.Booking)
	case KindWizard:
		s.Errors = v.ValidateWizard(*s.Wizard)
	case KindContact:
		s.Errors = v.ValidateContact(*s.Contact)
	}
	return s.Errors
}

// Payload snapshots the draft for dispatch.
func (s *FormSession) Payload(now time.Time) (shared_models.SubmissionPayload, error) {
	switch s.Kind {
	case KindBooking:
		return s.Booking.Payload(now)
	case KindWizard:
		return s.Wizard.Payload(now)
	case KindContact:
		return s.Contact.Payload(now)
	default:
		return shared_models.SubmissionPayload{}, ErrWrongKind
	}
}

// ReadyToSubmit checks the lifecycle preconditions of a submit attempt.
func (s *FormSession) ReadyToSubmit() error {
	if err := s.Editable(); err != nil {
		return err
	}
	if s.Kind == KindWizard && s.Step != StepLocation {
		return ErrStepOrder
	}
	return nil
}

// MarkSubmitted enters the terminal phase.
func (s *FormSession) MarkSubmitted(now time.Time) {
	s.Phase = PhaseSubmitted
	s.SubmittedAt = &now
	s.Errors = validation.ValidationErrorSet{}
}

// SetCoordinate stores a captured coordinate on whichever booking draft the
// session holds and clears the location errors.
func (s *FormSession) SetCoordinate(c booking_models.GeoCoordinate) error {
	switch s.Kind {
	case KindBooking:
		s.Booking.SetCoordinate(c)
	case KindWizard:
		s.Wizard.SetCoordinate(c)
	default:
		return ErrWrongKind
	}
	s.Errors.Clear("latitude", "longitude")
	s.Location = &LocationState{Status: LocationAcquired, Source: c.Source}
	return nil
}

// Clone returns a deep copy so stores never share drafts with callers.
func (s *FormSession) Clone() *FormSession {
	if s == nil {
		return nil
	}
	c := *s
	c.Booking = s.Booking.Clone()
	c.Wizard = s.Wizard.Clone()
	c.Contact = s.Contact.Clone()
	c.Errors = s.Errors.Clone()
	if s.Location != nil {
		loc := *s.Location
		if s.Location.Failure != nil {
			f := *s.Location.Failure
			loc.Failure = &f
		}
		c.Location = &loc
	}
	if s.SubmittedAt != nil {
		t := *s.SubmittedAt
		c.SubmittedAt = &t
	}
	return &c
}
