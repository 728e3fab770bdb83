package session_models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xronetech/leads/models/booking_models"
	"github.com/xronetech/leads/validation"
)

var now = time.Date(2026, 10, 19, 5, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func newValidator() *validation.Validator {
	return validation.New(validation.WithClock(func() time.Time { return now }))
}

func TestNewFormSessionShapes(t *testing.T) {
	b, err := NewFormSession(KindBooking, now)
	require.NoError(t, err)
	assert.Equal(t, PhaseEditing, b.Phase)
	assert.Equal(t, StepNone, b.Step)
	assert.NotNil(t, b.Booking)
	assert.Equal(t, LocationPending, b.Location.Status)
	assert.NotNil(t, b.Errors)

	w, err := NewFormSession(KindWizard, now)
	require.NoError(t, err)
	assert.Equal(t, StepIdentity, w.Step)
	assert.NotNil(t, w.Wizard)
	assert.Nil(t, w.Location)

	c, err := NewFormSession(KindContact, now)
	require.NoError(t, err)
	assert.NotNil(t, c.Contact)
	assert.NotEqual(t, b.ID, c.ID)

	_, err = NewFormSession("survey", now)
	assert.ErrorIs(t, err, ErrWrongKind)
}

func TestWizardNextBlocksOnInvalidStep(t *testing.T) {
	s, err := NewFormSession(KindWizard, now)
	require.NoError(t, err)

	err = s.Next(newValidator())
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, StepIdentity, s.Step)
	assert.ElementsMatch(t, []string{"fullName", "phone"}, s.Errors.Fields())
}

func TestWizardWalksForwardAndBack(t *testing.T) {
	v := newValidator()
	s, err := NewFormSession(KindWizard, now)
	require.NoError(t, err)

	s.Wizard.Apply(booking_models.WizardPatch{FullName: ptr("Sunita Jadhav"), Phone: ptr("9876543210")})
	require.NoError(t, s.Next(v))
	assert.Equal(t, StepFieldDetails, s.Step)
	assert.True(t, s.Errors.Valid())

	// Step 2 fields are still empty.
	assert.ErrorIs(t, s.Next(v), ErrValidationFailed)
	assert.ElementsMatch(t, []string{"cropType", "landArea", "preferredDate"}, s.Errors.Fields())

	s.Wizard.Apply(booking_models.WizardPatch{CropType: ptr("Wheat"), LandArea: ptr("4"), PreferredDate: ptr(now)})
	require.NoError(t, s.Next(v))
	assert.Equal(t, StepLocation, s.Step)
	assert.ErrorIs(t, s.Next(v), ErrLastStep)

	require.NoError(t, s.Back())
	require.NoError(t, s.Back())
	assert.Equal(t, StepIdentity, s.Step)
	require.NoError(t, s.Back())
	assert.Equal(t, StepIdentity, s.Step)

	// Going back keeps what was typed.
	assert.Equal(t, "Wheat", s.Wizard.CropType)
}

func TestNonWizardRejectsStepTransitions(t *testing.T) {
	s, err := NewFormSession(KindBooking, now)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Next(newValidator()), ErrWrongKind)
	assert.ErrorIs(t, s.Back(), ErrWrongKind)
}

func TestReadyToSubmit(t *testing.T) {
	w, _ := NewFormSession(KindWizard, now)
	assert.ErrorIs(t, w.ReadyToSubmit(), ErrStepOrder)
	w.Step = StepLocation
	assert.NoError(t, w.ReadyToSubmit())

	c, _ := NewFormSession(KindContact, now)
	assert.NoError(t, c.ReadyToSubmit())
	c.Phase = PhaseSubmitting
	assert.ErrorIs(t, c.ReadyToSubmit(), ErrSessionLocked)
}

func TestSubmittedSessionResetsToEmptyShape(t *testing.T) {
	s, _ := NewFormSession(KindWizard, now)
	id := s.ID
	s.Wizard.Apply(booking_models.WizardPatch{FullName: ptr("Sunita")})
	s.Step = StepLocation
	s.MarkSubmitted(now)

	assert.Equal(t, PhaseSubmitted, s.Phase)
	assert.ErrorIs(t, s.Editable(), ErrSessionLocked)
	assert.ErrorIs(t, s.Back(), ErrSessionLocked)

	later := now.Add(3 * time.Second)
	s.Reset(later)
	assert.Equal(t, id, s.ID)
	assert.Equal(t, PhaseEditing, s.Phase)
	assert.Equal(t, StepIdentity, s.Step)
	assert.Equal(t, booking_models.NewWizardDraft(), s.Wizard)
	assert.Nil(t, s.SubmittedAt)
	assert.Equal(t, later, s.UpdatedAt)
}

func TestSetCoordinateClearsLocationErrors(t *testing.T) {
	s, _ := NewFormSession(KindBooking, now)
	s.Validate(newValidator())
	require.Contains(t, s.Errors, "latitude")

	coord, err := booking_models.NewGeoCoordinate(12.34, 56.78, booking_models.SourceBrowser)
	require.NoError(t, err)
	require.NoError(t, s.SetCoordinate(coord))

	assert.NotContains(t, s.Errors, "latitude")
	assert.NotContains(t, s.Errors, "longitude")
	assert.Contains(t, s.Errors, "fullName")
	assert.Equal(t, LocationAcquired, s.Location.Status)
	assert.Equal(t, 12.34, *s.Booking.Latitude)

	c, _ := NewFormSession(KindContact, now)
	assert.ErrorIs(t, c.SetCoordinate(coord), ErrWrongKind)
}

func TestCloneIsDeep(t *testing.T) {
	s, _ := NewFormSession(KindBooking, now)
	s.Booking.SetCoordinate(booking_models.GeoCoordinate{Latitude: 1, Longitude: 2})
	s.Errors["phone"] = "bad"

	c := s.Clone()
	*c.Booking.Latitude = 9
	c.Errors["pincode"] = "bad"
	c.Location.Status = LocationFailed

	assert.Equal(t, 1.0, *s.Booking.Latitude)
	assert.NotContains(t, s.Errors, "pincode")
	assert.Equal(t, LocationPending, s.Location.Status)
}

func TestPayloadUsesFormType(t *testing.T) {
	c, _ := NewFormSession(KindContact, now)
	p, err := c.Payload(now)
	require.NoError(t, err)
	assert.Equal(t, "contact", p.FormType())

	w, _ := NewFormSession(KindWizard, now)
	p, err = w.Payload(now)
	require.NoError(t, err)
	assert.Equal(t, "book-drone-spray", p.FormType())
}
