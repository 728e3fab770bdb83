package validation

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xronetech/leads/models/booking_models"
	"github.com/xronetech/leads/models/contact_models"
)

var (
	ist   = time.FixedZone("IST", 5*3600+1800)
	clock = func() time.Time { return time.Date(2026, 10, 19, 10, 30, 0, 0, ist) }
)

func newTestValidator(opts ...Option) *Validator {
	return New(append([]Option{WithClock(clock), WithLocation(ist)}, opts...)...)
}

func ptr[T any](v T) *T { return &v }

func validBooking() booking_models.BookingDraft {
	return booking_models.BookingDraft{
		FullName:      "Ramesh Patil",
		Phone:         "+91 98765 43210",
		AcresSpray:    "3-5 Acres",
		PreferredDate: ptr(clock().AddDate(0, 0, 2)),
		Pincode:       "411001",
		Latitude:      ptr(18.52),
		Longitude:     ptr(73.85),
	}
}

func validWizard() booking_models.WizardDraft {
	return booking_models.WizardDraft{
		FullName:      "Sunita Jadhav",
		Phone:         "9876543210",
		CropType:      "Cotton",
		LandArea:      "12.5",
		PreferredDate: ptr(clock()),
		Address:       "Survey 42, Shirur, Pune",
		Latitude:      ptr(18.83),
		Longitude:     ptr(74.37),
	}
}

func keys(s ValidationErrorSet) []string {
	k := s.Fields()
	sort.Strings(k)
	return k
}

func TestValidateBookingAcceptsValidDraft(t *testing.T) {
	errs := newTestValidator().ValidateBooking(validBooking())
	assert.True(t, errs.Valid(), "unexpected errors: %v", errs)
}

func TestValidateBookingEmptyDraftReportsEveryRequiredField(t *testing.T) {
	errs := newTestValidator().ValidateBooking(*booking_models.NewBookingDraft())

	assert.Equal(t, []string{"acresSpray", "fullName", "latitude", "longitude", "phone", "pincode", "preferredDate"}, keys(errs))
	assert.Equal(t, "Location is required", errs["latitude"])
	assert.Equal(t, "Location is required", errs["longitude"])
	assert.Equal(t, "Please select acres to spray", errs["acresSpray"])
}

func TestValidateBookingKeysExactlyTheInvalidFields(t *testing.T) {
	v := newTestValidator()

	d := validBooking()
	d.Phone = "12ab"
	d.Pincode = "41100"
	errs := v.ValidateBooking(d)
	assert.Equal(t, []string{"phone", "pincode"}, keys(errs))

	d = validBooking()
	d.AcresSpray = "100 Acres"
	errs = v.ValidateBooking(d)
	assert.Equal(t, []string{"acresSpray"}, keys(errs))
}

func TestNameIsTrimmedBeforeLengthCheck(t *testing.T) {
	v := newTestValidator()

	d := validBooking()
	d.FullName = "  A  "
	assert.Equal(t, "Name must be at least 2 characters", v.ValidateBooking(d)["fullName"])

	d.FullName = strings.Repeat("x", 101)
	assert.Equal(t, "Name is too long", v.ValidateBooking(d)["fullName"])

	d.FullName = "  " + strings.Repeat("x", 100) + "  "
	assert.NotContains(t, v.ValidateBooking(d), "fullName")
}

func TestPincodeRule(t *testing.T) {
	v := newTestValidator()
	accept := []string{"000000", "411001", "999999", " 560001 "}
	reject := []string{"", "41100", "4110011", "41100a", "abcdef", "41 001", "４１１００１"}

	for _, pin := range accept {
		d := validBooking()
		d.Pincode = pin
		assert.NotContains(t, v.ValidateBooking(d), "pincode", "pincode %q should pass", pin)
	}
	for _, pin := range reject {
		d := validBooking()
		d.Pincode = pin
		assert.Equal(t, "Pincode must be 6 digits", v.ValidateBooking(d)["pincode"], "pincode %q should fail", pin)
	}
}

func TestPhoneRule(t *testing.T) {
	v := newTestValidator()
	for _, phone := range []string{"9876543210", "+919876543210", "+91 98765-43210", "020-2567-8901"} {
		d := validBooking()
		d.Phone = phone
		assert.NotContains(t, v.ValidateBooking(d), "phone", phone)
	}
	for _, phone := range []string{"", "12345", "++919876543210", "98765x43210", "+91 98765 43210 12345"} {
		d := validBooking()
		d.Phone = phone
		assert.Contains(t, v.ValidateBooking(d), "phone", phone)
	}
}

func TestPreferredDateRule(t *testing.T) {
	v := newTestValidator()
	now := clock()

	cases := []struct {
		name string
		date time.Time
		ok   bool
	}{
		{"yesterday", now.AddDate(0, 0, -1), false},
		{"a year ago", now.AddDate(-1, 0, 0), false},
		{"today earlier than now", time.Date(2026, 10, 19, 0, 0, 0, 0, ist), true},
		{"today as browser UTC midnight", time.Date(2026, 10, 18, 18, 30, 0, 0, time.UTC), true},
		{"late yesterday in UTC", time.Date(2026, 10, 18, 18, 29, 0, 0, time.UTC), false},
		{"tomorrow", now.AddDate(0, 0, 1), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validBooking()
			d.PreferredDate = ptr(tc.date)
			errs := v.ValidateBooking(d)
			if tc.ok {
				assert.NotContains(t, errs, "preferredDate")
			} else {
				assert.Equal(t, "Date cannot be in the past", errs["preferredDate"])
			}
		})
	}

	d := validBooking()
	d.PreferredDate = nil
	assert.Equal(t, "Please select a preferred date", v.ValidateBooking(d)["preferredDate"])
}

func TestCapturedCoordinateSatisfiesLocationRule(t *testing.T) {
	d := validBooking()
	d.Latitude, d.Longitude = nil, nil

	coord, err := booking_models.NewGeoCoordinate(12.34, 56.78, booking_models.SourceBrowser)
	require.NoError(t, err)
	d.SetCoordinate(coord)

	require.NotNil(t, d.Latitude)
	assert.Equal(t, 12.34, *d.Latitude)
	assert.Equal(t, 56.78, *d.Longitude)
	assert.True(t, newTestValidator().ValidateBooking(d).Valid())
}

func TestZeroCoordinatesCountAsCaptured(t *testing.T) {
	d := validBooking()
	d.Latitude, d.Longitude = ptr(0.0), ptr(0.0)
	assert.True(t, newTestValidator().ValidateBooking(d).Valid())
}

func TestValidateWizardSteps(t *testing.T) {
	v := newTestValidator()
	empty := *booking_models.NewWizardDraft()

	assert.Equal(t, []string{"fullName", "phone"}, keys(v.ValidateWizardStep(empty, 1)))
	assert.Equal(t, []string{"cropType", "landArea", "preferredDate"}, keys(v.ValidateWizardStep(empty, 2)))
	assert.Equal(t, []string{"address", "latitude", "longitude"}, keys(v.ValidateWizardStep(empty, 3)))
	assert.Empty(t, v.ValidateWizardStep(empty, 9))

	assert.True(t, v.ValidateWizard(validWizard()).Valid())
}

func TestWizardOptionalEmail(t *testing.T) {
	v := newTestValidator()
	d := validWizard()

	d.Email = ""
	assert.True(t, v.ValidateWizardStep(d, 1).Valid())

	d.Email = "not-an-email"
	assert.Equal(t, "Please enter a valid email", v.ValidateWizardStep(d, 1)["email"])
}

func TestWizardLandAreaBounds(t *testing.T) {
	v := newTestValidator()
	for area, ok := range map[string]bool{
		"0.1": false, "0.11": true, "1": true, "10000": true, "10000.01": false,
		"-5": false, "abc": false, "": false, " 42 ": true,
	} {
		d := validWizard()
		d.LandArea = area
		if ok {
			assert.NotContains(t, v.ValidateWizard(d), "landArea", area)
		} else {
			assert.Contains(t, v.ValidateWizard(d), "landArea", area)
		}
	}
}

func TestValidateContact(t *testing.T) {
	banned := func(s string) bool { return strings.Contains(strings.ToLower(s), "casino") }
	v := newTestValidator(WithProfanityCheck(banned))

	ok := contact_models.ContactDraft{
		Name:    "Kiran",
		Phone:   "9876543210",
		Email:   "kiran@example.com",
		Message: "Please call me about spraying my soybean field.",
	}
	assert.True(t, v.ValidateContact(ok).Valid())

	bad := ok
	bad.Email = "kiran@"
	bad.Message = "short"
	assert.Equal(t, []string{"email", "message"}, keys(v.ValidateContact(bad)))

	spam := ok
	spam.Message = "Visit our CASINO for great offers today"
	assert.Equal(t, "Message contains words that are not allowed", v.ValidateContact(spam)["message"])
}

func TestErrorSetIsRecomputedAndClearable(t *testing.T) {
	v := newTestValidator()
	d := *booking_models.NewBookingDraft()

	first := v.ValidateBooking(d)
	first.Clear("fullName", "phone")
	assert.NotContains(t, first, "fullName")
	assert.NotContains(t, first, "phone")

	second := v.ValidateBooking(d)
	assert.Contains(t, second, "fullName", "a new pass must not inherit cleared entries")
	assert.Contains(t, second, "phone")
}
