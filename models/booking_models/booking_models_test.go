package booking_models

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingPatchAcceptsDateOnlyAndRFC3339(t *testing.T) {
	var p BookingPatch
	require.NoError(t, json.Unmarshal([]byte(`{"fullName":"Ramesh","preferredDate":"2026-10-21"}`), &p))
	require.NotNil(t, p.FullName)
	assert.Equal(t, "Ramesh", *p.FullName)
	require.NotNil(t, p.PreferredDate)
	assert.Equal(t, time.Date(2026, 10, 21, 12, 0, 0, 0, time.UTC), *p.PreferredDate)

	var w WizardPatch
	require.NoError(t, json.Unmarshal([]byte(`{"preferredDate":"2026-10-21T09:30:00+05:30"}`), &w))
	require.NotNil(t, w.PreferredDate)
	assert.True(t, w.PreferredDate.Equal(time.Date(2026, 10, 21, 4, 0, 0, 0, time.UTC)))

	var empty BookingPatch
	require.NoError(t, json.Unmarshal([]byte(`{"preferredDate":null}`), &empty))
	assert.Nil(t, empty.PreferredDate)

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"preferredDate":"21/10/2026"}`), &p), ErrInvalidDate)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"preferredDate":20261021}`), &w), ErrInvalidDate)
}

func TestApplyReportsEditedFields(t *testing.T) {
	d := NewBookingDraft()
	name, pin := "Ramesh", "411001"
	changed := d.Apply(BookingPatch{FullName: &name, Pincode: &pin})
	assert.Equal(t, []string{"fullName", "pincode"}, changed)
	assert.Equal(t, "Ramesh", d.FullName)
	assert.Empty(t, d.Phone)

	assert.Empty(t, d.Apply(BookingPatch{}))
}

func TestBookingPayloadShape(t *testing.T) {
	d := NewBookingDraft()
	name := "  Ramesh Patil "
	date := time.Date(2026, 10, 21, 12, 0, 0, 0, time.UTC)
	d.Apply(BookingPatch{FullName: &name, PreferredDate: &date})
	d.SetCoordinate(GeoCoordinate{Latitude: 12.34, Longitude: 56.78})

	p, err := d.Payload(time.Date(2026, 10, 19, 5, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	var data map[string]any
	require.NoError(t, json.Unmarshal(p.Data(), &data))
	assert.Equal(t, "Ramesh Patil", data["fullName"])
	assert.Equal(t, "2026-10-21T12:00:00.000Z", data["preferredDate"])
	assert.Equal(t, map[string]any{"latitude": 12.34, "longitude": 56.78}, data["location"])
	assert.Equal(t, "book-drone-spray", p.FormType())

	// Later edits do not leak into an already built payload.
	d.SetCoordinate(GeoCoordinate{Latitude: 1, Longitude: 1})
	require.NoError(t, json.Unmarshal(p.Data(), &data))
	assert.Equal(t, map[string]any{"latitude": 12.34, "longitude": 56.78}, data["location"])
}

func TestEmptyPayloadHasNullLocation(t *testing.T) {
	p, err := NewWizardDraft().Payload(time.Now())
	require.NoError(t, err)

	var data map[string]any
	require.NoError(t, json.Unmarshal(p.Data(), &data))
	assert.Equal(t, map[string]any{"latitude": nil, "longitude": nil}, data["location"])
	assert.NotContains(t, data, "preferredDate")
	assert.NotContains(t, data, "email")
}

func TestNewGeoCoordinateRanges(t *testing.T) {
	_, err := NewGeoCoordinate(90, 180, SourceMap)
	assert.NoError(t, err)
	_, err = NewGeoCoordinate(-90.0001, 0, SourceMap)
	assert.ErrorIs(t, err, ErrCoordinateOutOfRange)
	_, err = NewGeoCoordinate(0, 180.5, SourceMap)
	assert.ErrorIs(t, err, ErrCoordinateOutOfRange)
	_, err = NewGeoCoordinate(math.NaN(), 0, SourceMap)
	assert.ErrorIs(t, err, ErrCoordinateOutOfRange)
}

func TestCloneIsIndependent(t *testing.T) {
	d := NewWizardDraft()
	d.SetCoordinate(GeoCoordinate{Latitude: 1, Longitude: 2})
	c := d.Clone()
	*c.Latitude = 5
	assert.Equal(t, 1.0, *d.Latitude)

	var nilDraft *WizardDraft
	assert.Nil(t, nilDraft.Clone())
}
