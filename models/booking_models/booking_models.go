package booking_models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xronetech/leads/models/shared_models"
)

// Acreage choices offered by the single-step booking form.
var AcreageOptions = []string{
	"1-2 Acres",
	"3-5 Acres",
	"6-10 Acres",
	"10+ Acres",
}

// Crops offered by the wizard's field-details step.
var CropOptions = []string{
	"Paddy",
	"Wheat",
	"Cotton",
	"Sugarcane",
	"Maize",
	"Soybean",
	"Vegetables",
	"Fruits",
	"Other",
}

// BookingDraft is the single-step booking form. Coordinates are captured
// automatically from the browser and are nil until a position is reported.
type BookingDraft struct {
	FullName      string     `json:"fullName" validate:"min=2,max=100"`
	Phone         string     `json:"phone" validate:"phone"`
	AcresSpray    string     `json:"acresSpray" validate:"required,oneof='1-2 Acres' '3-5 Acres' '6-10 Acres' '10+ Acres'"`
	PreferredDate *time.Time `json:"preferredDate" validate:"required,notpast"`
	Pincode       string     `json:"pincode" validate:"pincode"`
	Latitude      *float64   `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude     *float64   `json:"longitude" validate:"required,min=-180,max=180"`
}

// NewBookingDraft returns the empty shape a form session starts from.
func NewBookingDraft() *BookingDraft {
	return &BookingDraft{}
}

// Normalized returns a copy with surrounding whitespace removed from text fields.
func (d BookingDraft) Normalized() BookingDraft {
	d.FullName = strings.TrimSpace(d.FullName)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Pincode = strings.TrimSpace(d.Pincode)
	return d
}

// Clone returns a deep copy.
func (d *BookingDraft) Clone() *BookingDraft {
	if d == nil {
		return nil
	}
	c := *d
	c.PreferredDate = cloneTime(d.PreferredDate)
	c.Latitude = cloneFloat(d.Latitude)
	c.Longitude = cloneFloat(d.Longitude)
	return &c
}

// Coordinate returns the captured location, if any.
func (d *BookingDraft) Coordinate() (GeoCoordinate, bool) {
	return coordinateOf(d.Latitude, d.Longitude)
}

// SetCoordinate stores a captured location on the draft.
func (d *BookingDraft) SetCoordinate(c GeoCoordinate) {
	d.Latitude, d.Longitude = floatPtr(c.Latitude), floatPtr(c.Longitude)
}

// BookingPatch carries a partial update; nil fields are left untouched.
type BookingPatch struct {
	FullName      *string    `json:"fullName"`
	Phone         *string    `json:"phone"`
	AcresSpray    *string    `json:"acresSpray"`
	PreferredDate *time.Time `json:"preferredDate"`
	Pincode       *string    `json:"pincode"`
}

func (p *BookingPatch) UnmarshalJSON(b []byte) error {
	type alias BookingPatch
	aux := struct {
		*alias
		PreferredDate json.RawMessage `json:"preferredDate"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	date, err := parseDate(aux.PreferredDate)
	if err != nil {
		return err
	}
	p.PreferredDate = date
	return nil
}

// Apply writes the patch to the draft and returns the names of the edited fields.
func (d *BookingDraft) Apply(p BookingPatch) []string {
	var changed []string
	setString(&d.FullName, p.FullName, "fullName", &changed)
	setString(&d.Phone, p.Phone, "phone", &changed)
	setString(&d.AcresSpray, p.AcresSpray, "acresSpray", &changed)
	setString(&d.Pincode, p.Pincode, "pincode", &changed)
	if p.PreferredDate != nil {
		d.PreferredDate = cloneTime(p.PreferredDate)
		changed = append(changed, "preferredDate")
	}
	return changed
}

type locationData struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type bookingData struct {
	FullName      string       `json:"fullName"`
	Phone         string       `json:"phone"`
	AcresSpray    string       `json:"acresSpray"`
	PreferredDate string       `json:"preferredDate,omitempty"`
	Pincode       string       `json:"pincode"`
	Location      locationData `json:"location"`
}

// Payload snapshots the draft into the booking submission envelope.
func (d BookingDraft) Payload(now time.Time) (shared_models.SubmissionPayload, error) {
	n := d.Normalized()
	return shared_models.NewSubmissionPayload(shared_models.FormTypeBooking, bookingData{
		FullName:      n.FullName,
		Phone:         n.Phone,
		AcresSpray:    n.AcresSpray,
		PreferredDate: isoDate(n.PreferredDate),
		Pincode:       n.Pincode,
		Location:      locationData{Latitude: cloneFloat(n.Latitude), Longitude: cloneFloat(n.Longitude)},
	}, now)
}

// WizardDraft is the three-step booking form. The location is picked on a map.
type WizardDraft struct {
	// identity
	FullName string `json:"fullName" validate:"min=2,max=100"`
	Phone    string `json:"phone" validate:"phone"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`

	// field details
	CropType      string     `json:"cropType" validate:"required,oneof=Paddy Wheat Cotton Sugarcane Maize Soybean Vegetables Fruits Other"`
	LandArea      string     `json:"landArea" validate:"required,landarea"`
	PreferredDate *time.Time `json:"preferredDate" validate:"required,notpast"`

	// location
	Address   string   `json:"address" validate:"required,min=5,max=300"`
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

func NewWizardDraft() *WizardDraft {
	return &WizardDraft{}
}

func (d WizardDraft) Normalized() WizardDraft {
	d.FullName = strings.TrimSpace(d.FullName)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Email = strings.TrimSpace(d.Email)
	d.LandArea = strings.TrimSpace(d.LandArea)
	d.Address = strings.TrimSpace(d.Address)
	return d
}

func (d *WizardDraft) Clone() *WizardDraft {
	if d == nil {
		return nil
	}
	c := *d
	c.PreferredDate = cloneTime(d.PreferredDate)
	c.Latitude = cloneFloat(d.Latitude)
	c.Longitude = cloneFloat(d.Longitude)
	return &c
}

func (d *WizardDraft) Coordinate() (GeoCoordinate, bool) {
	return coordinateOf(d.Latitude, d.Longitude)
}

func (d *WizardDraft) SetCoordinate(c GeoCoordinate) {
	d.Latitude, d.Longitude = floatPtr(c.Latitude), floatPtr(c.Longitude)
}

type WizardPatch struct {
	FullName      *string    `json:"fullName"`
	Phone         *string    `json:"phone"`
	Email         *string    `json:"email"`
	CropType      *string    `json:"cropType"`
	LandArea      *string    `json:"landArea"`
	PreferredDate *time.Time `json:"preferredDate"`
	Address       *string    `json:"address"`
}

func (p *WizardPatch) UnmarshalJSON(b []byte) error {
	type alias WizardPatch
	aux := struct {
		*alias
		PreferredDate json.RawMessage `json:"preferredDate"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	date, err := parseDate(aux.PreferredDate)
	if err != nil {
		return err
	}
	p.PreferredDate = date
	return nil
}

func (d *WizardDraft) Apply(p WizardPatch) []string {
	var changed []string
	setString(&d.FullName, p.FullName, "fullName", &changed)
	setString(&d.Phone, p.Phone, "phone", &changed)
	setString(&d.Email, p.Email, "email", &changed)
	setString(&d.CropType, p.CropType, "cropType", &changed)
	setString(&d.LandArea, p.LandArea, "landArea", &changed)
	setString(&d.Address, p.Address, "address", &changed)
	if p.PreferredDate != nil {
		d.PreferredDate = cloneTime(p.PreferredDate)
		changed = append(changed, "preferredDate")
	}
	return changed
}

type wizardData struct {
	FullName      string       `json:"fullName"`
	Phone         string       `json:"phone"`
	Email         string       `json:"email,omitempty"`
	CropType      string       `json:"cropType"`
	LandArea      string       `json:"landArea"`
	PreferredDate string       `json:"preferredDate,omitempty"`
	Address       string       `json:"address"`
	Location      locationData `json:"location"`
}

func (d WizardDraft) Payload(now time.Time) (shared_models.SubmissionPayload, error) {
	n := d.Normalized()
	return shared_models.NewSubmissionPayload(shared_models.FormTypeBooking, wizardData{
		FullName:      n.FullName,
		Phone:         n.Phone,
		Email:         n.Email,
		CropType:      n.CropType,
		LandArea:      n.LandArea,
		PreferredDate: isoDate(n.PreferredDate),
		Address:       n.Address,
		Location:      locationData{Latitude: cloneFloat(n.Latitude), Longitude: cloneFloat(n.Longitude)},
	}, now)
}

// LocationSource records how a coordinate was obtained.
type LocationSource string

const (
	SourceBrowser LocationSource = "browser"
	SourceMap     LocationSource = "map"
)

var ErrCoordinateOutOfRange = errors.New("coordinate out of range")

// GeoCoordinate is a point in decimal degrees.
type GeoCoordinate struct {
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Source    LocationSource `json:"source,omitempty"`
}

// NewGeoCoordinate checks the ranges lat ∈ [-90,90], lng ∈ [-180,180].
func NewGeoCoordinate(lat, lng float64, source LocationSource) (GeoCoordinate, error) {
	if lat < -90 || lat > 90 || lat != lat {
		return GeoCoordinate{}, fmt.Errorf("%w: latitude %v", ErrCoordinateOutOfRange, lat)
	}
	if lng < -180 || lng > 180 || lng != lng {
		return GeoCoordinate{}, fmt.Errorf("%w: longitude %v", ErrCoordinateOutOfRange, lng)
	}
	return GeoCoordinate{Latitude: lat, Longitude: lng, Source: source}, nil
}

func coordinateOf(lat, lng *float64) (GeoCoordinate, bool) {
	if lat == nil || lng == nil {
		return GeoCoordinate{}, false
	}
	return GeoCoordinate{Latitude: *lat, Longitude: *lng}, true
}

func setString(dst *string, src *string, field string, changed *[]string) {
	if src == nil {
		return
	}
	*dst = *src
	*changed = append(*changed, field)
}

// ErrInvalidDate is returned for a preferredDate that is neither YYYY-MM-DD nor RFC 3339.
var ErrInvalidDate = errors.New("invalid preferred date")

const dateOnly = "2006-01-02"

// parseDate accepts a date picker's YYYY-MM-DD or a full RFC 3339 timestamp.
// Date-only values are anchored at 12:00 UTC, which keeps their calendar day
// in every zone within eleven hours of UTC.
func parseDate(raw json.RawMessage) (*time.Time, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, raw)
	}
	s = strings.TrimSpace(s)

	if t, err := time.Parse(dateOnly, s); err == nil {
		t = t.Add(12 * time.Hour)
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return &t, nil
}

func isoDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return shared_models.FormatISO(*t)
}

func floatPtr(v float64) *float64 { return &v }

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return floatPtr(*v)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
