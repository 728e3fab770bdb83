// Package geolocation obtains a farm's coordinates either from the browser's
// position API (automatic) or from a click on the booking map (interactive).
package geolocation

import (
	"context"
	"fmt"

	"github.com/xronetech/leads/logger"
	"github.com/xronetech/leads/models/booking_models"
)

// PositionOptions are the options the browser must pass to getCurrentPosition.
type PositionOptions struct {
	EnableHighAccuracy bool `json:"enableHighAccuracy"`
	Timeout            int  `json:"timeout"`
	MaximumAge         int  `json:"maximumAge"`
}

// RequestOptions asks for a fresh, high-accuracy fix bounded to 10 seconds.
var RequestOptions = PositionOptions{
	EnableHighAccuracy: true,
	Timeout:            10000,
	MaximumAge:         0,
}

// FailureReason classifies why no coordinate could be obtained.
type FailureReason string

const (
	PermissionDenied    FailureReason = "permission_denied"
	PositionUnavailable FailureReason = "position_unavailable"
	Timeout             FailureReason = "timeout"
	Unsupported         FailureReason = "unsupported"
	Unknown             FailureReason = "unknown"
)

// W3C GeolocationPositionError codes.
const (
	codePermissionDenied    = 1
	codePositionUnavailable = 2
	codeTimeout             = 3
)

// Failure is a classified acquisition failure. It is shown to the user as a
// banner with a retry action; ShowSettingsDialog asks the UI to also explain
// how to re-enable location access.
type Failure struct {
	Reason             FailureReason `json:"reason"`
	Message            string        `json:"message"`
	ShowSettingsDialog bool          `json:"showSettingsDialog"`
}

func (f *Failure) Error() string {
	return fmt.Sprintf("geolocation %s: %s", f.Reason, f.Message)
}

// Acquirer produces a coordinate or fails with a reason.
type Acquirer interface {
	Acquire(ctx context.Context) (booking_models.GeoCoordinate, error)
}

// Coords mirrors GeolocationCoordinates from the browser.
type Coords struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// PositionError mirrors GeolocationPositionError from the browser.
type PositionError struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// PositionReport is what the page posts back after calling getCurrentPosition:
// either coords, an error, or unsupported when navigator.geolocation is absent.
type PositionReport struct {
	Coords      *Coords        `json:"coords,omitempty"`
	Error       *PositionError `json:"error,omitempty"`
	Unsupported bool           `json:"unsupported,omitempty"`
}

// Automatic turns a browser position report into a coordinate. On success it
// hands the coordinate to the notifier, which reports it in the background.
type Automatic struct {
	Report   PositionReport
	Notifier *Notifier
}

func (a Automatic) Acquire(ctx context.Context) (booking_models.GeoCoordinate, error) {
	if f := Classify(a.Report); f != nil {
		logger.InfoLogger.Infof("Browser geolocation failed: %s", f.Reason)
		return booking_models.GeoCoordinate{}, f
	}

	coord, err := booking_models.NewGeoCoordinate(a.Report.Coords.Latitude, a.Report.Coords.Longitude, booking_models.SourceBrowser)
	if err != nil {
		return booking_models.GeoCoordinate{}, err
	}

	a.Notifier.Notify(coord)
	return coord, nil
}

// Interactive takes the coordinate of a click on the map. The latest click
// always wins and nothing is reported in the background.
type Interactive struct {
	Click MapClick
}

// MapClick is the geographic point the map component resolved for a click.
type MapClick struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (i Interactive) Acquire(ctx context.Context) (booking_models.GeoCoordinate, error) {
	return booking_models.NewGeoCoordinate(i.Click.Lat, i.Click.Lng, booking_models.SourceMap)
}

// Classify returns nil when the report carries a usable position.
func Classify(r PositionReport) *Failure {
	switch {
	case r.Unsupported:
		return &Failure{
			Reason:             Unsupported,
			Message:            "Geolocation is not supported by your browser",
			ShowSettingsDialog: true,
		}
	case r.Error != nil:
		return classifyError(r.Error.Code)
	case r.Coords == nil:
		return &Failure{Reason: Unknown, Message: "Unable to fetch location"}
	default:
		return nil
	}
}

func classifyError(code int) *Failure {
	switch code {
	case codePermissionDenied:
		return &Failure{
			Reason:             PermissionDenied,
			Message:            "Location access denied. Please enable location access in your browser settings.",
			ShowSettingsDialog: true,
		}
	case codePositionUnavailable:
		return &Failure{Reason: PositionUnavailable, Message: "Location information is unavailable."}
	case codeTimeout:
		return &Failure{Reason: Timeout, Message: "Location request timed out."}
	default:
		return &Failure{Reason: Unknown, Message: "Unable to fetch location"}
	}
}

// SettingsHint is the guidance shown after the user dismisses the permission dialog.
const SettingsHint = "Please click the location icon in your browser address bar and allow location access, then refresh the page."
