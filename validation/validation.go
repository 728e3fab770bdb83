// Package validation checks form drafts against their declarative rules and
// turns failures into per-field messages for the form to display.
//
// Every call recomputes the whole error set from scratch; results are never
// merged with an earlier pass.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/xronetech/leads/logger"
	"github.com/xronetech/leads/models/booking_models"
	"github.com/xronetech/leads/models/contact_models"
)

var (
	phonePattern   = regexp.MustCompile(`^[+]?[\d\s-]{10,15}$`)
	pincodePattern = regexp.MustCompile(`^\d{6}$`)
)

const (
	minLandArea = 0.1
	maxLandArea = 10000
)

// ValidationErrorSet maps a field's JSON name to a human-readable message.
// An empty set means the draft is valid.
type ValidationErrorSet map[string]string

// Valid reports whether no field failed.
func (s ValidationErrorSet) Valid() bool { return len(s) == 0 }

// Clear drops the messages for fields the user just edited. The fields are
// not re-checked until the next full pass.
func (s ValidationErrorSet) Clear(fields ...string) {
	for _, f := range fields {
		delete(s, f)
	}
}

// Fields returns the failing field names.
func (s ValidationErrorSet) Fields() []string {
	out := make([]string, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	return out
}

// Clone returns an independent copy; a nil set clones to an empty one.
func (s ValidationErrorSet) Clone() ValidationErrorSet {
	out := make(ValidationErrorSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Validator runs the form rules. It is safe for concurrent use.
type Validator struct {
	validate  *validator.Validate
	now       func() time.Time
	loc       *time.Location
	profanity func(string) bool
}

type Option func(*Validator)

// WithClock overrides the time source used by the not-in-the-past rule.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// WithLocation sets the time zone whose calendar day counts as "today".
func WithLocation(loc *time.Location) Option {
	return func(v *Validator) {
		if loc != nil {
			v.loc = loc
		}
	}
}

// WithProfanityCheck rejects contact messages for which contains returns true.
func WithProfanityCheck(contains func(string) bool) Option {
	return func(v *Validator) { v.profanity = contains }
}

func New(opts ...Option) *Validator {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
		loc:      time.UTC,
	}
	for _, opt := range opts {
		opt(v)
	}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v.validate, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v.validate, "pincode", func(fl validator.FieldLevel) bool {
		return pincodePattern.MatchString(fl.Field().String())
	})
	mustRegister(v.validate, "landarea", func(fl validator.FieldLevel) bool {
		area, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil && area > minLandArea && area <= maxLandArea
	})
	mustRegister(v.validate, "notpast", v.notPast)
	mustRegister(v.validate, "clean", func(fl validator.FieldLevel) bool {
		return v.profanity == nil || !v.profanity(fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: registering " + tag + ": " + err.Error())
	}
}

// notPast accepts today and later, compared by calendar day in v.loc.
func (v *Validator) notPast(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !IsBeforeToday(date, v.now(), v.loc)
}

// IsBeforeToday reports whether date falls on a calendar day before now's day in loc.
func IsBeforeToday(date, now time.Time, loc *time.Location) bool {
	y, m, d := date.In(loc).Date()
	ty, tm, td := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Before(time.Date(ty, tm, td, 0, 0, 0, 0, loc))
}

// ValidateBooking checks a single-step booking draft.
func (v *Validator) ValidateBooking(d booking_models.BookingDraft) ValidationErrorSet {
	return v.run(d.Normalized())
}

// ValidateWizard checks every step of a wizard draft.
func (v *Validator) ValidateWizard(d booking_models.WizardDraft) ValidationErrorSet {
	return v.run(d.Normalized())
}

// ValidateWizardStep checks only the fields that belong to step.
func (v *Validator) ValidateWizardStep(d booking_models.WizardDraft, step int) ValidationErrorSet {
	all := v.ValidateWizard(d)
	out := ValidationErrorSet{}
	for _, f := range WizardStepFields(step) {
		if msg, ok := all[f]; ok {
			out[f] = msg
		}
	}
	return out
}

// ValidateContact checks a contact draft.
func (v *Validator) ValidateContact(d contact_models.ContactDraft) ValidationErrorSet {
	return v.run(d.Normalized())
}

// WizardStepFields lists the fields owned by each wizard step (1-based).
func WizardStepFields(step int) []string {
	switch step {
	case 1:
		return []string{"fullName", "phone", "email"}
	case 2:
		return []string{"cropType", "landArea", "preferredDate"}
	case 3:
		return []string{"address", "latitude", "longitude"}
	default:
		return nil
	}
}

func (v *Validator) run(draft any) ValidationErrorSet {
	errs := ValidationErrorSet{}

	err := v.validate.Struct(draft)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		logger.ErrorLogger.Errorf("Unexpected validation failure: %v", err)
		errs["form"] = "The form could not be validated"
		return errs
	}

	for _, fe := range fieldErrs {
		if _, seen := errs[fe.Field()]; seen {
			continue
		}
		errs[fe.Field()] = message(fe.Field(), fe.Tag())
	}
	return errs
}
