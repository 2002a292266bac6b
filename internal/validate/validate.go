package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kalobtand/table-reservations/internal/domain"
)

type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Reason)
}

// FieldErrors aggregates every failing field so a caller sees all problems
// in one response, in field order.
type FieldErrors []ValidationError

func (v FieldErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(msgs, "; "))
}

// Typed phone shape: optional leading +, then digits, spaces, hyphens,
// parentheses. Length bounds are enforced separately.
var phoneCharset = regexp.MustCompile(`^\+?[0-9\s\-\(\)]+$`)

type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

func New() *Validator {
	return NewWithClock(time.Now)
}

func NewWithClock(now func() time.Time) *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validateNotBlank); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("phone_input", validatePhoneInput); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("time_slot", validateTimeSlot); err != nil {
		panic(err)
	}

	val := &Validator{validate: v, now: now}

	if err := v.RegisterValidation("future_date", val.validateFutureDate); err != nil {
		panic(err)
	}

	return val
}

// Request validates every field of a booking submission and returns the
// full list of failures, nil when the request is admissible.
func (v *Validator) Request(req *domain.BookingRequest) FieldErrors {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{{Field: "request", Reason: "invalid request"}}
	}

	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{Field: fe.Field(), Reason: reason(fe)})
	}
	return out
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validatePhoneInput(fl validator.FieldLevel) bool {
	phone := strings.TrimSpace(fl.Field().String())
	if phone == "" || !phoneCharset.MatchString(phone) {
		return false
	}

	// Length bounds apply to the compact form so spaces, hyphens and
	// parentheses never push a valid number over the limit.
	compact := strings.Map(func(r rune) rune {
		if r == '+' || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, phone)
	if len(compact) < domain.PhoneMinCompact || len(compact) > domain.PhoneMaxCompact {
		return false
	}

	digits := len(compact)
	if strings.HasPrefix(compact, "+") {
		digits--
	}
	return digits >= domain.PhoneMinDigits && digits <= domain.PhoneMaxDigits
}

func validateTimeSlot(fl validator.FieldLevel) bool {
	t := fl.Field().String()
	if _, err := time.Parse(domain.TimeLayout, t); err != nil {
		return false
	}
	return domain.IsSlot(t)
}

func (v *Validator) validateFutureDate(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if _, err := time.Parse(domain.DateLayout, raw); err != nil {
		return false
	}
	// Compare calendar dates as strings; the layout sorts lexicographically
	// and the clock's own zone decides what "today" is.
	return raw >= v.now().Format(domain.DateLayout)
}

func reason(fe validator.FieldError) string {
	switch fe.Field() {
	case "name":
		if fe.Tag() == "max" {
			return fmt.Sprintf("name must be at most %d characters", domain.MaxNameLen)
		}
		return "name is required"
	case "phone":
		if fe.Tag() == "required" {
			return "phone is required"
		}
		return "phone must be a valid phone number"
	case "date":
		if fe.Tag() == "required" {
			return "date is required"
		}
		return "date must be a calendar date that is not in the past"
	case "time":
		if fe.Tag() == "required" {
			return "time is required"
		}
		return "time must be one of the published slots"
	case "guests":
		return fmt.Sprintf("guests must be between %d and %d", domain.MinGuests, domain.MaxGuests)
	case "notes":
		return fmt.Sprintf("notes must be at most %d characters", domain.MaxNotesLen)
	default:
		return "invalid value"
	}
}
