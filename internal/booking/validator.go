package booking

import (
	"context"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/salonhq/scheduler-api/internal/model"
)

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z][A-Za-z '\-]{1,49}$`)
	phoneRe = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)
)

// ServiceLister answers whether a service id exists in the catalog.
type ServiceLister interface {
	ListServices(ctx context.Context) ([]*model.Service, error)
}

// Validator gates new-appointment intake. The same rules run reactively per
// field and again at submit; submit is the authoritative gate.
type Validator struct {
	validate *validator.Validate
	services ServiceLister
}

func NewValidator(services ServiceLister) *Validator {
	v := validator.New()

	v.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		return nameRe.MatchString(fl.Field().String())
	})
	v.RegisterValidation("us_phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})

	bv := &Validator{validate: v, services: services}
	v.RegisterValidation("service_id", func(fl validator.FieldLevel) bool {
		return bv.serviceExists(fl.Field().String())
	})
	return bv
}

func (v *Validator) serviceExists(id string) bool {
	if v.services == nil {
		return id != ""
	}
	services, err := v.services.ListServices(context.Background())
	if err != nil {
		// Catalog unavailable: accept any non-empty id and let the store
		// resolve duration later rather than blocking bookings.
		return id != ""
	}
	for _, s := range services {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Validate returns every failing field with a human-readable message. An
// empty slice means the form may be submitted.
func (v *Validator) Validate(form *model.BookingForm) []model.FieldError {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return []model.FieldError{{Field: "form", Message: "form could not be validated"}}
	}

	out := make([]model.FieldError, 0, len(invalid))
	for _, fe := range invalid {
		out = append(out, model.FieldError{
			Field:   fieldName(fe.Field()),
			Message: message(fe),
		})
	}
	return out
}

// ValidateField re-runs the rules for a single field, for inline display.
func (v *Validator) ValidateField(form *model.BookingForm, field string) []model.FieldError {
	all := v.Validate(form)
	var out []model.FieldError
	for _, fe := range all {
		if fe.Field == field {
			out = append(out, fe)
		}
	}
	return out
}

// FormatPhone normalizes free-typed digits into the canonical
// "(XXX) XXX-XXXX" shape as the user types. Inputs with other than ten
// digits are returned with only non-digits stripped, so validation can
// report them.
func FormatPhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) == 11 && d[0] == '1' {
		d = d[1:]
	}
	if len(d) != 10 {
		return d
	}
	return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
}

func fieldName(structField string) string {
	switch structField {
	case "FirstName":
		return "first_name"
	case "LastName":
		return "last_name"
	case "Phone":
		return "phone"
	case "Email":
		return "email"
	case "ServiceID":
		return "service_id"
	case "StaffID":
		return "staff_id"
	case "Date":
		return "date"
	case "Time":
		return "time"
	case "Notes":
		return "notes"
	}
	return strings.ToLower(structField)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fieldName(fe.Field()) + " is required"
	case "person_name":
		return "must be 2-50 letters, spaces, hyphens or apostrophes"
	case "us_phone":
		return "phone must look like (555) 123-4567"
	case "email":
		return "enter a valid email address"
	case "service_id":
		return "choose a service from the list"
	case "datetime":
		return "date must look like 2026-08-30"
	case "max":
		return fieldName(fe.Field()) + " is too long"
	}
	return fieldName(fe.Field()) + " is invalid"
}
