// Package validation enforces the per-resource field rules that run before
// anything is persisted. Expected violations are returned as
// *domain.ValidationError, never as panics.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/zebrands/catalog-api/internal/core/domain"
)

const (
	msgRequired = "This field is required."
	msgBlank    = "This field may not be blank."
	msgNoFields = "No fields supplied."
)

// Validator wraps go-playground/validator with the catalog's custom tags.
type Validator struct {
	v         *validator.Validate
	orgDomain string
}

// New returns a Validator whose "orgemail" tag accepts only addresses in
// orgDomain, e.g. "zebrands.com".
func New(orgDomain string) *Validator {
	orgDomain = strings.ToLower(strings.TrimSpace(orgDomain))
	pattern := regexp.MustCompile(`^[\w.\-]+@` + regexp.QuoteMeta(orgDomain) + `$`)

	v := validator.New()
	// RegisterValidation only fails on an empty tag or a reserved name.
	_ = v.RegisterValidation("orgemail", func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	})

	return &Validator{v: v, orgDomain: orgDomain}
}

// OrgDomain returns the organization domain enforced on user emails.
func (v *Validator) OrgDomain() string {
	return v.orgDomain
}

// field runs tag against a supplied value and records a message on ve when
// it fails. It reports whether the value passed.
func (v *Validator) field(ve *domain.ValidationError, name string, value any, tag string) bool {
	err := v.v.Var(value, tag)
	if err == nil {
		return true
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		ve.Add(name, err.Error())
		return false
	}
	ve.Add(name, v.message(errs[0]))
	return false
}

// message converts a single FieldError into a client-facing message.
func (v *Validator) message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgBlank
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "orgemail":
		return fmt.Sprintf("Enter a valid %s email address.", v.orgDomain)
	default:
		return fmt.Sprintf("Failed validation (%s).", fe.Tag())
	}
}

// present handles the required-on-full-replace rule shared by every field.
// It reports whether the field was supplied and should be checked further.
func present[V any](ve *domain.ValidationError, name string, value *V, required bool) bool {
	if value != nil {
		return true
	}
	if required {
		ve.Add(name, msgRequired)
	}
	return false
}
