package form

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MsgFirstNameRequired = "First name is required"
	MsgInvalidEmail      = "Invalid email address"
	MsgPaymentNeedsAt    = "Payment details must contain '@'"

	// tagEmailSyntax replaces the library's own "email" tag, which follows a
	// looser RFC 5322 reading than the form accepts.
	tagEmailSyntax = "email_syntax"
)

// emailPattern covers the shape of an address. The "no leading dot" and
// "no consecutive dots" constraints need lookahead, which RE2 lacks, so
// isEmail checks them separately. Classes are spelled out in ASCII: (?i)
// would fold in runes such as U+017F and the Kelvin sign.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9_'+\-.]*[A-Za-z0-9_+\-]@([A-Za-z0-9][A-Za-z0-9\-]*\.)+[A-Za-z]{2,}$`)

// schema is the fixed rule set. The form tag names the Field each struct
// field reports as.
type schema struct {
	FirstName      string `form:"firstName" validate:"min=3"`
	LastName       string `form:"lastName"`
	Email          string `form:"email" validate:"email_syntax"`
	Address        string `form:"address"`
	PaymentDetails string `form:"paymentDetails" validate:"contains=@"`
}

func schemaFrom(values Values) schema {
	return schema{
		FirstName:      values.Get(FirstName),
		LastName:       values.Get(LastName),
		Email:          values.Get(Email),
		Address:        values.Get(Address),
		PaymentDetails: values.Get(PaymentDetails),
	}
}

// messages maps a failing (field, tag) pair to the text shown to the user.
var messages = map[Field]map[string]string{
	FirstName:      {"min": MsgFirstNameRequired},
	Email:          {tagEmailSyntax: MsgInvalidEmail},
	PaymentDetails: {"contains": MsgPaymentNeedsAt},
}

// Validator checks a complete set of values against the form schema. The
// library stops at the first failing tag of each field, so at most one
// message per field is reported.
type Validator struct {
	validate *validator.Validate
}

// DefaultValidator returns the validator for the fixed form schema.
func DefaultValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("form")
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation(tagEmailSyntax, func(fl validator.FieldLevel) bool {
		return isEmail(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Validate checks the complete set of values. The result is never nil.
func (v *Validator) Validate(values Values) Errors {
	errs := Errors{}
	if v == nil || v.validate == nil {
		return errs
	}
	err := v.validate.Struct(schemaFrom(values))
	if err == nil {
		return errs
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs
	}
	for _, fe := range fieldErrs {
		f, ok := ParseField(fe.Field())
		if !ok {
			continue
		}
		if _, seen := errs[f]; seen {
			continue
		}
		errs[f] = messageFor(f, fe.Tag())
	}
	return errs
}

func messageFor(f Field, tag string) string {
	if msg, ok := messages[f][tag]; ok {
		return msg
	}
	return f.Label() + " is invalid"
}

func isEmail(value string) bool {
	if strings.HasPrefix(value, ".") || strings.Contains(value, "..") {
		return false
	}
	return emailPattern.MatchString(value)
}
