package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func validValues() Values {
	return Values{
		FirstName:      "John",
		LastName:       "Doe",
		Email:          "john@doe.com",
		Address:        "42 Main",
		PaymentDetails: "john@upi",
	}
}

func TestDefaultValidatorScenarios(t *testing.T) {
	tests := []struct {
		name   string
		values Values
		want   Errors
	}{
		{
			name: "short-first-name",
			values: Values{
				FirstName: "Jo", LastName: "", Email: "a@b.com", Address: "", PaymentDetails: "x@y",
			},
			want: Errors{FirstName: MsgFirstNameRequired},
		},
		{
			name: "malformed-email",
			values: Values{
				FirstName: "John", LastName: "Doe", Email: "not-an-email", Address: "123 St", PaymentDetails: "john@upi",
			},
			want: Errors{Email: MsgInvalidEmail},
		},
		{
			name: "payment-without-at",
			values: Values{
				FirstName: "John", LastName: "", Email: "john@doe.com", Address: "", PaymentDetails: "noatsign",
			},
			want: Errors{PaymentDetails: MsgPaymentNeedsAt},
		},
		{
			name:   "all-valid",
			values: validValues(),
			want:   Errors{},
		},
		{
			name:   "everything-empty",
			values: EmptyValues(),
			want: Errors{
				FirstName:      MsgFirstNameRequired,
				Email:          MsgInvalidEmail,
				PaymentDetails: MsgPaymentNeedsAt,
			},
		},
	}
	v := DefaultValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(tt.values)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Validate mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFirstNameLength(t *testing.T) {
	v := DefaultValidator()
	for _, name := range []string{"", "a", "ab", "Jö", "\U0001F600\U0001F600"} {
		values := validValues()
		values[FirstName] = name
		if msg, ok := v.Validate(values).Get(FirstName); !ok || msg != MsgFirstNameRequired {
			t.Fatalf("firstName %q: expected %q, got %q (ok=%v)", name, MsgFirstNameRequired, msg, ok)
		}
	}
	for _, name := range []string{"Ann", "Zoë", "   ", "Bartholomew"} {
		values := validValues()
		values[FirstName] = name
		if msg, ok := v.Validate(values).Get(FirstName); ok {
			t.Fatalf("firstName %q: unexpected error %q", name, msg)
		}
	}
}

func TestEmailSyntax(t *testing.T) {
	valid := []string{
		"a@b.com",
		"john@doe.com",
		"first.last@example.co.uk",
		"o'brien+tag@mail-host.io",
		"UPPER@CASE.ORG",
	}
	invalid := []string{
		"",
		"not-an-email",
		"@example.com",
		"john@",
		"john@doe",
		"john@doe.c",
		".john@doe.com",
		"john..doe@doe.com",
		"john.@doe.com",
		"john@-doe.com",
		"john doe@doe.com",
		"\u017f@b.com",
		"john@doe.\u017fe",
		"\u212a@b.com",
	}
	for _, email := range valid {
		if !isEmail(email) {
			t.Errorf("expected %q to be accepted", email)
		}
	}
	for _, email := range invalid {
		if isEmail(email) {
			t.Errorf("expected %q to be rejected", email)
		}
	}
}

func TestOptionalFieldsAcceptAnything(t *testing.T) {
	v := DefaultValidator()
	for _, value := range []string{"", " ", "@@", "anything at all"} {
		values := validValues()
		values[LastName] = value
		values[Address] = value
		if errs := v.Validate(values); len(errs) != 0 {
			t.Fatalf("lastName/address %q: unexpected errors %v", value, errs)
		}
	}
}

func TestValidateReportsOneMessagePerField(t *testing.T) {
	got := DefaultValidator().Validate(Values{FirstName: "", Email: ".", PaymentDetails: ""})
	want := Errors{
		FirstName:      MsgFirstNameRequired,
		Email:          MsgInvalidEmail,
		PaymentDetails: MsgPaymentNeedsAt,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected errors (-want +got):\n%s", diff)
	}
}

func TestMessageForUnknownTagFallsBack(t *testing.T) {
	if got := messageFor(Email, "email_syntax"); got != MsgInvalidEmail {
		t.Fatalf("messageFor(email) = %q", got)
	}
	if got := messageFor(Address, "max"); got != "Address is invalid" {
		t.Fatalf("fallback message = %q", got)
	}
}

func TestNilValidatorAcceptsEverything(t *testing.T) {
	var v *Validator
	if errs := v.Validate(EmptyValues()); errs == nil || len(errs) != 0 {
		t.Fatalf("expected empty non-nil errors, got %#v", errs)
	}
}

func TestErrorsListOrder(t *testing.T) {
	errs := Errors{PaymentDetails: "p", FirstName: "f", Email: "e"}
	want := []ValidationError{
		{Field: FirstName, Message: "f"},
		{Field: Email, Message: "e"},
		{Field: PaymentDetails, Message: "p"},
	}
	if diff := cmp.Diff(want, errs.List()); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}
	if got := errs.List()[0].Error(); got != "firstName: f" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestParseField(t *testing.T) {
	for _, f := range Fields() {
		got, ok := ParseField(f.Key())
		if !ok || got != f {
			t.Fatalf("ParseField(%q) = %v, %v", f.Key(), got, ok)
		}
	}
	for _, key := range []string{"FIRSTNAME", "FirstName", " firstName"} {
		if _, ok := ParseField(key); ok {
			t.Fatalf("ParseField(%q) should not match", key)
		}
	}
	if _, ok := ParseField("phone"); ok {
		t.Fatalf("expected unknown key to fail")
	}
}
