// internal/form/field.go
//
// Fields are a closed set. Everything else in the package keys off Field
// rather than raw strings so a typo can't create a phantom entry.

package form

// Field identifies one input of the form.
type Field int

const (
	FirstName Field = iota
	LastName
	Email
	Address
	PaymentDetails
)

type fieldMeta struct {
	key         string
	label       string
	placeholder string
}

var fieldTable = map[Field]fieldMeta{
	FirstName:      {key: "firstName", label: "First Name", placeholder: "First Name"},
	LastName:       {key: "lastName", label: "Last Name", placeholder: "Last Name"},
	Email:          {key: "email", label: "Email", placeholder: "Email"},
	Address:        {key: "address", label: "Address", placeholder: "Address"},
	PaymentDetails: {key: "paymentDetails", label: "Payment Details", placeholder: "UPI id"},
}

// Fields returns every field in display order.
func Fields() []Field {
	return []Field{FirstName, LastName, Email, Address, PaymentDetails}
}

// Valid reports whether f is one of the known fields.
func (f Field) Valid() bool {
	_, ok := fieldTable[f]
	return ok
}

// Key is the stable identifier used in files and logs.
func (f Field) Key() string { return fieldTable[f].key }

// Label is the human-readable name shown in the summary.
func (f Field) Label() string { return fieldTable[f].label }

// Placeholder is the hint shown inside an empty input.
func (f Field) Placeholder() string { return fieldTable[f].placeholder }

func (f Field) String() string {
	if !f.Valid() {
		return "unknown"
	}
	return f.Key()
}

// ParseField resolves a key such as "paymentDetails" back to its Field.
// Keys are case-sensitive: "FIRSTNAME" is not firstName.
func ParseField(key string) (Field, bool) {
	for _, f := range Fields() {
		if f.Key() == key {
			return f, true
		}
	}
	return 0, false
}
