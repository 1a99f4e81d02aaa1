// internal/form/state.go
//
// State is the form's whole world: which screen is showing, what has been
// typed, what the last submit rejected, and whether a submit went through.
// Every mutator returns a fresh State; the receiver is never modified.

package form

import "fmt"

// Step is the currently visible screen.
type Step int

const (
	StepPersonal Step = 1
	StepAddress  Step = 2
	StepPayment  Step = 3

	FirstStep = StepPersonal
	LastStep  = StepPayment
)

// Title is the heading shown above the step's inputs.
func (s Step) Title() string {
	switch s {
	case StepPersonal:
		return "Personal Details"
	case StepAddress:
		return "Address Details"
	case StepPayment:
		return "Payment Details"
	default:
		return ""
	}
}

// InRange reports whether s is a renderable step.
func (s Step) InRange() bool {
	return s >= FirstStep && s <= LastStep
}

// Values maps each field to its current text. Missing entries read as "".
type Values map[Field]string

// Get returns the value of f, or "" if unset.
func (v Values) Get(f Field) string {
	if v == nil {
		return ""
	}
	return v[f]
}

// Clone returns an independent copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for f, s := range v {
		out[f] = s
	}
	return out
}

// EmptyValues returns a mapping with every field set to "".
func EmptyValues() Values {
	out := make(Values, len(Fields()))
	for _, f := range Fields() {
		out[f] = ""
	}
	return out
}

// ValidationError is a single user-correctable problem with one field.
type ValidationError struct {
	Field   Field
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field.Key(), e.Message)
}

// Errors maps a field to the first rule it failed.
type Errors map[Field]string

// Get returns the message for f and whether one exists.
func (e Errors) Get(f Field) (string, bool) {
	if e == nil {
		return "", false
	}
	msg, ok := e[f]
	return msg, ok
}

// Clone returns an independent copy.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for f, msg := range e {
		out[f] = msg
	}
	return out
}

// List returns the errors in field display order.
func (e Errors) List() []ValidationError {
	var out []ValidationError
	for _, f := range Fields() {
		if msg, ok := e[f]; ok {
			out = append(out, ValidationError{Field: f, Message: msg})
		}
	}
	return out
}

// Keys returns the keys of the failing fields in display order.
func (e Errors) Keys() []string {
	var out []string
	for _, ve := range e.List() {
		out = append(out, ve.Field.Key())
	}
	return out
}

// State holds the form session.
type State struct {
	Step      Step
	Values    Values
	Errors    Errors
	Submitted bool
}

// New returns the initial state: first step, blank values, no errors.
func New() State {
	return State{
		Step:   FirstStep,
		Values: EmptyValues(),
		Errors: Errors{},
	}
}

// WithValues returns a fresh state seeded with the given values. Unknown
// fields are dropped and nothing is validated.
func WithValues(values Values) State {
	s := New()
	for f, v := range values {
		if f.Valid() {
			s.Values[f] = v
		}
	}
	return s
}

func (s State) clone() State {
	return State{
		Step:      s.Step,
		Values:    s.Values.Clone(),
		Errors:    s.Errors.Clone(),
		Submitted: s.Submitted,
	}
}

// SetField overwrites one value. No validation runs.
func (s State) SetField(f Field, value string) State {
	if s.Submitted || !f.Valid() {
		return s
	}
	next := s.clone()
	next.Values[f] = value
	return next
}

// GoNext advances one step, stopping at the last step.
func (s State) GoNext() State {
	if s.Submitted {
		return s
	}
	next := s.clone()
	next.Step = clampStep(s.Step + 1)
	return next
}

// GoPrev moves back one step, stopping at the first step.
func (s State) GoPrev() State {
	if s.Submitted {
		return s
	}
	next := s.clone()
	next.Step = clampStep(s.Step - 1)
	return next
}

// Submit validates the full set of values. On success the state becomes
// terminal. Errors is always replaced with the new result, never merged.
func (s State) Submit(v *Validator) State {
	if s.Submitted {
		return s
	}
	if v == nil {
		v = DefaultValidator()
	}
	next := s.clone()
	next.Errors = v.Validate(next.Values)
	next.Submitted = len(next.Errors) == 0
	return next
}

func clampStep(s Step) Step {
	if s < FirstStep {
		return FirstStep
	}
	if s > LastStep {
		return LastStep
	}
	return s
}
