package form

// Input is one rendered entry of a step.
type Input struct {
	Field Field
	Value string
	// Error is the message shown under the input. Empty when the field has
	// no error or the step doesn't display errors for it.
	Error string
}

// StepLayout describes everything a step screen shows.
type StepLayout struct {
	Step       Step
	Title      string
	Inputs     []Input
	ShowPrev   bool
	ShowNext   bool
	ShowSubmit bool
}

type stepGroup struct {
	fields []Field
	// errorFields lists which of the fields get inline error text.
	errorFields []Field
}

var stepGroups = map[Step]stepGroup{
	StepPersonal: {
		fields:      []Field{FirstName, LastName, Email},
		errorFields: []Field{FirstName, Email},
	},
	StepAddress: {
		fields: []Field{Address},
	},
	StepPayment: {
		fields:      []Field{PaymentDetails},
		errorFields: []Field{PaymentDetails},
	},
}

// Layout maps a state to its step screen. Errors recorded for fields on
// other steps stay in the state but are not part of the layout.
func Layout(s State) StepLayout {
	layout := StepLayout{
		Step:       s.Step,
		Title:      s.Step.Title(),
		ShowPrev:   s.Step > FirstStep,
		ShowNext:   s.Step < LastStep,
		ShowSubmit: s.Step == LastStep,
	}
	if !s.Step.InRange() {
		return layout
	}
	group := stepGroups[s.Step]
	for _, f := range group.fields {
		input := Input{Field: f, Value: s.Values.Get(f)}
		if containsField(group.errorFields, f) {
			if msg, ok := s.Errors.Get(f); ok {
				input.Error = msg
			}
		}
		layout.Inputs = append(layout.Inputs, input)
	}
	return layout
}

// SummaryLine is one labelled value of the submitted form.
type SummaryLine struct {
	Field Field
	Label string
	Value string
}

// Summary lists every field with its value verbatim.
func Summary(s State) []SummaryLine {
	lines := make([]SummaryLine, 0, len(Fields()))
	for _, f := range Fields() {
		lines = append(lines, SummaryLine{Field: f, Label: f.Label(), Value: s.Values.Get(f)})
	}
	return lines
}

func containsField(fields []Field, target Field) bool {
	for _, f := range fields {
		if f == target {
			return true
		}
	}
	return false
}
