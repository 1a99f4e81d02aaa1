// internal/tui/app.go
//
// This is the terminal front end for the form. It uses bubbletea, which
// follows The Elm Architecture:
//
// 1. Model: the App, which wraps a form.State plus widget state
// 2. Update: key presses become form.State transitions
// 3. View: form.Layout / form.Summary rendered with lipgloss
//
// form.State is the single source of truth for values, errors and step.
// The text inputs only own cursor position and focus.

package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/multistep/internal/config"
	"github.com/kingrea/multistep/internal/form"
	"github.com/kingrea/multistep/internal/logbook"
)

// appState represents which "screen" we're on
type appState int

const (
	stateEditing appState = iota // One of the three input steps
	stateSummary                 // Terminal screen after a successful submit
)

// button is one of the navigation controls under the inputs.
type button int

const (
	buttonPrev button = iota
	buttonNext
	buttonSubmit
)

func (b button) label() string {
	switch b {
	case buttonPrev:
		return "Previous"
	case buttonNext:
		return "Next"
	case buttonSubmit:
		return "Submit"
	default:
		return ""
	}
}

// focusItem is one stop on the tab ring: either an input or a button.
type focusItem struct {
	field    form.Field
	button   button
	isButton bool
}

// Result is what the session ended with.
type Result struct {
	State     form.State
	Cancelled bool
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithLogbook overrides the session logbook. Pass nil to disable logging.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		a.logbook = lb
		a.logbookSet = true
	}
}

// WithInitialValues seeds the form without validating.
func WithInitialValues(values form.Values) AppOption {
	return func(a *App) {
		a.form = form.WithValues(values)
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state     appState
	config    *config.Config
	form      form.State
	validator *form.Validator
	logbook   *logbook.Logbook
	styles    styles

	logbookSet bool

	inputs    map[form.Field]textinput.Model
	focus     int
	cancelled bool

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// NewApp creates a new App instance. A nil config uses defaults. The session
// log is opened from the config unless WithLogbook overrides it.
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	app := &App{
		state:     stateEditing,
		config:    cfg,
		form:      form.New(),
		validator: form.DefaultValidator(),
		styles:    newStyles(cfg),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if !app.logbookSet && cfg.LogEnabled() && cfg.StateProjectDir != "" {
		if lb, err := logbook.New(cfg.LogPath()); err == nil {
			app.logbook = lb
		}
	}
	app.inputs = make(map[form.Field]textinput.Model, len(form.Fields()))
	for _, f := range form.Fields() {
		app.inputs[f] = newInput(f, app.form.Values.Get(f))
	}
	app.logInfo("Session opened · step %d", app.form.Step)
	app.applyFocus()
	return app
}

func newInput(f form.Field, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = f.Placeholder()
	ti.Prompt = ""
	ti.Width = 40
	ti.SetValue(value)
	return ti
}

// Form returns the current form state.
func (a *App) Form() form.State {
	return a.form
}

// Result reports the final form state and whether the user bailed out.
func (a *App) Result() Result {
	return Result{State: a.form, Cancelled: a.cancelled}
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		a.normalizeFocus()
		key := msg.String()
		if key == "ctrl+c" {
			if a.state == stateEditing {
				a.cancelled = true
				a.logInfo("Session cancelled on step %d", a.form.Step)
			}
			return a, tea.Quit
		}
		if a.state == stateSummary {
			switch key {
			case "q", "esc", "enter":
				return a, tea.Quit
			}
			return a, nil
		}
		switch key {
		case "esc":
			a.cancelled = true
			a.logInfo("Session cancelled on step %d", a.form.Step)
			return a, tea.Quit
		case "tab", "down":
			return a, a.moveFocus(1)
		case "shift+tab", "up":
			return a, a.moveFocus(-1)
		case "ctrl+n":
			if form.Layout(a.form).ShowNext {
				return a, a.activate(buttonNext)
			}
			return a, nil
		case "ctrl+p":
			if form.Layout(a.form).ShowPrev {
				return a, a.activate(buttonPrev)
			}
			return a, nil
		case "ctrl+s":
			if form.Layout(a.form).ShowSubmit {
				return a, a.activate(buttonSubmit)
			}
			return a, nil
		case "enter":
			item, ok := a.focused()
			if !ok {
				return a, nil
			}
			if item.isButton {
				return a, a.activate(item.button)
			}
			return a, a.moveFocus(1)
		}
	}

	if a.state != stateEditing {
		return a, nil
	}
	return a, a.updateFocusedInput(msg)
}

// updateFocusedInput forwards msg to the focused text input and mirrors any
// change into form.State.
func (a *App) updateFocusedInput(msg tea.Msg) tea.Cmd {
	item, ok := a.focused()
	if !ok || item.isButton {
		return nil
	}
	ti := a.inputs[item.field]
	before := ti.Value()
	ti, cmd := ti.Update(msg)
	a.inputs[item.field] = ti
	if after := ti.Value(); after != before {
		a.form = a.form.SetField(item.field, after)
	}
	return cmd
}

// activate runs a button's action.
func (a *App) activate(b button) tea.Cmd {
	from := a.form.Step
	switch b {
	case buttonPrev:
		a.form = a.form.GoPrev()
	case buttonNext:
		a.form = a.form.GoNext()
	case buttonSubmit:
		return a.submit()
	}
	if a.logbook != nil {
		a.logbook.StepChanged(int(from), int(a.form.Step))
	}
	a.focus = 0
	return a.applyFocus()
}

func (a *App) submit() tea.Cmd {
	a.form = a.form.Submit(a.validator)
	if !a.form.Submitted {
		if a.logbook != nil {
			a.logbook.SubmitRejected(a.form.Errors.Keys())
		}
		return nil
	}
	if a.logbook != nil {
		a.logbook.Submitted()
	}
	a.state = stateSummary
	for f, ti := range a.inputs {
		ti.Blur()
		a.inputs[f] = ti
	}
	return nil
}

// focusRing lists the focus stops for the current step: inputs first, then
// whichever buttons are visible.
func (a *App) focusRing() []focusItem {
	layout := form.Layout(a.form)
	ring := make([]focusItem, 0, len(layout.Inputs)+2)
	for _, input := range layout.Inputs {
		ring = append(ring, focusItem{field: input.Field})
	}
	if layout.ShowPrev {
		ring = append(ring, focusItem{button: buttonPrev, isButton: true})
	}
	if layout.ShowNext {
		ring = append(ring, focusItem{button: buttonNext, isButton: true})
	}
	if layout.ShowSubmit {
		ring = append(ring, focusItem{button: buttonSubmit, isButton: true})
	}
	return ring
}

// focused returns the focus stop under the cursor. It never changes the
// cursor; View relies on that.
func (a *App) focused() (focusItem, bool) {
	ring := a.focusRing()
	if a.focus < 0 || a.focus >= len(ring) {
		return focusItem{}, false
	}
	return ring[a.focus], true
}

// normalizeFocus pulls an out-of-range cursor back to the first stop.
func (a *App) normalizeFocus() {
	if n := len(a.focusRing()); a.focus < 0 || a.focus >= n {
		a.focus = 0
	}
}

func (a *App) moveFocus(delta int) tea.Cmd {
	ring := a.focusRing()
	if len(ring) == 0 {
		return nil
	}
	a.normalizeFocus()
	a.focus = (a.focus + delta + len(ring)) % len(ring)
	return a.applyFocus()
}

// applyFocus focuses the input under the cursor and blurs the rest.
func (a *App) applyFocus() tea.Cmd {
	item, ok := a.focused()
	var cmd tea.Cmd
	for f, ti := range a.inputs {
		if ok && !item.isButton && f == item.field {
			cmd = ti.Focus()
		} else {
			ti.Blur()
		}
		a.inputs[f] = ti
	}
	return cmd
}
