package form

// Package form holds the state machine behind the three-step form.
//
// Lifecycle:
//   - New() starts on StepPersonal with every Field set to "".
//   - SetField, GoNext and GoPrev never validate. Navigation is clamped to
//     [FirstStep, LastStep].
//   - Submit runs a Validator over all values at once. Failures replace
//     State.Errors; success flips State.Submitted, after which every mutator
//     returns the state unchanged.
//
// Rendering:
//   - Layout is a pure function of State and decides which inputs, inline
//     errors and buttons a step shows. An error on a field from another step
//     is kept in State.Errors but is only visible once that step is shown.
//   - Summary lists every value verbatim for the submitted screen.
