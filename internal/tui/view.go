package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/multistep/internal/config"
	"github.com/kingrea/multistep/internal/form"
)

type styles struct {
	title       lipgloss.Style
	heading     lipgloss.Style
	label       lipgloss.Style
	input       lipgloss.Style
	inputFocus  lipgloss.Style
	errorText   lipgloss.Style
	button      lipgloss.Style
	buttonFocus lipgloss.Style
	summaryKey  lipgloss.Style
	help        lipgloss.Style
	container   lipgloss.Style
}

func newStyles(cfg *config.Config) styles {
	accent := cfg.AccentColor()
	muted := lipgloss.Color("241")
	return styles{
		title:       lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		heading:     lipgloss.NewStyle().Bold(true).MarginBottom(1),
		label:       lipgloss.NewStyle().Foreground(muted),
		input:       lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(muted).Padding(0, 1),
		inputFocus:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(accent).Padding(0, 1),
		errorText:   lipgloss.NewStyle().Foreground(cfg.ErrorColor()).PaddingLeft(1),
		button:      lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(muted),
		buttonFocus: lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(accent).Bold(true),
		summaryKey:  lipgloss.NewStyle().Bold(true),
		help:        lipgloss.NewStyle().Foreground(muted).MarginTop(1),
		container:   lipgloss.NewStyle().Padding(1, 2),
	}
}

// View renders the current screen.
func (a *App) View() string {
	var body string
	switch a.state {
	case stateSummary:
		body = a.renderSummary()
	default:
		body = a.renderStep()
	}
	return a.styles.container.Render(body)
}

func (a *App) renderStep() string {
	layout := form.Layout(a.form)
	item, hasFocus := a.focused()

	var b strings.Builder
	b.WriteString(a.styles.title.Render(a.config.Title()))
	b.WriteString("\n")
	b.WriteString(a.styles.heading.Render(fmt.Sprintf("Step %d of %d · %s", layout.Step, form.LastStep, layout.Title)))
	b.WriteString("\n")

	for _, input := range layout.Inputs {
		ti := a.inputs[input.Field]
		box := a.styles.input
		if hasFocus && !item.isButton && item.field == input.Field {
			box = a.styles.inputFocus
		}
		b.WriteString(a.styles.label.Render(input.Field.Label()))
		b.WriteString("\n")
		b.WriteString(box.Render(ti.View()))
		b.WriteString("\n")
		if input.Error != "" {
			b.WriteString(a.styles.errorText.Render(input.Error))
			b.WriteString("\n")
		}
	}

	var buttons []string
	for _, stop := range a.focusRing() {
		if !stop.isButton {
			continue
		}
		style := a.styles.button
		if hasFocus && item.isButton && item.button == stop.button {
			style = a.styles.buttonFocus
		}
		buttons = append(buttons, style.Render(stop.button.label()))
	}
	if len(buttons) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
		b.WriteString("\n")
	}

	b.WriteString(a.styles.help.Render(a.helpLine(layout)))
	return b.String()
}

func (a *App) helpLine(layout form.StepLayout) string {
	parts := []string{"tab/shift+tab move", "enter select"}
	if layout.ShowPrev {
		parts = append(parts, "ctrl+p previous")
	}
	if layout.ShowNext {
		parts = append(parts, "ctrl+n next")
	}
	if layout.ShowSubmit {
		parts = append(parts, "ctrl+s submit")
	}
	parts = append(parts, "esc quit")
	return strings.Join(parts, " · ")
}

func (a *App) renderSummary() string {
	var b strings.Builder
	b.WriteString(a.styles.title.Render(a.config.Title()))
	b.WriteString("\n")
	b.WriteString(a.styles.heading.Render("Submitted Details"))
	b.WriteString("\n")
	for _, line := range form.Summary(a.form) {
		b.WriteString(a.styles.summaryKey.Render(line.Label + ":"))
		b.WriteString(" ")
		b.WriteString(line.Value)
		b.WriteString("\n")
	}
	b.WriteString(a.styles.help.Render("q/enter exit"))
	return b.String()
}
