// cmd/multistep/main.go
//
// This is the entry point for the multistep CLI.
//
// Flow:
// 1. Resolve the project directory and scaffold .multistep/
// 2. Load config, optionally seed values from --prefill
// 3. Run the TUI until the user submits or quits
// 4. Print the submitted values if --print asks for it

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kingrea/multistep/internal/config"
	"github.com/kingrea/multistep/internal/form"
	"github.com/kingrea/multistep/internal/logbook"
	"github.com/kingrea/multistep/internal/submission"
	"github.com/kingrea/multistep/internal/tui"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// runFlags holds the parsed flags for the root command.
type runFlags struct {
	dir         string
	noAltScreen bool
	print       string
	prefill     string
}

// programRunner lets tests replace the interactive bubbletea loop.
type programRunner func(app *tui.App, opts ...tea.ProgramOption) (tea.Model, error)

func runProgram(app *tui.App, opts ...tea.ProgramOption) (tea.Model, error) {
	return tea.NewProgram(app, opts...).Run()
}

func main() {
	root := newRootCommand(runProgram)
	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			if ee.msg != "" {
				fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			}
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}

func newRootCommand(run programRunner) *cobra.Command {
	var flags runFlags
	root := &cobra.Command{
		Use:           "multistep",
		Short:         "Fill out a three-step form in the terminal",
		Long:          "multistep collects personal, address and payment details across three screens and validates them on submit.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForm(cmd.OutOrStdout(), flags, run)
		},
	}
	f := root.Flags()
	f.StringVar(&flags.dir, "dir", "", "Project directory holding .multistep/ (defaults to cwd)")
	f.BoolVar(&flags.noAltScreen, "no-alt-screen", false, "Render inline instead of using the alternate screen")
	f.StringVar(&flags.print, "print", "text", "Print submitted values on exit: text, yaml or none")
	f.StringVar(&flags.prefill, "prefill", "", "YAML file of field values to start with")

	root.AddCommand(newValidateCommand(), newLogCommand())
	return root
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "validate <values.yaml>",
		Short:         "Check a values file against the form schema without the TUI",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), args[0])
		},
	}
}

func newLogCommand() *cobra.Command {
	var dir string
	var lines int
	cmd := &cobra.Command{
		Use:           "log",
		Short:         "Show the most recent session log entries",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(cmd.OutOrStdout(), dir, lines)
		},
	}
	f := cmd.Flags()
	f.StringVar(&dir, "dir", "", "Project directory holding .multistep/ (defaults to cwd)")
	f.IntVarP(&lines, "lines", "n", 20, "Number of entries to show")
	return cmd
}

func resolveProjectDir(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", codeError(1, "determine working directory: %v", err)
		}
		dir = cwd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", codeError(1, "resolve project dir: %v", err)
	}
	return abs, nil
}

func runForm(out io.Writer, flags runFlags, run programRunner) error {
	printMode := strings.ToLower(strings.TrimSpace(flags.print))
	switch printMode {
	case "text", "yaml", "none":
	default:
		return codeError(2, "invalid --print %q: want text, yaml or none", flags.print)
	}

	projectDir, err := resolveProjectDir(flags.dir)
	if err != nil {
		return err
	}
	if err := config.InitDir(projectDir); err != nil {
		return codeError(1, "init %s: %v", config.StateDir, err)
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return codeError(1, "load config: %v", err)
	}

	var book *logbook.Logbook
	if cfg.LogEnabled() {
		if book, err = logbook.New(cfg.LogPath()); err != nil {
			return codeError(1, "open session log: %v", err)
		}
	}
	appOpts := []tui.AppOption{tui.WithLogbook(book)}
	if flags.prefill != "" {
		values, unknown, err := submission.LoadValues(flags.prefill)
		if err != nil {
			return codeError(1, "prefill: %v", err)
		}
		if len(unknown) > 0 {
			return codeError(2, "prefill: unknown fields: %s", strings.Join(unknown, ", "))
		}
		appOpts = append(appOpts, tui.WithInitialValues(values))
	}

	app := tui.NewApp(cfg, appOpts...)
	var programOpts []tea.ProgramOption
	if cfg.AltScreen() && !flags.noAltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	model, err := run(app, programOpts...)
	if err != nil {
		book.Error("TUI exited: %v", err)
		return codeError(1, "running TUI: %v", err)
	}
	final, ok := model.(*tui.App)
	if !ok {
		return codeError(1, "unexpected model type %T", model)
	}
	result := final.Result()
	if result.Cancelled || !result.State.Submitted {
		return codeError(130, "")
	}
	return printValues(out, printMode, result.State)
}

func printValues(out io.Writer, mode string, state form.State) error {
	switch mode {
	case "yaml":
		return submission.WriteValues(out, state.Values)
	case "text":
		for _, line := range form.Summary(state) {
			fmt.Fprintf(out, "%s: %s\n", line.Label, line.Value)
		}
	}
	return nil
}

func runLog(out io.Writer, dir string, n int) error {
	if n <= 0 {
		return codeError(2, "invalid --lines %d: must be positive", n)
	}
	projectDir, err := resolveProjectDir(dir)
	if err != nil {
		return err
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return codeError(1, "load config: %v", err)
	}
	book, err := logbook.New(cfg.LogPath())
	if err != nil {
		return codeError(1, "open session log: %v", err)
	}
	entries, total := book.Tail(n)
	if total == 0 {
		fmt.Fprintf(out, "No entries in %s\n", book.Path())
		return nil
	}
	for _, line := range entries {
		fmt.Fprintln(out, line)
	}
	if total > len(entries) {
		fmt.Fprintf(out, "(%d of %d entries)\n", len(entries), total)
	}
	return nil
}

func runValidate(out io.Writer, path string) error {
	report, err := submission.ValidateFile(path)
	if err != nil {
		return codeError(1, "validation failed: %v", err)
	}
	if report.IsValid() {
		fmt.Fprintf(out, "OK: %s\n", report.Path)
		return nil
	}
	fmt.Fprintf(out, "Invalid: %s\n", report.Path)
	for _, key := range report.Unknown {
		fmt.Fprintf(out, "- %s: unknown field\n", key)
	}
	for _, validationErr := range report.Errors {
		fmt.Fprintf(out, "- %v\n", validationErr)
	}
	return codeError(1, "")
}
