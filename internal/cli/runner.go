package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/oyin-bo/lexigen/pkg/errors"
)

// Version is reported by --version
var Version = "0.1.0"

// Runner handles CLI execution
type Runner struct {
	registry *Registry
	rootCmd  *cobra.Command
	stdout   io.Writer
	stderr   io.Writer
}

// NewRunner creates a new CLI runner
func NewRunner(registry *Registry) *Runner {
	runner := &Runner{
		registry: registry,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}

	// Create root command
	runner.rootCmd = &cobra.Command{
		Use:   "lexigen",
		Short: "lexigen - encode a payload as words inside generated source code",
		Long: `lexigen turns a binary payload into a sequence of words drawn from a
256-word table and writes a program, in one of several languages, that
turns the words back into the original bytes.

The table comes from a directory listing, a word list file or random
generation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	runner.rootCmd.Version = Version
	runner.rootCmd.SetVersionTemplate("lexigen version {{.Version}}\n")

	return runner
}

// SetOutput redirects command output and error reports
func (r *Runner) SetOutput(stdout, stderr io.Writer) {
	r.stdout = stdout
	r.stderr = stderr
	r.rootCmd.SetOut(stdout)
	r.rootCmd.SetErr(stderr)
}

// RegisterToolCommand adds a registry command to the CLI
func (r *Runner) RegisterToolCommand(def *ToolDefinition) {
	execute := func(ctx context.Context, args interface{}) error {
		output, err := def.Execute(ctx, args)
		if err != nil {
			return err
		}

		if output != "" {
			fmt.Fprintln(r.stdout, output)
		}
		return nil
	}

	cmd := CreateCobraCommand(def, execute)
	r.rootCmd.AddCommand(cmd)
}

// RegisterAll adds every command in the registry
func (r *Runner) RegisterAll() {
	for _, def := range r.registry.Tools() {
		r.RegisterToolCommand(def)
	}
}

// Run executes the CLI and returns the process exit code
func (r *Runner) Run(ctx context.Context, args []string) int {
	r.rootCmd.SetArgs(args)
	r.rootCmd.SetContext(ctx)
	if err := r.rootCmd.Execute(); err != nil {
		return r.handleError(err)
	}
	return 0
}

// handleError reports err and converts it to an exit code
func (r *Runner) handleError(err error) int {
	var msg string
	var e *errors.Error
	if stderrors.As(err, &e) {
		msg = e.Message
		if cause := e.Unwrap(); cause != nil {
			msg = fmt.Sprintf("%s: %v", msg, cause)
		}
	} else {
		msg = err.Error()
	}
	fmt.Fprintf(r.stderr, "Error: %s\n", msg)
	return ExitCode(err)
}

// ExitCode maps an error to the process exit code. Errors that did not
// come from lexigen itself (flag parsing, unknown commands) are usage
// errors and exit with 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e *errors.Error
	if !stderrors.As(err, &e) {
		return 1
	}
	switch e.Code {
	case errors.ConfigError, errors.InvalidInput:
		return 1
	case errors.IOError:
		return 2
	case errors.CardinalityError:
		return 3
	case errors.UnsupportedDialect:
		return 4
	default:
		return 5
	}
}
