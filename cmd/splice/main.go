// splice is a command line host for the splice composition engine.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/itsatony/go-splice"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
)

func main() {
	exitCode := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// run is the main entry point for the CLI, separated for testing
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCommand(stdin, stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return ExitCodeSuccess
	}

	var cliErr *exitError
	if errors.As(err, &cliErr) {
		if cliErr.cause != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, cliErr.msg, cliErr.cause)
		} else {
			fmt.Fprintf(stderr, FmtError, cliErr.msg)
		}
		return cliErr.code
	}

	// Flag and argument errors reported by cobra
	fmt.Fprintf(stderr, FmtError, err)
	return ExitCodeUsageError
}

// globalFlags holds flags shared by every command
type globalFlags struct {
	locale  string
	policy  string
	verbose bool
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           CLIName,
		Short:         CLIDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.locale, FlagLocale, FlagDefaultLocale, FlagUsageLocale)
	pf.StringVar(&flags.policy, FlagPolicy, FlagDefaultPolicy, FlagUsagePolicy)
	pf.BoolVarP(&flags.verbose, FlagVerbose, FlagVerboseShort, false, FlagUsageVerbose)

	root.AddCommand(
		newDemoCommand(flags),
		newRenderCommand(flags),
		newHandlersCommand(flags),
		newRecipesCommand(),
		newVersionCommand(),
	)
	return root
}

// exitError carries the exit code a failed command maps to
type exitError struct {
	code  int
	msg   string
	cause error
}

func (e *exitError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf(FmtMessageCause, e.msg, e.cause)
	}
	return e.msg
}

func (e *exitError) Unwrap() error {
	return e.cause
}

func usageError(msg string, cause error) error {
	return &exitError{code: ExitCodeUsageError, msg: msg, cause: cause}
}

func inputError(msg string, cause error) error {
	return &exitError{code: ExitCodeInputError, msg: msg, cause: cause}
}

func renderError(msg string, cause error) error {
	return &exitError{code: ExitCodeRenderError, msg: msg, cause: cause}
}

func internalError(msg string, cause error) error {
	return &exitError{code: ExitCodeError, msg: msg, cause: cause}
}

// newEngine builds an engine from the global flags. Debug logs go to the
// command's stderr when --verbose is set.
func newEngine(cmd *cobra.Command, flags *globalFlags) (*splice.Engine, error) {
	tag, err := language.Parse(flags.locale)
	if err != nil {
		return nil, usageError(ErrMsgInvalidLocale, err)
	}

	var policy splice.ErrorPolicy
	switch flags.policy {
	case splice.ErrorPolicyNameStrict:
		policy = splice.ErrorPolicyStrict
	case splice.ErrorPolicyNameCollect:
		policy = splice.ErrorPolicyCollect
	default:
		return nil, usageError(ErrMsgInvalidPolicy, errors.New(flags.policy))
	}

	opts := []splice.Option{
		splice.WithLocale(tag),
		splice.WithErrorPolicy(policy),
	}
	if flags.verbose {
		opts = append(opts, splice.WithLogger(newLogger(cmd.ErrOrStderr())))
	}

	engine, err := splice.New(opts...)
	if err != nil {
		return nil, internalError(ErrMsgEngineFailed, err)
	}
	return engine, nil
}

func newLogger(w io.Writer) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}
