package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/bindtags/internal/app"
	"github.com/specialistvlad/bindtags/internal/config"
)

// ExitError is an error that carries a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// main is the entrypoint for the bindtags application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// run builds the command tree and executes it with args.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	rootCmd := &cobra.Command{
		Use:           "bindtags",
		Short:         "Compute and store binary metadata tags for language bindings",
		Long:          "bindtags runs the configured taggers against bindings and can persist their tags.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(outW)
	rootCmd.SetErr(errW)
	rootCmd.SetArgs(args)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: 2, Message: err.Error()}
	})
	config.BindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newTaggersCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newTagsCmd())
	rootCmd.AddCommand(newStoredCmd())
	rootCmd.AddCommand(newMigrateCmd())

	return rootCmd.ExecuteContext(ctx)
}

// newApp loads the configuration for cmd and builds the application.
func newApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	return app.New(cmd.Context(), cmd.ErrOrStderr(), cfg)
}
