// Package cli holds the holidash command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aussiebroadwan/holidash/internal/dashboard/app"
	"github.com/aussiebroadwan/holidash/pkg/dashsdk"
	"github.com/spf13/cobra"
)

type options struct {
	envFile  string
	logLevel string
	store    string
	server   string
}

// Execute runs the command line and returns the process exit status.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return 1
	}
	return 0
}

// userMessage is what a person at the terminal sees for err.
func userMessage(err error) string {
	if errors.Is(err, errAuthenticationFailed) {
		return "Authentication failed"
	}
	return err.Error()
}

func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "holidash",
		Short:         "Holiday dashboard and credential check against generated users",
		Version:       app.BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.store, "store", "", "override DASH_STORE_DRIVER (memory, sqlite, bolt, postgres)")

	root.AddCommand(
		newServeCommand(opts),
		newLoginCommand(opts),
		newGreetCommand(opts),
		newCountriesCommand(opts),
		newHolidaysCommand(opts),
	)
	return root
}

// config loads the configuration and applies flag overrides. Commands other
// than serve log to stderr, errors only unless told otherwise.
func (o *options) config(cmd *cobra.Command, quiet bool) (app.Config, error) {
	cfg, err := app.LoadConfig(o.envFile)
	if err != nil {
		return app.Config{}, err
	}

	if o.store != "" {
		cfg.StoreDriver = o.store
	}
	switch {
	case o.logLevel != "":
		cfg.LogLevel = o.logLevel
	case quiet:
		cfg.LogLevel = "error"
	}
	if quiet {
		cfg.LogOutput = cmd.ErrOrStderr()
	}

	if err := cfg.Validate(); err != nil {
		return app.Config{}, err
	}
	return cfg, nil
}

// addServerFlag lets a command talk to a running holidash instead of the
// upstream APIs directly.
func (o *options) addServerFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.server, "server", "", "base URL of a running holidash server, e.g. http://localhost:8080")
}

func (o *options) client() *dashsdk.SDKClient {
	return dashsdk.NewSDKClient(o.server)
}
