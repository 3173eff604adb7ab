package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Run executes medictl with args, writing results to out and diagnostics
// to errOut.
func Run(args []string, out, errOut io.Writer) error {
	rootCmd, cleanup := newRootCmd(out, errOut)
	defer cleanup()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// Execute runs medictl against the process's arguments and stdio
func Execute() error {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

func newRootCmd(out, errOut io.Writer) (*cobra.Command, func()) {
	flags := &globalFlags{}
	var a *app

	rootCmd := &cobra.Command{
		Use:           "medictl",
		Short:         "Command-line client for the hospital inventory backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = newApp(flags, out, errOut)
			return err
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.profile, "profile", defaultProfile(), "Session profile the tokens are stored under")
	pf.StringVar(&flags.apiURL, "api-url", "", "Backend base URL (overrides API_BASE_URL)")
	pf.StringVar(&flags.dbPath, "session-db", "", "SQLite file holding the session (overrides SESSION_SQLITE_PATH)")
	pf.StringVar(&flags.logLevel, "log-level", "warn", "Log level for diagnostics on stderr")

	appFn := func() *app { return a }
	rootCmd.AddCommand(
		loginCmd(appFn),
		registerCmd(appFn),
		logoutCmd(appFn),
		whoamiCmd(appFn),
		activityCmd(appFn),
		hospitalsCmd(appFn),
		inventoryCmd(appFn),
		medicinesCmd(appFn),
		alertsCmd(appFn),
		predictCmd(appFn),
	)
	cleanup := func() {
		if a != nil {
			a.close()
		}
	}
	return rootCmd, cleanup
}
