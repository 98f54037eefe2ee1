package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"user-directory/internal"
)

var (
	flagEnvFile string
	flagHTTP    bool
	flagShell   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "userdirectory",
	Short:         "In-memory user directory with an HTTP API and an interactive shell",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, internal.Options{HTTP: flagHTTP, Shell: flagShell})
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API only",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, internal.Options{HTTP: true})
	},
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run the interactive shell only",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, internal.Options{Shell: true})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "dotenv file to load; a missing file is ignored")
	rootCmd.Flags().BoolVar(&flagHTTP, "http", true, "serve the HTTP API")
	rootCmd.Flags().BoolVar(&flagShell, "shell", true, "run the interactive shell on stdin")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(shellCmd)
}

func run(cmd *cobra.Command, opts internal.Options) error {
	if !opts.HTTP && !opts.Shell {
		return fmt.Errorf("nothing to run: enable --http or --shell")
	}
	opts.EnvFile = flagEnvFile
	opts.In = cmd.InOrStdin()
	opts.Out = cmd.OutOrStdout()

	ctx := cmd.Context()
	app, err := internal.NewApp(ctx, opts)
	if err != nil {
		return fmt.Errorf("init app failed: %w", err)
	}
	defer app.Close()

	app.InitControllers()

	if err = app.Run(ctx); err != nil {
		app.Logger().Sugar().Errorf("userdirectory stopped with error: %v", err)
		return err
	}

	return nil
}
