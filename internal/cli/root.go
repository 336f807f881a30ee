// Package cli provides the command-line interface for the helpdesk client.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/soares-ari/HelpDesk-AI/internal/api"
	"github.com/soares-ari/HelpDesk-AI/internal/config"
	"github.com/soares-ari/HelpDesk-AI/internal/session"
	"github.com/soares-ari/HelpDesk-AI/internal/tui"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config, session, and API client
	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error
	sess       *session.Manager
	client     *api.Client
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "helpdesk",
	Short: "Chat with your PDF documents",
	Long: `Helpdesk is the terminal client for the Helpdesk AI service: upload PDF
documents and ask questions about them. Answers are grounded in your
documents and cite the passages they came from.

Run without a subcommand to open the full-screen UI. Subcommands cover
the same operations for scripting.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()

		if verbose {
			logger, logCleanup = config.SetupLogger(cfg.LogFile, slog.LevelDebug)
		} else {
			logger, logCleanup = config.SetupFileLogger(cfg.LogFile, cfg.LogLevel)
		}

		store, err := session.NewFileStore(cfg.StateDir)
		if err != nil {
			return fmt.Errorf("open session store: %w", err)
		}
		sess = session.New(store)

		client = api.New(cfg.APIURL,
			api.WithTokenSource(sess),
			api.WithUnauthorizedHandler(sess.Logout),
			api.WithLogger(logger),
		)

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			if err := logCleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(client, sess)
	},
}

// requireSession fails fast for commands that need a signed-in user. The
// check is token presence only; the server rejects stale tokens per call.
func requireSession() error {
	if !sess.Active() {
		return fmt.Errorf("not signed in, run 'helpdesk login' first")
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(conversationsCmd)
}
