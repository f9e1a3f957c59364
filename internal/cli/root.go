// Package cli implements the echo-chat command: a terminal rendition of the
// widget built on the same core as the HTTP service.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"echo-widget/internal/brandconfig"
	"echo-widget/internal/config"
	"echo-widget/internal/repository"
)

var (
	version = "dev"
	commit  = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "echo-chat",
	Short: "Talk to an Echo widget webhook from the terminal",
	Long: `echo-chat resolves a widget configuration the same way the embedded
widget does and relays messages to its webhook, printing the replies.`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		setupLogger(cmd.ErrOrStderr(), verbose)
	},
}

// Execute runs the root command. It is called once by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output to stderr")
	rootCmd.PersistentFlags().StringP("record-id", "r", "", "brand record id to resolve the configuration for")
}

// setupLogger keeps the terminal clean: only warnings unless verbose.
func setupLogger(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// newResolver builds an uncached resolver from the service configuration.
func newResolver(cfg *config.Config) *brandconfig.Resolver {
	fetcher := brandconfig.NewFetcher(&http.Client{Timeout: cfg.FetchTimeout}, cfg.ConfigServiceURL)
	return brandconfig.NewResolver(fetcher, repository.NewNoopCache(), cfg.WidgetDefaults(), 0, nil)
}

func recordID(cmd *cobra.Command, args []string) string {
	if len(args) > 0 {
		return strings.TrimSpace(args[0])
	}
	id, _ := cmd.Flags().GetString("record-id")
	return strings.TrimSpace(id)
}
