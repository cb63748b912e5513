package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/akolanti/GoPDFChat/internal/bootstrap"
	"github.com/akolanti/GoPDFChat/internal/config"
	"github.com/akolanti/GoPDFChat/pkg/logger_i"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// newContainer is swapped in tests to avoid a real provider.
var newContainer = bootstrap.NewContainer

type rootOptions struct {
	cfgFile   string
	logLevel  string
	container *bootstrap.Container
}

// NewRootCmd builds the pdfchat command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "pdfchat",
		Short:         "Extract the text of a PDF and ask questions about it",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(opts.cfgFile)
			if err != nil {
				return err
			}
			level := opts.logLevel
			if !cmd.Flags().Changed("log-level") && os.Getenv("LOG_LEVEL") != "" {
				level = settings.LogLevel
			}
			// stdout carries the command output, logs go to stderr
			logger_i.InitStderr(level)
			opts.container = newContainer(settings)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "yaml config file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newExtractCmd(opts),
		newAskCmd(opts),
		newChatCmd(opts),
		newMCPCmd(opts),
	)
	return rootCmd
}

// ExecuteContext runs the cli and returns the process exit code.
func ExecuteContext(ctx context.Context) int {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}
