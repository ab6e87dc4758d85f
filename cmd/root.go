package cmd

import (
	"fmt"
	"os"

	"appcheck-stub/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "appcheck-stub",
	Short: "App Check Token Stub Server",
	Long: `appcheck-stub is a stand-in for a real attestation backend during
client development. It validates token requests and returns short-lived
opaque tokens, with operator overrides for deterministic fault injection.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting.
		// Console format with debug level matches user expectations for a
		// CLI tool (readable timestamps instead of epoch).
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
