package cmd

import (
	"fmt"
	"os"

	"specy-indexer/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "specy-indexer",
	Short: "Specy chain indexer",
	Long: `Specy indexer reconciles delivered blocks into governance, block and
transfer entities. Blocks arrive over HTTP or are replayed from files and
object storage.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console at debug level gives readable timestamps for CLI failures.
		l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
