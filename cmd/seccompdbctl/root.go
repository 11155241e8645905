// SPDX-Licence-Identifier: MIT

package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seccompdbctl",
	Short: "Build and inspect seccompdb decision trees from rule files",
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}

// Execute runs the root command, exiting the process on error the way
// flwd's own Execute does.
func Execute() {
	rootCmd.AddCommand(newLoadCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newStatsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
