package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var (
	verbosity  int
	jsonOutput bool
	maxErrors  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "miren",
		Short: "The Miren language front end",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"emit diagnostics as JSON")
	rootCmd.PersistentFlags().IntVar(&maxErrors, "max-errors", 0,
		"report at most this many diagnostics per file (0 = unlimited)")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
