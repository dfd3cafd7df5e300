package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wirelab/internal/config"
	"wirelab/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

// cfg is resolved once in the root PersistentPreRunE; subcommands read it.
var cfg *config.Settings

var rootCmd = &cobra.Command{
	Use:   "wirelab",
	Short: "DC/AC circuit resolver and worksheet grader",
	Long: "Wirelab resolves the four DC quantities (watts, current, resistance,\n" +
		"voltage) from any sufficient subset, evaluates series RLC circuits\n" +
		"across frequency, and grades practice worksheets.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logging.Init(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(acCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(worksheetsCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
