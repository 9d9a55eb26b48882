package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/cursorkeep/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "cursorkeep",
	Short: "cursorkeep remembers where you left off in every file",
	Long: `cursorkeep keeps a persistent table of cursor positions keyed by file path,
so an editor can restore the caret when a document is reopened.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globalOptions collects the persistent flags of cmd.
func globalOptions(cmd *cobra.Command) cli.Options {
	configPath, _ := cmd.Flags().GetString("config")
	sessionFile, _ := cmd.Flags().GetString("file")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.Options{
		ConfigPath:  configPath,
		SessionFile: sessionFile,
		Debug:       debug,
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().String("file", "", "Session file location (overrides config)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}
