package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/cursorkeep"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cursorkeep",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cursorkeep version %s\n", strings.TrimSpace(cursorkeep.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
