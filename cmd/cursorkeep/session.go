package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aretw0/cursorkeep/internal/cli"
	"github.com/aretw0/cursorkeep/internal/config"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect and edit the remembered cursor positions",
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List remembered positions",
	RunE: func(cmd *cobra.Command, args []string) error {
		pretty, _ := cmd.Flags().GetBool("pretty")

		keeper, _, _, err := cli.Setup(globalOptions(cmd), nil)
		if err != nil {
			return err
		}
		defer keeper.Close()

		out := cmd.OutOrStdout()
		return cli.ListEntries(cmd.Context(), out, keeper, cli.ListOptions{
			Pretty: pretty,
			Color:  cli.IsTerminal(out),
		})
	},
}

var sessionGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print the remembered position of a file as 'x y'",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keeper, _, _, err := cli.Setup(globalOptions(cmd), nil)
		if err != nil {
			return err
		}
		defer keeper.Close()
		return cli.GetEntry(cmd.Context(), cmd.OutOrStdout(), keeper, args[0])
	},
}

var sessionPutCmd = &cobra.Command{
	Use:   "put <path> <x> <y>",
	Short: "Record a position for a file",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid x %q: %w", args[1], err)
		}
		y, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid y %q: %w", args[2], err)
		}

		keeper, _, _, err := cli.Setup(globalOptions(cmd), nil)
		if err != nil {
			return err
		}
		defer keeper.Close()
		return cli.PutEntry(cmd.Context(), cmd.OutOrStdout(), keeper, args[0], x, y)
	},
}

var sessionPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop entries not touched within the retention horizon",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		keeper, _, _, err := cli.Setup(globalOptions(cmd), nil)
		if err != nil {
			return err
		}
		defer keeper.Close()
		return cli.PruneEntries(cmd.Context(), cmd.OutOrStdout(), keeper, days)
	},
}

var sessionWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reprint the table whenever the session file changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		keeper, cfg, logger, err := cli.Setup(globalOptions(cmd), nil)
		if err != nil {
			return err
		}
		defer keeper.Close()
		if cfg.Backend != config.BackendFile {
			return fmt.Errorf("watch needs the %q backend, got %q", config.BackendFile, cfg.Backend)
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		out := cmd.OutOrStdout()
		opts := cli.ListOptions{Color: cli.IsTerminal(out)}
		render := func() {
			fmt.Fprintln(out, "---")
			if err := cli.ListEntries(sigCtx, out, keeper, opts); err != nil {
				logger.Warn("Failed to list entries", "err", err)
			}
		}

		render()
		return cli.WatchFile(sigCtx, cfg.SessionFile, logger, render)
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionGetCmd)
	sessionCmd.AddCommand(sessionPutCmd)
	sessionCmd.AddCommand(sessionPruneCmd)
	sessionCmd.AddCommand(sessionWatchCmd)

	sessionLsCmd.Flags().Bool("pretty", false, "Render the table as Markdown")
	sessionPruneCmd.Flags().Int("days", -1, "Retention horizon in days (default: configured retention)")
}
