package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/gitres/internal/app"
	"go.trai.ch/zerr"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the content cache",
	}

	cmd.AddCommand(c.newCacheStatsCmd())
	cmd.AddCommand(c.newCacheClearCmd())
	cmd.AddCommand(c.newCacheRefreshCmd())
	cmd.AddCommand(c.newCachePruneCmd())

	return cmd
}

func (c *CLI) newCacheStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show content cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			stats, err := c.app.CacheStats()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON || !isTerminal(out) {
				return writeJSON(out, stats)
			}
			return renderStats(out, newRenderer(out), stats)
		},
	}

	cmd.Flags().Bool("json", false, "Print JSON even when writing to a terminal")

	return cmd
}

func (c *CLI) newCacheClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear [owner/repo]",
		Short: "Remove all cached entries, or those of one repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			branch, _ := cmd.Flags().GetString("branch")

			opts := app.ClearOptions{Branch: branch}
			if len(args) == 1 {
				opts.RepoKey = args[0]
			} else if branch != "" {
				return zerr.New("--branch requires a repository argument")
			}

			n, err := c.app.ClearCache(opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries\n", n)
			return err
		},
	}

	cmd.Flags().StringP("branch", "b", "", "Only clear entries of this branch")

	return cmd
}

func (c *CLI) newCacheRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh <owner/repo[@branch]/path>",
		Short: "Drop the cached entry of a file so the next resolve refetches it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.RefreshCache(args[0])
		},
	}
}

func (c *CLI) newCachePruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired and unreadable cache entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := c.app.PruneCache()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "pruned %d entries\n", n)
			return err
		},
	}
}
