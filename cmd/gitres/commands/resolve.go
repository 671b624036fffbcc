package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/gitres/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <owner/repo[@branch]/path>",
		Short: "Print the content of a remote file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := c.app.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), content)
			return err
		},
	}
}

func (c *CLI) newExistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exists <owner/repo[@branch]/path>",
		Short: "Report whether a remote file exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := c.app.Exists(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(ok))
			return err
		},
	}
}

func (c *CLI) newMetaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "meta <owner/repo[@branch]/path>",
		Short: "Print the metadata of a remote file as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := c.app.Metadata(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), meta)
		},
	}
}

func (c *CLI) newDiscoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover [kind id]",
		Short: "Scan configured repositories and print the resource registry as JSON",
		Long: "Scan configured repositories and print the resource registry as JSON.\n" +
			"Given a kind and an id, print only that resource.",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return zerr.New("discover takes no arguments or a kind and an id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			refresh, _ := cmd.Flags().GetBool("refresh")

			var kind domain.Kind
			if len(args) == 2 {
				if err := kind.UnmarshalText([]byte(args[0])); err != nil || !kind.IsResource() {
					return zerr.With(zerr.New("unknown resource kind"), "kind", args[0])
				}
			}

			registry, err := c.app.Discover(cmd.Context(), refresh)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return writeJSON(cmd.OutOrStdout(), registry)
			}

			desc, ok := registry.Find(kind, args[1])
			if !ok {
				return zerr.With(zerr.Wrap(domain.ErrResourceNotFound, "no such resource"),
					"kind", kind.String(), "id", args[1])
			}
			return writeJSON(cmd.OutOrStdout(), desc)
		},
	}

	cmd.Flags().BoolP("refresh", "r", false, "Discard the previous scan and report scan failures")

	return cmd
}
