// Package commands implements the CLI commands for gitres.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/gitres/internal/app"
	"go.trai.ch/gitres/internal/build"
	"go.trai.ch/gitres/internal/core/domain"
)

// CLI represents the command line interface for gitres.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Configure(s app.Settings)
	Resolve(ctx context.Context, identifier string) (string, error)
	Exists(ctx context.Context, identifier string) (bool, error)
	Metadata(ctx context.Context, identifier string) (domain.FileMetadata, error)
	Discover(ctx context.Context, refresh bool) (*domain.Registry, error)
	CacheStats() (domain.CacheStats, error)
	ClearCache(opts app.ClearOptions) (int, error)
	RefreshCache(identifier string) error
	PruneCache() (int, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "gitres",
		Short:         "Resolve and discover resources stored in remote GitHub repositories",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to configuration file (default: discover gitres.yaml)")
	flags.Bool("json-logs", false, "Write logs as JSON")
	flags.Bool("verbose", false, "Enable debug logs")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = c.configure

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newExistsCmd())
	rootCmd.AddCommand(c.newMetaCmd())
	rootCmd.AddCommand(c.newDiscoverCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) configure(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return err
	}
	jsonLogs, err := flags.GetBool("json-logs")
	if err != nil {
		return err
	}
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return err
	}

	c.app.Configure(app.Settings{
		ConfigPath: configPath,
		JSONLogs:   jsonLogs,
		Verbose:    verbose,
	})
	return nil
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
