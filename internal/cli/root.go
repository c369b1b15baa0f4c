package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

// BuildInfo is set via ldflags in cmd/corekeeper.
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// NewRootCommand builds the corekeeper command tree.
func (c *Cli) NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "corekeeper",
		Short: "Signed authorization log for local-first projects",
		Long: `corekeeper keeps the roles, devices and core ownership of a project
in a signed append-only log that every device replicates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(c.io)

	flags := root.PersistentFlags()
	flags.StringVarP(&c.opts.ConfigPath, "config", "c", "", "config file path")
	flags.StringVar(&c.opts.DataDir, "data-dir", "", "directory with device state (overrides config)")
	flags.StringVar(&c.opts.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&c.opts.PassphraseFile, "passphrase-file", "", "file containing the device passphrase")

	root.AddCommand(
		c.versionCmd(),
		c.initCmd(),
		c.whoamiCmd(),
		c.roleCmd(),
		c.deviceCmd(),
		c.capsCmd(),
		c.coresCmd(),
		c.auditCmd(),
		c.syncCmd(),
		c.encodeBitfieldCmd(),
		c.announceCmd(),
	)
	return root
}

func (c *Cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			c.io.Printf("corekeeper\n")
			c.io.Printf("Version:    %s\n", c.build.Version)
			c.io.Printf("Build Date: %s\n", c.build.BuildDate)
			c.io.Printf("Git Commit: %s\n", c.build.GitCommit)
		},
	}
}

// Execute runs the command line with args and releases storage even when
// the command fails.
func (c *Cli) Execute(ctx context.Context, args []string) error {
	root := c.NewRootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if closeErr := c.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	return err
}
