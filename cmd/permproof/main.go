package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/permproof/permproof/cmd/permproof/check"
	"github.com/permproof/permproof/cmd/permproof/common"
	"github.com/permproof/permproof/cmd/permproof/identity"
	"github.com/permproof/permproof/cmd/permproof/version"
)

func main() {
	// Create shared flags struct
	flags := &common.Flags{}

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "permproof",
		Short: "AWS permission validation toolkit",
		Long: `Permproof validates that your effective AWS identity holds the permissions
a deployment needs before you attempt it, by driving the IAM policy
simulator against a declarative permission list.

Service clients are cached per credential configuration, so repeated checks
reuse connections and resolve credentials at most once per identity.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			common.InitViper()
			return common.BindFlags(cmd)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.LogFormat, "log-format", "json", "Log format (json, console)")
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Path to a YAML config file")

	// Add subcommands
	rootCmd.AddCommand(version.NewCommand())
	rootCmd.AddCommand(check.NewCommand(flags))
	rootCmd.AddCommand(identity.NewCommand(flags))

	// Execute
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
