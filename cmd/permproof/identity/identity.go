package identity

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/permproof/permproof/cmd/permproof/common"
	"github.com/permproof/permproof/internal/awsclient"
	idnorm "github.com/permproof/permproof/internal/identity"
	"github.com/permproof/permproof/internal/permissions"
	"github.com/permproof/permproof/pkg/errors"
	"github.com/permproof/permproof/pkg/logger"
)

func NewCommand(flags *common.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Print the caller's normalized principal ARN",
		Long: `Fetch the caller's identity and print the principal ARN that policy
simulation would target. Assumed-role sessions are mapped back to their
role.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags)
		},
	}

	cmd.Flags().StringVar(&flags.Region, "region", "", "AWS region for the identity call")

	return cmd
}

func run(flags *common.Flags) error {
	ctx, cancel := common.SetupSignalHandler()
	defer cancel()

	log, err := common.CreateLogger(flags)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	cfg, err := common.BuildConfig(flags)
	if err != nil {
		log.Error("Failed to load configuration", logger.Error(err))
		return err
	}

	clients := awsclient.New(log)
	source := permissions.NewSTSIdentity(clients, common.CustomEndpoint(cfg))

	rawARN, err := source.CallerARN(ctx, cfg.Simulation.Region)
	if err != nil {
		log.Error("Failed to fetch caller identity", logger.Error(err))
		return err
	}
	if rawARN == nil || *rawARN == "" {
		return errors.New(errors.ErrNoIdentity, "caller identity has no ARN")
	}

	principal, err := idnorm.NormalizePrincipal(*rawARN)
	if err != nil {
		log.Error("Failed to normalize identity", logger.Error(err))
		return err
	}

	fmt.Println(principal)
	return nil
}
