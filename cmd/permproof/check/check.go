package check

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/permproof/permproof/cmd/permproof/common"
	"github.com/permproof/permproof/cmd/permproof/version"
	"github.com/permproof/permproof/internal/awsclient"
	"github.com/permproof/permproof/internal/credentials"
	"github.com/permproof/permproof/internal/permissions"
	"github.com/permproof/permproof/pkg/diag"
	"github.com/permproof/permproof/pkg/logger"
	"github.com/permproof/permproof/pkg/metrics"
	"github.com/permproof/permproof/pkg/tracing"
)

func NewCommand(flags *common.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate that the caller holds the required permissions",
		Long: `Validate that your effective AWS identity holds every permission in the
required-permission table, using the IAM policy simulator.

Prints one line per evaluated action as results stream in. Exits non-zero
when any permission is missing.

Examples:
  # Check the built-in table in us-east-1
  permproof check --region=us-east-1

  # Check a custom table and expose /metrics while running
  permproof check --region=eu-west-1 --permissions-file=perms.yaml --diag-addr=:8080
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags)
		},
	}

	cmd.Flags().StringVar(&flags.Region, "region", "", "AWS region to simulate against")
	cmd.Flags().StringVar(&flags.PermissionsFile, "permissions-file", "", "YAML file with the required-permission table")
	cmd.Flags().StringVar(&flags.DiagAddr, "diag-addr", "", "Serve /healthz and /metrics on this address while the check runs")

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

	tracer, err := tracing.NewProvider(ctx, tracing.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    "permproof",
		ServiceVersion: version.Version,
		Endpoint:       cfg.Tracing.Endpoint,
		Insecure:       true,
		SamplingRatio:  cfg.Tracing.SamplingRatio,
	})
	if err != nil {
		log.Error("Failed to initialize tracing", logger.Error(err))
		return err
	}
	defer tracer.Shutdown(ctx)

	m := metrics.NewMetrics(metrics.DefaultConfig())
	custom := common.CustomEndpoint(cfg)
	clients := awsclient.New(log, awsclient.WithMetrics(m))

	if cfg.Diag.Enabled {
		server := diag.NewServer(diag.Config{
			Address: cfg.Diag.Address,
			Logger:  log,
		})
		credChecker := credentials.NewChecker(log)
		server.RegisterCheck("credentials", diag.CredentialsResolvable(credChecker.Check))
		if err := server.Start(); err != nil {
			return err
		}
		defer server.Stop(ctx)
	}

	table := permissions.Default()
	if cfg.Simulation.PermissionsFile != "" {
		table, err = permissions.LoadTable(cfg.Simulation.PermissionsFile)
		if err != nil {
			log.Error("Failed to load permission table", logger.Error(err))
			return err
		}
	}

	checker := permissions.NewChecker(clients, custom, log,
		permissions.WithMetrics(m),
		permissions.WithTracer(tracer.Tracer()),
		permissions.WithRetries(*cfg.Simulation.Retries),
	)

	missing := 0
	results, err := checker.Check(ctx, cfg.Simulation.Region, table, func(r permissions.Result) {
		if r.Decision.Allowed() {
			fmt.Printf("✅ %s\n", r.Name)
		} else {
			fmt.Printf("❌ %s (%s)\n", r.Name, r.Decision)
			missing++
		}
	})
	if err != nil {
		log.Error("Permission check failed", logger.Error(err))
		return err
	}

	if missing > 0 {
		return fmt.Errorf("%d of %d required permissions are missing", missing, len(results))
	}

	fmt.Printf("All %d required permissions are allowed\n", len(results))
	return nil
}
