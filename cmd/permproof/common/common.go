package common

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/permproof/permproof/internal/config"
	"github.com/permproof/permproof/internal/credentials"
	"github.com/permproof/permproof/pkg/logger"
)

// envPrefix is the prefix for environment variable overrides (e.g.
// PERMPROOF_LOG_LEVEL maps to --log-level)
const envPrefix = "PERMPROOF"

// Flags holds values shared across subcommands
type Flags struct {
	LogLevel   string
	LogFormat  string
	ConfigFile string

	Region          string
	PermissionsFile string
	DiagAddr        string
}

// InitViper configures viper to read PERMPROOF_* environment variables
func InitViper() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// BindFlags fills flags left at their defaults from matching environment
// variables. Explicit command-line values always win.
func BindFlags(cmd *cobra.Command) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil {
			return
		}
		if !f.Changed && viper.IsSet(f.Name) {
			bindErr = cmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
	return bindErr
}

// CreateLogger builds the logger from the global flags
func CreateLogger(flags *Flags) (logger.Logger, error) {
	var level logger.Level
	switch flags.LogLevel {
	case "debug":
		level = logger.DebugLevel
	case "info":
		level = logger.InfoLevel
	case "warn":
		level = logger.WarnLevel
	case "error":
		level = logger.ErrorLevel
	default:
		level = logger.InfoLevel
	}

	var format logger.Format
	switch flags.LogFormat {
	case "json":
		format = logger.JSONFormat
	case "console":
		format = logger.ConsoleFormat
	default:
		format = logger.JSONFormat
	}

	// Logs go to stderr; stdout carries command output
	return logger.New(logger.Config{
		Level:  level,
		Format: format,
		Output: os.Stderr,
	})
}

// BuildConfig loads configuration (defaults, optional file, environment) and
// applies flag overrides on top
func BuildConfig(flags *Flags) (*config.Config, error) {
	opts := []config.LoadOption{config.WithEnv()}
	if flags.ConfigFile != "" {
		opts = append([]config.LoadOption{config.WithConfigFile(flags.ConfigFile)}, opts...)
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}

	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFormat != "" {
		cfg.Log.Format = flags.LogFormat
	}
	if flags.Region != "" {
		cfg.Simulation.Region = flags.Region
	}
	if flags.PermissionsFile != "" {
		cfg.Simulation.PermissionsFile = flags.PermissionsFile
	}
	if flags.DiagAddr != "" {
		cfg.Diag.Enabled = true
		cfg.Diag.Address = flags.DiagAddr
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// CustomEndpoint maps the config endpoint override to the credentials type
func CustomEndpoint(cfg *config.Config) *credentials.Custom {
	if cfg.Endpoint == nil {
		return nil
	}
	return &credentials.Custom{
		Endpoint:        cfg.Endpoint.URL,
		AccessKeyID:     cfg.Endpoint.AccessKeyID,
		SecretAccessKey: cfg.Endpoint.SecretAccessKey,
	}
}

// SetupSignalHandler returns a context cancelled on SIGINT/SIGTERM
func SetupSignalHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx, cancel
}
