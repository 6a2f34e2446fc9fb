package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/permproof/permproof/pkg/errors"
)

// LoadOption is a functional option for loading configuration
type LoadOption func(*loadOptions)

type loadOptions struct {
	configFile string
	fromEnv    bool
}

// WithConfigFile specifies the config file path
func WithConfigFile(path string) LoadOption {
	return func(o *loadOptions) {
		o.configFile = path
	}
}

// WithEnv enables environment variable overrides
func WithEnv() LoadOption {
	return func(o *loadOptions) {
		o.fromEnv = true
	}
}

// Load loads configuration with the given options
func Load(opts ...LoadOption) (*Config, error) {
	options := &loadOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Start with default config
	config := DefaultConfig()

	// Load from file if specified
	if options.configFile != "" {
		fileConfig, err := loadFromFile(options.configFile)
		if err != nil {
			return nil, err
		}
		config.Merge(fileConfig)
	}

	// Override with environment variables if enabled
	if options.fromEnv {
		config.Merge(loadFromEnv())
	}

	// Validate final configuration
	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(
			errors.ErrConfigLoadFailed,
			err,
			"failed to read config file",
		).WithField("path", path)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(
			errors.ErrConfigInvalid,
			err,
			"failed to parse config file",
		).WithField("path", path)
	}

	return &config, nil
}

// loadFromEnv loads configuration overrides from environment variables
func loadFromEnv() *Config {
	config := &Config{
		Log: LogConfig{
			Level:  getEnv("PERMPROOF_LOG_LEVEL", ""),
			Format: getEnv("PERMPROOF_LOG_FORMAT", ""),
		},
		Simulation: SimulationConfig{
			Region:          getEnv("PERMPROOF_REGION", ""),
			Retries:         getIntPtrEnv("PERMPROOF_SIMULATION_RETRIES"),
			PermissionsFile: getEnv("PERMPROOF_PERMISSIONS_FILE", ""),
		},
		Diag: DiagConfig{
			Enabled: getBoolEnv("PERMPROOF_DIAG_ENABLED", false),
			Address: getEnv("PERMPROOF_DIAG_ADDRESS", ""),
		},
		Tracing: TracingConfig{
			Enabled:  getBoolEnv("PERMPROOF_TRACING_ENABLED", false),
			Endpoint: getEnv("PERMPROOF_TRACING_ENDPOINT", ""),
		},
	}

	if endpoint := getEnv("PERMPROOF_ENDPOINT", ""); endpoint != "" {
		config.Endpoint = &EndpointConfig{
			URL:             endpoint,
			AccessKeyID:     getEnv("PERMPROOF_ENDPOINT_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("PERMPROOF_ENDPOINT_SECRET_ACCESS_KEY", ""),
		}
	}

	return config
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntPtrEnv gets an integer environment variable, nil when unset or
// unparsable so an explicit 0 is distinguishable from absence
func getIntPtrEnv(key string) *int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return &intVal
		}
	}
	return nil
}

// getBoolEnv gets a boolean environment variable with a default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
