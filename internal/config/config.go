package config

// Config represents the complete toolkit configuration
type Config struct {
	// Log configuration
	Log LogConfig `yaml:"log" validate:"required"`

	// Simulation configuration
	Simulation SimulationConfig `yaml:"simulation" validate:"required"`

	// Diag server configuration
	Diag DiagConfig `yaml:"diag"`

	// Tracing configuration
	Tracing TracingConfig `yaml:"tracing"`

	// Endpoint, when set, bypasses credential resolution and targets a
	// custom service endpoint (e.g. a local cloud emulator)
	Endpoint *EndpointConfig `yaml:"endpoint,omitempty"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Level is the log level (debug, info, warn, error)
	Level string `yaml:"level" validate:"required,oneof=debug info warn error"`

	// Format is the log format (json, console)
	Format string `yaml:"format" validate:"required,oneof=json console"`
}

// SimulationConfig holds permission-simulation configuration
type SimulationConfig struct {
	// Region is the AWS region simulations run against
	Region string `yaml:"region"`

	// Retries is the per-rule retry budget handed to the simulator. A
	// pointer so an explicit 0 (no retries) survives merging.
	Retries *int `yaml:"retries" validate:"omitempty,min=0,max=10"`

	// PermissionsFile optionally replaces the built-in permission table
	PermissionsFile string `yaml:"permissions_file"`
}

// DiagConfig holds diagnostics server configuration
type DiagConfig struct {
	// Enabled determines if the diagnostics server is started
	Enabled bool `yaml:"enabled"`

	// Address is the listen address (e.g. ":8080")
	Address string `yaml:"address"`
}

// TracingConfig holds tracing configuration
type TracingConfig struct {
	// Enabled determines if traces are exported
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP collector endpoint
	Endpoint string `yaml:"endpoint"`

	// SamplingRatio is the ratio of traces to sample
	SamplingRatio float64 `yaml:"sampling_ratio" validate:"min=0,max=1"`
}

// EndpointConfig holds the custom-endpoint override
type EndpointConfig struct {
	// URL is the custom service endpoint
	URL string `yaml:"url" validate:"required,url"`

	// AccessKeyID and SecretAccessKey optionally pin credentials for the
	// endpoint; when empty the resolved source still applies
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Simulation: SimulationConfig{
			Retries: intPtr(2),
		},
		Diag: DiagConfig{
			Enabled: false,
			Address: ":8080",
		},
		Tracing: TracingConfig{
			Enabled:       false,
			Endpoint:      "localhost:4317",
			SamplingRatio: 1.0,
		},
	}
}

// Merge overlays non-zero fields of other onto c
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}

	if other.Simulation.Region != "" {
		c.Simulation.Region = other.Simulation.Region
	}
	if other.Simulation.Retries != nil {
		c.Simulation.Retries = other.Simulation.Retries
	}
	if other.Simulation.PermissionsFile != "" {
		c.Simulation.PermissionsFile = other.Simulation.PermissionsFile
	}

	if other.Diag.Enabled {
		c.Diag.Enabled = true
	}
	if other.Diag.Address != "" {
		c.Diag.Address = other.Diag.Address
	}

	if other.Tracing.Enabled {
		c.Tracing.Enabled = true
	}
	if other.Tracing.Endpoint != "" {
		c.Tracing.Endpoint = other.Tracing.Endpoint
	}
	if other.Tracing.SamplingRatio != 0 {
		c.Tracing.SamplingRatio = other.Tracing.SamplingRatio
	}

	if other.Endpoint != nil {
		c.Endpoint = other.Endpoint
	}
}

func intPtr(v int) *int {
	return &v
}
