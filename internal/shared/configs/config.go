package configs

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Log       LogConfig       `mapstructure:"log" validate:"required"`
	Analysis  AnalysisConfig  `mapstructure:"analysis" validate:"required"`
	LogSource LogSourceConfig `mapstructure:"log_source"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// AnalysisConfig holds caps and defaults for the metrics engine.
type AnalysisConfig struct {
	TopBreakdown int `mapstructure:"top_breakdown" validate:"required,min=1,max=64"`  // cap for flat categorical breakdowns
	TopHosts     int `mapstructure:"top_hosts" validate:"required,min=1,max=64"`      // cap for per-host breakdown rows
	TopHostCodes int `mapstructure:"top_host_codes" validate:"required,min=1,max=64"` // cap for per-host histograms
	MaxLogBytes  int `mapstructure:"max_log_bytes" validate:"required,min=1024"`      // request body/object size limit
}

// LogSourceConfig holds configuration for fetching log text from object storage.
type LogSourceConfig struct {
	S3Enabled       bool   `mapstructure:"s3_enabled"`
	S3Region        string `mapstructure:"s3_region" validate:"required_if=S3Enabled true"`
	FetchTimeoutSec int    `mapstructure:"fetch_timeout" validate:"omitempty,min=1"` // seconds
}
