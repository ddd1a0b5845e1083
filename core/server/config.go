package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps the size of a delivered block.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"16"`
	// Mode selects how delivered blocks are processed.
	Mode string `mapstructure:"mode" default:"apply"`
}

const (
	// ModeApply reconciles and persists delivered blocks.
	ModeApply = "apply"
	// ModeDryRun plans delivered blocks without persisting anything.
	ModeDryRun = "dry-run"
)

// IsValidMode checks if the configured mode is valid.
func (c Config) IsValidMode() bool {
	switch c.Mode {
	case ModeApply, ModeDryRun:
		return true
	default:
		return false
	}
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 16 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}
