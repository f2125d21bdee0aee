package maintenance

import "github.com/dmitrymomot/failsafe/core/config"

// loadConfig parses the maintenance environment variables.
func loadConfig(cfg *Config) error {
	return config.Load(cfg)
}
