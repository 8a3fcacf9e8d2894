package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays variables from environ ("KEY=value" pairs, as returned by
// os.Environ) onto config. Unset variables leave the current value alone.
func parseEnv(config *Config, environ []string) error {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return env.ParseWithOptions(config, env.Options{Environment: vars})
}
