package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces the ambient environment variables this layer
// reads, e.g. TICKETSERVER_METRICS_ADDR.
const EnvPrefix = "TICKETSERVER"

// ApplyAmbient layers YAML and environment settings onto cfg for the
// fields spec.md never discusses (metrics address, catalog dump path,
// log level). It never touches EventsFile, Port, or Timeout — those are
// the CORE CLI surface and flags always win. MetricsAddr and CatalogDump
// are filled in only when still empty; LogLevel is replaced whenever it
// is empty or still "info", the flag default, so an explicit
// -log-level info is also replaced by a YAML/env value.
func ApplyAmbient(cfg *Config) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfg.ConfigFile != "" {
		v.SetConfigFile(cfg.ConfigFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return errors.Errorf("read ambient config %q: %w", cfg.ConfigFile, err)
		}
	}

	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = v.GetString("metrics-addr")
	}
	if cfg.CatalogDump == "" {
		cfg.CatalogDump = v.GetString("catalog-dump")
	}
	if cfg.LogLevel == "" || cfg.LogLevel == "info" {
		if fromEnv := v.GetString("log-level"); fromEnv != "" {
			cfg.LogLevel = fromEnv
		}
	}

	return nil
}
