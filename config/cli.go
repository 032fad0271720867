// Package config resolves the server's two configuration layers: the
// required CLI surface spec.md §6 defines, parsed with pflag, and an
// optional ambient YAML/env layer (log level, metrics listener, catalog
// dump path) read with viper. The ambient layer can never override the CLI
// surface; it only ever fills in knobs spec.md is silent about.
package config

import (
	"github.com/cockroachdb/errors"
	flag "github.com/spf13/pflag"
)

// Defaults for the CLI-required parameters, matching spec.md §6.
const (
	DefaultPort    uint16 = 2022
	DefaultTimeout int    = 5

	MinTimeoutSeconds = 1
	MaxTimeoutSeconds = 86400
)

// Config is the fully resolved set of knobs the server runs with.
type Config struct {
	EventsFile string
	Port       uint16
	Timeout    int

	MetricsAddr string
	CatalogDump string
	LogLevel    string
	ConfigFile  string
}

// ErrInvalidArgs wraps every CLI validation failure; spec.md §6 requires
// exit code 1 on any argument error, which the caller enforces.
var ErrInvalidArgs = errors.New("invalid arguments")

// ParseFlags parses args (excluding the program name) into a Config,
// applying spec.md §6's defaults and range checks. The three CORE flags
// (-f, -p, -t) are always honored verbatim; the rest are ambient
// additions the dispatcher's surrounding service uses.
func ParseFlags(args []string) (*Config, error) {
	fs := flag.NewFlagSet("ticketserver", flag.ContinueOnError)

	eventsFile := fs.StringP("events-file", "f", "", "path to the events file (required)")
	port := fs.Uint16P("port", "p", DefaultPort, "UDP port to listen on")
	timeout := fs.IntP("timeout", "t", DefaultTimeout, "reservation lifetime in seconds (1..86400)")

	metricsAddr := fs.String("metrics-addr", "", "optional host:port to serve Prometheus metrics on")
	catalogDump := fs.String("catalog-dump", "", "optional path to write a JSON snapshot of the loaded catalog")
	logLevel := fs.String("log-level", "info", "logrus level")
	configFile := fs.String("config", "", "optional YAML file for ambient settings")

	if err := fs.Parse(args); err != nil {
		return nil, errors.Errorf("%w: %s", ErrInvalidArgs, err)
	}

	if *eventsFile == "" {
		return nil, errors.Errorf("%w: -f is required", ErrInvalidArgs)
	}
	if *timeout < MinTimeoutSeconds || *timeout > MaxTimeoutSeconds {
		return nil, errors.Errorf("%w: -t must be in %d..%d, got %d", ErrInvalidArgs, MinTimeoutSeconds, MaxTimeoutSeconds, *timeout)
	}

	return &Config{
		EventsFile:  *eventsFile,
		Port:        *port,
		Timeout:     *timeout,
		MetricsAddr: *metricsAddr,
		CatalogDump: *catalogDump,
		LogLevel:    *logLevel,
		ConfigFile:  *configFile,
	}, nil
}
