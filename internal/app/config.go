package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	FactsPath  string // fact file or directory of fact files
	ConfigPath string // optional .hcl analyzer config
	SingleFile string // single-file mode: analyze this fact path in isolation
	OutPath    string // result destination; empty means stdout

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.FactsPath == "" {
		return nil, errors.New("FactsPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
