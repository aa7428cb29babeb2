package config

import (
	"errors"
	"fmt"
	"io"
	"logsreact/internal/parser"
	"logsreact/internal/types"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDelimiter   = "|"
	DefaultMetricsAddr = ":9090"
)

// LoadConfig reads the configuration from the given path.
// An empty path or a missing file yields the defaults.
func LoadConfig(path string) (*types.Config, error) {
	var cfg types.Config

	if path != "" {
		f, err := os.Open(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// defaults only
		case err != nil:
			return nil, fmt.Errorf("failed to open config file: %w", err)
		default:
			defer f.Close()
			decoder := yaml.NewDecoder(f)
			if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("failed to decode config: %w", err)
			}
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validateConfig applies defaults and rejects values nothing can serve
func validateConfig(cfg *types.Config) error {
	cfg.Parser.Format = strings.ToLower(strings.TrimSpace(cfg.Parser.Format))
	if cfg.Parser.Format == "" {
		cfg.Parser.Format = "combined"
	}
	if _, err := parser.MatcherFor(cfg.Parser.Format); err != nil {
		return fmt.Errorf("invalid parser.format: %w", err)
	}

	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	switch cfg.Output.Format {
	case "":
		cfg.Output.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("invalid output.format %q: want text or json", cfg.Output.Format)
	}
	if cfg.Output.Delimiter == "" {
		cfg.Output.Delimiter = DefaultDelimiter
	}

	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = DefaultMetricsAddr
	}
	return nil
}
