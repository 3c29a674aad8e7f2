package main

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ansel1/merry"
	"github.com/caarlos0/env/v11"
	"github.com/gemalto/krb5-go/codec"
	"github.com/joho/godotenv"
)

const envPrefix = "PPKRB_"

// config is read from an optional TOML file, then overridden by PPKRB_ environment
// variables (which may come from a .env file), then by flags.
type config struct {
	Output     string `toml:"output"       env:"OUTPUT"`
	Indent     string `toml:"indent"       env:"INDENT"`
	MaxPDUSize int    `toml:"max_pdu_size" env:"MAX_PDU_SIZE"`
	MaxDepth   int    `toml:"max_depth"    env:"MAX_DEPTH"`
	// Log is a flume levels string, e.g. "*=INF,krb5_codec=DBG".
	Log     string `toml:"log"     env:"LOG"`
	Metrics bool   `toml:"metrics" env:"METRICS"`
}

func defaultConfig() config {
	return config{
		Output:     formatText,
		Indent:     "  ",
		MaxPDUSize: codec.DefaultMaxPDUSize,
		MaxDepth:   codec.DefaultMaxDepth,
	}
}

// loadConfig layers path (if not empty), the env files, and the environment over
// the defaults.  Missing env files are ignored.
func loadConfig(path string, envFiles ...string) (config, error) {
	cfg := defaultConfig()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return config{}, merry.Prepend(err, "load config file")
		}
	}

	// godotenv.Load never overrides variables already set in the environment
	_ = godotenv.Load(envFiles...)

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return config{}, merry.Prepend(err, "parse environment")
	}

	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	switch cfg.Output {
	case formatText, formatHex, formatPrettyHex, formatJSON, formatCheck:
	default:
		return config{}, merry.Errorf("invalid output format: %q", cfg.Output)
	}
	return cfg, nil
}

func (c config) codecConfig() codec.Config {
	return codec.Config{
		MaxPDUSize: c.MaxPDUSize,
		MaxDepth:   c.MaxDepth,
	}
}
