// Package config loads daemon configuration with github.com/knadh/koanf,
// composing compiled-in defaults, an optional YAML file, and environment
// overrides in that precedence order — the same three-provider layering
// the example pack's hub-service-agent uses.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "PROMPTING_CLIENTD_"

// Config holds everything the entrypoint needs to wire the daemon
// together.
type Config struct {
	// SouthboundSocket overrides the policy-service socket path; empty
	// means resolve it the usual SNAP_NAME-dependent way.
	SouthboundSocket string `koanf:"southbound_socket"`
	// NorthboundSocket is the UI-facing RPC listener path.
	NorthboundSocket string `koanf:"northbound_socket"`
	// LogFilter is the initial log level expression.
	LogFilter string `koanf:"log_filter"`
	// NoticeTimeout is loaded but not passed on: the policy client's
	// notice long-poll always asks for a 1h timeout.
	NoticeTimeout time.Duration `koanf:"notice_timeout"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"southbound_socket": "",
		"northbound_socket": "/run/user/prompting-clientd.sock",
		"log_filter":        "info",
		"notice_timeout":    "1h",
	}
}

// Load composes defaults < the optional YAML file at path (skipped if
// path is empty or does not exist; a file that exists but cannot be
// loaded is an error) < environment variables prefixed
// PROMPTING_CLIENTD_ (the rest of the name, lowercased, is the key, e.g.
// PROMPTING_CLIENTD_LOG_FILTER sets log_filter).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, err
	}

	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, err
	}

	// Duration needs its own accessor rather than struct-tag unmarshal:
	// koanf's default mapstructure decoder does not parse "1h"-style
	// strings into time.Duration without an extra decode hook, and one
	// explicit Get beats wiring a hook for a single field.
	return &Config{
		SouthboundSocket: k.String("southbound_socket"),
		NorthboundSocket: k.String("northbound_socket"),
		LogFilter:        k.String("log_filter"),
		NoticeTimeout:    k.Duration("notice_timeout"),
	}, nil
}
