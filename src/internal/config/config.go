package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	apperrors "github.com/maksimkurb/keen-tap/src/internal/errors"
	"github.com/maksimkurb/keen-tap/src/internal/log"
)

const (
	DefaultConfigPath = "/opt/etc/keen-tap/keen-tap.conf"
	DefaultListenAddr = "127.0.0.1:12180"
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads and validates the configuration file. A missing file is not an error:
// the defaults are returned instead.
func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		path, err := filepath.Abs(configFile)
		if err != nil {
			return nil, apperrors.NewConfigError("failed to get absolute path", err)
		}
		configFile = path
	}

	content, err := os.ReadFile(configFile)
	if errors.Is(err, os.ErrNotExist) {
		log.Debugf("Configuration file not found: %s, using defaults", configFile)
		cfg := DefaultConfig()
		cfg._absConfigFilePath = configFile
		return cfg, nil
	}
	if err != nil {
		return nil, apperrors.NewConfigError("failed to read config file", err)
	}

	var config Config
	if err := toml.Unmarshal(content, &config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			log.Errorf(derr.String())
			row, col := derr.Position()
			return nil, apperrors.NewConfigError(fmt.Sprintf("failed to parse config file at line %d, column %d", row, col), err)
		}
		return nil, apperrors.NewConfigError("failed to parse config file", err)
	}

	config.applyDefaults()
	config._absConfigFilePath = configFile

	if err := config.ValidateConfig(); err != nil {
		return nil, apperrors.NewValidationError("invalid configuration", err)
	}

	log.Debugf("Configuration file path: %s", configFile)

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.General == nil {
		c.General = &GeneralConfig{}
	}
	if c.Tap == nil {
		c.Tap = &TapConfig{}
	}
	if c.API == nil {
		c.API = &APIConfig{}
	}
	if c.API.ListenAddr == "" {
		c.API.ListenAddr = DefaultListenAddr
	}
}

// ResolvePair picks the interface pair from positional arguments, falling back to the
// configured [tap] section when no arguments are given.
func (c *Config) ResolvePair(args []string) (string, string, error) {
	var a, b string

	switch {
	case len(args) == 2:
		a, b = args[0], args[1]
	case len(args) == 0 && c != nil && c.Tap.IsConfigured():
		a, b = c.Tap.InterfaceA, c.Tap.InterfaceB
	case len(args) == 0:
		return "", "", apperrors.NewValidationError("interface pair is not specified: pass <interface_a> <interface_b> or set [tap] in the config", nil)
	default:
		return "", "", apperrors.NewValidationError(fmt.Sprintf("expected 2 interface names, got %d", len(args)), nil)
	}

	if err := ValidateInterfaceName(a); err != nil {
		return "", "", err
	}
	if err := ValidateInterfaceName(b); err != nil {
		return "", "", err
	}
	if a == b {
		return "", "", apperrors.NewValidationError(fmt.Sprintf("interface %s cannot mirror to itself", a), nil)
	}

	return a, b, nil
}
