package config

// Config is the optional keen-tap configuration file.
type Config struct {
	// General holds general configuration.
	General *GeneralConfig `toml:"general"`
	// Tap holds the default interface pair used when none is given on the command line.
	Tap *TapConfig `toml:"tap"`
	// API holds the status API settings.
	API *APIConfig `toml:"api"`

	_absConfigFilePath string
}

type GeneralConfig struct {
	// Verbose enables debug logging (same as -verbose).
	Verbose bool `toml:"verbose" json:"verbose"`
}

type TapConfig struct {
	// InterfaceA is the first interface of the mirrored pair.
	InterfaceA string `toml:"interface_a" json:"interface_a" validate:"omitempty,ifname"`
	// InterfaceB is the second interface of the mirrored pair. Must differ from InterfaceA.
	InterfaceB string `toml:"interface_b" json:"interface_b" validate:"omitempty,ifname,nefield=InterfaceA"`
}

type APIConfig struct {
	// ListenAddr is the status API listen address (default: 127.0.0.1:12180).
	ListenAddr string `toml:"listen_addr" json:"listen_addr" validate:"required,hostport"`
}

// IsConfigured reports whether both pair members are set.
func (t *TapConfig) IsConfigured() bool {
	return t != nil && t.InterfaceA != "" && t.InterfaceB != ""
}

// GetConfigFilePath returns the absolute path the configuration was loaded from.
func (c *Config) GetConfigFilePath() string {
	return c._absConfigFilePath
}
