// Package config handles the optional keen-tap configuration file.
//
// The file is TOML and every section is optional:
//
//	[general]
//	verbose = false
//
//	[tap]
//	interface_a = "veth0"
//	interface_b = "veth1"
//
//	[api]
//	listen_addr = "127.0.0.1:12180"
//
// A missing file is not an error; defaults are used. The [tap] pair is only a fallback
// for commands invoked without positional interface names.
//
// # Example Usage
//
//	cfg, err := config.LoadConfig(config.DefaultConfigPath)
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	a, b, err := cfg.ResolvePair(args)
package config
