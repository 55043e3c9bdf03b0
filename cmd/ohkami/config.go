package main

import "github.com/BurntSushi/toml"

// fileConfig covers the things §6's environment variables don't (spec.md
// §6 only names timeouts and the request-size cap; the demo dataset size
// is CLI-only), grounded on air.go's own ConfigFile/TOML-overlay idiom
// (_examples/aofei-air/air.go): the environment is always authoritative
// for anything it names, the file only fills in what's left.
type fileConfig struct {
	Addr      string `toml:"addr"`
	DemoUsers int    `toml:"demo_users"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{Addr: ":8080", DemoUsers: 10}
}

// loadFileConfig overlays path's TOML fields onto the defaults; a missing
// or empty path is not an error, it just means "use the defaults".
func loadFileConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
