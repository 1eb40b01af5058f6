package config

import (
	"encoding/json"
	"os"
)

// Config is the optional repo-local configuration, read from
// .minigit/config.json. Every field has a working default so a repository
// without the file behaves identically.
type Config struct {
	LogLevel string `json:"log_level"` // debug, info, warn, error
	Color    bool   `json:"color"`
}

func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Color:    true,
	}
}

func Load(path string) (*Config, error) {
	config := Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(config); err != nil {
		return nil, err
	}

	return config, nil
}
