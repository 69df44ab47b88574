package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional runtime configuration read from susumu.yaml
// next to the entry file or in the working directory.
type Config struct {
	SearchPaths []string `yaml:"searchPaths"`
	Color       *bool    `yaml:"color"`
	Trace       bool     `yaml:"trace"`
}

const ConfigFileName = "susumu.yaml"

// Load reads path and decodes it. A missing file is not an error; the
// zero Config is returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
