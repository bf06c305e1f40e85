package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	ApiConfig      ApiConfig      `yaml:"api"`
	DatabaseConfig DatabaseConfig `yaml:"database"`
	LedgerConfig   LedgerConfig   `yaml:"ledger"`
	PromoterConfig PromoterConfig `yaml:"promoter"`
	AssetConfig    AssetConfig    `yaml:"assets"`
}

var GlobalConfig *Config = nil

func InitializeGlobalConfig(path string) error {
	if GlobalConfig != nil {
		return nil
	}

	var err error
	GlobalConfig, err = LoadConfigFile(path)

	return err
}

func LoadConfigFile(path string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)

	if err := d.Decode(&config); err != nil {
		return nil, err
	}

	return config, nil
}
