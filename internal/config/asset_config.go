package config

type AssetConfig struct {
	Directory string `yaml:"directory"`
	BaseUrl   string `yaml:"base-url"`
}
