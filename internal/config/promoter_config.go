package config

type PromoterConfig struct {
	Enabled      bool   `yaml:"enabled"`
	TickInterval uint32 `yaml:"tick-interval"`
}
