package config

type ApiConfig struct {
	Port           uint16 `yaml:"port"`
	RequestTimeout uint32 `yaml:"request-timeout"`
}
