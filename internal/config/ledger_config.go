package config

import (
	"gopkg.in/yaml.v2"

	"github.com/ethereum/go-ethereum/common"
)

type LedgerConfig struct {
	RpcUrl          string `yaml:"rpc-url"`
	ContractAddress string `yaml:"contract-address"`
	ChainId         int64  `yaml:"chain-id"`
	CallTimeout     uint32 `yaml:"call-timeout"`
}

func (l *LedgerConfig) UnmarshalYAML(unmarshal func(any) error) error {
	var raw struct {
		RpcUrl          string `yaml:"rpc-url"`
		ContractAddress string `yaml:"contract-address"`
		ChainId         int64  `yaml:"chain-id"`
		CallTimeout     uint32 `yaml:"call-timeout"`
	}

	if err := unmarshal(&raw); err != nil {
		return err
	}

	if raw.ContractAddress != "" && !common.IsHexAddress(raw.ContractAddress) {
		return &yaml.TypeError{Errors: []string{"invalid contract address"}}
	}

	l.RpcUrl = raw.RpcUrl
	l.ContractAddress = raw.ContractAddress
	l.ChainId = raw.ChainId
	l.CallTimeout = raw.CallTimeout

	return nil
}
