package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Service *svcConfig
	Stub    *stubConfig
}

type svcConfig struct {
	// APIURL points at the analytics backend. There is no usable default:
	// a missing value is fatal at startup, not a runtime condition.
	APIURL   string `envconfig:"AUDITLENS_API_URL" default:""`
	Token    string `envconfig:"AUDITLENS_TOKEN" default:""`
	LogLevel string `envconfig:"AUDITLENS_LOG_LEVEL" default:"info"`
}

type stubConfig struct {
	Address string `envconfig:"AUDITLENS_STUB_ADDRESS" default:":9640"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// Validate enforces the settings every command needs before any request is
// made. The stub server does not call it.
func (c *Config) Validate() error {
	if c.Service == nil || c.Service.APIURL == "" {
		return fmt.Errorf("AUDITLENS_API_URL is not set: the address of the analytics service is required")
	}
	return nil
}
