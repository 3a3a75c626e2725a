package config

import (
	"context"
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/sethvargo/go-envconfig"
)

type GlobalConfig struct {
	Server Server `mapstructure:",squash"`
	RPC    RPC    `mapstructure:",squash"`
	Log    Log    `mapstructure:",squash"`
	Trace  Trace  `mapstructure:",squash"`
	Viewer Viewer `mapstructure:",squash"`
}

var config = &GlobalConfig{}

func init() {
	if err := defaults.Set(config); err != nil {
		fmt.Printf("set default err: %+v", err)
		os.Exit(1)
	}
}

func Global() *GlobalConfig {
	return config
}

// Load builds a fresh config from struct defaults overlaid with the process
// environment. Used by callers that do not go through viper.
func Load(ctx context.Context) (*GlobalConfig, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*GlobalConfig, error) {
	conf := &GlobalConfig{}
	if err := defaults.Set(conf); err != nil {
		return nil, err
	}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   conf,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	return conf, nil
}
