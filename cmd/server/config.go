package main

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is the server's effective configuration: flags > env (KINSHIP_*) >
// config file > defaults, following the pack's layered-viper precedence.
type Config struct {
	Mode     string `mapstructure:"mode"`
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
}

// loadConfig layers env and the optional config file over the defaults and
// unmarshals the result. cfgFile may be empty, in which case only env and
// defaults apply. Command-line flags are not read here: runServe applies
// any flag set explicitly on top of the returned Config.
func loadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	v.SetDefault("mode", "stdio")
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("KINSHIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
