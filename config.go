package qstab

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
)

/*
Config holds the defaults a StabilizerState falls back to when a call does
not say otherwise. Values come from viper: built-in defaults, an optional
config file, then QSTAB_* environment variables.
*/
type Config struct {
	// Caching is the default for WithCache on targeted enumerations.
	Caching bool
	// Decimals is the default rounding; negative means none.
	Decimals int
	// Seeded states start from Seed instead of runtime entropy.
	Seeded bool
	Seed   uint64
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// MaxEnumerationQubits is where an unrestricted enumeration starts to warn.
	MaxEnumerationQubits int

	// Registerer receives the engine metrics. Nil keeps them unregistered.
	Registerer prometheus.Registerer
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("caching", true)
	v.SetDefault("decimals", -1)
	v.SetDefault("seeded", false)
	v.SetDefault("seed", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("max_enumeration_qubits", 20)

	v.SetEnvPrefix("qstab")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func configFromViper(v *viper.Viper) *Config {
	return &Config{
		Caching:              v.GetBool("caching"),
		Decimals:             v.GetInt("decimals"),
		Seeded:               v.GetBool("seeded"),
		Seed:                 v.GetUint64("seed"),
		LogLevel:             v.GetString("log.level"),
		MaxEnumerationQubits: v.GetInt("max_enumeration_qubits"),
	}
}

// NewConfig returns the defaults with environment overrides applied.
func NewConfig() *Config {
	return configFromViper(newViper())
}

// LoadConfig reads path (yaml, toml or json by extension) over the defaults.
func LoadConfig(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return configFromViper(v), nil
}
