package config

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/jxo-me/dyndns/consts"
)

// Main holds the server side options.
type Main struct {
	BindHost string `mapstructure:"bind_host"`
	BindPort int    `mapstructure:"bind_port"`
	// BindSocket is a unix socket path; it takes precedence over host/port.
	BindSocket     string    `mapstructure:"bind_socket"`
	AllowedDomains AllowList `mapstructure:"-"`
}

// Provider holds the hosting.de API options. Immutable after load; owned by
// the provider client for its lifetime.
type Provider struct {
	Zone       string `mapstructure:"zone"`
	Token      string `mapstructure:"token"`
	DefaultTTL int    `mapstructure:"default_ttl"`
}

// Rotation configures log rotation for file outputs.
type Rotation struct {
	MaxSize    int  `mapstructure:"max_size"`
	MaxAge     int  `mapstructure:"max_age"`
	MaxBackups int  `mapstructure:"max_backups"`
	LocalTime  bool `mapstructure:"local_time"`
	Compress   bool `mapstructure:"compress"`
}

// LogConfig holds the logging options.
type LogConfig struct {
	Level    string    `mapstructure:"level"`
	Format   string    `mapstructure:"format"` // text or json
	Output   string    `mapstructure:"output"` // none, stdout, stderr or a file path
	Rotation *Rotation `mapstructure:"rotation"`
}

// Config is the root configuration of the service.
type Config struct {
	Main     Main       `mapstructure:"main"`
	Provider Provider   `mapstructure:"hostingde"`
	Log      *LogConfig `mapstructure:"log"`

	sourceFile string
}

// Source returns the path the config was loaded from.
func (c *Config) Source() string {
	return c.sourceFile
}

// Load reads and validates the TOML config file at path. Any failure here
// is fatal at startup; configuration errors never surface at request time.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}

	cfg := &Config{sourceFile: path}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", path)
	}

	// allowed_domains is list-or-false upstream; decode it by hand into the
	// tagged AllowList instead of letting viper guess.
	allowed, err := ParseAllowList(v.Get("main.allowed_domains"))
	if err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", path)
	}
	cfg.Main.AllowedDomains = allowed

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "validate config file %s", path)
	}
	return cfg, nil
}

// Validate checks the config for missing or out-of-range values.
func (c *Config) Validate() error {
	if c.Main.BindSocket == "" {
		if c.Main.BindHost == "" {
			return errors.New("main.bind_host or main.bind_socket is required")
		}
		if c.Main.BindPort < 1 || c.Main.BindPort > 65535 {
			return errors.Errorf("main.bind_port %d is out of range", c.Main.BindPort)
		}
	}
	if c.Provider.Zone == "" {
		return errors.New("hostingde.zone is required")
	}
	if c.Provider.Token == "" {
		return errors.New("hostingde.token is required")
	}
	if c.Provider.DefaultTTL < consts.MinTTL {
		return errors.Errorf("hostingde.default_ttl must be at least %d seconds", consts.MinTTL)
	}
	return nil
}

var (
	global     = &Config{}
	globalLock sync.RWMutex
)

// Global returns the process-wide config.
func Global() *Config {
	globalLock.RLock()
	defer globalLock.RUnlock()
	return global
}

// Set replaces the process-wide config.
func Set(c *Config) {
	globalLock.Lock()
	defer globalLock.Unlock()
	global = c
}
