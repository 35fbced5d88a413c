// Package config loads the chainrpc command configuration. Values come
// from, in increasing precedence: defaults, an optional YAML or TOML file,
// CHAINRPC_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/localrivet/chainrpc/auth"
	"github.com/localrivet/chainrpc/client"
	"github.com/localrivet/chainrpc/logx"
	"github.com/localrivet/chainrpc/transport"
)

// EnvPrefix prefixes environment overrides, e.g. CHAINRPC_ENDPOINT or
// CHAINRPC_RECONNECT_MAX_ATTEMPTS.
const EnvPrefix = "CHAINRPC"

// ErrNoEndpoint is returned by Validate when no endpoint is configured.
var ErrNoEndpoint = errors.New("no endpoint configured")

type Config struct {
	Endpoint      string            `mapstructure:"endpoint"`
	Timeout       time.Duration     `mapstructure:"timeout"`
	DialTimeout   time.Duration     `mapstructure:"dial_timeout"`
	KeepAlive     time.Duration     `mapstructure:"keep_alive"`
	Reconnect     Reconnect         `mapstructure:"reconnect"`
	Headers       map[string]string `mapstructure:"headers"`
	JWTSecretFile string            `mapstructure:"jwt_secret_file"`
	JWTClientID   string            `mapstructure:"jwt_client_id"`
	JWKFile       string            `mapstructure:"jwk_file"`
	Log           logx.Config       `mapstructure:"log"`
}

type Reconnect struct {
	Auto        bool          `mapstructure:"auto"`
	Delay       time.Duration `mapstructure:"delay"`
	MaxAttempts int           `mapstructure:"max_attempts"`
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"endpoint":        "endpoint",
	"timeout":         "timeout",
	"dial-timeout":    "dial_timeout",
	"keep-alive":      "keep_alive",
	"header":          "headers",
	"reconnect":       "reconnect.auto",
	"reconnect-delay": "reconnect.delay",
	"reconnect-max":   "reconnect.max_attempts",
	"jwt-secret":      "jwt_secret_file",
	"jwt-client-id":   "jwt_client_id",
	"jwk":             "jwk_file",
	"log-level":       "log.level",
	"log-format":      "log.format",
	"log-output":      "log.output",
}

func setDefaults(v *viper.Viper) {
	logDefaults := logx.DefaultConfig()

	v.SetDefault("endpoint", "")
	v.SetDefault("timeout", client.DefaultRequestTimeout)
	v.SetDefault("dial_timeout", 10*time.Second)
	v.SetDefault("keep_alive", time.Duration(0))
	v.SetDefault("reconnect.auto", true)
	v.SetDefault("reconnect.delay", transport.DefaultReconnectDelay)
	v.SetDefault("reconnect.max_attempts", transport.DefaultReconnectMaxAttempts)
	v.SetDefault("jwt_secret_file", "")
	v.SetDefault("jwt_client_id", "")
	v.SetDefault("jwk_file", "")
	v.SetDefault("log.level", logDefaults.Level)
	v.SetDefault("log.format", logDefaults.Format)
	v.SetDefault("log.output", logDefaults.Output)
	v.SetDefault("log.max_size", logDefaults.MaxSize)
	v.SetDefault("log.max_backups", logDefaults.MaxBackups)
	v.SetDefault("log.max_age", logDefaults.MaxAge)
	v.SetDefault("log.compress", logDefaults.Compress)
}

// Load reads the configuration. path may be empty; flags may be nil. Only
// flags that were set on the command line override lower layers.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("error binding flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Validate reports configuration that cannot produce a session.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return ErrNoEndpoint
	}
	if _, err := client.Classify(c.Endpoint); err != nil {
		return err
	}
	if _, err := logx.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ReconnectPolicy converts the reconnect section.
func (c *Config) ReconnectPolicy() transport.ReconnectPolicy {
	return transport.ReconnectPolicy{
		AutoReconnect: c.Reconnect.Auto,
		Delay:         c.Reconnect.Delay,
		MaxAttempts:   c.Reconnect.MaxAttempts,
	}
}

// Auth returns the provider for the configured JWT secret or JWK, nil
// when neither is set.
func (c *Config) Auth() (auth.Provider, error) {
	switch {
	case c.JWTSecretFile != "" && c.JWKFile != "":
		return nil, errors.New("jwt_secret_file and jwk_file are mutually exclusive")
	case c.JWKFile != "":
		return auth.NewJWKFromFile(c.JWKFile)
	case c.JWTSecretFile == "":
		return nil, nil
	}
	var opts []auth.JWTOption
	if c.JWTClientID != "" {
		opts = append(opts, auth.WithClientID(c.JWTClientID))
	}
	return auth.NewJWTFromFile(c.JWTSecretFile, opts...)
}

// SessionOptions translates the configuration into client options.
func (c *Config) SessionOptions() ([]client.Option, error) {
	provider, err := c.Auth()
	if err != nil {
		return nil, err
	}

	topts := []client.TransportOption{
		client.WithReconnect(c.ReconnectPolicy()),
	}
	if len(c.Headers) > 0 {
		topts = append(topts, client.WithHeaders(c.Headers))
	}
	if provider != nil {
		topts = append(topts, client.WithAuth(provider))
	}
	if c.DialTimeout > 0 {
		topts = append(topts, client.WithDialTimeout(c.DialTimeout))
	}
	if c.KeepAlive > 0 {
		topts = append(topts, client.WithKeepAlive(c.KeepAlive))
	}

	return []client.Option{
		client.WithRequestTimeout(c.Timeout),
		client.WithTransportOptions(topts...),
	}, nil
}
