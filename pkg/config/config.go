// Package config holds the proxy's runtime configuration, loaded with viper
// the way go.minekube.com/gate's cmd/gate package loads its own Config.
package config

import (
	"fmt"
	"net"
)

// Config is the root configuration object, unmarshalled from file, env,
// and flags by viper.
type Config struct {
	Debug bool `mapstructure:"debug" yaml:"debug"`

	// Bind is the client-facing listen address for the Minecraft-protocol
	// socket. Defaults to 127.0.0.1:25565.
	Bind string `mapstructure:"bind" yaml:"bind"`

	// Backplane is the dial address of the upstream application server.
	// Defaults to 127.0.0.1:25566.
	Backplane string `mapstructure:"backplane" yaml:"backplane"`

	// ReadTimeout is the per-frame read timeout in milliseconds.
	ReadTimeout int `mapstructure:"readTimeout" yaml:"readTimeout"`

	// ConnectionTimeout is a timeout in milliseconds. Validate requires it
	// to be positive; no read, write or flush deadline is derived from it.
	ConnectionTimeout int `mapstructure:"connectionTimeout" yaml:"connectionTimeout"`

	Status Status `mapstructure:"status" yaml:"status"`
}

// Status configures the fields served in the Status-state JSON response.
type Status struct {
	MaxPlayers  int    `mapstructure:"maxPlayers" yaml:"maxPlayers"`
	Description string `mapstructure:"description" yaml:"description"`
}

// Default returns the configuration used when no file or flags override it.
func Default() Config {
	return Config{
		Debug:             false,
		Bind:              "127.0.0.1:25565",
		Backplane:         "127.0.0.1:25566",
		ReadTimeout:       30000,
		ConnectionTimeout: 5000,
		Status: Status{
			MaxPlayers:  100,
			Description: "Hello, World!",
		},
	}
}

// Validate checks that the configuration is usable, the way gate's
// config.Validate rejects an unusable config before the proxy starts.
func Validate(c *Config) error {
	if _, _, err := net.SplitHostPort(c.Bind); err != nil {
		return fmt.Errorf("invalid bind address %q: %w", c.Bind, err)
	}
	if _, _, err := net.SplitHostPort(c.Backplane); err != nil {
		return fmt.Errorf("invalid backplane address %q: %w", c.Backplane, err)
	}
	if c.Status.MaxPlayers < 0 {
		return fmt.Errorf("status.maxPlayers must not be negative, got %d", c.Status.MaxPlayers)
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("readTimeout must be positive, got %d", c.ReadTimeout)
	}
	if c.ConnectionTimeout <= 0 {
		return fmt.Errorf("connectionTimeout must be positive, got %d", c.ConnectionTimeout)
	}
	return nil
}
