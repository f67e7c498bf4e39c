package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// ConfigError indicates that a user-supplied configuration file was
// unreadable or malformed. Fatal before any message processing begins.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("failed to load config file %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// New creates a new configuration instance. Built-in defaults are applied
// first; a config file, when given, overlays individual keys on top of them.
// The configuration is resolved once per invocation and read-only afterward.
func New(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("MAILECHO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &ConfigError{Path: path, Err: err}
		}
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Service identity
	v.SetDefault("service_name", "MailEcho")

	// SMTP submission defaults
	v.SetDefault("smtp_server", "localhost")
	v.SetDefault("smtp_port", 25)
	v.SetDefault("smtp_username", "")
	v.SetDefault("smtp_password", "")
	v.SetDefault("smtp_timeout", "30s")

	// Reply body framing
	v.SetDefault("reply_body_header", "Your message has been received and is quoted in full below.")
	v.SetDefault("reply_body_footer", "This is an automated reply; no mailbox is attached to this address.")

	// Delivery mode
	v.SetDefault("send_email", true)

	// Input bound
	v.SetDefault("max_message_size", 26214400)

	// Syslog defaults (disabled unless a socket is configured)
	v.SetDefault("syslog_socket", "")
	v.SetDefault("syslog_facility", "mail")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetInt64 gets a 64-bit integer value from the configuration
func (c *Config) GetInt64(key string) int64 {
	return c.v.GetInt64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
