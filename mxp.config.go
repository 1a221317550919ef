package mxp

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the file form of session settings.
//
//	session_id: conn-42
//	nested_policy: reject
//	log_level: debug
//	entities:
//	  charName: Gandalf
type Config struct {
	SessionID    string            `yaml:"session_id" toml:"session_id" json:"session_id,omitempty"`
	NestedPolicy string            `yaml:"nested_policy" toml:"nested_policy" json:"nested_policy,omitempty"`
	LogLevel     string            `yaml:"log_level" toml:"log_level" json:"log_level,omitempty"`
	Entities     map[string]string `yaml:"entities" toml:"entities" json:"entities,omitempty"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		NestedPolicy: string(NestedPolicyReplace),
		LogLevel:     DefaultLogLevel,
		Entities:     make(map[string]string),
	}
}

// LoadConfig reads a YAML (.yaml, .yml) or TOML (.toml) config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError(ErrMsgConfigRead, path, err)
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ConfigExtYAML, ConfigExtYML:
		cfg, err = ParseConfigYAML(data)
	case ConfigExtTOML:
		cfg, err = ParseConfigTOML(data)
	default:
		return nil, NewConfigError(ErrMsgConfigFormat, path, nil)
	}
	if err != nil {
		return nil, NewConfigError(ErrMsgConfigInvalid, path, err)
	}
	return cfg, nil
}

// ParseConfigYAML decodes YAML onto the defaults.
func ParseConfigYAML(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, NewConfigError(ErrMsgConfigInvalid, "", err)
	}
	if cfg.Entities == nil {
		cfg.Entities = make(map[string]string)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseConfigTOML decodes TOML and overlays only the keys the file defines.
func ParseConfigTOML(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	var raw Config
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, NewConfigError(ErrMsgConfigInvalid, "", err)
	}

	if meta.IsDefined(ConfigKeySessionID) {
		cfg.SessionID = strings.TrimSpace(raw.SessionID)
	}
	if meta.IsDefined(ConfigKeyNestedPolicy) {
		cfg.NestedPolicy = strings.TrimSpace(raw.NestedPolicy)
	}
	if meta.IsDefined(ConfigKeyLogLevel) {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined(ConfigKeyEntities) {
		for k, v := range raw.Entities {
			cfg.Entities[k] = v
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field that has a closed set of values.
func (c *Config) Validate() error {
	if _, err := ParseNestedPolicy(c.NestedPolicy); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	for name := range c.Entities {
		if err := NewEntityResolver(nil).RegisterEntity(name, ""); err != nil {
			return err
		}
	}
	return nil
}

// Level returns the configured log level. Empty means info.
func (c *Config) Level() (zapcore.Level, error) {
	if c.LogLevel == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, NewConfigValueError(ErrMsgUnknownLogLevel, ConfigKeyLogLevel, c.LogLevel)
	}
	return lvl, nil
}

// Options converts the config into session options.
func (c *Config) Options() ([]Option, error) {
	policy, err := ParseNestedPolicy(c.NestedPolicy)
	if err != nil {
		return nil, err
	}
	return []Option{
		WithSessionID(c.SessionID),
		WithNestedPolicy(policy),
		WithEntities(c.Entities),
	}, nil
}

// NewLogger builds a production zap logger at the configured level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	lvl, err := c.Level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
