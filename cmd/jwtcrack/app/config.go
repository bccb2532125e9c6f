package app

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/gx0r/jwt-secret-finder/internal/services/cracker"
	"github.com/gx0r/jwt-secret-finder/pkg/logging"
)

const (
	defaultToken = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJzdWIiOiIxMjM0NTY3ODkwIiwibmFtZSI6IkpvaG4gRG9lIiwiYWRtaW4iOnRydWV9." +
		"cAOIAifu3fykvhkHpbuhbvtH807-Z2rI1FS3vX1XMjE"
	defaultAlphabet  = "eariotnslcudpmhgbfywkvxzjqEARIOTNSLCUDPMHGBFYWKVXZJQ0123456789"
	defaultMaxLength = 6
)

type SearchConfig struct {
	Token     string `yaml:"token"`
	Alphabet  string `yaml:"alphabet"`
	MaxLength int    `yaml:"max_length"`
}

type Config struct {
	Logger  *logging.LoggerConfig `yaml:"logger"`
	Search  *SearchConfig         `yaml:"search"`
	Cracker *cracker.Config       `yaml:"cracker"`
}

func DefaultConfig() *Config {
	return &Config{
		Logger: &logging.LoggerConfig{
			Level: "info",
		},
		Search: &SearchConfig{
			Token:     defaultToken,
			Alphabet:  defaultAlphabet,
			MaxLength: defaultMaxLength,
		},
		Cracker: &cracker.Config{
			ProgressEvery:  cracker.DefaultProgressEvery,
			ProgressPeriod: cracker.DefaultProgressPeriod,
		},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(bytes, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Logger == nil {
		return errors.New("logger config is required")
	}

	if c.Search == nil {
		return errors.New("search config is required")
	}

	if c.Cracker == nil {
		return errors.New("cracker config is required")
	}

	if err := c.Logger.Validate(); err != nil {
		return err
	}

	if c.Search.MaxLength < 0 {
		return errors.Errorf("search max_length must not be negative, got %d", c.Search.MaxLength)
	}

	return c.Cracker.Validate()
}
