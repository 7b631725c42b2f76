package meta

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Iterations int    `yaml:"iterations"`
	Workers    int    `yaml:"workers"`
	Seed       uint64 `yaml:"seed"`
	LogLevel   string `yaml:"log_level"`
	Games      int    `yaml:"games"`
	OutputDir  string `yaml:"output_dir"`
}

func DefaultConfig() Config {
	return Config{
		Iterations: Iterations,
		Workers:    Workers,
		LogLevel:   "info",
		Games:      Games,
		OutputDir:  OutputDir,
	}
}

// LoadConfig overlays the YAML file at path onto the defaults. Keys missing
// from the file keep their default value.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

var ErrInvalidConfig = errors.New("invalid config")

func (c Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, c.Iterations)
	}
	if c.Games < 0 {
		return fmt.Errorf("%w: games cannot be negative, got %d", ErrInvalidConfig, c.Games)
	}
	return nil
}
