package appconf

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML configuration file. Values given on the
// command line win over values from the file.
type FileConfig struct {
	Server ServerConfig `yaml:"server"`
	Data   DataConfig   `yaml:"data"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port      int      `yaml:"port" validate:"omitempty,gt=0,lte=65535"`
	Env       string   `yaml:"env" validate:"omitempty,oneof=development test production"`
	APIKeys   []string `yaml:"api_keys"`
	RateLimit int      `yaml:"rate_limit" validate:"gte=0"`
}

// DataConfig configures schedule data storage and refresh.
type DataConfig struct {
	DBPath       string `yaml:"db_path"`
	GTFSURL      string `yaml:"gtfs_url" validate:"omitempty,url|file"`
	RefreshHours int    `yaml:"refresh_hours" validate:"gte=0"`
}

// LoadFile reads and validates a YAML configuration file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return &cfg, nil
}
