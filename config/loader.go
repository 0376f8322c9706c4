package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads and validates the application configuration. With no paths
// given it probes config.yml in the working directory. The loaded value
// is returned, not stored globally; components receive explicit values.
func Load(paths ...string) (AppConfig, error) {
	if len(paths) == 0 {
		paths = []string{"config.yml"}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return AppConfig{}, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5002
	}
	if cfg.Display.Width == 0 {
		cfg.Display.Width = 128
	}
	if cfg.Display.Height == 0 {
		cfg.Display.Height = 32
	}
	if cfg.SelectedStopsFile == "" {
		cfg.SelectedStopsFile = "selected_stops.json"
	}

	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return AppConfig{}, err
	}
	if err := v.Struct(cfg.Transit); err != nil {
		return AppConfig{}, err
	}
	if err := v.Struct(cfg.Display); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}
