package config

import "time"

// ServerConfig contains the control API server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// TransitConfig contains realtime feed polling configuration
type TransitConfig struct {
	APIKey            string `yaml:"apiKey"`
	StaticDataDir     string `yaml:"staticDataDir" validate:"required"`
	RefreshIntervalMS int    `yaml:"refreshIntervalMS" validate:"gte=0"`
	FetchTimeoutMS    int    `yaml:"fetchTimeoutMS" validate:"gte=0"`
	StopTimeoutMS     int    `yaml:"stopTimeoutMS" validate:"gte=0"`
}

// DisplayConfig contains render loop configuration
type DisplayConfig struct {
	Width      int `yaml:"width" validate:"gte=0"`
	Height     int `yaml:"height" validate:"gte=0"`
	DwellMS    int `yaml:"dwellMS" validate:"gte=0"`
	FrameMS    int `yaml:"frameMS" validate:"gte=0"`
	IdlePollMS int `yaml:"idlePollMS" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server            ServerConfig  `yaml:"server" validate:"required"`
	Transit           TransitConfig `yaml:"transit" validate:"required"`
	Display           DisplayConfig `yaml:"display"`
	SelectedStopsFile string        `yaml:"selectedStopsFile"`
}

// RefreshInterval returns the poll cadence, defaulting to 30s. The
// cadence is fixed regardless of fetch outcome; there is no backoff.
func (c TransitConfig) RefreshInterval() time.Duration {
	return msOrDefault(c.RefreshIntervalMS, 30*time.Second)
}

// FetchTimeout returns the per-fetch HTTP timeout, defaulting to 10s.
func (c TransitConfig) FetchTimeout() time.Duration {
	return msOrDefault(c.FetchTimeoutMS, 10*time.Second)
}

// StopTimeout returns the worker stop confirmation window, defaulting to 5s.
func (c TransitConfig) StopTimeout() time.Duration {
	return msOrDefault(c.StopTimeoutMS, 5*time.Second)
}

// Dwell returns the per-stop display time, defaulting to 5s.
func (c DisplayConfig) Dwell() time.Duration {
	return msOrDefault(c.DwellMS, 5*time.Second)
}

// FrameDelay returns the scroll frame cadence, defaulting to 30ms.
func (c DisplayConfig) FrameDelay() time.Duration {
	return msOrDefault(c.FrameMS, 30*time.Millisecond)
}

// IdlePoll returns the idle re-check period, defaulting to 1s.
func (c DisplayConfig) IdlePoll() time.Duration {
	return msOrDefault(c.IdlePollMS, time.Second)
}

func msOrDefault(ms int, def time.Duration) time.Duration {
	if ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}
