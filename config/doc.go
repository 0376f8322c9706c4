// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// The package also owns the persisted stop selection: the JSON file that
// remembers which stops the operator picked across restarts.
package config
