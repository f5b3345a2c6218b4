// Package config provides configuration types and defaults for bubble.
package config

// Config holds all configuration for bubble.
type Config struct {
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	LogRotation LogRotationConfig `yaml:"log_rotation" mapstructure:"log_rotation"`
	UI          UIConfig          `yaml:"ui" mapstructure:"ui"`
}

// PathsConfig holds file paths for the record store and logs.
type PathsConfig struct {
	Data string `yaml:"data" mapstructure:"data"` // BadgerDB directory for the bubble record
	Log  string `yaml:"log" mapstructure:"log"`   // Directory for the debug log
}

// LogRotationConfig holds settings for log file rotation.
// The TUI debug log uses lumberjack-based automatic rotation.
type LogRotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool `yaml:"compress" mapstructure:"compress"`
}

// UIConfig holds settings for the canvas view.
type UIConfig struct {
	FPS       int `yaml:"fps" mapstructure:"fps"`               // Animation frames per second
	MinWidth  int `yaml:"min_width" mapstructure:"min_width"`   // Minimum terminal columns
	MinHeight int `yaml:"min_height" mapstructure:"min_height"` // Minimum terminal rows
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Data: ".bubble/data",
			Log:  ".bubble/logs",
		},
		LogRotation: LogRotationConfig{
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		UI: UIConfig{
			FPS:       30,
			MinWidth:  60,
			MinHeight: 20,
		},
	}
}
