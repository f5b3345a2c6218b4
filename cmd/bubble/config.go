package main

// Flag names for Viper binding
const (
	// Global flags
	FlagVerbose = "verbose"
	FlagConfig  = "config"
	FlagDataDir = "data-dir"
	FlagLogDir  = "log-dir"

	// Canvas flags
	FlagFPS = "fps"

	// Show command flags
	FlagRaw = "raw"
)
