package config

import "github.com/Sumatoshi-tech/lyagushka/pkg/density"

// Analysis defaults.
const (
	DefaultGapScale = density.DefaultGapScale
	DefaultStrategy = string(density.StrategyScan)
	DefaultLabelZ   = density.DefaultLabelZ
)

// Input defaults.
const (
	DefaultInputMaxSize = "64MiB"
)

// Output defaults.
const (
	DefaultOutputFormat = "json"
	DefaultOutputColor  = true
	DefaultOutputTheme  = "dark"
)

// Logging defaults.
const (
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "text"
)

// Config search locations.
const (
	configName = "lyagushka"
	configType = "yaml"
	envPrefix  = "LYAGUSHKA"
	etcDir     = "/etc/lyagushka"
)
