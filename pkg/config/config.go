// Package config provides configuration loading and validation for lyagushka.
package config

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/lyagushka/pkg/density"
	"github.com/Sumatoshi-tech/lyagushka/pkg/report"
)

// Sentinel validation errors.
var (
	ErrInvalidGapScale  = errors.New("analysis.gap_scale must be positive")
	ErrInvalidLabelZ    = errors.New("analysis.label_z must be positive")
	ErrInvalidStrategy  = errors.New("invalid analysis.strategy")
	ErrInvalidMaxSize   = errors.New("invalid input.max_size")
	ErrInvalidFormat    = errors.New("invalid output.format")
	ErrInvalidTheme     = errors.New("invalid output.theme")
	ErrInvalidLogLevel  = errors.New("invalid logging.level")
	ErrInvalidLogFormat = errors.New("invalid logging.format")
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
	themes     = []string{"dark", "light"}
)

// Config holds all configuration for lyagushka.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Input    InputConfig    `mapstructure:"input"`
	Output   OutputConfig   `mapstructure:"output"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AnalysisConfig holds segmentation tuning that is not passed positionally.
type AnalysisConfig struct {
	Strategy string  `mapstructure:"strategy"`
	GapScale float64 `mapstructure:"gap_scale"`
	LabelZ   float64 `mapstructure:"label_z"`
}

// InputConfig holds input reading limits.
type InputConfig struct {
	MaxSize string `mapstructure:"max_size"`
}

// OutputConfig holds rendering configuration.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Theme  string `mapstructure:"theme"`
	Color  bool   `mapstructure:"color"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MaxSizeBytes parses the humanized input size limit.
func (c InputConfig) MaxSizeBytes() (uint64, error) {
	size, err := humanize.ParseBytes(c.MaxSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidMaxSize, c.MaxSize, err)
	}

	if size == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMaxSize, c.MaxSize)
	}

	return size, nil
}

// DensityOptions builds analysis options from the configuration.
func (c AnalysisConfig) DensityOptions(factor float64, minClusterSize int) density.Options {
	return density.Options{
		Factor:         factor,
		MinClusterSize: minClusterSize,
		GapScale:       c.GapScale,
		Strategy:       density.Strategy(c.Strategy),
		LabelZ:         c.LabelZ,
	}
}

// LoadConfig loads configuration from file and environment variables.
// An empty configPath searches ".", "./config" and /etc/lyagushka for lyagushka.yaml.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.SetConfigType(configType)
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath(etcDir)
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := config.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// Default returns the configuration with every default applied.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Strategy: DefaultStrategy,
			GapScale: DefaultGapScale,
			LabelZ:   DefaultLabelZ,
		},
		Input:   InputConfig{MaxSize: DefaultInputMaxSize},
		Output:  OutputConfig{Format: DefaultOutputFormat, Theme: DefaultOutputTheme, Color: DefaultOutputColor},
		Logging: LoggingConfig{Level: DefaultLoggingLevel, Format: DefaultLoggingFormat},
	}
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("analysis.strategy", DefaultStrategy)
	viperCfg.SetDefault("analysis.gap_scale", DefaultGapScale)
	viperCfg.SetDefault("analysis.label_z", DefaultLabelZ)

	viperCfg.SetDefault("input.max_size", DefaultInputMaxSize)

	viperCfg.SetDefault("output.format", DefaultOutputFormat)
	viperCfg.SetDefault("output.theme", DefaultOutputTheme)
	viperCfg.SetDefault("output.color", DefaultOutputColor)

	viperCfg.SetDefault("logging.level", DefaultLoggingLevel)
	viperCfg.SetDefault("logging.format", DefaultLoggingFormat)
}

// Validate checks every section; it is also run after command-line overrides.
func (c *Config) Validate() error {
	if !positiveFinite(c.Analysis.GapScale) {
		return fmt.Errorf("%w: %v", ErrInvalidGapScale, c.Analysis.GapScale)
	}

	if !positiveFinite(c.Analysis.LabelZ) {
		return fmt.Errorf("%w: %v", ErrInvalidLabelZ, c.Analysis.LabelZ)
	}

	_, strategyErr := density.ParseStrategy(c.Analysis.Strategy)
	if strategyErr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidStrategy, strategyErr)
	}

	_, sizeErr := c.Input.MaxSizeBytes()
	if sizeErr != nil {
		return sizeErr
	}

	_, formatErr := report.ValidateFormat(c.Output.Format)
	if formatErr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFormat, formatErr)
	}

	if !slices.Contains(themes, c.Output.Theme) {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, c.Output.Theme)
	}

	if !slices.Contains(logLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	if !slices.Contains(logFormats, strings.ToLower(c.Logging.Format)) {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
