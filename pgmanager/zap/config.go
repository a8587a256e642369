package zap

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment controls the baseline logger profile.
type Environment string

const (
	EnvironmentProduction  Environment = "production"
	EnvironmentDevelopment Environment = "development"
	EnvironmentLocal       Environment = "local"
)

// Encoding names accepted by Config.
const (
	EncodingJSON    = "json"
	EncodingConsole = "console"
)

// ErrInvalidConfig is returned by New when Config cannot produce a logger.
var ErrInvalidConfig = errors.New("invalid zap config")

// Config contains logger initialization inputs.
//
// Empty Level resolves to debug for development/local and info otherwise.
// Empty Encoding resolves to json. Empty OutputPaths writes to stderr.
type Config struct {
	Environment Environment
	Level       string
	Encoding    string
	OutputPaths []string
}

func (c Config) validate() error {
	switch c.Environment {
	case EnvironmentProduction, EnvironmentDevelopment, EnvironmentLocal:
	default:
		return fmt.Errorf("%w: environment %q", ErrInvalidConfig, c.Environment)
	}

	switch c.Encoding {
	case "", EncodingJSON, EncodingConsole:
	default:
		return fmt.Errorf("%w: encoding %q", ErrInvalidConfig, c.Encoding)
	}

	return nil
}

// New creates a structured logger from cfg.
func New(cfg Config) (*Logger, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	level, err := resolveLevel(cfg)
	if err != nil {
		return nil, err
	}

	base := buildConfigByEnvironment(cfg.Environment)
	base.Level = level
	base.DisableStacktrace = true

	if cfg.Encoding != "" {
		base.Encoding = cfg.Encoding
	}

	if len(cfg.OutputPaths) > 0 {
		base.OutputPaths = cfg.OutputPaths
	}

	built, err := base.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return &Logger{logger: built, atomicLevel: level}, nil
}

func resolveLevel(cfg Config) (zap.AtomicLevel, error) {
	if strings.TrimSpace(cfg.Level) != "" {
		var parsed zapcore.Level
		if err := parsed.Set(strings.TrimSpace(cfg.Level)); err != nil {
			return zap.AtomicLevel{}, fmt.Errorf("%w: level %q: %w", ErrInvalidConfig, cfg.Level, err)
		}

		return zap.NewAtomicLevelAt(parsed), nil
	}

	if cfg.Environment == EnvironmentDevelopment || cfg.Environment == EnvironmentLocal {
		return zap.NewAtomicLevelAt(zapcore.DebugLevel), nil
	}

	return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
}

func buildConfigByEnvironment(environment Environment) zap.Config {
	if environment == EnvironmentDevelopment || environment == EnvironmentLocal {
		cfg := zap.NewDevelopmentConfig()
		cfg.Encoding = EncodingJSON
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

		return cfg
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = EncodingJSON
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	return cfg
}
