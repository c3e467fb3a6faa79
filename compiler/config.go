package compiler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xiaobogaga/minijava/semantic"
	"github.com/xiaobogaga/minijava/util"
)

// Config controls which checks Check runs. Keys left out of a YAML document keep their DefaultConfig value.
type Config struct {
	// EntryPoint is the name the static entry point method must have.
	EntryPoint string `yaml:"entry_point"`

	// ExpectEntryPoint rejects programs without an entry point. Turn it off to check library classes on their own.
	ExpectEntryPoint bool `yaml:"expect_entry_point"`

	// Builtins registers java.lang.System, its output and input streams and the System global.
	Builtins bool `yaml:"builtins"`

	FoldConstants bool `yaml:"fold_constants"`

	// FailOnUndefinedConstant turns undefined constant results (division by zero, int overflow) from warnings into
	// an error.
	FailOnUndefinedConstant bool `yaml:"fail_on_undefined_constant"`

	// LogLevel is one of debug, info, warn or error. It is used by NewLogger.
	LogLevel string `yaml:"log_level"`

	// Logger receives one record per phase. Nil discards them.
	Logger *slog.Logger `yaml:"-"`
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func DefaultConfig() *Config {
	return &Config{
		EntryPoint:       semantic.DefaultEntryPoint,
		ExpectEntryPoint: true,
		Builtins:         true,
		FoldConstants:    true,
		LogLevel:         "info",
	}
}

// LoadConfigFile reads a YAML configuration file.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	defer f.Close()
	cfg, err := LoadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfig parses a YAML configuration. An empty document yields DefaultConfig.
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	err := decoder.Decode(cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.EntryPoint == "" {
		return errors.New("entry_point must not be empty")
	}
	if !util.IsIdentifier(c.EntryPoint) {
		return fmt.Errorf("entry_point %q is not an identifier", c.EntryPoint)
	}
	if _, ok := logLevels[c.LogLevel]; !ok {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// NewLogger returns a text logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, ok := logLevels[c.LogLevel]
	if !ok {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
