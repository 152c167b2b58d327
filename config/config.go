// Package config loads utfcodec settings from a YAML file.
//
// The file is named by the UTFCODEC_CONFIG environment variable or by the
// --config flag of the command. There is no discovery: without either, the
// defaults apply.
package config

import (
	stderrors "errors"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/utfcodec/codepoint"
	"github.com/wippyai/utfcodec/errors"
	"github.com/wippyai/utfcodec/transcoder"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "UTFCODEC_CONFIG"

// Config holds the settings shared by the command and library users.
type Config struct {
	// Form is the wide encoding form: "16" or "32".
	Form string `yaml:"form"`

	// Order is the byte order of serialized wide text: "be" or "le".
	Order string `yaml:"order"`

	// Policy is the validation policy: "strict" or "legacy".
	Policy string `yaml:"policy"`

	// Errors selects the error mode: "error", "warn" or "replace".
	Errors string `yaml:"errors"`

	// BOM emits a byte-order mark before converted output.
	BOM bool `yaml:"bom"`

	// Upper prints hex digits in upper case.
	Upper bool `yaml:"upper"`

	// Log configures diagnostics.
	Log LogConfig `yaml:"log"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	// Level is a zap level name. Default: warn
	Level string `yaml:"level"`

	// Format is "console" or "json". Default: console
	Format string `yaml:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Form:   "32",
		Order:  "be",
		Policy: "strict",
		Errors: "error",
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load reads path over the defaults and validates the result. Unknown keys are
// rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "open "+path)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse "+path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads the file named by UTFCODEC_CONFIG, or returns the
// defaults when the variable is unset or empty.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks every field.
func (c *Config) Validate() error {
	if _, err := c.Options(); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.InvalidSetting("log.level", c.Log.Level, "debug", "info", "warn", "error")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return errors.InvalidSetting("log.format", c.Log.Format, "console", "json")
	}
	return nil
}

// Options converts the settings to transcoder options. The logger is left for
// the caller to set.
func (c *Config) Options() (transcoder.Options, error) {
	var (
		opts transcoder.Options
		err  error
	)
	if opts.Form, err = transcoder.ParseForm(c.Form); err != nil {
		return opts, err
	}
	if opts.Order, err = transcoder.ParseOrder(c.Order); err != nil {
		return opts, err
	}
	if opts.Policy, err = codepoint.ParsePolicy(c.Policy); err != nil {
		return opts, err
	}
	if opts.Errors, err = transcoder.ParseErrorMode(c.Errors); err != nil {
		return opts, err
	}
	opts.BOM = c.BOM
	return opts, nil
}

// Logger builds a zap logger writing to w. verbose forces the debug level.
func (l LogConfig) Logger(w io.Writer, verbose bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, errors.InvalidSetting("log.level", l.Level, "debug", "info", "warn", "error")
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	var enc zapcore.Encoder
	switch strings.ToLower(l.Format) {
	case "json":
		encCfg = zap.NewProductionEncoderConfig()
		enc = zapcore.NewJSONEncoder(encCfg)
	case "console", "":
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, errors.InvalidSetting("log.format", l.Format, "console", "json")
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core), nil
}
