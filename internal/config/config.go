// Package config loads the settings of a compile run from, in order of
// precedence, command-line flags, NN2GO_* environment variables, an
// optional YAML file and the defaults.
package config

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"nn2go/internal/compile/author/harness"
	"nn2go/internal/compile/author/imports"
	"nn2go/internal/eval"
)

const envPrefix = "NN2GO"

// Keys. Flags of the same names are bound to them.
const (
	KeyDir         = "dir"
	KeyFunction    = "function"
	KeyPackage     = "package"
	KeyTests       = "tests"
	KeyTolerance   = "tolerance"
	KeySeed        = "seed"
	KeyEvalMode    = "eval-mode"
	KeyRuntime     = "runtime"
	KeyMetricsFile = "metrics-file"
	KeyLogLevel    = "log.level"
	KeyLogFormat   = "log.format"
	KeyS3Endpoint  = "s3.endpoint"
	KeyS3AccessKey = "s3.access-key"
	KeyS3SecretKey = "s3.secret-key"
	KeyS3Secure    = "s3.secure"
	KeyS3Region    = "s3.region"
)

type Config struct {
	Dir         string  `mapstructure:"dir"`
	Function    string  `mapstructure:"function"`
	Package     string  `mapstructure:"package"`
	Tests       int     `mapstructure:"tests"`
	Tolerance   float64 `mapstructure:"tolerance"`
	Seed        int64   `mapstructure:"seed"`
	EvalMode    string  `mapstructure:"eval-mode"`
	Runtime     string  `mapstructure:"runtime"`
	MetricsFile string  `mapstructure:"metrics-file"`
	Log         Log     `mapstructure:"log"`
	S3          S3      `mapstructure:"s3"`
}

type Log struct {
	// Level is debug, info, warn or error.
	Level string `mapstructure:"level"`
	// Format is console or json.
	Format string `mapstructure:"format"`
}

// S3 is the object store that s3:// model sources are read from.
type S3 struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access-key"`
	SecretKey string `mapstructure:"secret-key"`
	Secure    bool   `mapstructure:"secure"`
	Region    string `mapstructure:"region"`
}

// New returns a viper instance with the defaults and the environment
// bound. NN2GO_EVAL_MODE sets eval-mode and NN2GO_LOG_LEVEL sets
// log.level.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyDir, ".")
	v.SetDefault(KeyFunction, "")
	v.SetDefault(KeyPackage, "")
	v.SetDefault(KeyTests, harness.DefaultTests)
	v.SetDefault(KeyTolerance, harness.DefaultTolerance)
	v.SetDefault(KeySeed, 0)
	v.SetDefault(KeyEvalMode, eval.Float64.String())
	v.SetDefault(KeyRuntime, imports.DefaultRuntime)
	v.SetDefault(KeyMetricsFile, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyS3Endpoint, "")
	v.SetDefault(KeyS3AccessKey, "")
	v.SetDefault(KeyS3SecretKey, "")
	v.SetDefault(KeyS3Secure, true)
	v.SetDefault(KeyS3Region, "")
	return v
}

// Load reads file, if it is not empty, into v and returns the validated
// settings.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "config: read %s", file)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessage(err, "config")
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Tests < 1 {
		return errors.Errorf("%s must be at least 1, not %d", KeyTests, c.Tests)
	}
	if !(c.Tolerance >= 0) || math.IsInf(c.Tolerance, 0) {
		return errors.Errorf("%s must be non-negative and finite, not %g", KeyTolerance, c.Tolerance)
	}
	if _, err := eval.ParseMode(c.EvalMode); err != nil {
		return errors.WithMessage(err, KeyEvalMode)
	}
	if c.Runtime == "" {
		return errors.Errorf("%s must not be empty", KeyRuntime)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return errors.Errorf("%s must be console or json, not %q", KeyLogFormat, c.Log.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("%s must be debug, info, warn or error, not %q", KeyLogLevel, c.Log.Level)
	}
	return nil
}

// Mode is the parsed EvalMode of a validated Config.
func (c *Config) Mode() eval.Mode {
	mode, err := eval.ParseMode(c.EvalMode)
	if err != nil {
		panic("bug")
	}
	return mode
}
