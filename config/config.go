// Package config resolves the service configuration once at startup.
//
// Sources, later ones winning: built-in defaults, the YAML file, then the
// process environment (which a .env file may have populated).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Model   ModelConfig   `yaml:"model"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`

	// SecretToken only comes from the environment.
	SecretToken string `yaml:"-" validate:"required"`
}

type ServerConfig struct {
	Port           int           `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout    time.Duration `yaml:"read_timeout" validate:"min=0"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" validate:"min=0"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes" validate:"gt=0"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

type ModelConfig struct {
	// Type may be empty to accept whatever the artifact declares.
	Type string `yaml:"type" validate:"omitempty,oneof=logistic_regression decision_tree random_forest"`
	Path string `yaml:"path" validate:"required"`
}

type LogConfig struct {
	Level      string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"min=0"`
	MaxBackups int    `yaml:"max_backups" validate:"min=0"`
	MaxAgeDays int    `yaml:"max_age_days" validate:"min=0"`
	Compress   bool   `yaml:"compress"`
	Console    bool   `yaml:"console"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"omitempty,startswith=/"`
}

// environment lists the variables that override the file.
type environment struct {
	SecretToken string `env:"SECRET_TOKEN"`
	ModelPath   string `env:"MODEL_PATH"`
	ModelType   string `env:"MODEL_TYPE"`
	Port        int    `env:"PORT"`
	LogLevel    string `env:"LOG_LEVEL"`
	LogFile     string `env:"LOG_FILE"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:           5000,
			ReadTimeout:    30 * time.Second,
			IdleTimeout:    120 * time.Second,
			MaxBodyBytes:   1 << 20,
			AllowedOrigins: []string{"*"},
		},
		Model: ModelConfig{
			Path: "stroke_model.json",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// LoadDotenv copies variables from a .env file into the process environment
// without overriding variables that are already set. A missing file is not an
// error.
func LoadDotenv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Load reads the YAML file at path (a missing file leaves the defaults),
// applies environ on top and validates the result.
func Load(path string, environ []string) (*Config, error) {
	config := Default()

	if path != "" {
		file, err := os.Open(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			defer file.Close()
			if err := yaml.NewDecoder(file).Decode(&config); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if err := applyEnvironment(&config, environ); err != nil {
		return nil, err
	}
	if config.Metrics.Enabled && config.Metrics.Path == "" {
		config.Metrics.Path = "/metrics"
	}
	if err := Validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func applyEnvironment(config *Config, environ []string) error {
	es, err := env.EnvironToEnvSet(environ)
	if err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	var vars environment
	if err := env.Unmarshal(es, &vars); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	config.SecretToken = vars.SecretToken
	if vars.ModelPath != "" {
		config.Model.Path = vars.ModelPath
	}
	if vars.ModelType != "" {
		config.Model.Type = vars.ModelType
	}
	if vars.Port != 0 {
		config.Server.Port = vars.Port
	}
	if vars.LogLevel != "" {
		config.Log.Level = strings.ToLower(vars.LogLevel)
	}
	if vars.LogFile != "" {
		config.Log.File = vars.LogFile
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func Validate(config *Config) error {
	err := validate.Struct(config)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func describeField(fe validator.FieldError) string {
	switch fe.Namespace() {
	case "Config.SecretToken":
		return "SECRET_TOKEN is not set"
	case "Config.Model.Path":
		return "model.path (MODEL_PATH) is not set"
	}
	if fe.Param() != "" {
		return fmt.Sprintf("%s failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Sprintf("%s failed %s (got %v)", fe.Namespace(), fe.Tag(), fe.Value())
}
