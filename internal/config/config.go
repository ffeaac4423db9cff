package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"codequiz-service/pkg/validator"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Env   string `yaml:"env" validate:"omitempty,oneof=development production"`
		Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	} `yaml:"log"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db" validate:"min=0"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Quiz struct {
		TTL           string `yaml:"ttl"`
		QuestionTime  string `yaml:"question_time"`
		TickInterval  string `yaml:"tick_interval"`
		RedirectDelay string `yaml:"redirect_delay"`
	} `yaml:"quiz"`
	Certificate struct {
		Issuer    string `yaml:"issuer"`
		Signatory string `yaml:"signatory"`
		Threshold int    `yaml:"threshold" validate:"min=0,max=100"`
	} `yaml:"certificate"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Log.Env = "production"
	cfg.Log.Level = "info"
	cfg.SQLite.Path = "codequiz.db"
	cfg.Quiz.TTL = "10m"
	cfg.Quiz.QuestionTime = "30s"
	cfg.Quiz.TickInterval = "1s"
	cfg.Quiz.RedirectDelay = "3s"
	cfg.Certificate.Issuer = "CodeWithHimanshu"
	cfg.Certificate.Signatory = "Himanshu Vishwakarma"
	cfg.Certificate.Threshold = 90
	return cfg
}

// Load reads YAML config from path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := validator.ValidateStruct(cfg); err != nil {
		return cfg, err
	}
	if err := validateQuestionTime(cfg.Quiz.QuestionTime); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// MaxQuestionTime is the per-question budget ceiling.
const MaxQuestionTime = 30 * time.Second

// validateQuestionTime accepts whole seconds in [1s, 30s]; empty means the default.
func validateQuestionTime(raw string) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("quiz.question_time: %w", err)
	}
	if d < time.Second || d > MaxQuestionTime || d%time.Second != 0 {
		return fmt.Errorf("quiz.question_time must be whole seconds between 1s and %s, got %q", MaxQuestionTime, raw)
	}
	return nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
