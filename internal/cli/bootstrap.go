package cli

import (
	"fmt"
	"time"

	"codequiz-service/internal/app"
	"codequiz-service/internal/config"
	"codequiz-service/internal/logger"
	"go.uber.org/zap"
)

func bootstrap(configPath string) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Log.Env, cfg.Log.Level)
	if err != nil {
		return cfg, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, log, nil
}

func attemptOptions(cfg config.Config) app.AttemptOptions {
	d := app.DefaultAttemptOptions()
	return app.AttemptOptions{
		QuestionSeconds: int(config.TTLDuration(cfg.Quiz.QuestionTime, 30*time.Second) / time.Second),
		TickInterval:    config.TTLDuration(cfg.Quiz.TickInterval, d.TickInterval),
		RedirectDelay:   config.TTLDuration(cfg.Quiz.RedirectDelay, d.RedirectDelay),
		Threshold:       cfg.Certificate.Threshold,
		SaveTimeout:     d.SaveTimeout,
	}
}

func certificateOptions(cfg config.Config) app.CertificateOptions {
	return app.CertificateOptions{
		Issuer:    cfg.Certificate.Issuer,
		Signatory: cfg.Certificate.Signatory,
		Threshold: cfg.Certificate.Threshold,
	}
}
