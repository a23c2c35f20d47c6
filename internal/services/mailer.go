package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"tarefas/internal/config"
)

// NewEmailSender picks the delivery driver named by cfg.MailDriver. Network
// drivers are wrapped in a circuit breaker.
func NewEmailSender(ctx context.Context, cfg *config.Config, logger *zap.Logger) (EmailSender, error) {
	switch cfg.MailDriver {
	case "", "log":
		if cfg.IsProduction() {
			logger.Warn("log mail driver in production: reset tokens will be written to the log")
		}
		return NewLogSender(logger), nil
	case "smtp":
		if cfg.SMTPHost == "" || cfg.SMTPFrom == "" {
			return nil, fmt.Errorf("smtp mail driver requires SMTP_HOST and SMTP_FROM")
		}
		smtpSender := &SMTPSender{
			Host:   cfg.SMTPHost,
			Port:   cfg.SMTPPort,
			User:   cfg.SMTPUser,
			Pass:   cfg.SMTPPassword,
			From:   cfg.SMTPFrom,
			UseTLS: cfg.SMTPUseTLS,
		}
		return NewBreakerSender("smtp", smtpSender, logger), nil
	case "ses":
		if cfg.AWSRegion == "" || cfg.SESSender == "" {
			return nil, fmt.Errorf("ses mail driver requires AWS_REGION and SES_SENDER")
		}
		awsCfg, err := config.LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewBreakerSender("ses", NewSESSender(awsCfg, cfg.SESSender), logger), nil
	default:
		return nil, fmt.Errorf("unknown MAIL_DRIVER %q", cfg.MailDriver)
	}
}
