package services

import (
	"context"

	"go.uber.org/zap"
)

// LogSender writes messages to the logger instead of delivering them.
// Development only: the body carries the raw reset token.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger.Named("mail")}
}

func (s *LogSender) Send(_ context.Context, to string, subject string, body string) error {
	s.logger.Info("outgoing email (log driver)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
