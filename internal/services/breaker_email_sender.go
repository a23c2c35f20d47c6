package services

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	breakerMaxFailures = 5
	breakerOpenTimeout = 30 * time.Second
)

// BreakerSender stops calling a failing mail backend for a while after
// breakerMaxFailures consecutive errors. While open, Send returns
// gobreaker.ErrOpenState immediately.
type BreakerSender struct {
	next EmailSender
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerSender(name string, next EmailSender, logger *zap.Logger) *BreakerSender {
	log := logger.Named("mail.breaker")
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerMaxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("mail circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &BreakerSender{next: next, cb: cb}
}

func (s *BreakerSender) Send(ctx context.Context, to string, subject string, body string) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.next.Send(ctx, to, subject, body)
	})
	return err
}

func (s *BreakerSender) State() gobreaker.State {
	return s.cb.State()
}
