// Package retry re-runs a whole transaction when MySQL reports a transient
// conflict between concurrent writers.
package retry

import (
	"context"
	"database/sql/driver"
	"errors"
	"math"
	"math/rand"
	"time"

	"greencity/config"
	"greencity/pkg/logger"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// MySQL server error numbers treated as transient.
const (
	erLockDeadlock    = 1213
	erLockWaitTimeout = 1205
)

// Policy bounds how many times and how fast a transaction is retried.
type Policy struct {
	Enabled       bool
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	Jitter        bool
	OnDeadlock    bool
	OnLockTimeout bool
}

var DefaultPolicy = Policy{
	Enabled:       true,
	MaxAttempts:   3,
	InitialDelay:  100 * time.Millisecond,
	MaxDelay:      2 * time.Second,
	BackoffFactor: 2.0,
	Jitter:        true,
	OnDeadlock:    true,
	OnLockTimeout: true,
}

// NoRetry runs every transaction exactly once.
var NoRetry = Policy{}

func NewPolicy(cfg config.RetryConfig) Policy {
	p := Policy{
		Enabled:       cfg.Enabled,
		MaxAttempts:   cfg.MaxAttempts,
		InitialDelay:  cfg.InitialDelay,
		MaxDelay:      cfg.MaxDelay,
		BackoffFactor: cfg.BackoffFactor,
		Jitter:        cfg.JitterEnabled,
		OnDeadlock:    cfg.RetryOnDeadlock,
		OnLockTimeout: cfg.RetryOnLockTimeout,
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}
	if p.BackoffFactor < 1 {
		p.BackoffFactor = 1
	}
	return p
}

// Delay is the wait before attempt+1. Jitter spreads it by ±20%.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	d := float64(p.InitialDelay) * math.Pow(p.BackoffFactor, float64(attempt-1))
	d = math.Min(d, float64(p.MaxDelay))
	if p.Jitter {
		d *= 0.8 + rand.Float64()*0.4
	}
	return time.Duration(math.Max(d, 0))
}

// Retryable reports whether err is a deadlock, a lock wait timeout or a dropped connection.
func (p Policy) Retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case erLockDeadlock:
			return p.OnDeadlock
		case erLockWaitTimeout:
			return p.OnLockTimeout
		}
		return false
	}
	return errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysqlDriver.ErrInvalidConn)
}

// Do runs fn until it succeeds, fails permanently or runs out of attempts.
// Every call of fn must be a complete transaction.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if !p.Enabled || p.MaxAttempts <= 1 {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == p.MaxAttempts || !p.Retryable(err) {
			return err
		}

		delay := p.Delay(attempt)
		logger.FromContext(ctx).Warn("Retrying transaction",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
	return err
}
