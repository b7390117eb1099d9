package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"compliance-prefilter/internal/resilience/circuitbreaker"
	"compliance-prefilter/internal/resilience/retry"
)

// GuardConfig selects the reliability layers placed around a Backend.
type GuardConfig struct {
	// Retry policy. A MaxAttempts of 1 fails fast.
	Retry retry.Config

	// RateLimit in requests per second. Zero disables limiting.
	RateLimit float64

	// CircuitBreaker enables a breaker when non-nil.
	CircuitBreaker *circuitbreaker.Config
}

// enabled reports whether any layer is active.
func (c GuardConfig) enabled() bool {
	return c.Retry.MaxAttempts > 1 || c.RateLimit > 0 || c.CircuitBreaker != nil
}

// Guard decorates a Backend with rate limiting, retry and a circuit breaker.
// Each attempt waits for the limiter, then runs through the breaker.
type Guard struct {
	next     Backend
	retryCfg retry.Config
	limiter  *rate.Limiter
	breaker  *circuitbreaker.CircuitBreaker
}

// NewGuard wraps next with the layers enabled in cfg.
func NewGuard(next Backend, cfg GuardConfig) *Guard {
	g := &Guard{next: next, retryCfg: cfg.Retry}
	if cfg.RateLimit > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	if cfg.CircuitBreaker != nil {
		g.breaker = circuitbreaker.New(*cfg.CircuitBreaker)
	}
	return g
}

// Name implements Backend.
func (g *Guard) Name() string {
	return g.next.Name()
}

// Complete implements Backend.
func (g *Guard) Complete(ctx context.Context, prompt string) (string, error) {
	var reply string
	err := retry.WithBackoff(ctx, g.retryCfg, func() error {
		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				return fmt.Errorf("rate limit wait: %w", err)
			}
		}

		if g.breaker == nil {
			r, err := g.next.Complete(ctx, prompt)
			reply = r
			return err
		}

		result, err := g.breaker.Execute(func() (interface{}, error) {
			return g.next.Complete(ctx, prompt)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.WarnContext(ctx, "inference circuit breaker open, request rejected",
					slog.String("service", g.breaker.Name()),
					slog.String("state", g.breaker.State().String()))
				return fmt.Errorf("%s unavailable: circuit breaker open", g.breaker.Name())
			}
			return err
		}

		reply = result.(string)
		return nil
	})
	if err != nil {
		return "", err
	}
	return reply, nil
}
