// Package breaker stops hammering a language model backend that keeps failing.
package breaker

import (
	"context"
	"errors"
	"time"

	"notegraph-be/internal/pkg/logger"
	"notegraph-be/pkg/llm"

	"github.com/sony/gobreaker"
)

type Settings struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// TripRatio of failed requests opens the circuit once at least MinRequests were seen.
	TripRatio   float64
	MinRequests uint32
}

type Provider struct {
	next   llm.LLMProvider
	cb     *gobreaker.CircuitBreaker
	logger logger.ILogger
}

var _ llm.LLMProvider = &Provider{}

func New(next llm.LLMProvider, s Settings, log logger.ILogger) *Provider {
	if s.MinRequests == 0 {
		s.MinRequests = 3
	}
	if s.TripRatio <= 0 {
		s.TripRatio = 0.6
	}

	st := gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= s.TripRatio
		},
		// caller cancellation says nothing about backend health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if log != nil {
				log.Warn("LLM_BREAKER", "Circuit state changed", map[string]interface{}{
					"name": name,
					"from": from.String(),
					"to":   to.String(),
				})
			}
		},
	}

	return &Provider{next: next, cb: gobreaker.NewCircuitBreaker(st), logger: log}
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	out, err := p.cb.Execute(func() (interface{}, error) {
		return p.next.Chat(ctx, history, opts...)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func (p *Provider) State() gobreaker.State {
	return p.cb.State()
}
