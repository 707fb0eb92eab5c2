package breaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"notegraph-be/pkg/llm"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyProvider struct {
	calls int
	err   error
}

func (f *flakyProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "ok", nil
}

func (f *flakyProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, nil, opts...)
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	inner := &flakyProvider{err: errors.New("backend down")}
	p := New(inner, Settings{Name: "test", Timeout: time.Minute}, nil)

	for i := 0; i < 3; i++ {
		_, err := p.Generate(context.Background(), "q")
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, p.State())

	_, err := p.Generate(context.Background(), "q")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 3, inner.calls)
}

func TestBreakerIgnoresCancellation(t *testing.T) {
	inner := &flakyProvider{err: context.Canceled}
	p := New(inner, Settings{Name: "test"}, nil)

	for i := 0; i < 5; i++ {
		_, _ = p.Generate(context.Background(), "q")
	}
	assert.Equal(t, gobreaker.StateClosed, p.State())
}

func TestBreakerPassesThrough(t *testing.T) {
	p := New(&flakyProvider{}, Settings{Name: "test"}, nil)
	out, err := p.Generate(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}
