package llm

import (
	"context"
	"time"

	"github.com/vytor/lumina/internal/logger"
)

type loggingProvider struct {
	inner Provider
}

// WithLogging logs every attempt with its latency and token usage.
func WithLogging(p Provider) Provider {
	return &loggingProvider{inner: p}
}

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	log := logger.FromContext(ctx).WithPrefix("llm").WithField("model", l.inner.ModelID())
	if req.Schema != nil {
		log = log.WithField("schema", req.Schema.Name)
	}

	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	if err != nil {
		log.Warn("generate failed after %v: %v", time.Since(start), err)
		return nil, err
	}
	log.Debug("generate ok in %v: in=%d out=%d tokens", time.Since(start), resp.Usage.InputTokens, resp.Usage.OutputTokens)
	return resp, nil
}

func (l *loggingProvider) ModelID() string {
	return l.inner.ModelID()
}

type timeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout bounds each Generate call. A zero timeout disables the bound.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &timeoutProvider{inner: p, timeout: d}
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *timeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
