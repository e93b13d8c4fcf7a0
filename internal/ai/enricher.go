package ai

import (
	"context"
	"errors"

	"github.com/nikbrunner/nexus/internal/config"
	"github.com/nikbrunner/nexus/internal/logger"
	"github.com/sony/gobreaker"
)

// Analyzer turns a URL into metadata. Implementations never fail: errors
// are reported through Analysis.Fallback and Analysis.Err.
type Analyzer interface {
	Analyze(ctx context.Context, url string) Analysis
}

// Suggester is the raw model call behind an Enricher.
type Suggester interface {
	Suggest(ctx context.Context, url string, hints string) (*Metadata, error)
}

// Enricher calls a Suggester once per request through a circuit breaker
// and maps every failure to Fallback.
type Enricher struct {
	client  Suggester
	breaker *gobreaker.CircuitBreaker
	log     logger.Logger

	// Hints, when set, supplies the collection context for the prompt.
	Hints func() string
}

// NewEnricher creates an Enricher. client may be nil when no API key is
// configured, in which case every analysis returns the fallback.
func NewEnricher(client Suggester, cfg config.BreakerConfig, log logger.Logger) *Enricher {
	e := &Enricher{client: client, log: log}

	e.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "anthropic",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			// A cancelled request says nothing about the service
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return e
}

// Analyze performs a single attempt and never retries.
func (e *Enricher) Analyze(ctx context.Context, url string) Analysis {
	if e.client == nil {
		return e.fallback(url, ErrNoAPIKey)
	}

	hints := ""
	if e.Hints != nil {
		hints = e.Hints()
	}

	result, err := e.breaker.Execute(func() (interface{}, error) {
		return e.client.Suggest(ctx, url, hints)
	})
	if err != nil {
		return e.fallback(url, err)
	}

	md, ok := result.(*Metadata)
	if !ok || md == nil {
		return e.fallback(url, ErrInvalidResponse)
	}

	e.log.Debug("analyzed url", logger.String("url", url), logger.String("category", md.Category))
	return Analysis{URL: url, Metadata: *md}
}

// State reports the breaker state, mostly for diagnostics.
func (e *Enricher) State() gobreaker.State {
	return e.breaker.State()
}

func (e *Enricher) fallback(url string, err error) Analysis {
	e.log.Warn("url analysis failed, using fallback",
		logger.String("url", url),
		logger.Error(err))
	return Analysis{URL: url, Metadata: Fallback(), Fallback: true, Err: err}
}

// AnalyzeAsync runs a.Analyze in its own goroutine. The channel is buffered
// so the goroutine finishes even if nobody reads the result.
func AnalyzeAsync(ctx context.Context, a Analyzer, url string) <-chan Analysis {
	ch := make(chan Analysis, 1)
	go func() {
		ch <- a.Analyze(ctx, url)
	}()
	return ch
}
