package ai

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nikbrunner/nexus/internal/config"
	"github.com/nikbrunner/nexus/internal/logger"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSuggester struct {
	calls int32
	md    *Metadata
	err   error
	hints string
}

func (s *stubSuggester) Suggest(_ context.Context, _ string, hints string) (*Metadata, error) {
	atomic.AddInt32(&s.calls, 1)
	s.hints = hints
	return s.md, s.err
}

func breakerConfig() config.BreakerConfig {
	return config.BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      2,
	}
}

func TestEnricher_Success(t *testing.T) {
	stub := &stubSuggester{md: &Metadata{Title: "Go", Category: "Languages", Tags: []string{"go"}}}
	e := NewEnricher(stub, breakerConfig(), logger.NewNop())
	e.Hints = func() string { return "hints" }

	a := e.Analyze(context.Background(), "https://go.dev")

	assert.False(t, a.Fallback)
	assert.NoError(t, a.Err)
	assert.Equal(t, "https://go.dev", a.URL)
	assert.Equal(t, "Go", a.Metadata.Title)
	assert.Equal(t, "hints", stub.hints)
}

func TestEnricher_FailureIsFallback(t *testing.T) {
	stub := &stubSuggester{err: ErrAPIRequest}
	e := NewEnricher(stub, breakerConfig(), logger.NewNop())

	a := e.Analyze(context.Background(), "https://x")

	assert.True(t, a.Fallback)
	assert.ErrorIs(t, a.Err, ErrAPIRequest)
	assert.Equal(t, Fallback(), a.Metadata)
	assert.EqualValues(t, 1, stub.calls, "must not retry")
}

func TestEnricher_NoClient(t *testing.T) {
	e := NewEnricher(nil, breakerConfig(), logger.NewNop())

	a := e.Analyze(context.Background(), "https://x")

	assert.True(t, a.Fallback)
	assert.ErrorIs(t, a.Err, ErrNoAPIKey)
	assert.Equal(t, "Unknown site", a.Metadata.Title)
	assert.Equal(t, []string{"to-sort"}, a.Metadata.Tags)
}

func TestEnricher_NilMetadataIsInvalid(t *testing.T) {
	e := NewEnricher(&stubSuggester{}, breakerConfig(), logger.NewNop())

	a := e.Analyze(context.Background(), "https://x")
	assert.True(t, a.Fallback)
	assert.ErrorIs(t, a.Err, ErrInvalidResponse)
}

func TestEnricher_BreakerOpens(t *testing.T) {
	stub := &stubSuggester{err: errors.New("connection refused")}
	e := NewEnricher(stub, breakerConfig(), logger.NewNop())

	e.Analyze(context.Background(), "https://a")
	e.Analyze(context.Background(), "https://b")
	require.Equal(t, gobreaker.StateOpen, e.State())

	a := e.Analyze(context.Background(), "https://c")
	assert.True(t, a.Fallback)
	assert.ErrorIs(t, a.Err, gobreaker.ErrOpenState)
	assert.EqualValues(t, 2, stub.calls, "open breaker must not call the service")
}

func TestEnricher_CancelledRequestsKeepBreakerClosed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	e := NewEnricher(client, breakerConfig(), logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, url := range []string{"https://a", "https://b", "https://c"} {
		a := e.Analyze(ctx, url)
		assert.True(t, a.Fallback)
		assert.ErrorIs(t, a.Err, context.Canceled)
	}
	assert.Equal(t, gobreaker.StateClosed, e.State())
}

func TestAnalyzeAsync(t *testing.T) {
	stub := &stubSuggester{md: &Metadata{Title: "Async"}}
	e := NewEnricher(stub, breakerConfig(), logger.NewNop())

	select {
	case a := <-AnalyzeAsync(context.Background(), e, "https://x"):
		assert.Equal(t, "Async", a.Metadata.Title)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for analysis")
	}
}

func TestAnalyzeAsync_AbandonedDoesNotBlock(t *testing.T) {
	stub := &stubSuggester{md: &Metadata{Title: "Late"}}
	e := NewEnricher(stub, breakerConfig(), logger.NewNop())

	// Nobody reads the channel; the buffered send must still complete.
	_ = AnalyzeAsync(context.Background(), e, "https://x")
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&stub.calls) == 1
	}, time.Second, 10*time.Millisecond)
}
