package rewriting

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/jonathan/resume-rewriter/internal/config"
	"github.com/jonathan/resume-rewriter/internal/llm"
	"github.com/jonathan/resume-rewriter/internal/logging"
)

var (
	enabled  = config.GenerationSettings{Enabled: true, APIKey: "test-key"}
	disabled = config.GenerationSettings{Enabled: false, APIKey: "test-key"}
)

// fakeGenerator answers every request with respond and records what it was sent.
type fakeGenerator struct {
	mu       sync.Mutex
	respond  func(ctx context.Context, req llm.Request) (*llm.Response, error)
	requests []llm.Request
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	dials    atomic.Int32
	closes   atomic.Int32
	apiKeys  []string
	dialErr  error
}

func replyText(text string) *fakeGenerator {
	return &fakeGenerator{respond: func(context.Context, llm.Request) (*llm.Response, error) {
		return llm.NewTextResponse(text), nil
	}}
}

func replyWith(resp *llm.Response, err error) *fakeGenerator {
	return &fakeGenerator{respond: func(context.Context, llm.Request) (*llm.Response, error) {
		return resp, err
	}}
}

func (f *fakeGenerator) dial(_ context.Context, apiKey string) (llm.Generator, error) {
	f.dials.Add(1)
	f.mu.Lock()
	f.apiKeys = append(f.apiKeys, apiKey)
	f.mu.Unlock()
	if f.dialErr != nil {
		return nil, f.dialErr
	}
	return f, nil
}

func (f *fakeGenerator) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	current := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if current <= seen || f.maxSeen.CompareAndSwap(seen, current) {
			break
		}
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	return f.respond(ctx, req)
}

func (f *fakeGenerator) Close() error {
	f.closes.Add(1)
	return nil
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeGenerator) lastRequest() llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func newTestOrchestrator(gen *fakeGenerator, opts ...Option) *Orchestrator {
	base := []Option{WithLogger(logging.Discard()), WithModels(llm.DefaultGeminiConfig())}
	return New(gen.dial, append(base, opts...)...)
}
