// Package rewriting wraps the generation service in a fallback chain. Every call ends in a
// terminal state with text that satisfies its FormatContract, whatever the service did.
package rewriting

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-rewriter/internal/config"
	"github.com/jonathan/resume-rewriter/internal/highlight"
	"github.com/jonathan/resume-rewriter/internal/llm"
	"github.com/jonathan/resume-rewriter/internal/structured"
	"github.com/jonathan/resume-rewriter/internal/types"
	"golang.org/x/sync/errgroup"
)

// maxBodySnippet bounds the provider body quoted in a response-error diagnostic.
const maxBodySnippet = 200

// Orchestrator runs rewrite calls. It holds no per-call state and is safe for concurrent use.
type Orchestrator struct {
	dial       llm.DialFunc
	models     *llm.Config
	logger     *slog.Logger
	timeout    time.Duration
	profiles   map[types.ContentType]Profile
	structured Profile
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithModels sets the model configuration used to resolve each profile's tier.
func WithModels(models *llm.Config) Option {
	return func(o *Orchestrator) {
		o.models = models
	}
}

// WithTimeout bounds each generation round trip. Expiry is reported as TRANSPORT_EXCEPTION.
// Zero means no deadline beyond the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.timeout = d
	}
}

// WithProfile replaces the profile for p.ContentType, or the structured profile when
// p.ContentType is types.ContentStructured.
func WithProfile(p Profile) Option {
	return func(o *Orchestrator) {
		if p.ContentType == types.ContentStructured {
			o.structured = p
			return
		}
		o.profiles[p.ContentType] = p
	}
}

// New creates an Orchestrator. dial creates one Generator per call; when nil, a dialer for the
// configured models is used.
func New(dial llm.DialFunc, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		dial:       dial,
		models:     llm.DefaultConfig(),
		logger:     slog.Default(),
		profiles:   Profiles(),
		structured: StructuredProfile(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.dial == nil {
		o.dial = llm.NewDialer(o.models)
	}
	return o
}

// Profile returns the profile the orchestrator uses for a content type.
func (o *Orchestrator) Profile(ct types.ContentType) (Profile, bool) {
	if ct == types.ContentStructured {
		return o.structured, true
	}
	p, ok := o.profiles[ct]
	return p, ok
}

// Rewrite rewrites the fragments of one request. Checks run in order: generation flag,
// credential, empty input. Failures never escape; they are reported in the result's Error with
// locally fitted text in place of the generated one.
func (o *Orchestrator) Rewrite(ctx context.Context, settings config.GenerationSettings, req types.RewriteRequest) types.RewriteResult {
	start := time.Now()
	logger := o.logger.With("call_id", uuid.NewString(), "content_type", req.ContentType)

	profile, ok := o.profiles[req.ContentType]
	if !ok {
		err := &InputError{Message: fmt.Sprintf("unsupported content type %q", req.ContentType)}
		return o.complete(logger, start, profile, req.ContentType, types.StateEmptyInput, err, output{})
	}
	if err := req.Validate(); err != nil {
		return o.complete(logger, start, profile, req.ContentType, types.StateEmptyInput, &InputError{Message: "invalid request", Cause: err}, output{})
	}

	contract := profile.Contract
	if req.Contract != nil {
		contract = req.Contract.Merge(profile.Contract)
	}
	d := newDraft(profile.Shape, req.Fragments)
	if profile.Shape == ShapeBullets && contract.BulletCount == 0 {
		contract.BulletCount = len(d.bullets)
	}

	switch {
	case !settings.Enabled:
		return o.complete(logger, start, profile, req.ContentType, types.StateDisabled, nil, fitLocal(profile.Shape, contract, d))
	case !settings.HasCredential():
		err := &ConfigurationError{Message: msgMissingCredential}
		return o.complete(logger, start, profile, req.ContentType, types.StateMissingCredential, err, fitLocal(profile.Shape, contract, d))
	case d.empty():
		return o.complete(logger, start, profile, req.ContentType, types.StateEmptyInput, &InputError{Message: msgEmptyInput}, output{})
	}

	messages, err := buildMessages(profile, contract, d, req.Hints)
	if err != nil {
		err = &TransportError{Message: "failed to build request", Cause: err}
		return o.complete(logger, start, profile, req.ContentType, types.StateTransportException, err, fitLocal(profile.Shape, contract, d))
	}

	text, state, err := o.generate(ctx, logger, settings.APIKey, profile, messages)
	if err != nil {
		return o.complete(logger, start, profile, req.ContentType, state, err, fitLocal(profile.Shape, contract, d))
	}

	out := fitGenerated(profile.Shape, contract, d, text)
	if out.empty() {
		err := &TransportError{Message: "generation service returned no usable text", StatusCode: 200}
		return o.complete(logger, start, profile, req.ContentType, types.StateResponseError, err, fitLocal(profile.Shape, contract, d))
	}

	if profile.Shape == ShapeSingleLine {
		report := Review(out.Text)
		logger.Debug("style review", "strong_verb", report.StrongVerb, "quantified", report.Quantified, "buzzwords", report.Buzzwords)
	}
	return o.complete(logger, start, profile, req.ContentType, types.StateSuccess, nil, out)
}

// RewriteStructured rewrites a summary and labeled fields in one round trip. On top of the
// Rewrite states it can end in PARSE_FAILURE. The returned labels always equal the request's
// labels in the request's order.
func (o *Orchestrator) RewriteStructured(ctx context.Context, settings config.GenerationSettings, req types.StructuredRequest) types.RewriteResult {
	start := time.Now()
	logger := o.logger.With("call_id", uuid.NewString(), "content_type", types.ContentStructured)
	profile := o.structured

	caps := structured.CapsFor(req)
	fallback := structured.Fallback(req, caps)

	if err := req.Validate(); err != nil {
		return o.completeStructured(logger, start, profile, types.StateEmptyInput, &InputError{Message: "invalid request", Cause: err}, fallback)
	}

	switch {
	case !settings.Enabled:
		return o.completeStructured(logger, start, profile, types.StateDisabled, nil, fallback)
	case !settings.HasCredential():
		return o.completeStructured(logger, start, profile, types.StateMissingCredential, &ConfigurationError{Message: msgMissingCredential}, fallback)
	case len(fallback.Pieces()) == 0:
		return o.completeStructured(logger, start, profile, types.StateEmptyInput, &InputError{Message: msgEmptyInput}, fallback)
	}

	messages, err := structured.BuildMessages(req, caps, buildContext(req.Hints), profile.MaxInputChars)
	if err != nil {
		err = &TransportError{Message: "failed to build request", Cause: err}
		return o.completeStructured(logger, start, profile, types.StateTransportException, err, fallback)
	}

	text, state, err := o.generate(ctx, logger, settings.APIKey, profile, messages)
	if err != nil {
		return o.completeStructured(logger, start, profile, state, err, fallback)
	}

	switch outcome := structured.Parse(text).(type) {
	case structured.Parsed:
		return o.completeStructured(logger, start, profile, types.StateSuccess, nil, structured.Merge(outcome, req, caps))
	case structured.Unparseable:
		logger.Debug("unparseable structured response", "response", llm.Snippet(outcome.Raw, maxBodySnippet))
		err := &ParseError{Message: msgInvalidFormat, Reason: outcome.Reason}
		return o.completeStructured(logger, start, profile, types.StateParseFailure, err, fallback)
	default:
		err := &ParseError{Message: msgInvalidFormat}
		return o.completeStructured(logger, start, profile, types.StateParseFailure, err, fallback)
	}
}

// RewriteAll runs Rewrite for every request with at most limit calls in flight (limit <= 0
// means unbounded). Results are in request order and identical to sequential calls.
func (o *Orchestrator) RewriteAll(ctx context.Context, settings config.GenerationSettings, reqs []types.RewriteRequest, limit int) []types.RewriteResult {
	results := make([]types.RewriteResult, len(reqs))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := range reqs {
		g.Go(func() error {
			results[i] = o.Rewrite(ctx, settings, reqs[i])
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// generate performs the single round trip of a call. On failure it returns the terminal state
// to report.
func (o *Orchestrator) generate(ctx context.Context, logger *slog.Logger, apiKey string, p Profile, messages []llm.Message) (string, types.State, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	model := o.models.GetModel(p.Tier)
	logger.Debug("requesting generation", "state", types.StateRequesting, "tier", p.Tier, "model", model)

	gen, err := o.dial(ctx, apiKey)
	if err != nil {
		return "", types.StateTransportException, &TransportError{Message: "failed to create generation client", Cause: err}
	}
	defer func() { _ = gen.Close() }()

	resp, err := gen.Generate(ctx, llm.Request{
		Model:       model,
		Temperature: p.Temperature,
		MaxTokens:   p.MaxOutputTokens,
		Stop:        p.Stop,
		Messages:    messages,
	})
	if err != nil {
		return "", types.StateTransportException, &TransportError{Message: "generation request failed", Cause: err}
	}
	if resp == nil {
		return "", types.StateResponseError, &TransportError{Message: "generation service returned no response"}
	}
	if !resp.OK() {
		return "", types.StateResponseError, &TransportError{
			Message:    fmt.Sprintf("generation service returned status %d: %s", resp.StatusCode, llm.Snippet(resp.Body, maxBodySnippet)),
			StatusCode: resp.StatusCode,
		}
	}

	text, ok := resp.Text()
	if !ok || strings.TrimSpace(text) == "" {
		return "", types.StateResponseError, &TransportError{Message: "generation service returned no text", StatusCode: resp.StatusCode}
	}
	return text, types.StateRequesting, nil
}

func (o *Orchestrator) complete(logger *slog.Logger, start time.Time, p Profile, ct types.ContentType, state types.State, err error, out output) types.RewriteResult {
	result := types.RewriteResult{
		OK:          err == nil,
		ContentType: ct,
		State:       state,
		Text:        out.Text,
		Bullets:     out.Bullets,
		Highlights:  highlight.ExtractAll(out.pieces(), p.Keywords),
	}
	if err != nil {
		result.Error = err.Error()
	}
	logOutcome(logger, start, state, err)
	return result
}

func (o *Orchestrator) completeStructured(logger *slog.Logger, start time.Time, p Profile, state types.State, err error, res structured.Result) types.RewriteResult {
	result := types.RewriteResult{
		OK:          err == nil,
		ContentType: types.ContentStructured,
		State:       state,
		Summary:     res.Summary,
		Fields:      res.Fields,
		Highlights:  highlight.ExtractAll(res.Pieces(), p.Keywords),
	}
	if err != nil {
		result.Error = err.Error()
	}
	logOutcome(logger, start, state, err)
	return result
}

func logOutcome(logger *slog.Logger, start time.Time, state types.State, err error) {
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		logger.Warn("rewrite fell back to local output", "state", state, "error", err, "duration_ms", elapsed)
		return
	}
	logger.Debug("rewrite finished", "state", state, "duration_ms", elapsed)
}
