package llm

import (
	"context"
	"fmt"
	"time"

	"job-recommender/internal/shared/metrics"
	"job-recommender/internal/shared/telemetry"
)

// Result is the outcome of a single completion call: either Text or Err is meaningful.
type Result struct {
	Text string
	Err  error
}

// OK reports whether the call succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Resolve maps a failed result to fallback and reports why. Successful text is
// returned verbatim.
func (r Result) Resolve(fallback string) (string, *Warning) {
	if r.OK() {
		return r.Text, nil
	}
	return fallback, &Warning{Reason: r.Err.Error()}
}

// Warning is the non-fatal notice produced when a stage falls back.
type Warning struct {
	Stage  string `json:"stage"`
	Reason string `json:"reason"`
}

// Message is the user-facing warning text.
func (w Warning) Message() string {
	return "AI service unavailable: " + w.Reason
}

// Call performs exactly one completion. A nil client or a panicking client is
// reported as a failed Result.
func Call(ctx context.Context, client Client, prompt string, maxTokens int) (res Result) {
	if client == nil {
		return Result{Err: ErrNotConfigured}
	}
	defer func() {
		if rec := recover(); rec != nil {
			res = Result{Err: fmt.Errorf("llm client panic: %v", rec)}
		}
	}()
	text, err := client.Complete(ctx, prompt, maxTokens)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Text: text}
}

// Request describes one guarded stage.
type Request struct {
	Stage     string
	Prompt    string
	MaxTokens int
	Fallback  string
}

// Guard wraps a Client so that any failure degrades to the request's fallback text.
type Guard struct {
	Client Client
}

// NewGuard constructs a Guard.
func NewGuard(client Client) *Guard {
	return &Guard{Client: client}
}

// Invoke runs the request once. It never fails: on error it returns req.Fallback
// and a Warning tagged with req.Stage.
func (g *Guard) Invoke(ctx context.Context, req Request) (string, *Warning) {
	var client Client
	if g != nil {
		client = g.Client
	}

	start := time.Now()
	res := Call(ctx, client, req.Prompt, req.MaxTokens)
	metrics.ObserveLLMCall(req.Stage, res.OK(), time.Since(start))

	text, warn := res.Resolve(req.Fallback)
	if warn != nil {
		warn.Stage = req.Stage
		telemetry.Warn("llm.fallback", map[string]any{
			"request_id": telemetry.RequestID(ctx),
			"stage":      req.Stage,
			"max_tokens": req.MaxTokens,
			"error":      warn.Reason,
		})
	}
	return text, warn
}
