package health

// Service reports process readiness for the health endpoint.
type Service struct {
	provider  string
	llmReady  bool
	jobsReady bool
	sources   int
}

// NewService constructs a health service. llmReady is false when the placeholder
// client is in use; jobsReady is false without an Apify token.
func NewService(provider string, llmReady, jobsReady bool, sources int) *Service {
	return &Service{provider: provider, llmReady: llmReady, jobsReady: jobsReady, sources: sources}
}

// Status returns the health payload. The process is always ok; degraded
// dependencies only mean responses fall back to canned text or empty listings.
func (s *Service) Status() map[string]any {
	if s == nil {
		return map[string]any{"ok": true}
	}
	return map[string]any{
		"ok":          true,
		"llmProvider": s.provider,
		"llmReady":    s.llmReady,
		"jobsReady":   s.jobsReady,
		"jobSources":  s.sources,
		"degraded":    !s.llmReady || !s.jobsReady,
	}
}
