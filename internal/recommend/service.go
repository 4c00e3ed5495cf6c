package recommend

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"job-recommender/internal/extract"
	"job-recommender/internal/jobs"
	"job-recommender/internal/llm"
	"job-recommender/internal/shared/metrics"
	"job-recommender/internal/shared/telemetry"
	"job-recommender/internal/shared/util"
)

// DefaultRows is the number of listings requested from each source.
const DefaultRows = 60

// Extractor turns an uploaded document into plain text.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// Service orchestrates resume analysis and job recommendations.
type Service struct {
	Extractor Extractor
	Guard     *llm.Guard
	Prompts   llm.Catalog
	Sources   []jobs.Source
	Rows      int
}

// NewService constructs a Service. rows <= 0 uses DefaultRows.
func NewService(extractor Extractor, guard *llm.Guard, prompts llm.Catalog, sources []jobs.Source, rows int) *Service {
	if rows <= 0 {
		rows = DefaultRows
	}
	return &Service{
		Extractor: extractor,
		Guard:     guard,
		Prompts:   prompts,
		Sources:   sources,
		Rows:      rows,
	}
}

type resumeData struct {
	ResumeText string
}

type summaryData struct {
	Summary string
}

// Analyze extracts the resume text and runs the analysis stages. Extraction
// failures are returned wrapped in extract.ErrUnreadableDocument.
func (s *Service) Analyze(ctx context.Context, upload Upload) (Analysis, error) {
	if !extract.IsPDFName(upload.FileName) {
		metrics.IncResumeUpload("rejected")
		return Analysis{}, fmt.Errorf("%w: only .pdf files are supported", ErrInvalidInput)
	}

	text, err := s.Extractor.Extract(ctx, upload.Data)
	if err != nil {
		metrics.IncResumeUpload("unreadable")
		telemetry.Warn("resume.extract_failed", map[string]any{
			"file_name":   upload.FileName,
			"size_bytes":  len(upload.Data),
			"fingerprint": util.Fingerprint(upload.Data),
			"error":       err.Error(),
		})
		return Analysis{}, err
	}
	metrics.IncResumeUpload("extracted")
	telemetry.Info("resume.extracted", map[string]any{
		"file_name":   upload.FileName,
		"size_bytes":  len(upload.Data),
		"fingerprint": util.Fingerprint(upload.Data),
		"text_chars":  len(text),
	})

	return s.AnalyzeText(ctx, text)
}

// AnalyzeText runs the summary, gaps and roadmap stages concurrently over
// resume text. Model failures degrade to fallbacks and never fail the call.
func (s *Service) AnalyzeText(ctx context.Context, resumeText string) (Analysis, error) {
	data := resumeData{ResumeText: resumeText}
	stages := []struct {
		name   string
		prompt llm.Prompt
	}{
		{llm.StageSummary, s.Prompts.Summary},
		{llm.StageGaps, s.Prompts.Gaps},
		{llm.StageRoadmap, s.Prompts.Roadmap},
	}

	requests := make([]llm.Request, len(stages))
	for i, st := range stages {
		req, err := st.prompt.Request(st.name, data)
		if err != nil {
			return Analysis{}, err
		}
		requests[i] = req
	}

	texts := make([]string, len(requests))
	warns := make([]*llm.Warning, len(requests))
	var g errgroup.Group
	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			texts[i], warns[i] = s.Guard.Invoke(ctx, req)
			return nil
		})
	}
	_ = g.Wait()

	return Analysis{
		Summary:  texts[0],
		Gaps:     texts[1],
		Roadmap:  texts[2],
		Warnings: collectWarnings(warns...),
	}, nil
}

// Recommend derives search keywords from summary and queries every source.
func (s *Service) Recommend(ctx context.Context, summary string) (Recommendations, error) {
	if strings.TrimSpace(summary) == "" {
		return Recommendations{}, fmt.Errorf("%w: summary is required", ErrInvalidInput)
	}

	req, err := s.Prompts.Keywords.Request(llm.StageKeywords, summaryData{Summary: summary})
	if err != nil {
		return Recommendations{}, err
	}
	raw, warn := s.Guard.Invoke(ctx, req)
	keywords := CleanKeywords(raw)

	telemetry.Info("recommend.keywords", map[string]any{
		"keywords": keywords,
		"fallback": warn != nil,
		"rows":     s.Rows,
	})

	return Recommendations{
		Keywords: keywords,
		Sources:  jobs.SearchAll(ctx, s.Sources, keywords, s.Rows),
		Warnings: collectWarnings(warn),
	}, nil
}

func collectWarnings(warns ...*llm.Warning) []llm.Warning {
	out := make([]llm.Warning, 0, len(warns))
	for _, w := range warns {
		if w != nil {
			out = append(out, *w)
		}
	}
	return out
}
