package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"job-recommender/internal/jobs"
	"job-recommender/internal/llm"
	"job-recommender/internal/recommend"
)

type textExtractor struct{}

func (textExtractor) Extract(context.Context, []byte) (string, error) {
	return "5 years Python, ML, AWS", nil
}

type downLLM struct{}

func (downLLM) Complete(context.Context, string, int) (string, error) {
	return "", errors.New("offline")
}

type fixedSource struct {
	name, label string
	listings    []jobs.Listing
}

func (f fixedSource) Name() string  { return f.name }
func (f fixedSource) Label() string { return f.label }
func (f fixedSource) Search(context.Context, string, int) ([]jobs.Listing, error) {
	return f.listings, nil
}

func testService() *recommend.Service {
	return recommend.NewService(textExtractor{}, llm.NewGuard(downLLM{}), llm.DefaultCatalog(), []jobs.Source{
		fixedSource{name: jobs.LinkedInName, label: "LinkedIn", listings: []jobs.Listing{{Title: "ML Engineer", CompanyName: "Acme", Location: "Pune", URL: "https://example.com/1"}}},
		fixedSource{name: jobs.NaukriName, label: "Naukri"},
	}, 60)
}

func TestBuildReportWithJobsText(t *testing.T) {
	rep, err := buildReport(context.Background(), testService(), recommend.Upload{FileName: "cv.pdf", Data: []byte("%PDF")}, true)
	if err != nil {
		t.Fatalf("buildReport: %v", err)
	}
	if len(rep.Warnings) != 4 {
		t.Fatalf("expected 4 warnings, got %d", len(rep.Warnings))
	}

	var buf bytes.Buffer
	writeText(&buf, rep)
	out := buf.String()
	for _, want := range []string{
		"warning: AI service unavailable: offline",
		"== Resume Summary ==",
		"Extracted Job Keywords: Data Scientist, Machine Learning Engineer, AI Engineer, Python Developer",
		"- ML Engineer at Acme",
		"No Naukri jobs found.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBuildReportWithoutJobsJSON(t *testing.T) {
	rep, err := buildReport(context.Background(), testService(), recommend.Upload{FileName: "cv.pdf", Data: []byte("%PDF")}, false)
	if err != nil {
		t.Fatalf("buildReport: %v", err)
	}
	var buf bytes.Buffer
	if err := writeJSON(&buf, rep); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := decoded["sources"]; ok {
		t.Fatalf("sources should be omitted without --jobs")
	}
	if decoded["gaps"] != llm.DefaultCatalog().Gaps.Fallback {
		t.Fatalf("gaps = %v", decoded["gaps"])
	}
}

func TestBuildReportRejectsNonPDF(t *testing.T) {
	_, err := buildReport(context.Background(), testService(), recommend.Upload{FileName: "cv.txt", Data: []byte("x")}, false)
	if !errors.Is(err, recommend.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "recommend dev" {
		t.Fatalf("version output = %q", buf.String())
	}
}
