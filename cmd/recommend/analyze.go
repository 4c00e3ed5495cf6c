package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"job-recommender/internal/jobs"
	"job-recommender/internal/recommend"
)

var (
	resumePath string
	withJobs   bool
	asJSON     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume and optionally fetch job recommendations",
	Long:  "Extracts text from a PDF resume, prints the summary, skill gaps and roadmap, and with --jobs searches both job boards using keywords derived from the summary.",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&resumePath, "resume", "r", "", "path to the resume PDF")
	analyzeCmd.Flags().BoolVar(&withJobs, "jobs", false, "also fetch job recommendations")
	analyzeCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	_ = analyzeCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(analyzeCmd)
}

type report struct {
	Summary  string        `json:"summary"`
	Gaps     string        `json:"gaps"`
	Roadmap  string        `json:"roadmap"`
	Keywords string        `json:"keywords,omitempty"`
	Sources  []jobs.Result `json:"sources,omitempty"`
	Warnings []string      `json:"warnings"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(resumePath)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}

	app, err := loadApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rep, err := buildReport(ctx, app.Service, recommend.Upload{FileName: filepath.Base(resumePath), Data: data}, withJobs)
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), rep)
	}
	writeText(cmd.OutOrStdout(), rep)
	return nil
}

func buildReport(ctx context.Context, svc *recommend.Service, upload recommend.Upload, fetchJobs bool) (report, error) {
	analysis, err := svc.Analyze(ctx, upload)
	if err != nil {
		return report{}, err
	}
	rep := report{
		Summary:  analysis.Summary,
		Gaps:     analysis.Gaps,
		Roadmap:  analysis.Roadmap,
		Warnings: []string{},
	}
	for _, w := range analysis.Warnings {
		rep.Warnings = append(rep.Warnings, w.Message())
	}
	if !fetchJobs {
		return rep, nil
	}

	recs, err := svc.Recommend(ctx, analysis.Summary)
	if err != nil {
		return report{}, err
	}
	rep.Keywords = recs.Keywords
	rep.Sources = recs.Sources
	for _, w := range recs.Warnings {
		rep.Warnings = append(rep.Warnings, w.Message())
	}
	return rep, nil
}

func writeJSON(w io.Writer, rep report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func writeText(w io.Writer, rep report) {
	for _, warning := range rep.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	section(w, "Resume Summary", rep.Summary)
	section(w, "Skill Gaps & Missing Areas", rep.Gaps)
	section(w, "Future Roadmap & Preparation Strategy", rep.Roadmap)
	if rep.Sources == nil {
		return
	}

	fmt.Fprintf(w, "\nExtracted Job Keywords: %s\n", rep.Keywords)
	for _, src := range rep.Sources {
		fmt.Fprintf(w, "\n== Top %s Jobs ==\n", src.Label)
		if src.Empty() {
			fmt.Fprintf(w, "No %s jobs found.\n", src.Label)
			continue
		}
		for _, l := range src.Listings {
			fmt.Fprintf(w, "- %s at %s\n  Location: %s\n", l.Title, l.CompanyName, l.Location)
			if l.URL != "" {
				fmt.Fprintf(w, "  %s\n", l.URL)
			}
		}
	}
}

func section(w io.Writer, title, body string) {
	fmt.Fprintf(w, "\n== %s ==\n%s\n", title, strings.TrimRight(body, "\n"))
}
