package llm

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts/default.yaml
var defaultCatalogYAML []byte

// Stage names used for prompts, warnings and metrics.
const (
	StageSummary  = "summary"
	StageGaps     = "gaps"
	StageRoadmap  = "roadmap"
	StageKeywords = "keywords"
)

// Prompt is one catalog entry.
type Prompt struct {
	Template  string `yaml:"template"`
	MaxTokens int    `yaml:"max_tokens"`
	Fallback  string `yaml:"fallback"`
}

// Catalog holds the prompts for every guarded stage.
type Catalog struct {
	Summary  Prompt `yaml:"summary"`
	Gaps     Prompt `yaml:"gaps"`
	Roadmap  Prompt `yaml:"roadmap"`
	Keywords Prompt `yaml:"keywords"`
}

// DefaultCatalog returns the embedded prompt catalog.
func DefaultCatalog() Catalog {
	var c Catalog
	if err := yaml.Unmarshal(defaultCatalogYAML, &c); err != nil {
		panic(fmt.Sprintf("embedded prompt catalog: %v", err))
	}
	return c
}

// LoadCatalog overlays the YAML file at path on the defaults. Entries or fields
// missing from the file keep their default values. An empty path returns the defaults.
func LoadCatalog(path string) (Catalog, error) {
	base := DefaultCatalog()
	if strings.TrimSpace(path) == "" {
		return base, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read prompt catalog %s: %w", path, err)
	}
	var override Catalog
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return Catalog{}, fmt.Errorf("parse prompt catalog %s: %w", path, err)
	}
	merged := Catalog{
		Summary:  mergePrompt(base.Summary, override.Summary),
		Gaps:     mergePrompt(base.Gaps, override.Gaps),
		Roadmap:  mergePrompt(base.Roadmap, override.Roadmap),
		Keywords: mergePrompt(base.Keywords, override.Keywords),
	}
	if err := merged.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("prompt catalog %s: %w", path, err)
	}
	return merged, nil
}

func mergePrompt(base, override Prompt) Prompt {
	if override.Template != "" {
		base.Template = override.Template
	}
	if override.MaxTokens != 0 {
		base.MaxTokens = override.MaxTokens
	}
	if override.Fallback != "" {
		base.Fallback = override.Fallback
	}
	return base
}

// Validate checks every entry has a parseable template, a fallback and a positive budget.
func (c Catalog) Validate() error {
	var errs []error
	for _, entry := range []struct {
		stage  string
		prompt Prompt
	}{
		{StageSummary, c.Summary},
		{StageGaps, c.Gaps},
		{StageRoadmap, c.Roadmap},
		{StageKeywords, c.Keywords},
	} {
		p := entry.prompt
		if strings.TrimSpace(p.Template) == "" {
			errs = append(errs, fmt.Errorf("%s: template is required", entry.stage))
		} else if _, err := template.New(entry.stage).Parse(p.Template); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", entry.stage, err))
		}
		if p.Fallback == "" {
			errs = append(errs, fmt.Errorf("%s: fallback is required", entry.stage))
		}
		if p.MaxTokens <= 0 {
			errs = append(errs, fmt.Errorf("%s: max_tokens must be positive", entry.stage))
		}
	}
	return errors.Join(errs...)
}

// Render executes the template against data.
func (p Prompt) Render(data any) (string, error) {
	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(p.Template)
	if err != nil {
		return "", fmt.Errorf("parse prompt: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}

// Request renders the prompt into a guarded request for stage.
func (p Prompt) Request(stage string, data any) (Request, error) {
	text, err := p.Render(data)
	if err != nil {
		return Request{}, fmt.Errorf("%s: %w", stage, err)
	}
	return Request{
		Stage:     stage,
		Prompt:    text,
		MaxTokens: p.MaxTokens,
		Fallback:  p.Fallback,
	}, nil
}
