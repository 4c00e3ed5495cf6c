package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"job-recommender/internal/extract"
	"job-recommender/internal/jobs"
	"job-recommender/internal/llm"
	"job-recommender/internal/llm/gemini"
	"job-recommender/internal/llm/openai"
	"job-recommender/internal/recommend"
	"job-recommender/internal/services/health"
	"job-recommender/internal/shared/config"
	"job-recommender/internal/shared/metrics"
	"job-recommender/internal/shared/server"
	"job-recommender/internal/shared/server/middleware"
	"job-recommender/internal/shared/telemetry"
	"job-recommender/internal/web"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	LLM              llm.Client
	Prompts          llm.Catalog
	Sources          []jobs.Source
	Service          *recommend.Service
	RecommendHandler *recommend.Handler
	WebHandler       *web.Handler
	Health           *health.Service
}

// Options overrides dependencies for tests and the CLI. Nil fields are built from Config.
type Options struct {
	LLM       llm.Client
	Sources   []jobs.Source
	Extractor recommend.Extractor
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	return BuildWith(cfg, Options{})
}

// BuildWith is Build with explicit overrides.
func BuildWith(cfg config.Config, opts Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	telemetry.Configure(cfg.LogLevel, cfg.LogFormat)
	metrics.MustRegister()

	prompts, err := llm.LoadCatalog(cfg.PromptsFile)
	if err != nil {
		return nil, err
	}

	llmClient := opts.LLM
	if llmClient == nil {
		llmClient, err = buildLLM(context.Background(), cfg)
		if err != nil {
			return nil, err
		}
	}

	sources := opts.Sources
	jobsReady := true
	if sources == nil {
		sources = buildSources(cfg)
		jobsReady = strings.TrimSpace(cfg.ApifyToken) != ""
	}
	_, placeholder := llmClient.(llm.PlaceholderClient)

	extractor := opts.Extractor
	if extractor == nil {
		extractor = extract.PDF{}
	}

	svc := recommend.NewService(extractor, llm.NewGuard(llmClient), prompts, sources, cfg.JobRows)
	app := &App{
		Config:           cfg,
		LLM:              llmClient,
		Prompts:          prompts,
		Sources:          sources,
		Service:          svc,
		RecommendHandler: recommend.NewHandler(svc, cfg.MaxUploadBytes),
		WebHandler:       web.NewHandler(svc, cfg.MaxUploadBytes),
		Health:           health.NewService(cfg.LLMProvider, !placeholder, jobsReady, len(sources)),
	}

	router, err := server.NewRouter(server.RouterDeps{
		Config:           cfg,
		RecommendHandler: app.RecommendHandler,
		WebHandler:       app.WebHandler,
		Health:           app.Health,
		Limiter:          middleware.NewRateLimiter(nil),
	})
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}
	app.Router = router

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"llm_provider": cfg.LLMProvider,
		"llm_model":    cfg.LLMModel,
		"sources":      len(sources),
		"job_rows":     svc.Rows,
	})
	return app, nil
}

// buildLLM selects the completion provider. Missing credentials fall back to the
// placeholder client in dev-like environments so every stage degrades to its fallback.
func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	var (
		client llm.Client
		err    error
	)
	switch cfg.LLMProvider {
	case "none":
		return llm.PlaceholderClient{}, nil
	case "gemini":
		client, err = gemini.NewClient(ctx, gemini.Options{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.LLMModel,
			BaseURL: cfg.GeminiBaseURL,
		})
	default:
		client, err = openai.NewClient(openai.Options{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.LLMModel,
			BaseURL: cfg.OpenAIBaseURL,
			Timeout: cfg.OpenAITimeout,
		})
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.llm_unconfigured", map[string]any{
				"provider": cfg.LLMProvider,
				"error":    err.Error(),
			})
			return llm.PlaceholderClient{}, nil
		}
		return nil, err
	}
	return client, nil
}

func buildSources(cfg config.Config) []jobs.Source {
	apify := jobs.NewApifyClient(cfg.ApifyToken, cfg.ApifyBaseURL, &http.Client{Timeout: cfg.JobSearchTimeout})
	return []jobs.Source{
		jobs.NewLinkedIn(apify, cfg.LinkedInActorID, cfg.LinkedInLocation),
		jobs.NewNaukri(apify, cfg.NaukriActorID),
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
