package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"job-recommender/internal/extract"
	"job-recommender/internal/jobs"
	"job-recommender/internal/llm"
	"job-recommender/internal/recommend"
	"job-recommender/internal/shared/telemetry"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// Handler serves the HTML flow: upload, analysis, recommendations.
type Handler struct {
	Svc            *recommend.Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *recommend.Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes installs the templates on r and attaches the page routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)
	r.GET("/", h.index)
	r.POST("/analyze", h.analyze)
	r.POST("/recommendations", h.recommendations)
	return nil
}

type analysisView struct {
	Summary string
	Gaps    string
	Roadmap string
}

type page struct {
	Error    string
	Warnings []string
	Analysis analysisView
	Keywords string
	Sources  []jobs.Result
}

func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index", page{})
}

func (h *Handler) analyze(c *gin.Context) {
	upload, err := recommend.ReadUpload(c, "resume", h.MaxUploadBytes)
	if err != nil {
		h.fail(c, err)
		return
	}

	analysis, err := h.Svc.Analyze(c.Request.Context(), upload)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "analysis", page{
		Warnings: messages(analysis.Warnings),
		Analysis: analysisView{
			Summary: analysis.Summary,
			Gaps:    analysis.Gaps,
			Roadmap: analysis.Roadmap,
		},
	})
}

func (h *Handler) recommendations(c *gin.Context) {
	view := analysisView{
		Summary: c.PostForm("summary"),
		Gaps:    c.PostForm("gaps"),
		Roadmap: c.PostForm("roadmap"),
	}

	recs, err := h.Svc.Recommend(c.Request.Context(), view.Summary)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "jobs", page{
		Warnings: messages(recs.Warnings),
		Analysis: view,
		Keywords: recs.Keywords,
		Sources:  recs.Sources,
	})
}

// fail re-renders the upload page with a user-facing message.
func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "Something went wrong. Please try again."
	switch {
	case errors.Is(err, recommend.ErrUploadTooLarge):
		status = http.StatusRequestEntityTooLarge
		msg = "The file is too large."
	case errors.Is(err, recommend.ErrInvalidInput):
		status = http.StatusBadRequest
		msg = invalidInputMessage(c.FullPath())
	case errors.Is(err, extract.ErrUnreadableDocument):
		status = http.StatusUnprocessableEntity
		msg = "We could not read text from that PDF. Please upload a text-based PDF."
	}
	telemetry.Warn("web.request_failed", map[string]any{
		"path":       c.Request.URL.Path,
		"status":     status,
		"request_id": c.GetString("requestId"),
		"error":      err.Error(),
	})
	c.HTML(status, "index", page{Error: msg})
}

func invalidInputMessage(route string) string {
	if route == "/recommendations" {
		return "Resume summary is missing. Please analyze your resume first."
	}
	return "Please upload a PDF resume."
}

func messages(warns []llm.Warning) []string {
	out := make([]string, 0, len(warns))
	for _, w := range warns {
		out = append(out, w.Message())
	}
	return out
}
