package recommend

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"job-recommender/internal/extract"
	"job-recommender/internal/jobs"
	"job-recommender/internal/llm"
	"job-recommender/internal/shared/server/respond"
)

// Handler exposes the service as a JSON API.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis and recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.analyze)
	rg.POST("/recommendations", h.recommend)
}

type warningResponse struct {
	Stage   string `json:"stage"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type analysisResponse struct {
	Summary  string            `json:"summary"`
	Gaps     string            `json:"gaps"`
	Roadmap  string            `json:"roadmap"`
	Warnings []warningResponse `json:"warnings"`
}

type sourceResponse struct {
	Source   string         `json:"source"`
	Label    string         `json:"label"`
	Listings []jobs.Listing `json:"listings"`
	Empty    bool           `json:"empty"`
}

type recommendationsResponse struct {
	Keywords string            `json:"keywords"`
	Sources  []sourceResponse  `json:"sources"`
	Warnings []warningResponse `json:"warnings"`
}

type recommendRequest struct {
	Summary string `json:"summary"`
}

func (h *Handler) analyze(c *gin.Context) {
	upload, err := ReadUpload(c, "file", h.MaxUploadBytes)
	if err != nil {
		writeError(c, err)
		return
	}

	analysis, err := h.Svc.Analyze(c.Request.Context(), upload)
	if err != nil {
		writeError(c, err)
		return
	}

	respond.OK(c, analysisResponse{
		Summary:  analysis.Summary,
		Gaps:     analysis.Gaps,
		Roadmap:  analysis.Roadmap,
		Warnings: toWarnings(analysis.Warnings),
	})
}

func (h *Handler) recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
		return
	}

	recs, err := h.Svc.Recommend(c.Request.Context(), req.Summary)
	if err != nil {
		writeError(c, err)
		return
	}

	sources := make([]sourceResponse, 0, len(recs.Sources))
	for _, src := range recs.Sources {
		listings := src.Listings
		if listings == nil {
			listings = []jobs.Listing{}
		}
		sources = append(sources, sourceResponse{
			Source:   src.Source,
			Label:    src.Label,
			Listings: listings,
			Empty:    src.Empty(),
		})
	}

	respond.OK(c, recommendationsResponse{
		Keywords: recs.Keywords,
		Sources:  sources,
		Warnings: toWarnings(recs.Warnings),
	})
}

func toWarnings(warns []llm.Warning) []warningResponse {
	out := make([]warningResponse, 0, len(warns))
	for _, w := range warns {
		out = append(out, warningResponse{Stage: w.Stage, Reason: w.Reason, Message: w.Message()})
	}
	return out
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUploadTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, respond.CodePayloadTooLarge, "file exceeds the upload limit", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
	case errors.Is(err, extract.ErrUnreadableDocument):
		respond.Error(c, http.StatusUnprocessableEntity, respond.CodeUnreadableDocument, "could not extract text from the uploaded PDF", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "request failed", nil)
	}
}
