package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveLLMCallCountsOutcome(t *testing.T) {
	before := testutil.ToFloat64(llmCallsTotal.WithLabelValues("gaps", "fallback"))
	ObserveLLMCall("Gaps", false, 20*time.Millisecond)
	after := testutil.ToFloat64(llmCallsTotal.WithLabelValues("gaps", "fallback"))
	if after-before != 1 {
		t.Fatalf("expected fallback counter +1, got %v", after-before)
	}
}

func TestObserveJobSearchOutcomes(t *testing.T) {
	errBefore := testutil.ToFloat64(jobSearchTotal.WithLabelValues("naukri", "error"))
	emptyBefore := testutil.ToFloat64(jobSearchTotal.WithLabelValues("naukri", "empty"))

	ObserveJobSearch("naukri", 0, errors.New("boom"))
	ObserveJobSearch("naukri", 0, nil)

	if got := testutil.ToFloat64(jobSearchTotal.WithLabelValues("naukri", "error")) - errBefore; got != 1 {
		t.Fatalf("expected one error, got %v", got)
	}
	if got := testutil.ToFloat64(jobSearchTotal.WithLabelValues("naukri", "empty")) - emptyBefore; got != 1 {
		t.Fatalf("expected one empty, got %v", got)
	}
}

func TestHandlerExposesRegisteredCollectors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncResumeUpload("extracted")

	r := gin.New()
	r.GET("/metrics", Handler())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "resume_uploads_total") {
		t.Fatalf("expected resume_uploads_total in exposition")
	}
}

func TestIncPanicLabelsUnmatchedRoutes(t *testing.T) {
	before := testutil.ToFloat64(httpPanicsTotal.WithLabelValues("unmatched"))
	IncPanic("")
	if got := testutil.ToFloat64(httpPanicsTotal.WithLabelValues("unmatched")) - before; got != 1 {
		t.Fatalf("expected unmatched +1, got %v", got)
	}
}

func TestIncRateLimitedNormalizesGroup(t *testing.T) {
	before := testutil.ToFloat64(rateLimitedTotal.WithLabelValues("model"))
	IncRateLimited(" MODEL ")
	if got := testutil.ToFloat64(rateLimitedTotal.WithLabelValues("model")) - before; got != 1 {
		t.Fatalf("expected model +1, got %v", got)
	}
}
