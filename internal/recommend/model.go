package recommend

import (
	"job-recommender/internal/jobs"
	"job-recommender/internal/llm"
)

// Analysis is the outcome of the analysis flow. Each text is either model
// output or its stage fallback; Warnings lists the stages that fell back.
type Analysis struct {
	Summary  string
	Gaps     string
	Roadmap  string
	Warnings []llm.Warning
}

// Recommendations is the outcome of the recommendation flow.
type Recommendations struct {
	Keywords string
	Sources  []jobs.Result
	Warnings []llm.Warning
}

// Upload is a resume file read from a request.
type Upload struct {
	FileName string
	Data     []byte
}
