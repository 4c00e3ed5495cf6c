package recommend

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"job-recommender/internal/shared/util"
)

// DefaultMaxUploadBytes caps resume uploads.
const DefaultMaxUploadBytes = 10 << 20 // 10MB

// ReadUpload reads the multipart file in field, capping the request body at limit bytes.
func ReadUpload(c *gin.Context, field string, limit int64) (Upload, error) {
	if limit <= 0 {
		limit = DefaultMaxUploadBytes
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	fileHeader, err := c.FormFile(field)
	if err != nil {
		if isTooLarge(err) {
			return Upload{}, ErrUploadTooLarge
		}
		return Upload{}, fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if fileHeader.Size > limit {
		return Upload{}, ErrUploadTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Upload{}, fmt.Errorf("%w: unable to read file", ErrInvalidInput)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Upload{}, fmt.Errorf("%w: unable to read file", ErrInvalidInput)
	}
	return Upload{FileName: util.SanitizeFileName(fileHeader.Filename), Data: data}, nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	// Some multipart paths flatten the error to its text.
	return strings.Contains(err.Error(), "request body too large")
}
