package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnreadableDocument marks an upload whose text could not be extracted.
var ErrUnreadableDocument = errors.New("unreadable document")

// PDF extracts plain text from PDF payloads.
type PDF struct{}

// Extract implements the text extractor used by the recommendation flow.
func (PDF) Extract(ctx context.Context, data []byte) (string, error) {
	return PDFText(ctx, data)
}

// PDFText extracts text from an in-memory PDF using github.com/ledongthuc/pdf.
// Malformed input and documents without any text layer both yield ErrUnreadableDocument.
func PDFText(ctx context.Context, data []byte) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty payload", ErrUnreadableDocument)
	}

	// The parser panics on some truncated xref tables.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrUnreadableDocument, rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrUnreadableDocument, i, err)
		}
		b.WriteString(pageText)
	}

	out := b.String()
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%w: no extractable text", ErrUnreadableDocument)
	}
	return out, nil
}

// IsPDFName reports whether fileName carries a .pdf extension.
func IsPDFName(fileName string) bool {
	return strings.EqualFold(filepath.Ext(strings.TrimSpace(fileName)), ".pdf")
}
