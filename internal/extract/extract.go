// Package extract pulls plain text out of resume files so they can be fed
// to the analyzer.
package extract

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"atsblitz/internal/errors"
)

// maxFileSize caps resume files at 10 MB.
const maxFileSize = 10 << 20

var (
	spaceRuns   = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRuns = regexp.MustCompile(`\n+`)
)

// FromFile extracts plain text from a resume file, dispatching on the
// extension. Plain text files pass through unchanged apart from whitespace
// normalization.
func FromFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeFileNotFound, "Resume file not found", err).
			WithContext("path", path)
	}
	if info.Size() > maxFileSize {
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable, "Resume file exceeds the 10MB limit", nil).
			WithContext("path", path).WithContext("size", info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable, "Failed to read resume file", err).
			WithContext("path", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FromPDF(data)
	case ".txt", ".text", ".md", "":
		return fromPlainText(data)
	default:
		return "", errors.NewExtractionError(errors.ErrCodeInvalidFormat, "Unsupported resume format", nil).
			WithContext("extension", filepath.Ext(path))
	}
}

// FromPDF extracts the plain text of every page in the document. Pages that
// fail to decode are skipped; the whole document failing to parse, or
// yielding no text at all, is an error.
func FromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed, "Failed to parse PDF", err)
	}

	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	cleaned := normalizeWhitespace(text.String())
	if cleaned == "" {
		return "", errors.NewExtractionError(errors.ErrCodeNoTextFound,
			"No extractable text in PDF; the document may be scanned images", nil)
	}
	return cleaned, nil
}

// FromReader extracts text from a stream, buffering it first. The filename
// is only used for format dispatch.
func FromReader(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxFileSize+1))
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable, "Failed to read resume stream", err)
	}
	if len(data) > maxFileSize {
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable, "Resume stream exceeds the 10MB limit", nil)
	}

	if strings.ToLower(filepath.Ext(filename)) == ".pdf" {
		return FromPDF(data)
	}
	return fromPlainText(data)
}

func fromPlainText(data []byte) (string, error) {
	cleaned := normalizeWhitespace(string(data))
	if cleaned == "" {
		return "", errors.NewExtractionError(errors.ErrCodeNoTextFound, "Resume file contains no text", nil)
	}
	return cleaned, nil
}

// normalizeWhitespace collapses space runs and newline runs while keeping
// line structure, which the section detector relies on.
func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = spaceRuns.ReplaceAllString(s, " ")
	s = newlineRuns.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
