package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"atsblitz/internal/errors"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func appErrorCode(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("expected *errors.AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func TestFromFilePlainText(t *testing.T) {
	path := writeTemp(t, "resume.txt", "Experience:\n\n\nBuilt   things\tat Acme\n")

	got, err := FromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Experience:\nBuilt things at Acme"
	if got != want {
		t.Errorf("FromFile = %q, want %q", got, want)
	}
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if code := appErrorCode(t, err); code != errors.ErrCodeFileNotFound {
		t.Errorf("code = %q, want %q", code, errors.ErrCodeFileNotFound)
	}
}

func TestFromFileUnsupportedFormat(t *testing.T) {
	path := writeTemp(t, "resume.docx", "not really a docx")

	_, err := FromFile(path)
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if code := appErrorCode(t, err); code != errors.ErrCodeInvalidFormat {
		t.Errorf("code = %q, want %q", code, errors.ErrCodeInvalidFormat)
	}
}

func TestFromFileEmptyText(t *testing.T) {
	path := writeTemp(t, "resume.txt", "   \n\t  \n")

	_, err := FromFile(path)
	if err == nil {
		t.Fatal("expected error for empty file")
	}
	if code := appErrorCode(t, err); code != errors.ErrCodeNoTextFound {
		t.Errorf("code = %q, want %q", code, errors.ErrCodeNoTextFound)
	}
}

func TestFromPDFGarbage(t *testing.T) {
	_, err := FromPDF([]byte("this is not a pdf"))
	if err == nil {
		t.Fatal("expected error for malformed PDF")
	}
	if code := appErrorCode(t, err); code != errors.ErrCodeExtractionFailed {
		t.Errorf("code = %q, want %q", code, errors.ErrCodeExtractionFailed)
	}
}

func TestFromReaderNonBreakingSpaces(t *testing.T) {
	got, err := FromReader(strings.NewReader("Skills: Go,  SQL"), "resume.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Skills: Go, SQL" {
		t.Errorf("FromReader = %q, want non-breaking spaces folded to plain spaces", got)
	}
}

func TestFromReaderPlainText(t *testing.T) {
	got, err := FromReader(strings.NewReader("Skills: Go, SQL"), "resume.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Skills: Go, SQL" {
		t.Errorf("FromReader = %q", got)
	}
}
