package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"testing"

	"atsblitz/internal/config"
	"atsblitz/internal/errors"
	"atsblitz/internal/types"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			LogLevel:         "error",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
		},
	}
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := Execute(context.Background(), testConfig(), errors.NewLogger(slog.LevelError))
	return buf.String(), err
}

func TestScoreCommand(t *testing.T) {
	resume := base64.StdEncoding.EncodeToString([]byte(
		"Experience: Increased sales by 30%. Managed a team of 5. Education: BSc. Skills: SQL."))
	title := base64.StdEncoding.EncodeToString([]byte("Sales Manager"))

	out, err := runCommand(t, "score", resume, title)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var result types.AnalysisResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, out)
	}
	if result.Status != "success" {
		t.Errorf("Status = %q, want %q", result.Status, "success")
	}
	if result.Score <= 0 {
		t.Errorf("Score = %d, want > 0", result.Score)
	}
}

func TestScoreCommandEmptyResume(t *testing.T) {
	resume := base64.StdEncoding.EncodeToString([]byte("   "))
	title := base64.StdEncoding.EncodeToString([]byte("Engineer"))

	out, err := runCommand(t, "score", resume, title)
	if err != nil {
		t.Fatalf("analysis failures must be reported in JSON, not as command errors: %v", err)
	}

	var result types.AnalysisResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if result.Status != "error" {
		t.Errorf("Status = %q, want %q", result.Status, "error")
	}
}

func TestScoreCommandInvalidBase64(t *testing.T) {
	_, err := runCommand(t, "score", "not-valid-base64!!!", "QQ==")
	if err == nil {
		t.Fatal("expected error for invalid base64 input")
	}
}
