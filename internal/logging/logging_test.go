package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestCtx_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(Config{})

	ctx := ContextWithRequestID(context.Background(), "req-123")
	Ctx(ctx).Info().Str("variant", "search-recommendations").Msg("served")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["request_id"] != "req-123" {
		t.Fatalf("request_id: got %v", entry["request_id"])
	}
	if entry["message"] != "served" {
		t.Fatalf("message: got %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Fatalf("level: got %v", entry["level"])
	}
}

func TestCtx_WithoutRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})
	defer Init(Config{})

	Ctx(context.Background()).Info().Msg("plain")
	if strings.Contains(buf.String(), "request_id") {
		t.Fatalf("unexpected request_id in %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "error", Output: &buf})
	defer Init(Config{})

	Info().Msg("hidden")
	Error().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("error line missing: %q", out)
	}
}

func TestGenerateRequestID(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()
	if len(a) != 36 {
		t.Fatalf("expected 36-character id, got %d", len(a))
	}
	if a == b {
		t.Fatalf("expected unique ids")
	}
}
