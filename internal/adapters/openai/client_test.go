package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestClient_Complete(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		responseBody string
		want         string
		wantErr      string
	}{
		{
			name:         "Success",
			status:       http.StatusOK,
			responseBody: `{"choices":[{"message":{"role":"assistant","content":"  [{\"track_name\":\"A\",\"artist_name\":\"B\"}]\n"}}]}`,
			want:         `[{"track_name":"A","artist_name":"B"}]`,
		},
		{
			name:         "API error message surfaced",
			status:       http.StatusUnauthorized,
			responseBody: `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`,
			wantErr:      "Incorrect API key provided",
		},
		{
			name:         "Server error without body",
			status:       http.StatusBadGateway,
			responseBody: ``,
			wantErr:      "unexpected status 502",
		},
		{
			name:         "No choices",
			status:       http.StatusOK,
			responseBody: `{"choices":[]}`,
			wantErr:      "no choices",
		},
		{
			name:         "Empty content",
			status:       http.StatusOK,
			responseBody: `{"choices":[{"message":{"role":"assistant","content":"   "}}]}`,
			wantErr:      "empty response",
		},
		{
			name:         "Malformed body",
			status:       http.StatusOK,
			responseBody: `{"choices":`,
			wantErr:      "decode response",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var gotRequest chatRequest
			var gotAuth string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/chat/completions" {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				if r.Method != http.MethodPost {
					w.WriteHeader(http.StatusMethodNotAllowed)
					return
				}
				gotAuth = r.Header.Get("Authorization")
				if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer srv.Close()

			client := NewClient(srv.URL+"/v1/", "sk-test", "", 5*time.Second)
			got, err := client.Complete(context.Background(), "recommend songs")

			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("content: got %q, want %q", got, tt.want)
			}
			if gotAuth != "Bearer sk-test" {
				t.Fatalf("authorization header: got %q", gotAuth)
			}
			if gotRequest.Model != DefaultModel {
				t.Fatalf("expected model %s, got %q", DefaultModel, gotRequest.Model)
			}
			if len(gotRequest.Messages) != 1 {
				t.Fatalf("expected 1 message, got %d", len(gotRequest.Messages))
			}
			if gotRequest.Messages[0].Role != "system" || gotRequest.Messages[0].Content != "recommend songs" {
				t.Fatalf("system message mismatch: %+v", gotRequest.Messages[0])
			}
		})
	}
}

func TestClient_Complete_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(srv.URL, "sk-test", "gpt-4o-mini", 0)
	if _, err := client.Complete(ctx, "prompt"); err == nil {
		t.Fatalf("expected error when context is canceled")
	}
}
