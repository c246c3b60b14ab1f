package openai_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wkddns40/week-3/internal/adapters/llm/openai"
	"github.com/wkddns40/week-3/internal/domain"
	"github.com/wkddns40/week-3/internal/ports"
)

func testSettings() openai.Settings {
	return openai.Settings{
		PromptID:      "pmpt_test",
		PromptVersion: "3",
		ImageModel:    "gpt-image-1",
		ImageSize:     "1024x1024",
	}
}

func newClient(srv *httptest.Server, key string) *openai.Client {
	return openai.NewClient(srv.Client(), key, srv.URL, testSettings(), slog.Default())
}

func TestClient_GenerateReport_Success(t *testing.T) {
	var gotReq map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/responses" {
			t.Errorf("expected /responses, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("bad auth header: %s", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("bad content-type: %s", r.Header.Get("Content-Type"))
		}

		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)

		resp := map[string]any{
			"output": []map[string]any{
				{"type": "reasoning"},
				{
					"type": "message",
					"content": []map[string]any{
						{"type": "output_text", "text": "Hello"},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := newClient(srv, "test-key")

	report, err := client.GenerateReport(context.Background(), ports.ReportInput{
		PhotoURI: "data:image/png;base64,AAAA",
		Text:     "키: 170cm, 몸무게: 60kg",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report != "Hello" {
		t.Errorf("unexpected report: %s", report)
	}

	prompt, _ := gotReq["prompt"].(map[string]any)
	if prompt["id"] != "pmpt_test" || prompt["version"] != "3" {
		t.Errorf("unexpected prompt ref: %v", gotReq["prompt"])
	}

	input, _ := gotReq["input"].([]any)
	if len(input) != 1 {
		t.Fatalf("expected 1 input message, got %d", len(input))
	}
	msg, _ := input[0].(map[string]any)
	if msg["type"] != "message" || msg["role"] != "user" {
		t.Errorf("unexpected message: %v", msg)
	}
	content, _ := msg["content"].([]any)
	if len(content) != 2 {
		t.Fatalf("expected 2 content parts, got %d", len(content))
	}
	img, _ := content[0].(map[string]any)
	if img["type"] != "input_image" || img["image_url"] != "data:image/png;base64,AAAA" {
		t.Errorf("unexpected image part: %v", img)
	}
	txt, _ := content[1].(map[string]any)
	if txt["type"] != "input_text" || txt["text"] != "키: 170cm, 몸무게: 60kg" {
		t.Errorf("unexpected text part: %v", txt)
	}
}

func TestClient_GenerateReport_Placeholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"resp_1","output":[]}`))
	}))
	defer srv.Close()

	report, err := newClient(srv, "key").GenerateReport(context.Background(), ports.ReportInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report != domain.PlaceholderReport {
		t.Errorf("expected placeholder, got %s", report)
	}
}

func TestClient_GenerateReport_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid key"}`))
	}))
	defer srv.Close()

	_, err := newClient(srv, "key").GenerateReport(context.Background(), ports.ReportInput{})
	if !errors.Is(err, domain.ErrUpstreamReport) {
		t.Fatalf("expected ErrUpstreamReport, got %v", err)
	}

	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected *domain.UpstreamError, got %T", err)
	}
	if ue.Status != http.StatusUnauthorized {
		t.Errorf("unexpected status: %d", ue.Status)
	}
	if ue.Body != `{"error":"invalid key"}` {
		t.Errorf("unexpected body: %s", ue.Body)
	}
}

func TestClient_MissingAPIKey(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls++
	}))
	defer srv.Close()

	client := newClient(srv, "")

	if _, err := client.GenerateReport(context.Background(), ports.ReportInput{}); !errors.Is(err, domain.ErrMissingAPIKey) {
		t.Errorf("GenerateReport: expected ErrMissingAPIKey, got %v", err)
	}
	if _, err := client.EditImage(context.Background(), ports.EditInput{}); !errors.Is(err, domain.ErrMissingAPIKey) {
		t.Errorf("EditImage: expected ErrMissingAPIKey, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no upstream calls, got %d", calls)
	}
}

func TestClient_EditImage_Base64(t *testing.T) {
	photo := []byte{0x89, 0x50, 0x4e, 0x47, 0x00, 0x01}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/edits" {
			t.Errorf("expected /images/edits, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("bad auth header: %s", r.Header.Get("Authorization"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		want := map[string]string{
			"prompt": "make it shine",
			"model":  "gpt-image-1",
			"n":      "1",
			"size":   "1024x1024",
		}
		for k, v := range want {
			if got := r.FormValue(k); got != v {
				t.Errorf("field %s: expected %q, got %q", k, v, got)
			}
		}

		file, fh, err := r.FormFile("image")
		if err != nil {
			t.Errorf("image part: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		if fh.Filename != "photo.png" {
			t.Errorf("unexpected filename: %s", fh.Filename)
		}
		if fh.Header.Get("Content-Type") != "image/png" {
			t.Errorf("unexpected part content-type: %s", fh.Header.Get("Content-Type"))
		}
		got, _ := io.ReadAll(file)
		if !bytes.Equal(got, photo) {
			t.Errorf("image bytes mismatch: %v", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"b64_json":"QUJD","url":"https://example.com/x.png"}]}`))
	}))
	defer srv.Close()

	img, err := newClient(srv, "test-key").EditImage(context.Background(), ports.EditInput{
		Photo:  photo,
		Prompt: "make it shine",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img != "data:image/png;base64,QUJD" {
		t.Errorf("unexpected image: %s", img)
	}
}

func TestClient_EditImage_URLFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"url":"https://example.com/x.png"}]}`))
	}))
	defer srv.Close()

	img, err := newClient(srv, "key").EditImage(context.Background(), ports.EditInput{Photo: []byte{1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img != "https://example.com/x.png" {
		t.Errorf("unexpected image: %s", img)
	}
}

func TestClient_EditImage_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"upstream 400", http.StatusBadRequest, `{"error":"safety"}`, domain.ErrUpstreamImage},
		{"upstream 500", http.StatusInternalServerError, `oops`, domain.ErrUpstreamImage},
		{"not json", http.StatusOK, `<html>`, domain.ErrUpstreamImage},
		{"empty data", http.StatusOK, `{"data":[]}`, domain.ErrNoImageReturned},
		{"no image fields", http.StatusOK, `{"data":[{}]}`, domain.ErrNoImageReturned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newClient(srv, "key").EditImage(context.Background(), ports.EditInput{Photo: []byte{1}})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestClient_EditImage_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client := newClient(srv, "key")
	srv.Close()

	_, err := client.EditImage(context.Background(), ports.EditInput{Photo: []byte{1}})
	if !errors.Is(err, domain.ErrUpstreamImage) {
		t.Errorf("expected ErrUpstreamImage, got %v", err)
	}
}
