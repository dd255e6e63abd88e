package translation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewGeminiClient(context.Background(), &GeminiConfig{
		APIKey:  "test-api-key",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewGeminiClient failed: %v", err)
	}
	return client
}

func TestNewGeminiClient_NoAPIKey(t *testing.T) {
	if _, err := NewGeminiClient(context.Background(), &GeminiConfig{}); err == nil {
		t.Error("Expected error for missing API key")
	}
}

func TestGeminiClient_Translate(t *testing.T) {
	client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/"+DefaultGeminiModel+":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"hello\n"}]}}]}`))
	})

	out, err := client.Translate(context.Background(), "안녕", "ko", "en")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "hello" {
		t.Errorf("Translate() = %q, want hello", out)
	}
}

func TestGeminiClient_DetectLanguage(t *testing.T) {
	client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"zh-Hant"}]}}]}`))
	})

	lang, err := client.DetectLanguage(context.Background(), "你好")
	if err != nil {
		t.Fatalf("DetectLanguage failed: %v", err)
	}
	if lang != "zh-TW" {
		t.Errorf("DetectLanguage() = %q, want zh-TW", lang)
	}
}

func TestGeminiClient_APIError(t *testing.T) {
	client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := client.Translate(context.Background(), "hello", "en", "ko")
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected *RemoteError, got %T: %v", err, err)
	}
	if remoteErr.Code != "INVALID_ARGUMENT" || remoteErr.Status != http.StatusBadRequest {
		t.Errorf("unexpected remote error %+v", remoteErr)
	}
}

func TestGeminiCode(t *testing.T) {
	if got := geminiCode("", 503); got != "503" {
		t.Errorf("geminiCode(\"\", 503) = %q", got)
	}
	if got := geminiCode("UNAVAILABLE", 503); got != "UNAVAILABLE" {
		t.Errorf("geminiCode(UNAVAILABLE, 503) = %q", got)
	}
}
