package translation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewOpenAIClient(&OpenAIConfig{
		APIKey:  "test-api-key",
		BaseURL: server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("NewOpenAIClient failed: %v", err)
	}
	return client
}

func chatResponse(content string) string {
	resp := map[string]interface{}{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-4o-mini",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestNewOpenAIClient(t *testing.T) {
	client, err := NewOpenAIClient(&OpenAIConfig{APIKey: "test-api-key"})
	if err != nil {
		t.Fatalf("NewOpenAIClient failed: %v", err)
	}
	if client.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", client.apiKey)
	}
	if client.model != "gpt-4o-mini" {
		t.Errorf("Expected default model gpt-4o-mini, got %s", client.model)
	}
	if client.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestNewOpenAIClient_NoAPIKey(t *testing.T) {
	_, err := NewOpenAIClient(&OpenAIConfig{})
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
	if err.Error() != "OpenAI API key not found" {
		t.Errorf("Expected 'OpenAI API key not found' error, got: %v", err)
	}
}

func TestOpenAIClient_DetectLanguage(t *testing.T) {
	client := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-api-key" {
			t.Errorf("unexpected Authorization header %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatResponse(" EN.\n")))
	})

	lang, err := client.DetectLanguage(context.Background(), "hello there")
	if err != nil {
		t.Fatalf("DetectLanguage failed: %v", err)
	}
	if lang != "en" {
		t.Errorf("DetectLanguage() = %q, want en", lang)
	}
}

func TestOpenAIClient_Translate(t *testing.T) {
	var prompt string
	client := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if len(req.Messages) > 0 {
			prompt = req.Messages[0].Content
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatResponse("안녕하세요\n")))
	})

	out, err := client.Translate(context.Background(), "hello", "en", "ko")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "안녕하세요" {
		t.Errorf("Translate() = %q, want 안녕하세요", out)
	}
	for _, want := range []string{"'en'", "'ko'", "hello"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt %q does not contain %s", prompt, want)
		}
	}
}

func TestOpenAIClient_APIError(t *testing.T) {
	client := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`))
	})

	_, err := client.Translate(WithRequestID(context.Background(), 5), "hello", "en", "ko")
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected *RemoteError, got %T: %v", err, err)
	}
	if remoteErr.Code != "invalid_api_key" {
		t.Errorf("Code = %q, want invalid_api_key", remoteErr.Code)
	}
	if remoteErr.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", remoteErr.Status)
	}
	if remoteErr.RequestID != 5 {
		t.Errorf("RequestID = %d, want 5", remoteErr.RequestID)
	}
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	client := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	})

	_, err := client.Translate(context.Background(), "hello", "en", "ko")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestOpenAIClient_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	client, err := NewOpenAIClient(&OpenAIConfig{APIKey: apiKey})
	if err != nil {
		t.Fatal(err)
	}

	lang, err := client.DetectLanguage(context.Background(), "안녕하세요, 만나서 반갑습니다")
	if err != nil {
		t.Fatalf("DetectLanguage failed: %v", err)
	}
	t.Logf("Detected language: %s", lang)
}
