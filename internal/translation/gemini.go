package translation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/genai"
)

const (
	geminiProvider     = "gemini"
	DefaultGeminiModel = "gemini-2.0-flash"
)

// GeminiConfig configures the Google Gemini backend
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, used by tests
}

// GeminiClient translates with a Gemini model
type GeminiClient struct {
	model  string
	client *genai.Client
}

// NewGeminiClient creates a new Gemini translation backend
func NewGeminiClient(ctx context.Context, config *GeminiConfig) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key not found")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiClient{model: model, client: client}, nil
}

// DetectLanguage asks the model for the language code of text
func (g *GeminiClient) DetectLanguage(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	answer, err := g.generate(ctx, detectPrompt(text))
	if err != nil {
		return "", err
	}
	return NormalizeLanguageCode(answer), nil
}

// Translate translates text from source to target
func (g *GeminiClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	return g.generate(ctx, translatePrompt(text, source, target))
}

func (g *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.2),
	})
	if err != nil {
		return "", geminiError(ctx, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &TransportError{
			Provider:  geminiProvider,
			RequestID: requestID(ctx),
			Err:       fmt.Errorf("%w: empty candidate", ErrMalformedResponse),
		}
	}

	return text, nil
}

func geminiError(ctx context.Context, err error) error {
	id := requestID(ctx)

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &RemoteError{
			Provider:  geminiProvider,
			Status:    apiErr.Code,
			Code:      geminiCode(apiErr.Status, apiErr.Code),
			Message:   apiErr.Message,
			RequestID: id,
		}
	}

	return &TransportError{Provider: geminiProvider, RequestID: id, Err: err}
}

func geminiCode(status string, code int) string {
	if status != "" {
		return status
	}
	return strconv.Itoa(code)
}
