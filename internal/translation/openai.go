package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const openAIProvider = "openai"

// OpenAIConfig configures the OpenAI chat completion backend
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for compatible endpoints
}

// OpenAIClient translates with an OpenAI chat model
type OpenAIClient struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAIClient creates a new OpenAI translation backend
func NewOpenAIClient(config *OpenAIConfig) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	model := config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAIClient{
		apiKey: config.APIKey,
		model:  model,
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

// DetectLanguage asks the model for the language code of text
func (c *OpenAIClient) DetectLanguage(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	answer, err := c.complete(ctx, detectPrompt(text), 10)
	if err != nil {
		return "", err
	}
	return NormalizeLanguageCode(answer), nil
}

// Translate translates text from source to target
func (c *OpenAIClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	return c.complete(ctx, translatePrompt(text, source, target), 1024)
}

func (c *OpenAIClient) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.2,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", openAIError(ctx, err)
	}

	if len(resp.Choices) == 0 {
		return "", &TransportError{
			Provider:  openAIProvider,
			RequestID: requestID(ctx),
			Err:       fmt.Errorf("%w: no choices returned", ErrMalformedResponse),
		}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func openAIError(ctx context.Context, err error) error {
	id := requestID(ctx)

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		code := ""
		if apiErr.Code != nil {
			code = fmt.Sprint(apiErr.Code)
		}
		return &RemoteError{
			Provider:  openAIProvider,
			Status:    apiErr.HTTPStatusCode,
			Code:      code,
			Message:   apiErr.Message,
			RequestID: id,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &RemoteError{
			Provider:  openAIProvider,
			Status:    reqErr.HTTPStatusCode,
			Message:   reqErr.Error(),
			RequestID: id,
		}
	}

	return &TransportError{Provider: openAIProvider, RequestID: id, Err: err}
}

func detectPrompt(text string) string {
	return fmt.Sprintf("Identify the language of the following text. Respond with only its ISO 639-1 code in lowercase, using zh-CN for simplified and zh-TW for traditional Chinese, nothing else.\n\n%s", text)
}

func translatePrompt(text, source, target string) string {
	return fmt.Sprintf("Translate the following text from the language with code '%s' to the language with code '%s'. Respond with only the translation, nothing else.\n\n%s", source, target, text)
}
