package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	DefaultPapagoDetectURL    = "https://openapi.naver.com/v1/papago/detectLangs"
	DefaultPapagoTranslateURL = "https://openapi.naver.com/v1/papago/n2mt"

	papagoProvider     = "papago"
	papagoTimeout      = 10 * time.Second
	papagoMaxBody      = 1 << 20
	headerClientID     = "X-Naver-Client-Id"
	headerClientSecret = "X-Naver-Client-Secret"
	headerRequestID    = "X-Request-Id"
	papagoUnknownLang  = "unk"
)

// PapagoConfig configures the Naver Papago client
type PapagoConfig struct {
	ClientID     string
	ClientSecret string
	DetectURL    string
	TranslateURL string
	Timeout      time.Duration
}

// PapagoClient talks to the Papago detectLangs and n2mt endpoints
type PapagoClient struct {
	clientID     string
	clientSecret string
	detectURL    string
	translateURL string
	httpClient   *http.Client
}

type papagoDetectRequest struct {
	Query string `json:"query"`
}

type papagoTranslateRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Text   string `json:"text"`
}

// NewPapagoClient creates a Papago client. Both credentials are required.
func NewPapagoClient(config *PapagoConfig) (*PapagoClient, error) {
	if config.ClientID == "" || config.ClientSecret == "" {
		return nil, fmt.Errorf("papago client id and secret are required")
	}

	detectURL := config.DetectURL
	if detectURL == "" {
		detectURL = DefaultPapagoDetectURL
	}
	translateURL := config.TranslateURL
	if translateURL == "" {
		translateURL = DefaultPapagoTranslateURL
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = papagoTimeout
	}

	return &PapagoClient{
		clientID:     config.ClientID,
		clientSecret: config.ClientSecret,
		detectURL:    detectURL,
		translateURL: translateURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// DetectLanguage asks Papago for the language of text
func (p *PapagoClient) DetectLanguage(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	body, err := p.post(ctx, p.detectURL, papagoDetectRequest{Query: text})
	if err != nil {
		return "", err
	}

	code := gjson.GetBytes(body, "langCode")
	if !code.Exists() || code.String() == "" {
		return "", &TransportError{
			Provider:  papagoProvider,
			RequestID: requestID(ctx),
			Err:       fmt.Errorf("%w: missing langCode", ErrMalformedResponse),
		}
	}

	if code.String() == papagoUnknownLang {
		return "", &RemoteError{
			Provider:  papagoProvider,
			Code:      CodeUndetected,
			Message:   "language could not be detected",
			RequestID: requestID(ctx),
		}
	}

	return code.String(), nil
}

// Translate translates text with Papago NMT
func (p *PapagoClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	body, err := p.post(ctx, p.translateURL, papagoTranslateRequest{
		Source: source,
		Target: target,
		Text:   text,
	})
	if err != nil {
		return "", err
	}

	translated := gjson.GetBytes(body, "message.result.translatedText")
	if !translated.Exists() {
		return "", &TransportError{
			Provider:  papagoProvider,
			RequestID: requestID(ctx),
			Err:       fmt.Errorf("%w: missing message.result.translatedText", ErrMalformedResponse),
		}
	}

	return translated.String(), nil
}

// post sends payload as JSON and returns the body of a 2xx response
func (p *PapagoClient) post(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	id := requestID(ctx)

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set(headerClientID, p.clientID)
	req.Header.Set(headerClientSecret, p.clientSecret)
	if id != 0 {
		req.Header.Set(headerRequestID, strconv.FormatUint(id, 10))
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Provider: papagoProvider, RequestID: id, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, papagoMaxBody))
	if err != nil {
		return nil, &TransportError{Provider: papagoProvider, RequestID: id, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, papagoError(resp.StatusCode, body, id)
	}

	return body, nil
}

// papagoError decodes the {errorCode, errorMessage} envelope. Bodies that are
// not JSON still produce a RemoteError carrying the HTTP status text.
func papagoError(status int, body []byte, id uint64) *RemoteError {
	remoteErr := &RemoteError{
		Provider:  papagoProvider,
		Status:    status,
		RequestID: id,
	}

	if gjson.ValidBytes(body) {
		remoteErr.Code = gjson.GetBytes(body, "errorCode").String()
		remoteErr.Message = gjson.GetBytes(body, "errorMessage").String()
	}
	if remoteErr.Message == "" {
		remoteErr.Message = http.StatusText(status)
	}

	return remoteErr
}
