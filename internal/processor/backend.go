package processor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"codeberg.org/snonux/livetrans/internal/catalog"
	"codeberg.org/snonux/livetrans/internal/cli"
	"codeberg.org/snonux/livetrans/internal/translation"
)

// newTranslator builds the configured backend, optionally with a circuit
// breaker around it and offline detection in front of both
func newTranslator(ctx context.Context, config *cli.Config, logger *zap.SugaredLogger) (translation.Translator, error) {
	var t translation.Translator

	switch config.Backend {
	case cli.BackendPapago:
		client, err := translation.NewPapagoClient(&config.Papago)
		if err != nil {
			return nil, err
		}
		t = client
	case cli.BackendOpenAI:
		client, err := translation.NewOpenAIClient(&config.OpenAI)
		if err != nil {
			return nil, err
		}
		t = client
	case cli.BackendGemini:
		client, err := translation.NewGeminiClient(ctx, &config.Gemini)
		if err != nil {
			return nil, err
		}
		t = client
	default:
		return nil, fmt.Errorf("unknown backend %q", config.Backend)
	}
	logger.Debugw("Translation backend ready", "backend", config.Backend)

	// The breaker only guards remote calls, offline detection stays outside it.
	if config.Breaker.Enabled {
		t = translation.WithCircuitBreaker(t, translation.BreakerConfig{
			Name:        config.Backend,
			MaxFailures: config.Breaker.MaxFailures,
			OpenTimeout: config.Breaker.OpenTimeout,
		}, logger)
	}

	if config.Detector == cli.DetectorLocal {
		var codes []string
		for _, entry := range catalog.Default().Entries() {
			codes = append(codes, entry.ID)
		}
		t = translation.WithDetector(t, translation.NewLinguaDetector(codes))
		logger.Debugw("Using offline language detection", "languages", len(codes))
	}

	return t, nil
}
