package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/livetrans/internal/catalog"
	"codeberg.org/snonux/livetrans/internal/translation"
)

// Supported backends and detectors
const (
	BackendPapago = "papago"
	BackendOpenAI = "openai"
	BackendGemini = "gemini"

	DetectorRemote = "remote"
	DetectorLocal  = "local"
)

// ErrMissingCredentials is returned by Validate when the selected backend
// has no credentials configured
var ErrMissingCredentials = errors.New("missing credentials")

// Config is the application configuration. It is loaded once at start and
// not modified afterwards.
type Config struct {
	Backend           string
	Detector          string
	HomeLanguage      string
	SecondaryLanguage string
	Locale            string
	Debounce          time.Duration
	Timeout           time.Duration
	LogLevel          string

	Papago  translation.PapagoConfig
	OpenAI  translation.OpenAIConfig
	Gemini  translation.GeminiConfig
	Breaker BreakerConfig
}

// BreakerConfig controls the optional circuit breaker around the backend
type BreakerConfig struct {
	Enabled     bool
	MaxFailures uint32
	OpenTimeout time.Duration
}

// LoadConfig builds the configuration from viper (flags, config file and
// environment). Call InitConfig first.
func LoadConfig() *Config {
	defaults := NewFlags()

	cfg := &Config{
		Backend:           strings.ToLower(stringOr("translation.backend", defaults.Backend)),
		Detector:          strings.ToLower(stringOr("translation.detector", defaults.Detector)),
		HomeLanguage:      stringOr("translation.home_language", defaults.HomeLanguage),
		SecondaryLanguage: stringOr("translation.secondary_language", defaults.SecondaryLanguage),
		Locale:            stringOr("translation.locale", defaults.Locale),
		Debounce:          durationOr("translation.debounce", defaults.Debounce),
		Timeout:           durationOr("translation.timeout", defaults.Timeout),
		LogLevel:          stringOr("log.level", defaults.LogLevel),
		OpenAI: translation.OpenAIConfig{
			APIKey:  GetOpenAIKey(),
			Model:   stringOr("openai.model", defaults.OpenAIModel),
			BaseURL: viper.GetString("openai.base_url"),
		},
		Gemini: translation.GeminiConfig{
			APIKey:  GetGeminiKey(),
			Model:   stringOr("gemini.model", defaults.GeminiModel),
			BaseURL: viper.GetString("gemini.base_url"),
		},
		Breaker: BreakerConfig{
			Enabled:     viper.GetBool("breaker.enabled"),
			MaxFailures: viper.GetUint32("breaker.max_failures"),
			OpenTimeout: viper.GetDuration("breaker.open_timeout"),
		},
	}

	id, secret := GetPapagoCredentials()
	cfg.Papago = translation.PapagoConfig{
		ClientID:     id,
		ClientSecret: secret,
		DetectURL:    stringOr("papago.detect_url", translation.DefaultPapagoDetectURL),
		TranslateURL: stringOr("papago.translate_url", translation.DefaultPapagoTranslateURL),
		Timeout:      cfg.Timeout,
	}

	return cfg
}

// Validate reports configuration errors that must stop the program before
// any UI starts
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendPapago:
		if c.Papago.ClientID == "" || c.Papago.ClientSecret == "" {
			return fmt.Errorf("%w: papago needs NAVER_CLIENT_ID and NAVER_CLIENT_SECRET", ErrMissingCredentials)
		}
	case BackendOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("%w: openai needs OPENAI_API_KEY", ErrMissingCredentials)
		}
	case BackendGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("%w: gemini needs GEMINI_API_KEY", ErrMissingCredentials)
		}
	default:
		return fmt.Errorf("unknown backend %q (use papago, openai or gemini)", c.Backend)
	}

	if c.Detector != DetectorRemote && c.Detector != DetectorLocal {
		return fmt.Errorf("unknown detector %q (use remote or local)", c.Detector)
	}

	langs := catalog.Default()
	if _, ok := langs.Lookup(c.HomeLanguage); !ok {
		return fmt.Errorf("unsupported home language %q", c.HomeLanguage)
	}
	if _, ok := langs.Lookup(c.SecondaryLanguage); !ok {
		return fmt.Errorf("unsupported secondary language %q", c.SecondaryLanguage)
	}
	if c.HomeLanguage == c.SecondaryLanguage {
		return fmt.Errorf("home and secondary language must differ, both are %q", c.HomeLanguage)
	}

	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive, got %v", c.Debounce)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

func stringOr(key, fallback string) string {
	if v := strings.TrimSpace(viper.GetString(key)); v != "" {
		return v
	}
	return fallback
}

// durationOr keeps an explicitly set value even when it is not positive, so
// Validate can reject it
func durationOr(key string, fallback time.Duration) time.Duration {
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	return fallback
}
