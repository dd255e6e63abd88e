package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile       string
	BatchFile     string
	Interactive   bool
	ListLanguages bool
	ListModels    bool
	LogLevel      string

	// Translation flags
	Backend           string
	Detector          string
	HomeLanguage      string
	SecondaryLanguage string
	Source            string
	Target            string
	Locale            string
	Debounce          time.Duration
	Timeout           time.Duration
	Breaker           bool

	// Backend specific flags
	OpenAIModel string
	GeminiModel string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		LogLevel:          "warn",
		Backend:           BackendPapago,
		Detector:          DetectorRemote,
		HomeLanguage:      "ko",
		SecondaryLanguage: "en",
		Locale:            "ko",
		Debounce:          300 * time.Millisecond,
		Timeout:           10 * time.Second,
		OpenAIModel:       "gpt-4o-mini",
		GeminiModel:       "gemini-2.0-flash",
	}
}
