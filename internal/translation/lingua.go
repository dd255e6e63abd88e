package translation

import (
	"context"
	"strings"

	"github.com/pemistahl/lingua-go"
)

const linguaProvider = "lingua"

// CodeUndetected is the error code reported when the local detector cannot
// decide on a language
const CodeUndetected = "UNDETECTED"

var linguaLanguages = map[string]lingua.Language{
	"ko":    lingua.Korean,
	"en":    lingua.English,
	"ja":    lingua.Japanese,
	"zh-CN": lingua.Chinese,
	"zh-TW": lingua.Chinese,
	"vi":    lingua.Vietnamese,
	"id":    lingua.Indonesian,
	"th":    lingua.Thai,
	"de":    lingua.German,
	"ru":    lingua.Russian,
	"es":    lingua.Spanish,
	"it":    lingua.Italian,
	"fr":    lingua.French,
}

// LinguaDetector detects languages offline with lingua-go
type LinguaDetector struct {
	detector lingua.LanguageDetector
	codes    map[lingua.Language]string
}

// NewLinguaDetector builds a detector restricted to the given language codes.
// Codes lingua does not know are ignored. Chinese is reported as zh-CN.
func NewLinguaDetector(codes []string) *LinguaDetector {
	seen := make(map[lingua.Language]string)
	languages := []lingua.Language{}
	for _, code := range codes {
		lang, ok := linguaLanguages[code]
		if !ok {
			continue
		}
		if _, dup := seen[lang]; dup {
			continue
		}
		seen[lang] = code
		languages = append(languages, lang)
	}

	// lingua needs at least two candidates
	for _, fallback := range []string{"ko", "en"} {
		if len(languages) >= 2 {
			break
		}
		lang := linguaLanguages[fallback]
		if _, dup := seen[lang]; !dup {
			seen[lang] = fallback
			languages = append(languages, lang)
		}
	}

	return &LinguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().FromLanguages(languages...).Build(),
		codes:    seen,
	}
}

// DetectLanguage returns the most likely language of text
func (l *LinguaDetector) DetectLanguage(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	if err := ctx.Err(); err != nil {
		return "", &TransportError{Provider: linguaProvider, RequestID: requestID(ctx), Err: err}
	}

	lang, ok := l.detector.DetectLanguageOf(text)
	if !ok {
		return "", &RemoteError{
			Provider:  linguaProvider,
			Code:      CodeUndetected,
			Message:   "language could not be detected",
			RequestID: requestID(ctx),
		}
	}

	return l.codes[lang], nil
}
