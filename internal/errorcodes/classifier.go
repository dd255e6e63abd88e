package errorcodes

import (
	"context"
	"embed"
	"errors"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"codeberg.org/snonux/livetrans/internal/translation"
)

//go:embed locales/active.*.toml
var localeFS embed.FS

// Message IDs for user-facing texts that are not remote error codes
const (
	MsgGenericError = "generic_error"
	MsgTimeout      = "timeout"
	MsgCopied       = "copied"

	codePrefix = "code_"
)

// Classifier maps remote error codes to display messages
type Classifier struct {
	localizer *i18n.Localizer
}

// New builds a classifier for locale. Messages missing in locale are taken
// from the Korean table.
func New(locale string) (*Classifier, error) {
	bundle := i18n.NewBundle(language.Korean)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"locales/active.ko.toml", "locales/active.en.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			return nil, err
		}
	}

	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, language.Korean.String())

	return &Classifier{
		localizer: i18n.NewLocalizer(bundle, languages...),
	}, nil
}

// Classify returns the table message for code, or fallback unchanged when
// the code is not known
func (c *Classifier) Classify(code, fallback string) string {
	if code == "" {
		return fallback
	}
	// Localize may report a missing translation for the preferred locale
	// while still returning the default-locale text.
	msg, _ := c.localizer.Localize(&i18n.LocalizeConfig{MessageID: codePrefix + code})
	if msg == "" {
		return fallback
	}
	return msg
}

// ClassifyError picks the display message for any error returned by a
// translation backend. Errors without a structured code get a generic text.
func (c *Classifier) ClassifyError(err error) string {
	if err == nil {
		return ""
	}

	var remoteErr *translation.RemoteError
	if errors.As(err, &remoteErr) {
		fallback := remoteErr.Message
		if fallback == "" {
			fallback = c.Message(MsgGenericError)
		}
		return c.Classify(remoteErr.Code, fallback)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return c.Message(MsgTimeout)
	}

	return c.Message(MsgGenericError)
}

// Message renders a plain message id, returning the id itself when it has
// no translation
func (c *Classifier) Message(id string) string {
	msg, _ := c.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if msg == "" {
		return id
	}
	return msg
}
