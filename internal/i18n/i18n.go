// Package i18n provides the localized message catalogs used in API responses.
//
// Catalogs are TOML files embedded from locales/. English is the bundle's
// default language; a message missing from a catalog falls back to English and
// then to its message id.
package i18n

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// DefaultLocale is used when neither the request nor the configuration names one.
const DefaultLocale = "en"

var (
	bundle     *i18n.Bundle
	bundleErr  error
	bundleOnce sync.Once
)

// Init loads the embedded catalogs. It is safe to call more than once;
// only the first call does any work.
func Init() error {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

		for _, file := range []string{"locales/en.toml", "locales/th.toml"} {
			if _, err := b.LoadMessageFileFS(localeFS, file); err != nil {
				bundleErr = fmt.Errorf("failed to load %s: %w", file, err)
				return
			}
		}
		bundle = b
	})
	return bundleErr
}

// Supported returns the language tags that have a catalog.
func Supported() []language.Tag {
	if err := Init(); err != nil {
		return []language.Tag{language.English}
	}
	return bundle.LanguageTags()
}

// NewLocalizer creates a localizer for the given preferences. Each entry may be
// a plain tag ("th") or a full Accept-Language header value ("th-TH,th;q=0.9").
// Earlier entries win.
func NewLocalizer(langs ...string) *i18n.Localizer {
	if err := Init(); err != nil {
		// Without catalogs every lookup falls back to the message id.
		return i18n.NewLocalizer(i18n.NewBundle(language.English), langs...)
	}
	return i18n.NewLocalizer(bundle, langs...)
}

// ParseLocale returns the supported locale that best matches an
// Accept-Language header, or fallback when nothing matches.
func ParseLocale(header, fallback string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return fallback
	}

	matcher := language.NewMatcher(Supported())
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	base, _ := Supported()[index].Base()
	return base.String()
}

// T translates a message with the given localizer, falling back to the id.
func T(localizer *i18n.Localizer, msgID string) string {
	return TWithData(localizer, msgID, nil)
}

// TWithData translates a message with template data.
func TWithData(localizer *i18n.Localizer, msgID string, data map[string]any) string {
	if localizer == nil {
		localizer = NewLocalizer(DefaultLocale)
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    msgID,
		TemplateData: data,
	})
	if err != nil {
		return msgID
	}
	return msg
}

// Default translates a message into the default locale. Errors use it to carry
// a readable message before the request locale is known.
func Default(msgID string, data map[string]any) string {
	return TWithData(NewLocalizer(DefaultLocale), msgID, data)
}

type contextKey string

const (
	contextKeyLocalizer contextKey = "i18n.localizer"
	contextKeyLocale    contextKey = "i18n.locale"
)

// WithLocalizer stores a Localizer in ctx.
func WithLocalizer(ctx context.Context, localizer *i18n.Localizer) context.Context {
	return context.WithValue(ctx, contextKeyLocalizer, localizer)
}

// WithLocale stores the resolved locale string in ctx.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, contextKeyLocale, locale)
}

// LocalizerFromContext returns the request localizer, or an English one.
func LocalizerFromContext(ctx context.Context) *i18n.Localizer {
	if localizer, ok := ctx.Value(contextKeyLocalizer).(*i18n.Localizer); ok && localizer != nil {
		return localizer
	}
	return NewLocalizer(DefaultLocale)
}

// LocaleFromContext returns the request locale, or DefaultLocale.
func LocaleFromContext(ctx context.Context) string {
	if locale, ok := ctx.Value(contextKeyLocale).(string); ok && locale != "" {
		return locale
	}
	return DefaultLocale
}

// Ctx translates msgID with the localizer stored in ctx.
func Ctx(ctx context.Context, msgID string) string {
	return T(LocalizerFromContext(ctx), msgID)
}

// CtxWithData translates msgID with data using the localizer stored in ctx.
func CtxWithData(ctx context.Context, msgID string, data map[string]any) string {
	return TWithData(LocalizerFromContext(ctx), msgID, data)
}
