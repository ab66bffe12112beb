package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	require.NoError(t, Init())
	require.NoError(t, Init(), "second call must be a no-op")
	assert.NotNil(t, bundle)
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		fallback string
		expected string
	}{
		{"Thai", "th", "en", "th"},
		{"Thai with region and weights", "th-TH,th;q=0.9,en;q=0.8", "en", "th"},
		{"English with region", "en-US", "th", "en"},
		{"Unsupported falls back", "fr-FR", "en", "en"},
		{"Unsupported uses configured fallback", "de", "th", "th"},
		{"Empty header", "", "en", "en"},
		{"Garbage header", ";;;", "en", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLocale(tt.header, tt.fallback))
		})
	}
}

func TestTranslationFunctions(t *testing.T) {
	require.NoError(t, Init())

	t.Run("English", func(t *testing.T) {
		assert.Equal(t, "id must be a positive integer", T(NewLocalizer("en"), ErrInvalidID))
	})

	t.Run("Thai", func(t *testing.T) {
		assert.Equal(t, "ไม่พบผู้ใช้", T(NewLocalizer("th"), ErrUserNotFound))
	})

	t.Run("Accept-Language value", func(t *testing.T) {
		assert.Equal(t, "ไม่พบบล็อก", T(NewLocalizer("th-TH,th;q=0.9"), ErrBlogNotFound))
	})

	t.Run("Template data", func(t *testing.T) {
		msg := TWithData(NewLocalizer("en"), ErrFieldRequired, map[string]any{"Field": "email"})
		assert.Equal(t, "email is required", msg)
	})

	t.Run("Route not found", func(t *testing.T) {
		msg := TWithData(NewLocalizer("en"), ErrRouteNotFound, map[string]any{"Method": "GET", "Path": "/nope"})
		assert.Equal(t, "route not found: GET /nope", msg)
	})

	t.Run("Unknown key falls back to id", func(t *testing.T) {
		assert.Equal(t, "no_such_key", T(NewLocalizer("en"), "no_such_key"))
	})

	t.Run("Default uses English", func(t *testing.T) {
		assert.Equal(t, "invalid email format", Default(ErrInvalidEmail, nil))
	})
}

func TestCatalogsResolveAllKeys(t *testing.T) {
	keys := []string{
		ErrValidation, ErrNotFound, ErrConflict, ErrDatabase, ErrInternal, ErrRequest,
		ErrRouteNotFound, ErrInvalidRequestBody, ErrReferencedNotFound,
		ErrServiceUnavailable, ErrUserNotFound, ErrBlogNotFound,
		ErrProductNotFound, ErrInvalidID, ErrInvalidEmail, ErrFieldRequired,
		ErrFieldNotBlank, ErrFieldString, ErrFieldPositiveInt,
		ErrFieldNonNegativeInt, MsgDeleted, MsgProductsListed, MsgCustomersListed,
	}
	data := map[string]any{"Field": "f", "Entity": "e", "Method": "GET", "Path": "/"}

	for _, locale := range []string{"en", "th"} {
		localizer := NewLocalizer(locale)
		for _, key := range keys {
			assert.NotEqual(t, key, TWithData(localizer, key, data), "%s missing in %s", key, locale)
		}
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultLocale, LocaleFromContext(ctx))
	assert.Equal(t, "resource not found", Ctx(ctx, ErrNotFound))

	ctx = WithLocalizer(WithLocale(ctx, "th"), NewLocalizer("th"))
	assert.Equal(t, "th", LocaleFromContext(ctx))
	assert.Equal(t, "ไม่พบข้อมูลที่ต้องการ", Ctx(ctx, ErrNotFound))
	assert.Equal(t, "email จำเป็นต้องระบุ", CtxWithData(ctx, ErrFieldRequired, map[string]any{"Field": "email"}))
}
