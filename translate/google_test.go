package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evergreen-ci/cirrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestGoogleTranslatorOptions(t *testing.T) {
	t.Run("SucceedsWithoutCredentialsFile", func(t *testing.T) {
		assert.NoError(t, NewGoogleTranslatorOptions().Validate())
	})
	t.Run("FailsWithEmptyCredentialsFile", func(t *testing.T) {
		assert.Error(t, NewGoogleTranslatorOptions().SetCredentialsFile("").Validate())
	})
	t.Run("AddClientOptions", func(t *testing.T) {
		opts := NewGoogleTranslatorOptions().
			AddClientOptions(option.WithoutAuthentication()).
			AddClientOptions(option.WithEndpoint("http://localhost"))
		assert.Len(t, opts.ClientOptions, 2)
	})
}

func TestGoogleTranslator(t *testing.T) {
	assert.Implements(t, (*cirrus.Translator)(nil), &GoogleTranslator{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	newTranslator := func(t *testing.T, srv *httptest.Server) *GoogleTranslator {
		tr, err := NewGoogleTranslator(ctx, *NewGoogleTranslatorOptions().AddClientOptions(
			option.WithoutAuthentication(),
			option.WithEndpoint(srv.URL+"/"),
		))
		require.NoError(t, err)
		return tr
	}

	t.Run("RequestsPlainTextTranslation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "es", r.Form.Get("target"))
			assert.Equal(t, "en", r.Form.Get("source"))
			assert.Equal(t, "text", r.Form.Get("format"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data": {"translations": [{"translatedText": "¿Qué tal?"}]}}`))
		}))
		defer srv.Close()

		tr := newTranslator(t, srv)
		defer func() {
			assert.NoError(t, tr.Close())
		}()

		out, err := tr.Translate(ctx, "How are you?", cirrus.LanguageEnglish, cirrus.LanguageSpanish)
		require.NoError(t, err)
		assert.Equal(t, "¿Qué tal?", out)
	})
	t.Run("FailsWithAPIError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error": {"code": 403, "message": "quota exceeded"}}`))
		}))
		defer srv.Close()

		tr := newTranslator(t, srv)
		defer tr.Close()

		out, err := tr.Translate(ctx, "Hello", cirrus.LanguageEnglish, cirrus.LanguageGerman)
		assert.Error(t, err)
		assert.Zero(t, out)
	})
	t.Run("FailsWithUnsupportedLanguage", func(t *testing.T) {
		tr := &GoogleTranslator{}
		out, err := tr.Translate(ctx, "Hello", cirrus.Language("xx"), cirrus.LanguageGerman)
		require.Error(t, err)
		assert.True(t, cirrus.IsUnsupportedLanguage(err))
		assert.Zero(t, out)
	})
	t.Run("CloseIsIdempotent", func(t *testing.T) {
		tr := &GoogleTranslator{}
		assert.NoError(t, tr.Close())
		assert.NoError(t, tr.Close())
	})
}
