package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslationLookupChain(t *testing.T) {
	tr := NewTranslationService("es")
	tr.AddLocale("es", map[string]string{
		"greeting": "Hola",
		"farewell": "Adiós",
	})
	tr.AddLocale("en", map[string]string{
		"greeting": "Hello",
	})

	t.Run("direct hit", func(t *testing.T) {
		assert.Equal(t, "Hello", tr.T("en", "greeting", nil))
	})

	t.Run("falls back to default language", func(t *testing.T) {
		assert.Equal(t, "Adiós", tr.T("en", "farewell", nil))
	})

	t.Run("unknown language uses fallback", func(t *testing.T) {
		assert.Equal(t, "Hola", tr.T("fr", "greeting", nil))
	})

	t.Run("unknown key returns the key", func(t *testing.T) {
		assert.Equal(t, "missing_key", tr.T("en", "missing_key", nil))
	})
}

func TestTranslationRegionSubtag(t *testing.T) {
	tr := NewTranslationService("es")
	tr.AddLocale("en", map[string]string{"greeting": "Hello"})

	assert.Equal(t, "Hello", tr.T("en-US", "greeting", nil))
	assert.Equal(t, "Hello", tr.T("en-GB", "greeting", nil))
}

func TestTranslationParams(t *testing.T) {
	tr := NewTranslationService("es")
	tr.AddLocale("es", map[string]string{
		"query": "Consulta sobre la reserva {id} de {name}",
	})

	got := tr.T("es", "query", map[string]string{"id": "AbCd1234", "name": "Carla"})
	assert.Equal(t, "Consulta sobre la reserva AbCd1234 de Carla", got)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"greeting": "Hello"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "es.json"), []byte(`{"greeting": "Hola"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a locale"), 0o644))

	tr := NewTranslationService("es")
	require.NoError(t, tr.LoadDir(dir))

	assert.Equal(t, "Hello", tr.T("en", "greeting", nil))
	assert.Equal(t, "Hola", tr.T("es", "greeting", nil))
}

func TestLoadDirRejectsBadJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte("{broken"), 0o644))

	tr := NewTranslationService("es")
	assert.Error(t, tr.LoadDir(dir))
}

func TestUnknownLanguageResolvesThroughEnglish(t *testing.T) {
	tr := NewTranslationService("en")
	require.NoError(t, tr.LoadDir(filepath.Join("..", "..", "locales")))

	// A language we ship no table for gets the English string, not the key.
	assert.Equal(t, "Your transfer booking is confirmed", tr.T("fr", "email_subject", nil))
	assert.Equal(t, "Your transfer booking is confirmed", tr.T("de-DE", "email_subject", nil))

	// Shipped languages still resolve directly.
	assert.Equal(t, "Tu reserva de traslado está confirmada", tr.T("es", "email_subject", nil))
}

func TestShippedLocalesCoverEachOther(t *testing.T) {
	tr := NewTranslationService("en")
	err := tr.LoadDir(filepath.Join("..", "..", "locales"))
	require.NoError(t, err)

	tr.mu.RLock()
	defer tr.mu.RUnlock()
	en, es := tr.tables["en"], tr.tables["es"]
	require.NotEmpty(t, en)
	require.NotEmpty(t, es)

	for key := range en {
		assert.Contains(t, es, key, "missing es translation")
	}
	for key := range es {
		assert.Contains(t, en, key, "missing en translation")
	}
}
