package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Translator resolves a (language, key) pair to a localized string.
type Translator interface {
	T(lang, key string, params map[string]string) string
}

// TranslationService holds one flat key→string table per language, loaded
// from JSON locale files. Lookups fall back to the default language, then
// to the raw key. Constructed once at startup and injected everywhere a
// translation is needed.
type TranslationService struct {
	mu       sync.RWMutex
	fallback string
	tables   map[string]map[string]string
}

func NewTranslationService(fallback string) *TranslationService {
	return &TranslationService{
		fallback: fallback,
		tables:   make(map[string]map[string]string),
	}
}

// LoadDir reads every <lang>.json file in dir into the service.
func (s *TranslationService) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read locales directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), ".json")
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read locale %s: %w", lang, err)
		}
		table := make(map[string]string)
		if err := json.Unmarshal(data, &table); err != nil {
			return fmt.Errorf("failed to parse locale %s: %w", lang, err)
		}
		s.AddLocale(lang, table)
	}

	log.Printf("Loaded %d locales from %s", len(s.tables), dir)
	return nil
}

// AddLocale registers or replaces the table for one language.
func (s *TranslationService) AddLocale(lang string, table map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[lang] = table
}

// T looks up key in lang, falling back to the default language and then to
// the key itself. Occurrences of {param} are replaced from params.
func (s *TranslationService) T(lang, key string, params map[string]string) string {
	// Region subtags like "en-US" resolve through their base language.
	if idx := strings.Index(lang, "-"); idx > 0 {
		lang = lang[:idx]
	}

	s.mu.RLock()
	translation, ok := s.tables[lang][key]
	if !ok {
		translation, ok = s.tables[s.fallback][key]
	}
	s.mu.RUnlock()
	if !ok {
		translation = key
	}

	for name, value := range params {
		translation = strings.ReplaceAll(translation, "{"+name+"}", value)
	}
	return translation
}
