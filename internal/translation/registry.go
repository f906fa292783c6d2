// Package translation resolves the opaque name and description keys stored
// on catalog records into locale text.
package translation

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"storefront-service/internal/storage"
)

// Locale identifies a supported display language
type Locale string

const (
	English Locale = "en"
	Arabic  Locale = "ar"
)

// DynamicKey is the storage key of merchant-registered translations.
const DynamicKey = "dynamic_translations"

// Locales lists every supported locale, default first.
var Locales = []Locale{English, Arabic}

// ParseLocale maps a language tag such as "ar-SA" onto a supported locale,
// defaulting to English.
func ParseLocale(tag string) Locale {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_,;"); i >= 0 {
		tag = tag[:i]
	}
	if Locale(tag) == Arabic {
		return Arabic
	}
	return English
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]`)

// GenerateKey derives a translation key from a display name:
// prefix.slug_millis, where slug keeps only lowercase letters and digits.
// Keys are not unique on their own; see RegisterFresh.
func GenerateKey(prefix, name string, now time.Time) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "")
	if slug == "" {
		slug = "item"
	}
	return fmt.Sprintf("%s.%s_%d", prefix, slug, now.UnixMilli())
}

// Registry is a two-level table key -> locale -> text. Static entries ship
// with the service; dynamic entries are registered by merchants and
// persisted.
type Registry struct {
	mu      sync.RWMutex
	kv      storage.Store
	logger  *logrus.Entry
	static  map[string]map[Locale]string
	dynamic map[string]map[Locale]string
}

// NewRegistry creates a registry seeded with the built-in strings.
func NewRegistry(kv storage.Store, logger *logrus.Logger) *Registry {
	return &Registry{
		kv:      kv,
		logger:  logger.WithField("component", "translation.registry"),
		static:  defaultStrings(),
		dynamic: make(map[string]map[Locale]string),
	}
}

// Load restores persisted dynamic translations. Unreadable data is logged
// and ignored.
func (r *Registry) Load(ctx context.Context) {
	var stored map[string]map[Locale]string
	found, err := storage.GetJSON(ctx, r.kv, DynamicKey, &stored)
	if err != nil {
		r.logger.WithError(err).Warn("Ignoring unreadable dynamic translations")
		return
	}
	if !found || stored == nil {
		return
	}
	r.mu.Lock()
	r.dynamic = stored
	r.mu.Unlock()
	r.logger.WithField("keys", len(stored)).Debug("Loaded dynamic translations")
}

// Register stores text for several locales under key with a single write.
func (r *Registry) Register(ctx context.Context, key string, texts map[Locale]string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.dynamic[key]
	if !ok {
		entry = make(map[Locale]string, len(texts))
		r.dynamic[key] = entry
	}
	for locale, text := range texts {
		entry[locale] = text
	}
	r.persist(ctx)
}

// RegisterFresh registers each suffix -> texts entry under base+suffix,
// where base is extended with a counter until none of those keys exists.
// It returns the chosen base.
func (r *Registry) RegisterFresh(ctx context.Context, base string, entries map[string]map[Locale]string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := base
	for n := 2; r.taken(key, entries); n++ {
		key = fmt.Sprintf("%s_%d", base, n)
	}
	for suffix, texts := range entries {
		entry := make(map[Locale]string, len(texts))
		for locale, text := range texts {
			entry[locale] = text
		}
		r.dynamic[key+suffix] = entry
	}
	r.persist(ctx)
	return key
}

func (r *Registry) taken(key string, entries map[string]map[Locale]string) bool {
	for suffix := range entries {
		if _, ok := r.dynamic[key+suffix]; ok {
			return true
		}
		if _, ok := r.static[key+suffix]; ok {
			return true
		}
	}
	return false
}

// RegisterString stores text for one locale under key.
func (r *Registry) RegisterString(ctx context.Context, key string, locale Locale, text string) {
	r.Register(ctx, key, map[Locale]string{locale: text})
}

// Lookup resolves key in locale, falling back to English and finally to
// the key itself.
func (r *Registry) Lookup(key string, locale Locale) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, table := range []map[string]map[Locale]string{r.dynamic, r.static} {
		if text, ok := table[key][locale]; ok && text != "" {
			return text
		}
	}
	if locale != English {
		for _, table := range []map[string]map[Locale]string{r.dynamic, r.static} {
			if text, ok := table[key][English]; ok && text != "" {
				return text
			}
		}
	}
	return key
}

// Has reports whether key resolves to any text.
func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, dyn := r.dynamic[key]
	_, st := r.static[key]
	return dyn || st
}

func (r *Registry) persist(ctx context.Context) {
	if err := storage.SetJSON(ctx, r.kv, DynamicKey, r.dynamic); err != nil {
		r.logger.WithError(err).Error("Failed to persist dynamic translations")
	}
}
