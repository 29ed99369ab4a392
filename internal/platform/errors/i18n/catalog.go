// Package i18n provides internationalization support for error and
// validation messages.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	i18ncatalog "github.com/louisbranch/boardplay/internal/platform/i18n/catalog"
)

// Code is a machine-readable message code (duplicated from errors package to avoid cycle).
type Code = string

// Namespaces served by the embedded bundle.
const (
	NamespaceErrors     = "errors"
	NamespaceValidation = "validation"
	NamespaceResults    = "results"
)

// Catalog maps message codes to templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

type catalogKey struct {
	locale    string
	namespace string
}

var (
	catalogsMu sync.RWMutex
	// catalogs holds override and runtime-built catalogs by locale and namespace.
	catalogs = map[catalogKey]*Catalog{}
)

// GetCatalog returns the error catalog for the given locale.
// Falls back to en-US if the locale is not found.
func GetCatalog(locale string) *Catalog {
	return GetNamespaceCatalog(locale, NamespaceErrors)
}

// GetNamespaceCatalog returns the catalog of one namespace for the given
// locale, falling back to the base locale.
func GetNamespaceCatalog(locale, namespace string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = i18ncatalog.BaseLocale
	}
	bundle := i18ncatalog.Default()
	requested = bundle.Match(requested)

	if c, ok := lookupCatalog(catalogKey{requested, namespace}); ok {
		return c
	}

	resolvedLocale, messages := bundle.NamespaceMessagesWithFallback(requested, namespace)
	if c, ok := lookupCatalog(catalogKey{resolvedLocale, namespace}); ok {
		return c
	}

	built := NewCatalog(resolvedLocale, messages)
	return storeCatalogIfAbsent(catalogKey{resolvedLocale, namespace}, built)
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Has reports whether the catalog defines a template for code.
func (c *Catalog) Has(code Code) bool {
	_, ok := c.messages[code]
	return ok
}

// Format renders the message template with the given metadata.
// Falls back to the code itself if no template is found.
// Templates are always executed even with nil/empty metadata so that
// missing variables render consistently.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}

	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}

// RegisterCatalog registers a catalog for the given locale in the errors
// namespace. Intended for init or single-threaded test setup.
func RegisterCatalog(locale string, cat *Catalog) {
	RegisterNamespaceCatalog(locale, NamespaceErrors, cat)
}

// RegisterNamespaceCatalog registers a catalog for one locale and namespace.
func RegisterNamespaceCatalog(locale, namespace string, cat *Catalog) {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	catalogs[catalogKey{locale, namespace}] = cat
}

// NewCatalog creates a new catalog with the given locale and messages.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	cloned := make(map[Code]string, len(messages))
	for key, value := range messages {
		cloned[key] = value
	}
	return &Catalog{
		locale:   locale,
		messages: cloned,
	}
}

func lookupCatalog(key catalogKey) (*Catalog, bool) {
	catalogsMu.RLock()
	defer catalogsMu.RUnlock()
	cat, ok := catalogs[key]
	return cat, ok
}

func storeCatalogIfAbsent(key catalogKey, candidate *Catalog) *Catalog {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	if existing, ok := catalogs[key]; ok {
		return existing
	}
	catalogs[key] = candidate
	return candidate
}
