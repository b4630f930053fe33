package locale

import (
	"fmt"

	"golang.org/x/text/language"
)

// Registry maps locale tags to locales. The zero value is not usable; use
// NewRegistry.
type Registry struct {
	locales map[string]Locale
}

// NewRegistry returns a registry holding the bundled locales.
func NewRegistry() *Registry {
	r := &Registry{locales: make(map[string]Locale)}
	r.locales[English.Tag.String()] = English
	r.locales[Spanish.Tag.String()] = Spanish
	return r
}

// Add registers l under name, replacing any previous entry. The name must
// be a valid BCP 47 tag.
func (r *Registry) Add(name string, l Locale) error {
	tag, err := language.Parse(name)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidTag, name, err)
	}
	if err := l.Validate(); err != nil {
		return fmt.Errorf("locale %s: %w", tag, err)
	}
	l.Tag = tag
	r.locales[tag.String()] = l
	return nil
}

// Get returns the locale for name. When there is no exact entry the base
// language is tried, so "en-GB" falls back to "en".
func (r *Registry) Get(name string) (Locale, error) {
	if name == "" {
		return English, nil
	}
	tag, err := language.Parse(name)
	if err != nil {
		return Locale{}, fmt.Errorf("%w: %q: %v", ErrInvalidTag, name, err)
	}
	if l, ok := r.locales[tag.String()]; ok {
		return l, nil
	}
	base, _ := tag.Base()
	if l, ok := r.locales[base.String()]; ok {
		return l, nil
	}
	return Locale{}, fmt.Errorf("%w: %s", ErrUnknownLocale, tag)
}

// Names returns the registered tags.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.locales))
	for n := range r.locales {
		names = append(names, n)
	}
	return names
}
