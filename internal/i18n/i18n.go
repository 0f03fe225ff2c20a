// Package i18n — таблицы строк для карточки и бота. Движок про них не знает.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"

	"signal_bot/internal/models"
)

const (
	Ukrainian = "uk"
	English   = "en"

	Fallback = English
)

//go:embed locales/*.yaml
var localesFS embed.FS

type table struct {
	Name    string            `yaml:"name"`
	Labels  map[string]string `yaml:"labels"`
	Signals map[string]string `yaml:"signals"`
	Errors  map[string]string `yaml:"errors"`
}

type Catalog struct {
	tables map[string]table
}

// Load читает все встроенные таблицы.
func Load() (*Catalog, error) {
	entries, err := localesFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	c := &Catalog{tables: make(map[string]table, len(entries))}
	for _, e := range entries {
		raw, err := localesFS.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, err
		}
		var t table
		if err := yaml.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("locale %s: %w", e.Name(), err)
		}
		c.tables[strings.TrimSuffix(e.Name(), ".yaml")] = t
	}
	if _, ok := c.tables[Fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %q is missing", Fallback)
	}
	return c, nil
}

// MustLoad — для тестов и main.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.tables))
	for k := range c.tables {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) Has(lang string) bool {
	_, ok := c.tables[lang]
	return ok
}

// Resolve: "Українська"/"UK"/"ua" -> "uk". ok=false, если язык не знаем.
func (c *Catalog) Resolve(lang string) (string, bool) {
	l := strings.ToLower(strings.TrimSpace(lang))
	if l == "ua" {
		l = Ukrainian
	}
	if c.Has(l) {
		return l, true
	}
	for code, t := range c.tables {
		if strings.EqualFold(t.Name, strings.TrimSpace(lang)) {
			return code, true
		}
	}
	return "", false
}

// Normalize — Resolve с откатом на Fallback.
func (c *Catalog) Normalize(lang string) string {
	if code, ok := c.Resolve(lang); ok {
		return code
	}
	return Fallback
}

// Name — самоназвание языка ("Українська").
func (c *Catalog) Name(lang string) string {
	if t, ok := c.tables[lang]; ok && t.Name != "" {
		return t.Name
	}
	return lang
}

func (c *Catalog) lookup(lang string, pick func(t table) map[string]string, key string) string {
	if t, ok := c.tables[lang]; ok {
		if v, ok := pick(t)[key]; ok {
			return v
		}
	}
	if v, ok := pick(c.tables[Fallback])[key]; ok {
		return v
	}
	return key
}

func (c *Catalog) Label(lang, key string) string {
	return c.lookup(lang, func(t table) map[string]string { return t.Labels }, key)
}

func (c *Catalog) Error(lang, key string) string {
	return c.lookup(lang, func(t table) map[string]string { return t.Errors }, key)
}

func (c *Catalog) Signal(lang string, e models.SignalEvent) string {
	text := c.lookup(lang, func(t table) map[string]string { return t.Signals }, string(e.Kind))
	if e.Magnitude != nil {
		text += ": " + models.FormatPercent(*e.Magnitude)
	}
	return text
}

// Decision — локализованный текст решения, события через sep.
func (c *Catalog) Decision(lang string, d models.Decision, sep string) string {
	if d.Hold() {
		return c.lookup(lang, func(t table) map[string]string { return t.Signals }, "hold")
	}
	parts := make([]string, 0, len(d.Events))
	for _, e := range d.Events {
		parts = append(parts, c.Signal(lang, e))
	}
	return strings.Join(parts, sep)
}
