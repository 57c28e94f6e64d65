// Package i18n loads the notification message bundles and renders
// notification texts in the supported languages.
package i18n

import (
	"embed"
	"fmt"
	"regexp"
	"strings"

	"greencity/config"
	"greencity/domain/shared"

	"gopkg.in/yaml.v3"
)

//go:embed bundles/*.yaml
var bundleFS embed.FS

const placeholder = "%s"

// ErrUnsupportedLanguage is returned for languages without a bundle.
var ErrUnsupportedLanguage = fmt.Errorf("%w: unsupported language", shared.ErrInvalidInput)

// Catalog holds one message bundle per language. Texts are stored in the
// default language and translated on read.
type Catalog struct {
	defaultLang string
	bundles     map[string]map[string]string
	patterns    map[string]*regexp.Regexp
}

// Load reads notifications_<lang>.yaml for every configured language. Each
// bundle must define every key of the default bundle.
func Load(cfg config.I18nConfig) (*Catalog, error) {
	if cfg.DefaultLanguage == "" {
		return nil, fmt.Errorf("default language is required")
	}

	languages := cfg.Languages
	if !contains(languages, cfg.DefaultLanguage) {
		languages = append([]string{cfg.DefaultLanguage}, languages...)
	}

	c := &Catalog{
		defaultLang: cfg.DefaultLanguage,
		bundles:     make(map[string]map[string]string, len(languages)),
		patterns:    make(map[string]*regexp.Regexp),
	}
	for _, lang := range languages {
		bundle, err := readBundle(lang)
		if err != nil {
			return nil, err
		}
		c.bundles[lang] = bundle
	}

	for key, template := range c.bundles[c.defaultLang] {
		for lang, bundle := range c.bundles {
			if _, ok := bundle[key]; !ok {
				return nil, fmt.Errorf("bundle %q is missing key %s", lang, key)
			}
		}
		c.patterns[key] = templatePattern(template)
	}
	return c, nil
}

func readBundle(lang string) (map[string]string, error) {
	data, err := bundleFS.ReadFile("bundles/notifications_" + lang + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("no message bundle for language %q: %w", lang, err)
	}
	bundle := make(map[string]string)
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parse bundle %q: %w", lang, err)
	}
	return bundle, nil
}

// templatePattern matches texts rendered from template and captures the parameters.
func templatePattern(template string) *regexp.Regexp {
	parts := strings.Split(template, placeholder)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile("^" + strings.Join(parts, "(.*?)") + "$")
}

// ResolveLanguage maps an empty lang to the default and rejects unknown ones.
func (c *Catalog) ResolveLanguage(lang string) (string, error) {
	if lang == "" {
		return c.defaultLang, nil
	}
	if _, ok := c.bundles[lang]; !ok {
		return "", shared.NewDomainError(ErrUnsupportedLanguage, "notification", "unsupported language: "+lang)
	}
	return lang, nil
}

// Render fills the default-language template of key with params.
func (c *Catalog) Render(key string, params []string) (string, error) {
	return c.RenderIn(c.defaultLang, key, params)
}

func (c *Catalog) RenderIn(lang, key string, params []string) (string, error) {
	bundle, ok := c.bundles[lang]
	if !ok {
		return "", shared.NewDomainError(ErrUnsupportedLanguage, "notification", "unsupported language: "+lang)
	}
	template, ok := bundle[key]
	if !ok {
		return "", fmt.Errorf("message key %s not found", key)
	}
	return fill(template, params), nil
}

// Localize translates text, rendered from the default template of key, into
// lang. Text that does not match the template is returned unchanged.
func (c *Catalog) Localize(key, text, lang string) string {
	if lang == c.defaultLang {
		return text
	}
	pattern, ok := c.patterns[key]
	if !ok {
		return text
	}
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	translated, err := c.RenderIn(lang, key, m[1:])
	if err != nil {
		return text
	}
	return translated
}

// fill replaces placeholders in order; missing params leave the placeholder empty.
func fill(template string, params []string) string {
	if len(params) == 0 {
		return template
	}
	parts := strings.Split(template, placeholder)
	var b strings.Builder
	for i, part := range parts {
		b.WriteString(part)
		if i < len(parts)-1 && i < len(params) {
			b.WriteString(params[i])
		}
	}
	return b.String()
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
