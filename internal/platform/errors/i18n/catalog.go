// Package i18n provides localized error messages for domain error codes.
package i18n

import (
	"bytes"
	"strings"
	"text/template"

	"golang.org/x/text/language"
)

// Code is a machine-readable error code (duplicated from the errors package
// to avoid an import cycle).
type Code = string

// BaseLocale is the locale every code must have a message for.
const BaseLocale = "en-US"

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

// catalogs holds the compiled per-locale catalogs.
var catalogs = map[string]*Catalog{
	BaseLocale: {locale: BaseLocale, messages: messagesEnUS},
}

// supported lists catalog locales in matcher priority order.
var supported = func() []language.Tag {
	tags := make([]language.Tag, 0, len(catalogs))
	tags = append(tags, language.MustParse(BaseLocale))
	for locale := range catalogs {
		if locale == BaseLocale {
			continue
		}
		tags = append(tags, language.MustParse(locale))
	}
	return tags
}()

var matcher = language.NewMatcher(supported)

// GetCatalog returns the catalog best matching the requested locale.
// Falls back to en-US when the locale is unknown or empty.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		return catalogs[BaseLocale]
	}
	if c, ok := catalogs[requested]; ok {
		return c
	}

	tag, err := language.Parse(requested)
	if err != nil {
		return catalogs[BaseLocale]
	}
	_, index, _ := matcher.Match(tag)
	resolved := supported[index].String()
	if c, ok := catalogs[resolved]; ok {
		return c
	}
	return catalogs[BaseLocale]
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	if c == nil {
		return BaseLocale
	}
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the error code itself if no template is found.
// Templates are always executed even with nil/empty metadata so template
// variables without metadata render as empty.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	if c == nil {
		return code
	}
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
