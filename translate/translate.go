// Package translate provides the Translater-class for lingualization, using JSON-mappings with github.com/Compufreak345/go-i18n/i18n.
package translate

import (
	"github.com/Compufreak345/go-i18n/i18n"
)

// Translater provides functions for translating
type Translater struct {
	DefaultLang  string
	FallbackLang string
}

type TFunc func(key string) string

// T translates a string with the given arguments for i18n.TFunc.
// If no translation-files are loaded the key is returned unchanged.
func (t *Translater) T(key string, args ...interface{}) string {
	lang := t.DefaultLang
	if lang == "" {
		lang = "en-US"
	}
	fallback := t.FallbackLang
	if fallback == "" {
		fallback = lang
	}
	Tfunc, err := i18n.Tfunc(lang, fallback)
	if err != nil || Tfunc == nil {
		return key
	}
	return Tfunc(key, args...)
}

// MustLoadTranslationFile loads the given translation-file and panics if it is not found.
func (t *Translater) MustLoadTranslationFile(path string) {
	i18n.MustLoadTranslationFile(path)
}
