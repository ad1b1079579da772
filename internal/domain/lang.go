package domain

import "strings"

// Lang is a supported site language code.
type Lang string

const (
	LangEN Lang = "en"
	LangFR Lang = "fr"
)

// DefaultLang is used when no preference has been stored.
const DefaultLang = LangFR

// ParseLang validates a language code, ignoring case and surrounding spaces.
func ParseLang(raw string) (Lang, error) {
	switch Lang(strings.ToLower(strings.TrimSpace(raw))) {
	case LangEN:
		return LangEN, nil
	case LangFR:
		return LangFR, nil
	default:
		return "", ErrUnsupportedLanguage
	}
}

// LangOrDefault parses raw and falls back to def when it is not supported.
func LangOrDefault(raw string, def Lang) Lang {
	l, err := ParseLang(raw)
	if err != nil {
		return def
	}
	return l
}

// LocalizedText maps a language to its text.
type LocalizedText map[Lang]string

// In returns the text for lang, falling back to French and then English.
func (t LocalizedText) In(lang Lang) string {
	if v, ok := t[lang]; ok && v != "" {
		return v
	}
	if v := t[LangFR]; v != "" {
		return v
	}
	return t[LangEN]
}

func (t LocalizedText) Clone() LocalizedText {
	if t == nil {
		return nil
	}
	out := make(LocalizedText, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
