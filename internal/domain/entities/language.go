package entities

import "strings"

// Language is a supported language, identified by its ISO 639-1 code.
type Language struct {
	Code string
	Name string
	Flag string
}

// Languages lists the languages the bot can teach and describe words in.
var Languages = []Language{
	{Code: "en", Name: "English", Flag: "🇬🇧"},
	{Code: "ru", Name: "Russian", Flag: "🇷🇺"},
	{Code: "es", Name: "Spanish", Flag: "🇪🇸"},
	{Code: "de", Name: "German", Flag: "🇩🇪"},
	{Code: "fr", Name: "French", Flag: "🇫🇷"},
	{Code: "it", Name: "Italian", Flag: "🇮🇹"},
	{Code: "pt", Name: "Portuguese", Flag: "🇵🇹"},
	{Code: "tr", Name: "Turkish", Flag: "🇹🇷"},
	{Code: "ar", Name: "Arabic", Flag: "🇸🇦"},
	{Code: "zh", Name: "Chinese", Flag: "🇨🇳"},
	{Code: "ja", Name: "Japanese", Flag: "🇯🇵"},
	{Code: "ko", Name: "Korean", Flag: "🇰🇷"},
}

// InterfaceLanguages are the languages offered during registration.
var InterfaceLanguages = []string{"en", "ru", "es", "de", "fr"}

// LookupLanguage finds a language by code or English name, case-insensitively.
func LookupLanguage(s string) (Language, bool) {
	s = strings.TrimSpace(s)
	for _, l := range Languages {
		if strings.EqualFold(l.Code, s) || strings.EqualFold(l.Name, s) {
			return l, true
		}
	}
	return Language{}, false
}

// LanguageName returns the display name for a code, or the code itself when unknown.
func LanguageName(code string) string {
	if l, ok := LookupLanguage(code); ok {
		return l.Name
	}
	return code
}

// WordLevels are the CEFR levels a topic can be generated for.
var WordLevels = []string{"A1", "A2", "B1", "B2", "C1", "C2"}

var wordLevelAliases = map[string]string{
	"beginner":     "A1",
	"elementary":   "A2",
	"intermediate": "B1",
	"advanced":     "C1",
}

// ParseWordLevel accepts a CEFR level or a plain-word alias and returns the CEFR level.
func ParseWordLevel(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, lvl := range WordLevels {
		if strings.EqualFold(lvl, s) {
			return lvl, true
		}
	}
	lvl, ok := wordLevelAliases[strings.ToLower(s)]
	return lvl, ok
}
