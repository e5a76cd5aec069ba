package entities

// WordRequest describes what vocabulary to generate for a topic.
type WordRequest struct {
	Topic               string
	SourceLanguage      string
	TargetLanguage      string
	Count               int
	WordLevel           string // optional CEFR level
	DescriptionLanguage string // optional, language of definitions
}

// ExtractedWord is one vocabulary item returned by a word provider.
type ExtractedWord struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
	Definition  string `json:"definition"`
	Context     string `json:"context,omitempty"`
}

// Valid reports whether the item can become a card.
func (w ExtractedWord) Valid() bool {
	return w.Word != "" && w.Translation != ""
}

// LookupStatus tells how reliable a single-word lookup is.
type LookupStatus string

const (
	LookupOK       LookupStatus = "ok"
	LookupFallback LookupStatus = "fallback" // the provider answered but could not really translate
	LookupError    LookupStatus = "error"
)

// WordData is the result of a single-word lookup.
type WordData struct {
	Translation string
	Definition  string
	Status      LookupStatus
}
