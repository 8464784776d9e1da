package models

// BaseLanguage is the default response language; prompts carry no
// language instruction for it.
const BaseLanguage = "English"

// Language represents a supported output language
type Language struct {
	Name string `json:"name"`
	// Instruction is the phrase appended to prompts, e.g. "Simplified Chinese"
	// for "Chinese (Simplified)".
	Instruction string `json:"-"`
}

// SupportedLanguages is the fixed set of output languages, in display order
var SupportedLanguages = []Language{
	{Name: "English", Instruction: ""},
	{Name: "Spanish", Instruction: "Spanish"},
	{Name: "French", Instruction: "French"},
	{Name: "German", Instruction: "German"},
	{Name: "Italian", Instruction: "Italian"},
	{Name: "Portuguese", Instruction: "Portuguese"},
	{Name: "Japanese", Instruction: "Japanese"},
	{Name: "Chinese (Simplified)", Instruction: "Simplified Chinese"},
	{Name: "Korean", Instruction: "Korean"},
	{Name: "Arabic", Instruction: "Arabic"},
}

// LookupLanguage finds a supported language by its exact name
func LookupLanguage(name string) (Language, bool) {
	for _, lang := range SupportedLanguages {
		if lang.Name == name {
			return lang, true
		}
	}
	return Language{}, false
}

// LanguageNames returns the names of all supported languages
func LanguageNames() []string {
	names := make([]string, len(SupportedLanguages))
	for i, lang := range SupportedLanguages {
		names[i] = lang.Name
	}
	return names
}
