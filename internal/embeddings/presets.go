package embeddings

import "sort"

// Preset configurations per supported language. Word embeddings are
// naturally language-specific, so there is no default preset: pipeline
// authors pick one of these instead of remembering ISO codes and variant
// names.

// Arabic is the default embeddings configuration for Arabic.
func Arabic() Config {
	return Config{
		Language:    "arb",
		Variant:     VariantFastText,
		Description: "Default embeddings for Arabic.",
	}
}

// Aramaic is the default embeddings configuration for Imperial Aramaic.
func Aramaic() Config {
	return Config{
		Language:    "arc",
		Variant:     VariantFastText,
		Description: "Default embeddings for Aramaic.",
	}
}

// Gothic is the default embeddings configuration for Gothic.
func Gothic() Config {
	return Config{
		Language:    "got",
		Variant:     VariantFastText,
		Description: "Default embeddings for Gothic.",
	}
}

// Greek is the default embeddings configuration for Ancient Greek. It is
// the one preset served by the NLPL word2vec tables rather than fastText.
func Greek() Config {
	return Config{
		Language:    "grc",
		Variant:     VariantNLPL,
		Description: "Default embeddings for Ancient Greek.",
	}
}

// Latin is the default embeddings configuration for Latin.
func Latin() Config {
	return Config{
		Language:    "lat",
		Variant:     VariantFastText,
		Description: "Default embeddings for Latin.",
	}
}

// OldEnglish is the default embeddings configuration for Old English.
func OldEnglish() Config {
	return Config{
		Language:    "ang",
		Variant:     VariantFastText,
		Description: "Default embeddings for Old English.",
	}
}

// Pali is the default embeddings configuration for Pali.
func Pali() Config {
	return Config{
		Language:    "pli",
		Variant:     VariantFastText,
		Description: "Default embeddings for Pali.",
	}
}

// Sanskrit is the default embeddings configuration for Sanskrit.
func Sanskrit() Config {
	return Config{
		Language:    "san",
		Variant:     VariantFastText,
		Description: "Default embeddings for Sanskrit.",
	}
}

var presets = map[string]func() Config{
	"arb": Arabic,
	"arc": Aramaic,
	"got": Gothic,
	"grc": Greek,
	"lat": Latin,
	"ang": OldEnglish,
	"pli": Pali,
	"san": Sanskrit,
}

// PresetFor returns the preset configuration for a language code.
func PresetFor(language string) (Config, bool) {
	preset, ok := presets[language]
	if !ok {
		return Config{}, false
	}
	return preset(), true
}

// SupportedLanguages lists the language codes with a preset, sorted.
func SupportedLanguages() []string {
	languages := make([]string, 0, len(presets))
	for code := range presets {
		languages = append(languages, code)
	}
	sort.Strings(languages)
	return languages
}
