package embeddings

import (
	"fmt"
	"strings"
)

// Variant selects which embedding backend family a Process uses.
type Variant string

const (
	// VariantFastText uses fastText-style subword vector tables.
	VariantFastText Variant = "fasttext"

	// VariantNLPL uses word2vec-style vector tables from the NLPL repository.
	VariantNLPL Variant = "nlpl"
)

// Variants returns the closed set of supported backend variants.
func Variants() []Variant {
	return []Variant{VariantFastText, VariantNLPL}
}

// Valid reports whether v is a member of the supported variant set.
func (v Variant) Valid() bool {
	switch v {
	case VariantFastText, VariantNLPL:
		return true
	}
	return false
}

// InvalidVariantError reports a configured variant outside the supported set.
// It is raised on first algorithm resolution, not at configuration time.
type InvalidVariantError struct {
	Variant Variant
}

func (e *InvalidVariantError) Error() string {
	valid := make([]string, 0, len(Variants()))
	for _, v := range Variants() {
		valid = append(valid, string(v))
	}
	return fmt.Sprintf("invalid embeddings variant %q (must be one of: %s)",
		string(e.Variant), strings.Join(valid, ", "))
}

// Embedder is a language- and variant-specific backend capable of vector
// lookups for tokens. Implementations are read-only after construction and
// safe for concurrent lookups.
type Embedder interface {
	// Lookup returns the vector for a token, or ok=false when the token
	// is not in the backend's vocabulary.
	Lookup(token string) ([]float32, bool)

	// Dimension returns the fixed vector length, stable for the
	// backend's lifetime.
	Dimension() int
}

// BackendFactory constructs one Embedder for a (language, variant) pair.
// The Process layer calls it at most once per instance.
type BackendFactory interface {
	Create(language string, variant Variant) (Embedder, error)
}
