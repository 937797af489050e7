package core

import "strings"

// Word is a single token inside a Doc. The surface form is fixed at
// construction; annotation processes fill in the remaining fields in place.
type Word struct {
	// String is the surface form as it appeared in the source text.
	String string `json:"string"`

	// Index is the token's position within the Doc's word sequence.
	Index int `json:"index"`

	// Lemma is the dictionary headword, when a lemmatizer has run.
	Lemma string `json:"lemma,omitempty"`

	// Embedding is the word vector attached by an embeddings process.
	// Every word carries a vector of the backend's dimension after a run;
	// tokens unknown to the backend get a zero vector.
	Embedding []float32 `json:"embedding,omitempty"`
}

// Doc is the shared document object that a pipeline's processes enrich.
// Processes mutate the word records in place and hand back the same Doc;
// the word sequence is never copied or reordered.
type Doc struct {
	Raw      string  `json:"raw"`
	Language string  `json:"language"`
	Words    []*Word `json:"words"`
}

// NewDoc builds a Doc from pre-tokenized input, preserving token order.
func NewDoc(language, raw string, tokens []string) *Doc {
	words := make([]*Word, len(tokens))
	for i, tok := range tokens {
		words[i] = &Word{String: tok, Index: i}
	}
	return &Doc{Raw: raw, Language: language, Words: words}
}

// NewDocFromText builds a Doc by splitting raw text on whitespace.
// This is deliberately naive; callers wanting real tokenization should
// tokenize upstream and use NewDoc.
func NewDocFromText(language, raw string) *Doc {
	return NewDoc(language, raw, strings.Fields(raw))
}

// Tokens returns the surface forms of the Doc's words in order.
func (d *Doc) Tokens() []string {
	tokens := make([]string, len(d.Words))
	for i, w := range d.Words {
		tokens[i] = w.String
	}
	return tokens
}
