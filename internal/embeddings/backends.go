package embeddings

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// FastTextEmbedder serves fastText word vectors for one language from a
// local .vec table under <modelsDir>/fasttext/<language>.vec.
type FastTextEmbedder struct {
	language string
	table    *vectorTable
}

// NewFastTextEmbedder loads the fastText vector table for a language.
func NewFastTextEmbedder(modelsDir, language string, logger *zap.Logger) (*FastTextEmbedder, error) {
	path := filepath.Join(modelsDir, "fasttext", language+".vec")
	table, err := loadVectorTable(path, logger)
	if err != nil {
		return nil, fmt.Errorf("fasttext model for %q: %w", language, err)
	}
	return &FastTextEmbedder{language: language, table: table}, nil
}

// Language returns the language code the embedder was built for.
func (e *FastTextEmbedder) Language() string { return e.language }

func (e *FastTextEmbedder) Lookup(token string) ([]float32, bool) {
	return e.table.Lookup(token)
}

func (e *FastTextEmbedder) Dimension() int { return e.table.Dimension() }

// NLPLEmbedder serves word2vec vectors distributed by the NLPL word
// embeddings repository, from <modelsDir>/nlpl/<language>/model.txt.
type NLPLEmbedder struct {
	language string
	table    *vectorTable
}

// NewNLPLEmbedder loads the NLPL word2vec table for a language.
func NewNLPLEmbedder(modelsDir, language string, logger *zap.Logger) (*NLPLEmbedder, error) {
	path := filepath.Join(modelsDir, "nlpl", language, "model.txt")
	table, err := loadVectorTable(path, logger)
	if err != nil {
		return nil, fmt.Errorf("nlpl model for %q: %w", language, err)
	}
	return &NLPLEmbedder{language: language, table: table}, nil
}

// Language returns the language code the embedder was built for.
func (e *NLPLEmbedder) Language() string { return e.language }

func (e *NLPLEmbedder) Lookup(token string) ([]float32, bool) {
	return e.table.Lookup(token)
}

func (e *NLPLEmbedder) Dimension() int { return e.table.Dimension() }

var (
	_ Embedder = (*FastTextEmbedder)(nil)
	_ Embedder = (*NLPLEmbedder)(nil)
)
