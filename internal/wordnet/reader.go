package wordnet

import "go.uber.org/zap"

// Reader is a handle onto a WordNet-style corpus for one language. The
// corpora themselves (Latin WordNet, Ancient Greek WordNet, Sanskrit
// WordNet) live behind this boundary; the handle only fixes which corpus
// sense lookups would consult.
type Reader struct {
	language string
	logger   *zap.Logger
}

// NewReader constructs a corpus reader for an internal WordNet language
// code ("lat", "grk", "skt").
func NewReader(language string, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{language: language, logger: logger}
}

// Language returns the WordNet-internal language code of the corpus.
func (r *Reader) Language() string { return r.language }
