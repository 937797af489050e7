// Package wordnet wires WordNet-style sense corpora into the annotation
// pipeline. Only the reader resolution is implemented; sense attachment
// is an extension point.
package wordnet

import (
	"go.uber.org/zap"

	"github.com/wmshort/cltkv1/internal/core"
)

// readerCodes maps pipeline language codes to the WordNet-internal codes
// the corpora are published under. Languages outside this map have no
// WordNet corpus and resolve to no reader.
var readerCodes = map[string]string{
	"lat": "lat",
	"grc": "grk",
	"san": "skt",
}

// Process resolves a document's language to a WordNet corpus reader. The
// reader resolution mirrors the embeddings process: computed on first
// access, cached per instance, never recomputed. Unlike embeddings, "no
// corpus for this language" is a valid resolution, not an error, so the
// cache carries an explicit presence flag instead of relying on nil.
type Process struct {
	language string
	logger   *zap.Logger

	reader   *Reader
	resolved bool
}

// NewProcess creates a WordNet process for a language.
func NewProcess(language string, logger *zap.Logger) *Process {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Process{language: language, logger: logger}
}

// Description returns the process's human-readable description.
func (p *Process) Description() string {
	return "WordNet sense annotation for " + p.language + "."
}

// Language returns the configured language code.
func (p *Process) Language() string { return p.language }

// Algorithm returns the corpus reader for the process's language,
// constructing it on first call. Languages without a WordNet corpus
// resolve to nil, and that nil is cached like any other resolution.
func (p *Process) Algorithm() *Reader {
	if p.resolved {
		return p.reader
	}
	p.resolved = true

	code, ok := readerCodes[p.language]
	if !ok {
		p.logger.Debug("No WordNet corpus for language",
			zap.String("language", p.language))
		return nil
	}

	p.reader = NewReader(code, p.logger)
	p.logger.Debug("Resolved WordNet corpus reader",
		zap.String("language", p.language),
		zap.String("corpus_code", code))
	return p.reader
}

// Run currently returns the document untouched. The intended behavior
// (resolve each word's Lemma against the corpus reader and attach its
// sense set to the word) needs a sense-lookup surface on Reader first.
//
// TODO: attach synsets per word once Reader exposes lookup by lemma.
func (p *Process) Run(doc *core.Doc) (*core.Doc, error) {
	return doc, nil
}

var _ core.Process = (*Process)(nil)
