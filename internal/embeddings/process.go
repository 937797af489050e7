package embeddings

import (
	"go.uber.org/zap"

	"github.com/wmshort/cltkv1/internal/core"
)

// Config is the immutable configuration of an embeddings Process: the
// language code, the backend variant, and a human-readable description.
// A zero Variant defers to the factory's configured default.
type Config struct {
	Language    string
	Variant     Variant
	Description string
}

// Process attaches word vectors to every token of a document. The backend
// is chosen by the configured (language, variant) pair, constructed on
// first use, and cached for the lifetime of the Process instance.
//
// A Process is meant for single-threaded pipeline execution; the cached
// resolution is not synchronized.
type Process struct {
	config  Config
	factory BackendFactory
	logger  *zap.Logger

	// algorithm holds the resolved backend; nil until first resolution.
	// Resolution failures are not cached: the resolver is a pure mapping,
	// so a retry either fails identically or succeeds after the missing
	// model file appears.
	algorithm Embedder
}

// NewProcess creates an embeddings process from a configuration. No
// backend is constructed until the first Run or Algorithm call.
func NewProcess(config Config, factory BackendFactory, logger *zap.Logger) *Process {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Process{config: config, factory: factory, logger: logger}
}

// Description returns the process's human-readable description.
func (p *Process) Description() string { return p.config.Description }

// Language returns the configured language code.
func (p *Process) Language() string { return p.config.Language }

// Variant returns the configured backend variant.
func (p *Process) Variant() Variant { return p.config.Variant }

// Algorithm returns the process's backend, constructing it on the first
// call and returning the identical handle on every call after that.
func (p *Process) Algorithm() (Embedder, error) {
	if p.algorithm != nil {
		return p.algorithm, nil
	}

	emb, err := p.factory.Create(p.config.Language, p.config.Variant)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Resolved embeddings backend",
		zap.String("language", p.config.Language),
		zap.String("variant", string(p.config.Variant)),
		zap.Int("dimension", emb.Dimension()))

	p.algorithm = emb
	return emb, nil
}

// Run writes a vector onto every word of the document, in token order.
// Tokens outside the backend's vocabulary (or yielding a malformed vector)
// get a zero vector of the backend's dimension, so downstream consumers
// can rely on every word carrying a vector of uniform length. The input
// Doc is mutated in place and returned.
func (p *Process) Run(doc *core.Doc) (*core.Doc, error) {
	emb, err := p.Algorithm()
	if err != nil {
		return nil, err
	}

	dimension := 0
	for _, word := range doc.Words {
		if dimension == 0 {
			dimension = emb.Dimension()
		}
		vec, ok := emb.Lookup(word.String)
		if !ok || len(vec) != dimension {
			vec = make([]float32, dimension)
		}
		word.Embedding = vec
	}

	p.logger.Debug("Embeddings attached",
		zap.String("language", p.config.Language),
		zap.Int("words", len(doc.Words)),
		zap.Int("dimension", dimension))

	return doc, nil
}

var _ core.Process = (*Process)(nil)
