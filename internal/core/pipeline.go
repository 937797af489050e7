package core

import (
	"fmt"

	"go.uber.org/zap"
)

// Process is a configured unit of document annotation. A Process receives
// the pipeline's Doc, mutates its word records in place, and returns the
// same Doc (or a designated replacement).
//
// A Process instance is not safe for concurrent use: implementations may
// resolve and cache their backing algorithm on first Run.
type Process interface {
	// Description is a short human-readable summary of what the process does.
	Description() string

	// Run annotates the document. The input Doc is mutated in place.
	Run(doc *Doc) (*Doc, error)
}

// Pipeline applies an ordered sequence of processes to one document.
type Pipeline struct {
	language  string
	processes []Process
	logger    *zap.Logger
}

// NewPipeline creates a pipeline for the given language.
func NewPipeline(language string, processes []Process, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		language:  language,
		processes: processes,
		logger:    logger,
	}
}

// Language returns the language code the pipeline was built for.
func (p *Pipeline) Language() string { return p.language }

// Processes returns the pipeline's process sequence in execution order.
func (p *Pipeline) Processes() []Process { return p.processes }

// Run threads the Doc through every process in order, stopping at the
// first failure. The returned Doc is the (mutated) input document.
func (p *Pipeline) Run(doc *Doc) (*Doc, error) {
	for i, proc := range p.processes {
		p.logger.Debug("Running process",
			zap.Int("position", i),
			zap.String("description", proc.Description()))

		out, err := proc.Run(doc)
		if err != nil {
			return nil, fmt.Errorf("process %d (%s): %w", i, proc.Description(), err)
		}
		doc = out
	}
	return doc, nil
}
