// Package export writes annotated documents to Parquet for downstream
// analysis outside the pipeline.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/segmentio/parquet-go"
	"go.uber.org/zap"

	"github.com/wmshort/cltkv1/internal/core"
)

// WordRow is the flat per-token record layout of an export file.
type WordRow struct {
	Language  string    `parquet:"language"`
	Index     int32     `parquet:"index"`
	Token     string    `parquet:"token"`
	Lemma     string    `parquet:"lemma,optional"`
	Embedding []float32 `parquet:"embedding,list"`
}

// WriteDoc writes one row per word of the document to a Parquet file.
func WriteDoc(path string, doc *core.Doc, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewWriter(file)
	for _, w := range doc.Words {
		row := WordRow{
			Language:  doc.Language,
			Index:     int32(w.Index),
			Token:     w.String,
			Lemma:     w.Lemma,
			Embedding: w.Embedding,
		}
		if err := writer.Write(&row); err != nil {
			return fmt.Errorf("failed to write parquet row %d: %w", w.Index, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	logger.Info("Document exported",
		zap.String("file", path),
		zap.Int("rows", len(doc.Words)))

	return nil
}

// ReadRows loads every word row from an export file, mainly for
// verification and small-scale tooling.
func ReadRows(path string) ([]WordRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	reader := parquet.NewReader(file)
	defer reader.Close()

	var rows []WordRow
	for {
		var row WordRow
		err := reader.Read(&row)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet row: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
