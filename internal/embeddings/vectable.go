package embeddings

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// vectorTable is an in-memory token→vector map loaded from a text-format
// vector file (fastText .vec/word2vec model.txt: an optional
// "<count> <dim>" header line followed by one "<token> <v1> ... <vd>"
// row per word). Read-only after load.
type vectorTable struct {
	vectors   map[string][]float32
	dimension int
}

// maxVectorLine bounds a single row: a token plus a few thousand float
// columns fits comfortably within 1 MiB.
const maxVectorLine = 1 << 20

// loadVectorTable reads a whole vector file into memory. This is the
// expensive step that the lazy algorithm resolution defers.
func loadVectorTable(path string, logger *zap.Logger) (*vectorTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector file: %w", err)
	}
	defer file.Close()

	start := time.Now()
	table := &vectorTable{vectors: make(map[string][]float32)}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxVectorLine)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		// A leading "<count> <dim>" header row is optional.
		if lineNo == 1 && len(fields) == 2 {
			if dim, err := strconv.Atoi(fields[1]); err == nil {
				if _, err := strconv.Atoi(fields[0]); err == nil {
					table.dimension = dim
					continue
				}
			}
		}

		token := fields[0]
		vec := make([]float32, len(fields)-1)
		for i, f := range fields[1:] {
			val, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad vector value %q: %w", lineNo, f, err)
			}
			vec[i] = float32(val)
		}

		if table.dimension == 0 {
			table.dimension = len(vec)
		}
		if len(vec) != table.dimension {
			logger.Warn("Skipping row with unexpected vector length",
				zap.String("file", path),
				zap.Int("line", lineNo),
				zap.Int("want", table.dimension),
				zap.Int("got", len(vec)))
			continue
		}
		table.vectors[token] = vec
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vector file: %w", err)
	}
	if len(table.vectors) == 0 {
		return nil, fmt.Errorf("vector file %s contains no vectors", path)
	}

	logger.Info("Vector table loaded",
		zap.String("file", path),
		zap.Int("vocabulary", len(table.vectors)),
		zap.Int("dimension", table.dimension),
		zap.Duration("load_time", time.Since(start)))

	return table, nil
}

func (t *vectorTable) Lookup(token string) ([]float32, bool) {
	vec, ok := t.vectors[token]
	return vec, ok
}

func (t *vectorTable) Dimension() int { return t.dimension }
