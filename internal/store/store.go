// Package store persists word vectors produced by annotation runs in
// PostgreSQL with pgvector, and serves cosine-similarity queries over them.
package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/wmshort/cltkv1/internal/core"
)

// Store handles word-vector storage with PostgreSQL + pgvector.
type Store struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// Config contains database configuration
type Config struct {
	DatabaseURL     string        `yaml:"database_url" mapstructure:"database_url"`
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
}

const schema = `
CREATE TABLE IF NOT EXISTS word_vectors (
	id         BIGSERIAL PRIMARY KEY,
	language   TEXT        NOT NULL,
	variant    TEXT        NOT NULL,
	token      TEXT        NOT NULL,
	embedding  vector      NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (language, variant, token)
)`

// NewStore connects to the database and ensures the schema exists.
func NewStore(config *Config, logger *zap.Logger) (*Store, error) {
	db, err := sqlx.Connect("postgres", config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	s := &Store{db: db, logger: logger}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	logger.Info("Word-vector store initialized",
		zap.Int("max_open_conns", config.MaxOpenConns),
		zap.Int("max_idle_conns", config.MaxIdleConns))

	return s, nil
}

// initialize verifies the connection and the pgvector extension, then
// creates the word_vectors table if needed.
func (s *Store) initialize() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	var hasVector bool
	query := "SELECT EXISTS(SELECT 1 FROM pg_extension WHERE extname = 'vector')"
	if err := s.db.GetContext(ctx, &hasVector, query); err != nil {
		return fmt.Errorf("failed to check pgvector extension: %w", err)
	}
	if !hasVector {
		return fmt.Errorf("pgvector extension is not installed")
	}

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create word_vectors table: %w", err)
	}
	return nil
}

// SaveDoc stores every annotated word of a document. Words without an
// embedding are skipped; duplicates of an already-stored (language,
// variant, token) triple are ignored.
func (s *Store) SaveDoc(ctx context.Context, doc *core.Doc, variant string) (*BatchResult, error) {
	start := time.Now()

	valueRows, args := insertArgs(doc, variant)
	if len(valueRows) == 0 {
		return &BatchResult{Duration: time.Since(start)}, nil
	}

	query := fmt.Sprintf(`
		INSERT INTO word_vectors (language, variant, token, embedding)
		VALUES %s
		ON CONFLICT (language, variant, token) DO NOTHING`,
		strings.Join(valueRows, ","))

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		s.logger.Error("Failed to save document vectors",
			zap.Error(err),
			zap.String("language", doc.Language))
		return nil, fmt.Errorf("failed to save document vectors: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		s.logger.Warn("Could not get rows affected", zap.Error(err))
		inserted = int64(len(valueRows))
	}

	result := &BatchResult{
		Inserted: inserted,
		Skipped:  int64(len(valueRows)) - inserted,
		Duration: time.Since(start),
	}

	s.logger.Debug("Document vectors saved",
		zap.String("language", doc.Language),
		zap.Int64("inserted", result.Inserted),
		zap.Int64("skipped", result.Skipped),
		zap.Duration("duration", result.Duration))

	return result, nil
}

// FindSimilar returns stored words nearest to the given embedding by
// cosine similarity.
func (s *Store) FindSimilar(ctx context.Context, embedding []float32, options *SearchOptions) ([]*SimilarWord, error) {
	if options == nil {
		options = &SearchOptions{Limit: 5, MinSimilarity: 0.7}
	}

	vec := encodeVector(embedding)

	where := "WHERE (1 - (embedding <=> $1)) >= $2"
	args := []interface{}{vec, options.MinSimilarity}
	if options.Language != "" {
		where += fmt.Sprintf(" AND language = $%d", len(args)+1)
		args = append(args, options.Language)
	}

	query := fmt.Sprintf(`
		SELECT id, language, variant, token, embedding,
			created_at,
			(1 - (embedding <=> $1)) AS similarity,
			(embedding <=> $1) AS distance
		FROM word_vectors
		%s
		ORDER BY embedding <=> $1
		LIMIT $%d`, where, len(args)+1)
	args = append(args, options.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}
	defer rows.Close()

	var results []*SimilarWord
	for rows.Next() {
		var (
			word   WordVector
			rawVec string
			hit    SimilarWord
		)
		if err := rows.Scan(
			&word.ID, &word.Language, &word.Variant, &word.Token, &rawVec,
			&word.CreatedAt, &hit.Similarity, &hit.Distance,
		); err != nil {
			s.logger.Error("Failed to scan similarity result", zap.Error(err))
			continue
		}
		word.Embedding, err = decodeVector(rawVec)
		if err != nil {
			s.logger.Error("Failed to decode stored embedding", zap.Error(err))
			continue
		}
		hit.Word = &word
		results = append(results, &hit)
	}
	return results, rows.Err()
}

// GetStats returns store-level counts.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	query := `
		SELECT COUNT(*) AS total, COUNT(DISTINCT language) AS languages
		FROM word_vectors`
	if err := s.db.QueryRowContext(ctx, query).Scan(&stats.TotalVectors, &stats.Languages); err != nil {
		return nil, fmt.Errorf("failed to get store stats: %w", err)
	}
	return stats, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// insertArgs flattens a document into VALUES placeholders and their bind
// arguments, skipping words that carry no embedding.
func insertArgs(doc *core.Doc, variant string) ([]string, []interface{}) {
	var (
		valueRows []string
		args      []interface{}
	)
	for _, w := range doc.Words {
		if len(w.Embedding) == 0 {
			continue
		}
		n := len(args)
		valueRows = append(valueRows, fmt.Sprintf("($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4))
		args = append(args, doc.Language, variant, w.String, encodeVector(w.Embedding))
	}
	return valueRows, args
}

// encodeVector renders a float32 slice in pgvector's text format.
func encodeVector(embedding []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range embedding {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}

// decodeVector parses pgvector's text format back into a float32 slice.
func decodeVector(raw string) ([]float32, error) {
	raw = strings.Trim(strings.TrimSpace(raw), "[]")
	if raw == "" {
		return []float32{}, nil
	}
	parts := strings.Split(raw, ",")
	embedding := make([]float32, len(parts))
	for i, part := range parts {
		val, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return nil, fmt.Errorf("bad embedding value %q: %w", part, err)
		}
		embedding[i] = float32(val)
	}
	return embedding, nil
}
