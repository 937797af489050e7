package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wmshort/cltkv1/internal/config"
	"github.com/wmshort/cltkv1/internal/core"
	"github.com/wmshort/cltkv1/internal/embeddings"
	"github.com/wmshort/cltkv1/internal/export"
	"github.com/wmshort/cltkv1/internal/logger"
	"github.com/wmshort/cltkv1/internal/store"
	"github.com/wmshort/cltkv1/internal/wordnet"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
		language    = flag.String("language", "", "Language code of the input text (e.g. lat, grc)")
		variant     = flag.String("variant", "", "Embeddings backend variant (fasttext or nlpl)")
		inputPath   = flag.String("input", "", "Input text file (default: stdin)")
		parquetPath = flag.String("parquet", "", "Also export the annotated document to this Parquet file")
		save        = flag.Bool("save", false, "Persist annotated vectors to the configured database")
		withSenses  = flag.Bool("wordnet", false, "Append the WordNet process to the pipeline")
		similar     = flag.String("similar", "", "Query the vector store for words similar to this token, then exit")
		stats       = flag.Bool("stats", false, "Print vector-store statistics, then exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("cltk %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	loggerConfig := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}
	if cfg.Logging.File.Enabled {
		loggerConfig.File = &logger.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		}
	}
	log, err := logger.New(loggerConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *stats {
		runStats(cfg, log)
		return
	}

	if *language == "" {
		fmt.Fprintf(os.Stderr, "Missing -language (supported: %s)\n",
			strings.Join(embeddings.SupportedLanguages(), ", "))
		os.Exit(2)
	}
	if *variant != "" {
		if v := embeddings.Variant(*variant); !v.Valid() {
			fmt.Fprintf(os.Stderr, "%v\n", &embeddings.InvalidVariantError{Variant: v})
			os.Exit(2)
		}
	}

	if *similar != "" {
		runSimilar(cfg, log, *language, *variant, *similar)
		return
	}

	procCfg, ok := embeddings.PresetFor(*language)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unsupported language %q (supported: %s)\n",
			*language, strings.Join(embeddings.SupportedLanguages(), ", "))
		os.Exit(2)
	}
	if *variant != "" {
		procCfg.Variant = embeddings.Variant(*variant)
	}

	raw, err := readInput(*inputPath)
	if err != nil {
		log.Fatal("Failed to read input", zap.Error(err))
	}

	factory := newFactory(cfg, log, *language)

	processes := []core.Process{
		embeddings.NewProcess(procCfg, factory, log.WithComponent("embeddings").Logger),
	}
	if *withSenses {
		processes = append(processes, wordnet.NewProcess(*language, log.WithComponent("wordnet").Logger))
	}

	pipeline := core.NewPipeline(*language, processes, log.WithComponent("pipeline").WithLanguage(*language).Logger)

	doc, err := pipeline.Run(core.NewDocFromText(*language, raw))
	if err != nil {
		log.Fatal("Annotation failed", zap.Error(err))
	}

	if *parquetPath != "" {
		if err := export.WriteDoc(*parquetPath, doc, log.WithComponent("export").Logger); err != nil {
			log.Fatal("Parquet export failed", zap.Error(err))
		}
	}

	if *save {
		saveDoc(cfg, log, doc, string(procCfg.Variant))
	}

	printJSON(log, doc)
}

// readInput reads the text to annotate from a file or stdin.
func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func newFactory(cfg *config.Config, log *logger.Logger, language string) *embeddings.Factory {
	return embeddings.NewFactory(embeddings.FactoryConfig{
		ModelsDir:      cfg.Models.Dir,
		DefaultVariant: embeddings.Variant(cfg.Models.DefaultVariant),
		CacheEnabled:   cfg.Cache.Enabled,
		CacheURL:       cfg.Cache.URL,
		CacheTTL:       cfg.Cache.TTL,
	}, log.WithComponent("embeddings").WithLanguage(language).Logger)
}

// openStore connects to the configured word-vector store or exits.
func openStore(cfg *config.Config, log *logger.Logger) *store.Store {
	if !cfg.Database.Enabled {
		log.Fatal("Database is not enabled in the configuration")
	}
	st, err := store.NewStore(&store.Config{
		DatabaseURL:     cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, log.WithComponent("store").Logger)
	if err != nil {
		log.Fatal("Failed to open vector store", zap.Error(err))
	}
	return st
}

// saveDoc persists the annotated vectors to the word-vector store.
func saveDoc(cfg *config.Config, log *logger.Logger, doc *core.Doc, variant string) {
	st := openStore(cfg, log)
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	result, err := st.SaveDoc(ctx, doc, variant)
	if err != nil {
		log.Fatal("Failed to save document", zap.Error(err))
	}
	log.Info("Document saved",
		zap.Int64("inserted", result.Inserted),
		zap.Int64("skipped", result.Skipped))
}

// runSimilar looks up the token's vector and prints its nearest stored
// neighbors. An empty variant uses the configured default backend.
func runSimilar(cfg *config.Config, log *logger.Logger, language, variant, token string) {
	factory := newFactory(cfg, log, language)
	emb, err := factory.Create(language, embeddings.Variant(variant))
	if err != nil {
		log.Fatal("Failed to load embeddings backend", zap.Error(err))
	}
	vec, ok := emb.Lookup(token)
	if !ok {
		log.Fatal("Token is not in the backend's vocabulary",
			zap.String("token", token),
			zap.String("language", language))
	}

	st := openStore(cfg, log)
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hits, err := st.FindSimilar(ctx, vec, &store.SearchOptions{
		Language:      language,
		Limit:         10,
		MinSimilarity: 0.5,
	})
	if err != nil {
		log.Fatal("Similarity search failed", zap.Error(err))
	}
	printJSON(log, hits)
}

// runStats prints vector-store counts.
func runStats(cfg *config.Config, log *logger.Logger) {
	st := openStore(cfg, log)
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stats, err := st.GetStats(ctx)
	if err != nil {
		log.Fatal("Failed to read store statistics", zap.Error(err))
	}
	printJSON(log, stats)
}

func printJSON(log *logger.Logger, v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatal("Failed to encode output", zap.Error(err))
	}
}
