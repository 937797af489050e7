package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/wmshort/cltkv1/internal/core"
	"github.com/wmshort/cltkv1/internal/embeddings"
)

// AnnotateRequest is the body of POST /v1/annotate.
type AnnotateRequest struct {
	Language string `json:"language"`
	Variant  string `json:"variant,omitempty"`
	Text     string `json:"text"`
}

// AnnotateResponse carries the annotated document.
type AnnotateResponse struct {
	Language string       `json:"language"`
	Variant  string       `json:"variant"`
	Words    []*core.Word `json:"words"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	var req AnnotateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text must not be empty"})
		return
	}

	cfg, ok := embeddings.PresetFor(req.Language)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "unsupported language " + req.Language +
				" (supported: " + strings.Join(embeddings.SupportedLanguages(), ", ") + ")",
		})
		return
	}
	if req.Variant != "" {
		variant := embeddings.Variant(req.Variant)
		// Validated before entryFor so arbitrary request strings never
		// populate the process cache.
		if !variant.Valid() {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: (&embeddings.InvalidVariantError{Variant: variant}).Error(),
			})
			return
		}
		cfg.Variant = variant
	}

	entry := s.entryFor(cfg)
	entry.mu.Lock()
	doc, err := entry.process.Run(core.NewDocFromText(cfg.Language, req.Text))
	entry.mu.Unlock()

	if err != nil {
		s.logger.Error("Annotation failed",
			zap.String("language", cfg.Language),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "annotation failed"})
		return
	}

	writeJSON(w, http.StatusOK, AnnotateResponse{
		Language: cfg.Language,
		Variant:  string(cfg.Variant),
		Words:    doc.Words,
	})
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"languages": embeddings.SupportedLanguages(),
		"variants":  embeddings.Variants(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service":   "cltk-annotate",
		"languages": embeddings.SupportedLanguages(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
