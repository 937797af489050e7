package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/wmshort/cltkv1/internal/config"
	"github.com/wmshort/cltkv1/internal/logger"
)

// newTestServer builds a server over a temp models dir holding a tiny
// Latin fastText table.
func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()

	dir := t.TempDir()
	modelPath := filepath.Join(dir, "fasttext", "lat.vec")
	if err := os.MkdirAll(filepath.Dir(modelPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := "2 2\narma 1 0\nuirum 0 1\n"
	if err := os.WriteFile(modelPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}

	cfg := config.GetDefaults()
	cfg.Models.Dir = dir
	cfg.Server.RateLimit.Enabled = false
	if mutate != nil {
		mutate(cfg)
	}

	srv, err := New(cfg, &logger.Logger{Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv
}

func postAnnotate(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/annotate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleAnnotate(t *testing.T) {
	t.Run("AnnotatesKnownTokens", func(t *testing.T) {
		srv := newTestServer(t, nil)
		rec := postAnnotate(t, srv, `{"language":"lat","text":"arma ignotum"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp AnnotateResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if resp.Language != "lat" || resp.Variant != "fasttext" {
			t.Errorf("unexpected response metadata: %+v", resp)
		}
		if len(resp.Words) != 2 {
			t.Fatalf("expected 2 words, got %d", len(resp.Words))
		}
		if resp.Words[0].Embedding[0] != 1 {
			t.Errorf("expected real vector for arma, got %v", resp.Words[0].Embedding)
		}
		for _, v := range resp.Words[1].Embedding {
			if v != 0 {
				t.Errorf("expected zero vector for unknown token, got %v", resp.Words[1].Embedding)
				break
			}
		}
	})

	t.Run("UnsupportedLanguage", func(t *testing.T) {
		srv := newTestServer(t, nil)
		rec := postAnnotate(t, srv, `{"language":"xyz","text":"abc"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "lat") {
			t.Error("error should list supported languages")
		}
	})

	t.Run("InvalidVariant", func(t *testing.T) {
		srv := newTestServer(t, nil)
		rec := postAnnotate(t, srv, `{"language":"lat","variant":"word2vec","text":"arma"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "fasttext") {
			t.Error("error should list valid variants")
		}

		srv.mu.Lock()
		cached := len(srv.processes)
		srv.mu.Unlock()
		if cached != 0 {
			t.Errorf("rejected variants must not populate the process cache, got %d entries", cached)
		}
	})

	t.Run("InvalidVariantsDoNotAccumulate", func(t *testing.T) {
		srv := newTestServer(t, nil)
		for _, v := range []string{"aaa", "bbb", "ccc"} {
			rec := postAnnotate(t, srv, `{"language":"lat","variant":"`+v+`","text":"arma"}`)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("variant %s: expected 400, got %d", v, rec.Code)
			}
		}
		srv.mu.Lock()
		defer srv.mu.Unlock()
		if len(srv.processes) != 0 {
			t.Errorf("expected an empty process cache, got %d entries", len(srv.processes))
		}
	})

	t.Run("EmptyText", func(t *testing.T) {
		srv := newTestServer(t, nil)
		rec := postAnnotate(t, srv, `{"language":"lat","text":"  "}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("ReusesProcessAcrossRequests", func(t *testing.T) {
		srv := newTestServer(t, nil)
		for i := 0; i < 2; i++ {
			rec := postAnnotate(t, srv, `{"language":"lat","text":"arma"}`)
			if rec.Code != http.StatusOK {
				t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
			}
		}
		srv.mu.Lock()
		defer srv.mu.Unlock()
		if len(srv.processes) != 1 {
			t.Errorf("expected a single cached process, got %d", len(srv.processes))
		}
	})
}

func TestHandleLanguages(t *testing.T) {
	srv := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/v1/languages", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"lat", "grc", "fasttext", "nlpl"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in response, got: %s", want, body)
		}
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.RateLimit.Enabled = true
		cfg.Server.RateLimit.RequestsPerMin = 1
		cfg.Server.RateLimit.Burst = 1
	})

	first := postAnnotate(t, srv, `{"language":"lat","text":"arma"}`)
	if first.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", first.Code)
	}

	second := postAnnotate(t, srv, `{"language":"lat","text":"arma"}`)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request should be limited, got %d", second.Code)
	}
}
