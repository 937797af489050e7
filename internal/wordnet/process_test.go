package wordnet

import (
	"testing"

	"github.com/wmshort/cltkv1/internal/core"
)

func TestProcessAlgorithm(t *testing.T) {
	cases := []struct {
		language string
		corpus   string
	}{
		{"lat", "lat"},
		{"grc", "grk"},
		{"san", "skt"},
	}

	for _, tc := range cases {
		t.Run(tc.language, func(t *testing.T) {
			proc := NewProcess(tc.language, nil)

			reader := proc.Algorithm()
			if reader == nil {
				t.Fatalf("expected a corpus reader for %s", tc.language)
			}
			if reader.Language() != tc.corpus {
				t.Errorf("expected corpus code %s, got %s", tc.corpus, reader.Language())
			}
			if proc.Algorithm() != reader {
				t.Error("reader handle not stable across accesses")
			}
		})
	}

	t.Run("UnsupportedLanguage", func(t *testing.T) {
		proc := NewProcess("xyz", nil)
		if reader := proc.Algorithm(); reader != nil {
			t.Errorf("expected no reader for an unsupported language, got %v", reader)
		}
		// The nil resolution is cached too, behind the presence flag.
		if !proc.resolved {
			t.Error("resolution result was not cached")
		}
		if reader := proc.Algorithm(); reader != nil {
			t.Error("cached nil resolution changed on second access")
		}
	})
}

func TestProcessRun(t *testing.T) {
	proc := NewProcess("lat", nil)
	doc := core.NewDoc("lat", "arma uirum", []string{"arma", "uirum"})

	out, err := proc.Run(doc)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out != doc {
		t.Error("run should return the same document")
	}
	for i, w := range out.Words {
		if w.Embedding != nil || w.Lemma != "" {
			t.Errorf("word %d mutated by a process that is documented as a no-op", i)
		}
	}
}
