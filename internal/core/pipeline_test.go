package core

import (
	"errors"
	"testing"
)

// markerProcess appends its tag to every word's lemma, so execution
// order is visible in the output.
type markerProcess struct {
	tag string
	err error
}

func (m *markerProcess) Description() string { return "marker " + m.tag }

func (m *markerProcess) Run(doc *Doc) (*Doc, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, w := range doc.Words {
		w.Lemma += m.tag
	}
	return doc, nil
}

func TestNewDoc(t *testing.T) {
	t.Run("PreservesTokenOrder", func(t *testing.T) {
		doc := NewDoc("lat", "arma uirum cano", []string{"arma", "uirum", "cano"})
		if len(doc.Words) != 3 {
			t.Fatalf("expected 3 words, got %d", len(doc.Words))
		}
		for i, want := range []string{"arma", "uirum", "cano"} {
			if doc.Words[i].String != want {
				t.Errorf("word %d: expected %s, got %s", i, want, doc.Words[i].String)
			}
			if doc.Words[i].Index != i {
				t.Errorf("word %d: expected index %d, got %d", i, i, doc.Words[i].Index)
			}
		}
	})

	t.Run("FromText", func(t *testing.T) {
		doc := NewDocFromText("lat", "  arma   uirum\ncano ")
		got := doc.Tokens()
		want := []string{"arma", "uirum", "cano"}
		if len(got) != len(want) {
			t.Fatalf("expected %d tokens, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("token %d: expected %s, got %s", i, want[i], got[i])
			}
		}
	})
}

func TestPipelineRun(t *testing.T) {
	t.Run("ProcessesRunInOrder", func(t *testing.T) {
		pipeline := NewPipeline("lat", []Process{
			&markerProcess{tag: "a"},
			&markerProcess{tag: "b"},
		}, nil)

		doc := NewDoc("lat", "arma", []string{"arma"})
		out, err := pipeline.Run(doc)
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if out != doc {
			t.Error("pipeline should thread the same document through")
		}
		if out.Words[0].Lemma != "ab" {
			t.Errorf("expected processes applied in order (ab), got %q", out.Words[0].Lemma)
		}
	})

	t.Run("StopsAtFirstError", func(t *testing.T) {
		boom := errors.New("backend unavailable")
		pipeline := NewPipeline("lat", []Process{
			&markerProcess{tag: "a"},
			&markerProcess{tag: "b", err: boom},
			&markerProcess{tag: "c"},
		}, nil)

		doc := NewDoc("lat", "arma", []string{"arma"})
		_, err := pipeline.Run(doc)
		if !errors.Is(err, boom) {
			t.Fatalf("expected the process error to propagate, got %v", err)
		}
		if doc.Words[0].Lemma != "a" {
			t.Errorf("expected execution to stop after the failing process, got %q", doc.Words[0].Lemma)
		}
	})

	t.Run("EmptyPipeline", func(t *testing.T) {
		pipeline := NewPipeline("lat", nil, nil)
		doc := NewDoc("lat", "", nil)
		out, err := pipeline.Run(doc)
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if out != doc {
			t.Error("empty pipeline should return the input document")
		}
	})
}
