package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextHelpers(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := &Logger{Logger: zap.New(core)}

	log.WithComponent("pipeline").WithLanguage("lat").Info("document annotated")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "pipeline" {
		t.Errorf("expected component field, got %v", fields)
	}
	if fields["language"] != "lat" {
		t.Errorf("expected language field, got %v", fields)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(Config{Level: "verbose", Format: "json"}); err == nil {
		t.Error("expected an error for an unknown log level")
	}
}
