package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIDENCE_THRESHOLD", "")
	t.Setenv("QDRANT_COLLECTION", "")
	t.Setenv("NATS_SUBJECT", "")

	cfg := Load()
	if cfg.ConfidenceThreshold != 0.75 {
		t.Fatalf("expected default confidence threshold 0.75, got %v", cfg.ConfidenceThreshold)
	}
	if cfg.QdrantCollection != "parts_dept_docs" {
		t.Fatalf("expected default collection parts_dept_docs, got %q", cfg.QdrantCollection)
	}
	if cfg.NATSSubject != "emails.received" {
		t.Fatalf("expected default subject emails.received, got %q", cfg.NATSSubject)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("CONFIDENCE_THRESHOLD", "0.9")
	t.Setenv("OLLAMA_GEN_MODEL", "llama3.1:8b")

	cfg := Load()
	if cfg.ConfidenceThreshold != 0.9 {
		t.Fatalf("expected confidence threshold override, got %v", cfg.ConfidenceThreshold)
	}
	if cfg.OllamaGenModel != "llama3.1:8b" {
		t.Fatalf("expected gen model override, got %q", cfg.OllamaGenModel)
	}
}

func TestLoadIgnoresMalformedFloat(t *testing.T) {
	t.Setenv("CONFIDENCE_THRESHOLD", "not-a-number")

	cfg := Load()
	if cfg.ConfidenceThreshold != 0.75 {
		t.Fatalf("expected fallback threshold on malformed value, got %v", cfg.ConfidenceThreshold)
	}
}
