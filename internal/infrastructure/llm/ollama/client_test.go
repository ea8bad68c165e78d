package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seanebones-lang/Parts-Dept/internal/infrastructure/llm"
)

func TestCallSendsGenerateRequest(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"response": "  Hello there.  "})
	}))
	defer server.Close()

	client := New(server.URL, "llama3.2:latest", "nomic-embed-text")
	got, err := client.Call(context.Background(), "say hello", "be brief", 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hello there." {
		t.Fatalf("expected trimmed response, got %q", got)
	}

	if captured["model"] != "llama3.2:latest" {
		t.Fatalf("expected gen model, got %v", captured["model"])
	}
	if captured["stream"] != false {
		t.Fatalf("expected stream disabled, got %v", captured["stream"])
	}
	if captured["system"] != "be brief" {
		t.Fatalf("expected system prompt, got %v", captured["system"])
	}
	options := captured["options"].(map[string]any)
	if options["num_predict"] != float64(300) {
		t.Fatalf("expected num_predict 300, got %v", options["num_predict"])
	}
}

func TestCallReportsStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := New(server.URL, "llama3.2:latest", "nomic-embed-text")
	_, err := client.Call(context.Background(), "hello", "", 100)

	var statusErr *llm.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusNotFound || statusErr.Provider != ProviderName {
		t.Fatalf("unexpected status error: %+v", statusErr)
	}
}

func TestEmbedBatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["model"] != "nomic-embed-text" {
			t.Errorf("expected embed model, got %v", body["model"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"embeddings": [][]float32{{0.1, 0.2}, {0.3, 0.4}},
		})
	}))
	defer server.Close()

	client := New(server.URL, "llama3.2:latest", "nomic-embed-text")
	vectors, err := client.Embed(context.Background(), []string{"one", "two"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vectors) != 2 || len(vectors[0]) != 2 {
		t.Fatalf("unexpected vectors: %v", vectors)
	}
}

func TestEmbedEmptyInputSkipsRequest(t *testing.T) {
	client := New("http://localhost:0", "gen", "embed")
	vectors, err := client.Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vectors != nil {
		t.Fatalf("expected nil vectors, got %v", vectors)
	}
}

func TestEmbedQueryReturnsFirstVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"embeddings": [][]float32{{0.7}}})
	}))
	defer server.Close()

	client := New(server.URL, "gen", "embed")
	vector, err := client.EmbedQuery(context.Background(), "query")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vector) != 1 || vector[0] != 0.7 {
		t.Fatalf("unexpected vector: %v", vector)
	}
}
