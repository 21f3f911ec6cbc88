package embed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func embedServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClientWithoutEndpoint(t *testing.T) {
	if c := NewClient(""); c != nil {
		t.Fatal("expected nil client for empty endpoint")
	}
}

func TestEmbedBatchRoundTrip(t *testing.T) {
	srv := embedServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embed" {
			t.Errorf("expected POST /embed, got %s %s", r.Method, r.URL.Path)
		}
		var req struct {
			Texts []string `json:"texts"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		vecs := make([][]float32, len(req.Texts))
		for i := range vecs {
			vecs[i] = []float32{float32(i), 1}
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"embeddings": vecs})
	})

	c := NewClient(srv.URL)
	vecs, err := c.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vecs) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vecs))
	}
	if vecs[2][0] != 2 {
		t.Fatalf("vectors out of order: %v", vecs[2])
	}
}

func TestEmbedSingleText(t *testing.T) {
	srv := embedServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"embeddings": [][]float32{{0.1, 0.2}},
		})
	})

	c := NewClient(srv.URL)
	vec, err := c.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vec) != 2 {
		t.Fatalf("expected 2-dim vector, got %v", vec)
	}
}

func TestEmbedBatchEmptyInput(t *testing.T) {
	c := NewClient("http://unused.invalid")
	vecs, err := c.EmbedBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error for empty input: %v", err)
	}
	if vecs != nil {
		t.Fatalf("expected no vectors for empty input, got %v", vecs)
	}
}

func TestEmbedBatchCountMismatch(t *testing.T) {
	srv := embedServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"embeddings": [][]float32{{1}},
		})
	})

	c := NewClient(srv.URL)
	_, err := c.EmbedBatch(context.Background(), []string{"a", "b"})
	if err == nil {
		t.Fatal("expected error on vector count mismatch")
	}
}

func TestEmbedBatchServerError(t *testing.T) {
	srv := embedServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "model not loaded"})
	})

	c := NewClient(srv.URL)
	_, err := c.EmbedBatch(context.Background(), []string{"a"})
	if err == nil {
		t.Fatal("expected error on 500 response")
	}
	if !strings.Contains(err.Error(), "model not loaded") {
		t.Fatalf("expected server error message propagated, got %v", err)
	}
}

func TestEmbedBatchTransportErrorIsUnavailable(t *testing.T) {
	srv := embedServer(t, func(w http.ResponseWriter, r *http.Request) {})
	endpoint := srv.URL
	srv.Close()

	c := NewClient(endpoint)
	_, err := c.EmbedBatch(context.Background(), []string{"a"})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on connection failure, got %v", err)
	}
}
