package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kimi/legalease/backend/config"
	"github.com/kimi/legalease/backend/model"
)

func TestTikaExtractorExtract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "PUT" {
			t.Errorf("Expected PUT, got %s", r.Method)
		}
		if r.URL.Path != "/tika" {
			t.Errorf("Expected /tika, got %s", r.URL.Path)
		}
		if r.Header.Get("Content-Type") != model.ContentTypePDF {
			t.Errorf("Expected declared content type header, got '%s'", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("Accept") != "text/plain" {
			t.Error("Expected Accept: text/plain header")
		}

		body, _ := io.ReadAll(r.Body)
		if string(body) != "fake pdf bytes" {
			t.Errorf("Expected file bytes in body, got '%s'", string(body))
		}

		w.Write([]byte("  Extracted document text.\n\n"))
	}))
	defer server.Close()

	extractor := NewTikaExtractor(&config.TikaConfig{ServerURL: server.URL, TimeoutSeconds: 5})

	text, err := extractor.Extract(context.Background(), []byte("fake pdf bytes"), model.ContentTypePDF)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "Extracted document text." {
		t.Errorf("Expected trimmed text, got '%s'", text)
	}
}

func TestTikaExtractorServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte("encrypted document"))
	}))
	defer server.Close()

	extractor := NewTikaExtractor(&config.TikaConfig{ServerURL: server.URL, TimeoutSeconds: 5})

	_, err := extractor.Extract(context.Background(), []byte("data"), model.ContentTypePDF)
	var eErr *ExtractionError
	if !errors.As(err, &eErr) {
		t.Fatalf("Expected ExtractionError, got %T", err)
	}
	if eErr.Message == "" {
		t.Error("Expected non-empty extraction error message")
	}
}

func TestTikaExtractorNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	extractor := NewTikaExtractor(&config.TikaConfig{ServerURL: server.URL, TimeoutSeconds: 1})

	_, err := extractor.Extract(context.Background(), []byte("data"), model.ContentTypePDF)
	var eErr *ExtractionError
	if !errors.As(err, &eErr) {
		t.Fatalf("Expected ExtractionError, got %T", err)
	}
}
