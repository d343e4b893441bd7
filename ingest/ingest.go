// Package ingest loads topology graphs from their sources: a remote JSON
// document, a local file, raw bytes, or a live network scan. Every source
// yields a validated models.Graph with unresolved link endpoints; the
// viewer resolves them before layout.
package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/toposcope/toposcope/models"
)

// Source produces a topology graph.
type Source interface {
	// Load builds the graph, honoring the context for cancellation.
	Load(ctx context.Context) (*models.Graph, error)

	// Name returns the name of the source.
	Name() string
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Fetch retrieves and parses a graph document from a URL. Any failure is
// a LoadError, fatal to initialization.
func Fetch(ctx context.Context, url string) (*models.Graph, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &models.LoadError{Reason: "invalid graph url", Err: err}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &models.LoadError{Reason: "fetching graph", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &models.LoadError{
			Reason: fmt.Sprintf("fetching graph: unexpected status %s", resp.Status),
		}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.LoadError{Reason: "reading graph body", Err: err}
	}
	return models.UnmarshalGraph(data)
}

// FromFile parses a graph document from a local file.
func FromFile(path string) (*models.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.LoadError{Reason: "reading graph file", Err: err}
	}
	return models.UnmarshalGraph(data)
}

// URLSource is a Source over Fetch.
type URLSource struct {
	URL string
}

// Name returns the source name.
func (s *URLSource) Name() string { return "url" }

// Load fetches the graph document.
func (s *URLSource) Load(ctx context.Context) (*models.Graph, error) {
	return Fetch(ctx, s.URL)
}

// FileSource is a Source over FromFile.
type FileSource struct {
	Path string
}

// Name returns the source name.
func (s *FileSource) Name() string { return "file" }

// Load reads and parses the file.
func (s *FileSource) Load(ctx context.Context) (*models.Graph, error) {
	return FromFile(s.Path)
}
