package catalog

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Source fetches a catalog.
type Source interface {
	Fetch(ctx context.Context) (*Catalog, error)
}

// FileSource reads the manifest from a local file on every fetch.
type FileSource string

func (p FileSource) Fetch(ctx context.Context) (*Catalog, error) {
	f, err := os.Open(string(p))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// HTTPSource fetches the manifest from a URL.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: %s", s.URL, resp.Status)
	}
	return Parse(resp.Body)
}

// SourceFor picks an HTTPSource for http(s) URLs and a FileSource otherwise.
func SourceFor(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return HTTPSource{URL: location}
	}
	return FileSource(location)
}
