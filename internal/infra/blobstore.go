package infra

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// BlobStore abstracts the external media service that holds category images.
// The API only ever references blobs by their public id; upload happens on the
// client side against the media service directly.
type BlobStore interface {
	Destroy(ctx context.Context, publicID string) error
}

type httpBlobStore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPBlobStore talks to the media service at baseURL. An empty baseURL
// returns a no-op store, which keeps local development free of the external
// dependency.
func NewHTTPBlobStore(baseURL string) BlobStore {
	if baseURL == "" {
		return noopBlobStore{}
	}
	return &httpBlobStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *httpBlobStore) Destroy(ctx context.Context, publicID string) error {
	endpoint := s.baseURL + "/blobs/" + url.PathEscape(publicID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("blobstore: destroy %s: %w", publicID, err)
	}
	defer resp.Body.Close()

	// A blob already gone is not an error worth reporting.
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("blobstore: destroy %s: status %d", publicID, resp.StatusCode)
	}
	return nil
}

type noopBlobStore struct{}

func (noopBlobStore) Destroy(context.Context, string) error { return nil }
