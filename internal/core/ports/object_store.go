package ports

import (
	"context"
	"io"
)

// ObjectStore abstracts binary blob storage for thumbnails and profile
// photos. Articles reference blobs by URL only, so an upload that succeeds
// before a failed metadata write leaves an orphaned blob, not a corrupt
// article.
type ObjectStore interface {
	// Put stores the object under key and returns its public URL.
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	// URL returns the public URL for a previously stored key.
	URL(key string) string
}
