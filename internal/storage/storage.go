package storage

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// MediaSigner turns stored media references into URLs clients can fetch.
type MediaSigner interface {
	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading/viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
}

// IsObjectKey reports whether a media reference names an object in the bucket rather than
// an absolute URL.
func IsObjectKey(ref string) bool {
	if strings.TrimSpace(ref) == "" {
		return false
	}
	u, err := url.Parse(ref)
	return err != nil || u.Scheme == ""
}
