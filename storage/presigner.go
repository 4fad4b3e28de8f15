package storage

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Presigner issues short-lived authorization URLs for named objects. The
// application never proxies file bytes; clients talk to the blob store
// directly with these URLs.
type Presigner interface {
	PresignUpload(ctx context.Context, key, contentType string) (string, error)
	PresignDownload(ctx context.Context, key string) (string, error)
}

const uploadKeyPrefix = "registrations/"

// ObjectKey derives a collision-free storage key for an uploaded file,
// keeping the original filename visible for the dashboard download buttons.
func ObjectKey(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, base)
	if base == "" || base == "." {
		base = "file"
	}
	return uploadKeyPrefix + uuid.NewString() + "-" + base
}
