package storage

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Store persists uploaded document blobs. Paths are opaque to callers; URL
// resolves a stored path to something the front end can link to.
type Store interface {
	Save(ctx context.Context, path string, r io.Reader) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
	URL(path string) string
}

// ObjectPath builds a collision-resistant storage path from the upload time
// and the original filename: documents/<unix-nano>_<sanitized name>.
func ObjectPath(now time.Time, fileName string) string {
	return "documents/" + strconv.FormatInt(now.UnixNano(), 10) + "_" + SanitizeFileName(fileName)
}

// SanitizeFileName keeps ASCII letters, digits, dots, dashes and underscores;
// everything else becomes an underscore so paths stay shell- and URL-safe.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "file"
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r) && r < 128:
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
