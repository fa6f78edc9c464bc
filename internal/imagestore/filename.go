package imagestore

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"
)

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9]`)

// UniqueName derives an object name from a sanitized prefix of the client
// filename, a content hash of the stored bytes and a millisecond timestamp.
func UniqueName(original string, data []byte, ext string, now time.Time) string {
	base := strings.TrimSuffix(path.Base(strings.ReplaceAll(original, `\`, "/")), path.Ext(original))
	safe := unsafeName.ReplaceAllString(base, "-")
	if len(safe) > 50 {
		safe = safe[:50]
	}
	if safe == "" || safe == "." || strings.Trim(safe, "-") == "" {
		safe = "image"
	}

	sum := md5.Sum(data)
	return fmt.Sprintf("%s-%s-%d.%s", safe, hex.EncodeToString(sum[:])[:8], now.UnixMilli(), ext)
}

// Folder buckets objects by year and month, e.g. profiles/2026/10.
func Folder(prefix string, now time.Time) string {
	return fmt.Sprintf("%s/%04d/%02d", prefix, now.Year(), int(now.Month()))
}

// Extension maps a decoded format to the stored file extension.
func Extension(format string) string {
	switch format {
	case "jpeg":
		return "jpg"
	case "":
		return "bin"
	default:
		return format
	}
}

// ObjectName names stored bytes, taking the extension from their format.
func ObjectName(original string, data []byte, now time.Time) string {
	format := ""
	if m, err := inspect(data); err == nil {
		format = m.Format
	}
	return UniqueName(original, data, Extension(format), now)
}
