package domain

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// LocalScheme marks a locator as a local filesystem path.
const LocalScheme = "file://"

// Locator identifies a dependency source: a remote repository reference
// (e.g. "github.com/org/repo") or a local path carrying the file://
// scheme. The raw string is the dependency's identity and display name;
// it is never normalized, so "file:///tmp/a" and "/tmp/a" are distinct
// keys.
type Locator string

// IsLocal reports whether the locator names a local filesystem path.
func (l Locator) IsLocal() bool {
	return strings.HasPrefix(string(l), LocalScheme)
}

// Path returns the filesystem path of a local locator, the raw string
// with the file:// scheme stripped. Remote locators are returned
// unchanged.
func (l Locator) Path() string {
	return strings.TrimPrefix(string(l), LocalScheme)
}

func (l Locator) String() string {
	return string(l)
}

// cacheKeyPrefixLen bounds the readable part of a cache key so the
// directory name stays short even for very long locators.
const cacheKeyPrefixLen = 64

// CacheKey returns a deterministic, filesystem-safe directory name for
// the locator. The sanitized prefix keeps cache directories readable;
// the xxhash suffix keeps distinct locators from colliding after
// sanitization.
func (l Locator) CacheKey() string {
	var b strings.Builder
	for _, r := range string(l) {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	prefix := b.String()
	if len(prefix) > cacheKeyPrefixLen {
		prefix = prefix[:cacheKeyPrefixLen]
	}
	prefix = strings.Trim(prefix, "-.")
	if prefix == "" {
		prefix = "pkg"
	}
	return fmt.Sprintf("%s-%016x", prefix, xxhash.Sum64String(string(l)))
}
