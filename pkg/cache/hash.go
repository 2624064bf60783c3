package cache

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// MetadataKey builds the cache key for the metadata of one workspace.
// fingerprint identifies the manifest contents, args the cargo invocation.
func MetadataKey(fingerprint string, args ...string) string {
	d := xxhash.New()
	_, _ = d.WriteString(fingerprint)
	for _, a := range args {
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(a)
	}
	return fmt.Sprintf("metadata:%016x", d.Sum64())
}

// Hash computes the xxhash64 of data as a 16-character hex string.
func Hash(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
