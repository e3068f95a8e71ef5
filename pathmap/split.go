package pathmap

import (
	"os"
	"strings"
)

// DefaultSegmentLength is the number of digest characters per directory level.
const DefaultSegmentLength = 2

// SplitDigest splits digest into consecutive segments of segmentLength
// characters. The last segment may be shorter. A segmentLength below 1 or
// above len(digest) yields the whole digest as a single segment.
func SplitDigest(digest string, segmentLength int) []string {
	if digest == "" {
		return nil
	}
	if segmentLength < 1 || segmentLength >= len(digest) {
		return []string{digest}
	}
	segments := make([]string, 0, (len(digest)+segmentLength-1)/segmentLength)
	for i := 0; i < len(digest); i += segmentLength {
		end := i + segmentLength
		if end > len(digest) {
			end = len(digest)
		}
		segments = append(segments, digest[i:end])
	}
	return segments
}

// ComputePath returns root/seg1/.../segN/ for the given digest, using the OS
// path separator and ending with exactly one separator so that the key can
// be appended as the file name. Trailing separators on root are dropped.
// An empty root yields a relative path.
func ComputePath(root, digest string, segmentLength int) string {
	const sep = string(os.PathSeparator)

	var b strings.Builder
	if root != "" {
		b.WriteString(strings.TrimRight(root, sep))
		b.WriteString(sep)
	}
	for _, seg := range SplitDigest(digest, segmentLength) {
		b.WriteString(seg)
		b.WriteString(sep)
	}
	return b.String()
}
