// Package mmfile loads compound document files for read-only decoding,
// memory-mapping them where the platform allows.
package mmfile

import (
	"errors"
	"fmt"
)

// ErrTooLarge indicates a file larger than the caller's size limit.
var ErrTooLarge = errors.New("mmfile: file too large")

// checkSize validates a file size against limit. A limit of zero or less
// only rejects sizes that cannot be addressed.
func checkSize(size, limit int64) error {
	if limit > 0 && size > limit {
		return fmt.Errorf("%w: %d bytes exceeds limit %d", ErrTooLarge, size, limit)
	}
	if size > int64(^uint(0)>>1) {
		return fmt.Errorf("%w: %d bytes cannot be mapped", ErrTooLarge, size)
	}
	return nil
}

func noop() error { return nil }
