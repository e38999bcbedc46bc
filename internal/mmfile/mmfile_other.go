//go:build !unix

package mmfile

import "os"

// Map reads the entire file when mmap is not available. Files larger than
// limit are rejected; a limit of zero or less disables the check.
func Map(path string, limit int64) ([]byte, func() error, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if err := checkSize(info.Size(), limit); err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, noop, nil
}
