// Package container extracts streams from Compound File Binary (CFBF)
// documents. Property set streams are the ones whose name starts with the
// 0x05 control character, such as "\x05SummaryInformation".
package container

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/richardlehane/mscfb"
)

// PropertySetInitial is the first name character of property set streams.
const PropertySetInitial = 0x05

var (
	// ErrNotCompoundFile indicates data that is not a compound file.
	ErrNotCompoundFile = errors.New("container: not a compound file")
	// ErrStreamTooLarge indicates a stream larger than the caller's limit.
	ErrStreamTooLarge = errors.New("container: stream too large")
)

// Stream is one stream of a compound file.
type Stream struct {
	Name    string   // without the leading control character
	Initial uint16   // first name character
	Path    []string // storages from the root to the stream's parent
	Size    int64
	Data    []byte // nil unless the stream was loaded
}

// PropertySet reports whether the stream holds a property set.
func (s *Stream) PropertySet() bool { return s.Initial == PropertySetInitial }

// FullName returns the slash-joined path and name.
func (s *Stream) FullName() string {
	if len(s.Path) == 0 {
		return s.Name
	}
	return strings.Join(s.Path, "/") + "/" + s.Name
}

// Filter selects the streams whose data Read loads.
type Filter func(*Stream) bool

// PropertySets selects property set streams.
func PropertySets(s *Stream) bool { return s.PropertySet() }

// All selects every stream.
func All(*Stream) bool { return true }

// Read lists the streams of the compound file in ra in directory order and
// loads the data of those selected by filter. Streams selected by filter
// and larger than maxSize fail with ErrStreamTooLarge; a maxSize of zero or
// less disables the check.
func Read(ra io.ReaderAt, filter Filter, maxSize int64) ([]Stream, error) {
	doc, err := mscfb.New(ra)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotCompoundFile, err)
	}

	var streams []Stream
	for {
		entry, err := doc.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("container: directory: %w", err)
		}
		if entry.Size <= 0 {
			continue // storages and empty streams
		}

		s := Stream{
			Name:    entry.Name,
			Initial: entry.Initial,
			Path:    append([]string(nil), entry.Path...),
			Size:    entry.Size,
		}
		if filter != nil && filter(&s) {
			if maxSize > 0 && s.Size > maxSize {
				return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrStreamTooLarge, s.FullName(), s.Size, maxSize)
			}
			data, err := io.ReadAll(entry)
			if err != nil {
				return nil, fmt.Errorf("container: read %s: %w", s.FullName(), err)
			}
			s.Data = data
		}
		streams = append(streams, s)
	}
	return streams, nil
}

// ReadBytes is Read over an in-memory compound file.
func ReadBytes(data []byte, filter Filter, maxSize int64) ([]Stream, error) {
	return Read(bytes.NewReader(data), filter, maxSize)
}
