package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joshuapare/olekit/pkg/olekit"
)

// openInput opens path as a compound document, or as a single raw stream
// when --raw is set. In raw mode the stream is named after the file.
func openInput(path string, opts *olekit.Options) (*olekit.Document, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	if err != nil {
		return nil, err
	}

	printVerbose("Opening: %s\n", path)
	if !rawStream {
		doc, err := olekit.OpenDocument(path, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to open document: %w", err)
		}
		return doc, nil
	}

	col, err := olekit.DecodeFile(path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stream: %w", err)
	}
	name := filepath.Base(path)
	return &olekit.Document{
		Path: path,
		Streams: []*olekit.PropertyStream{{
			Name:        name,
			Size:        info.Size(),
			Collection:  col,
			Diagnostics: col.Diagnostics,
		}},
		Entries: []olekit.StreamInfo{{Name: name, Size: info.Size(), PropertySet: true}},
	}, nil
}

// reportStreamErrors prints the decode error of each failed stream and
// fails when no stream could be decoded.
func reportStreamErrors(doc *olekit.Document) error {
	for _, s := range doc.Streams {
		if s.Err != nil {
			printError("stream %s: %v\n", s.Name, s.Err)
		}
	}
	if len(doc.Streams) > 0 && len(doc.Collections()) == 0 {
		return fmt.Errorf("no property set stream could be decoded")
	}
	return nil
}
