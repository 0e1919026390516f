package subtitle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FormatForPath maps a file extension to a subtitle format.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		return FormatSRT, nil
	case ".vtt":
		return FormatVTT, nil
	case ".ass", ".ssa":
		return FormatASS, nil
	default:
		return "", fmt.Errorf("unsupported subtitle format: %s", filepath.Ext(path))
	}
}

// Extension returns the canonical file extension for a format.
func (f Format) Extension() string {
	switch f {
	case FormatVTT:
		return ".vtt"
	case FormatASS:
		return ".ass"
	default:
		return ".srt"
	}
}

// Open parses a subtitle file, picking the parser from the extension.
func Open(path string) (*Track, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open subtitle file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return Parse(file, format)
}

// Parse reads subtitle data in the given format.
func Parse(r io.Reader, format Format) (*Track, error) {
	var entries []Entry
	var err error

	switch format {
	case FormatSRT:
		entries, err = ParseSRT(r)
	case FormatVTT:
		entries, err = ParseVTT(r)
	case FormatASS:
		entries, err = ParseASS(r)
	default:
		return nil, fmt.Errorf("unsupported subtitle format: %s", format)
	}
	if err != nil {
		return nil, err
	}

	return &Track{Entries: entries, Format: format}, nil
}
