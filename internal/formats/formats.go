// Package formats routes subtitle text to the codec matching a format name
// and wraps file-level open/save around the in-memory codecs.
package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"recue/internal/srt"
	"recue/internal/subtitle"
	"recue/internal/webvtt"
)

// Format names accepted by Read and Write.
const (
	SRT      = "srt"
	WebVTT   = "vtt"
	TTML     = "ttml"
	SSA      = "ssa"
	STL      = "stl"
	Teletext = "teletext"
)

var (
	// ErrInvalidExtension marks an unrecognized format name or file
	// extension.
	ErrInvalidExtension = errors.New("invalid extension")
	// ErrNotImplemented marks a recognized format whose codec does not
	// exist yet.
	ErrNotImplemented = errors.New("format not implemented")
)

var extensions = map[string]string{
	".srt":      SRT,
	".vtt":      WebVTT,
	".webvtt":   WebVTT,
	".ttml":     TTML,
	".dfxp":     TTML,
	".ssa":      SSA,
	".ass":      SSA,
	".stl":      STL,
	".teletext": Teletext,
}

// Detect resolves a file path to a format name by extension.
func Detect(path string) (string, bool) {
	name, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return name, ok
}

// Read parses text in the named format.
func Read(text, name string) (*subtitle.Subtitles, error) {
	switch name {
	case SRT:
		return srt.Read(text)
	case WebVTT:
		return webvtt.Read(text)
	case TTML, SSA, STL, Teletext:
		return nil, fmt.Errorf("read %s: %w", name, ErrNotImplemented)
	default:
		return nil, fmt.Errorf("read %q: %w", name, ErrInvalidExtension)
	}
}

// Write renders subtitles in the named format.
func Write(subs *subtitle.Subtitles, name string) (string, error) {
	switch name {
	case SRT:
		return srt.Write(subs)
	case WebVTT:
		return webvtt.Write(subs)
	case TTML, SSA, STL, Teletext:
		return "", fmt.Errorf("write %s: %w", name, ErrNotImplemented)
	default:
		return "", fmt.Errorf("write %q: %w", name, ErrInvalidExtension)
	}
}
