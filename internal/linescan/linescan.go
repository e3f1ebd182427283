// Package linescan splits raw text into logical lines regardless of
// line-ending style and exposes peek/consume semantics for codec parsers.
package linescan

import "strings"

var lineEndingNormalizer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Scanner walks the logical lines of a text. The zero value is not usable;
// construct one with New.
type Scanner struct {
	lines []string
	pos   int
}

// New builds a Scanner over text. Any of "\r\n", "\r", or "\n" terminates a
// line. A trailing separator does not yield a phantom empty final line.
func New(text string) *Scanner {
	lines := strings.Split(lineEndingNormalizer.Replace(text), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return &Scanner{lines: lines}
}

// HasNext reports whether another line remains.
func (s *Scanner) HasNext() bool {
	return s.pos < len(s.lines)
}

// Next consumes and returns the next line, or an empty string when exhausted.
func (s *Scanner) Next() string {
	if !s.HasNext() {
		return ""
	}
	line := s.lines[s.pos]
	s.pos++
	return line
}

// Peek returns the next line without consuming it, or an empty string when
// exhausted.
func (s *Scanner) Peek() string {
	if !s.HasNext() {
		return ""
	}
	return s.lines[s.pos]
}

// Remaining drains the scanner and returns every line not yet consumed.
func (s *Scanner) Remaining() []string {
	rest := s.lines[s.pos:]
	s.pos = len(s.lines)
	return rest
}

// Reset rewinds the scanner to the first line.
func (s *Scanner) Reset() {
	s.pos = 0
}

// LineNumber returns the 1-based number of the line most recently returned by
// Next, or 0 before any line has been consumed. Codecs use it for diagnostics.
func (s *Scanner) LineNumber() int {
	return s.pos
}
