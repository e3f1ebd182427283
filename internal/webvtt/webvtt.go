// Package webvtt reads and writes WebVTT subtitle text.
//
// The reader follows the block structure of the format: a mandatory WEBVTT
// header, then NOTE comment blocks, Region declarations, STYLE blocks, an
// advisory X-TIMESTAMP-MAP header, and timed cues. Cue payload text runs
// through a tag-stack parser that understands classes, annotations, voice
// tags, and inline timestamps. Load-bearing failures (bad cue timestamps)
// abort the read with the source line number; decorative ones (a malformed
// timestamp map, an unparseable inline timestamp) degrade to plain text.
package webvtt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"recue/internal/linescan"
	"recue/internal/subtitle"
	"recue/internal/timecode"
)

const (
	boundarySeparator = "-->"
	bom               = "\ufeff"

	// DefaultStyleID keys the shared style record that accumulates STYLE
	// block CSS.
	DefaultStyleID = "default"
)

type blockName int

const (
	blockNone blockName = iota
	blockComment
	blockStyle
	blockText
)

// Read parses WebVTT text into subtitles.
func Read(text string) (*subtitle.Subtitles, error) {
	sc := linescan.New(text)
	header := false
	for sc.HasNext() {
		if strings.HasPrefix(strings.TrimPrefix(sc.Next(), bom), "WEBVTT") {
			header = true
			break
		}
	}
	if !header {
		return nil, errors.New("webvtt: missing WEBVTT header")
	}

	subs := subtitle.NewSubtitles()
	var (
		block    blockName
		item     *subtitle.Item
		comments []string
		index    int
		stack    []subtitle.WebVTTTag
	)

	for sc.HasNext() {
		line := sc.Next()
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "NOTE "):
			block = blockComment
			comments = append(comments, line[len("NOTE "):])

		case trimmed == "":
			if block != blockStyle || styleBlockClosed(subs) {
				block = blockNone
			}
			stack = stack[:0]

		case strings.HasPrefix(line, "Region:"):
			if region := parseRegionLine(line); region != nil {
				subs.Regions[region.ID] = region
			}

		case strings.HasPrefix(line, "STYLE"):
			block = blockStyle
			defaultStyle(subs)

		case strings.HasPrefix(line, "X-TIMESTAMP-MAP"):
			// advisory; a malformed map is ignored
			if m := parseTimestampMap(line); m != nil {
				if subs.Metadata == nil {
					subs.Metadata = &subtitle.Metadata{}
				}
				subs.Metadata.WebVTTTimestampMap = m
			}

		case strings.Contains(line, boundarySeparator):
			block = blockText
			var err error
			if item, err = parseBoundaryLine(line, sc.LineNumber(), subs); err != nil {
				return nil, err
			}
			item.Index = index
			item.Comments = comments
			index = 0
			comments = nil
			subs.Items = append(subs.Items, item)

		default:
			switch block {
			case blockComment:
				comments = append(comments, line)
			case blockStyle:
				style := defaultStyle(subs)
				style.InlineStyle.WebVTT.CSS = append(style.InlineStyle.WebVTT.CSS, line)
			case blockText:
				if parsed := parseTextLine(line, &stack); len(parsed.Items) > 0 {
					item.Lines = append(item.Lines, parsed)
				}
			default:
				if i, err := strconv.Atoi(trimmed); err == nil {
					index = i
				}
			}
		}
	}

	return subs, nil
}

// styleBlockClosed reports whether the accumulated CSS is balanced enough to
// leave the STYLE block on a blank line. CSS rule bodies may contain
// blank-looking boundaries, so the block only closes once the last line ends
// with "}" or nothing has accumulated yet.
func styleBlockClosed(subs *subtitle.Subtitles) bool {
	style, ok := subs.Styles[DefaultStyleID]
	if !ok || style.InlineStyle == nil || style.InlineStyle.WebVTT == nil {
		return true
	}
	css := style.InlineStyle.WebVTT.CSS
	if len(css) == 0 {
		return true
	}
	return strings.HasSuffix(strings.TrimSpace(css[len(css)-1]), "}")
}

func defaultStyle(subs *subtitle.Subtitles) *subtitle.Style {
	if style, ok := subs.Styles[DefaultStyleID]; ok {
		return style
	}
	style := &subtitle.Style{
		ID:          DefaultStyleID,
		InlineStyle: &subtitle.StyleAttributes{WebVTT: &subtitle.WebVTTAttributes{}},
	}
	subs.Styles[DefaultStyleID] = style
	return style
}

func parseRegionLine(line string) *subtitle.Region {
	attrs := &subtitle.WebVTTAttributes{}
	region := &subtitle.Region{InlineStyle: &subtitle.StyleAttributes{WebVTT: attrs}}
	for _, field := range strings.Fields(strings.TrimPrefix(line, "Region:")) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		switch key {
		case "id":
			region.ID = value
		case "lines":
			if lines, err := strconv.Atoi(value); err == nil {
				attrs.Lines = lines
			}
		case "regionanchor":
			attrs.RegionAnchor = value
		case "scroll":
			attrs.Scroll = value
		case "viewportanchor":
			attrs.ViewportAnchor = value
		case "width":
			attrs.Width = value
		}
	}
	if region.ID == "" {
		return nil
	}
	return region
}

func parseTimestampMap(line string) *subtitle.WebVTTTimestampMap {
	_, value, ok := strings.Cut(line, "=")
	if !ok {
		return nil
	}
	var m subtitle.WebVTTTimestampMap
	var haveLocal, haveMPEGTS bool
	for _, part := range strings.Split(value, ",") {
		key, fieldValue, ok := strings.Cut(part, ":")
		if !ok {
			return nil
		}
		switch strings.ToUpper(strings.TrimSpace(key)) {
		case "LOCAL":
			local, err := timecode.ParseWebVTT(strings.TrimSpace(fieldValue))
			if err != nil {
				return nil
			}
			m.Local = local
			haveLocal = true
		case "MPEGTS":
			mpegts, err := strconv.ParseInt(strings.TrimSpace(fieldValue), 10, 64)
			if err != nil {
				return nil
			}
			m.MPEGTS = mpegts
			haveMPEGTS = true
		}
	}
	if !haveLocal || !haveMPEGTS {
		return nil
	}
	return &m
}

func parseBoundaryLine(line string, lineNumber int, subs *subtitle.Subtitles) (*subtitle.Item, error) {
	parts := strings.SplitN(line, boundarySeparator, 2)
	start, err := timecode.ParseWebVTT(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("webvtt: line %d: start time: %w", lineNumber, err)
	}
	fields := strings.Fields(parts[1])
	if len(fields) == 0 {
		return nil, fmt.Errorf("webvtt: line %d: boundary line %q is missing an end time", lineNumber, line)
	}
	end, err := timecode.ParseWebVTT(fields[0])
	if err != nil {
		return nil, fmt.Errorf("webvtt: line %d: end time: %w", lineNumber, err)
	}

	item := &subtitle.Item{StartAt: start, EndAt: end}
	var attrs *subtitle.WebVTTAttributes
	ensureAttrs := func() *subtitle.WebVTTAttributes {
		if attrs == nil {
			attrs = &subtitle.WebVTTAttributes{}
			item.InlineStyle = &subtitle.StyleAttributes{WebVTT: attrs}
		}
		return attrs
	}
	for _, setting := range fields[1:] {
		key, value, ok := strings.Cut(setting, ":")
		if !ok {
			continue
		}
		switch key {
		case "align":
			ensureAttrs().Align = value
		case "line":
			ensureAttrs().Line = value
		case "position":
			ensureAttrs().Position = value
		case "size":
			ensureAttrs().Size = value
		case "vertical":
			ensureAttrs().Vertical = value
		case "region":
			if region, ok := subs.Regions[value]; ok {
				item.Region = region
			}
		}
	}
	return item, nil
}
