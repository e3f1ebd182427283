package webvtt

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"recue/internal/markup"
	"recue/internal/subtitle"
	"recue/internal/timecode"
)

// Write renders the subtitles as WebVTT text. Items are renumbered
// positionally and regions are emitted sorted by id.
func Write(subs *subtitle.Subtitles) (string, error) {
	if subs.IsEmpty() {
		return "", subtitle.ErrNoSubtitleToWrite
	}

	var b strings.Builder
	b.WriteString("WEBVTT\n")
	if subs.Metadata != nil && subs.Metadata.WebVTTTimestampMap != nil {
		m := subs.Metadata.WebVTTTimestampMap
		fmt.Fprintf(&b, "X-TIMESTAMP-MAP=LOCAL:%s,MPEGTS:%d\n", timecode.FormatWebVTT(m.Local), m.MPEGTS)
	}
	b.WriteString("\n")

	if css := collectCSS(subs); len(css) > 0 {
		b.WriteString("STYLE\n")
		for _, line := range css {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(subs.Regions) > 0 {
		ids := make([]string, 0, len(subs.Regions))
		for id := range subs.Regions {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			writeRegion(&b, subs.Regions[id])
		}
		b.WriteString("\n")
	}

	for i, item := range subs.Items {
		if len(item.Comments) > 0 {
			b.WriteString("NOTE ")
			b.WriteString(item.Comments[0])
			b.WriteString("\n")
			for _, comment := range item.Comments[1:] {
				b.WriteString(comment)
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("\n")
		b.WriteString(timecode.FormatWebVTT(item.StartAt))
		b.WriteString(" ")
		b.WriteString(boundarySeparator)
		b.WriteString(" ")
		b.WriteString(timecode.FormatWebVTT(item.EndAt))
		writeCueSettings(&b, item)
		b.WriteString("\n")
		for _, line := range item.Lines {
			writeLine(&b, line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func collectCSS(subs *subtitle.Subtitles) []string {
	ids := make([]string, 0, len(subs.Styles))
	for id := range subs.Styles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var css []string
	for _, id := range ids {
		style := subs.Styles[id]
		if style.InlineStyle != nil && style.InlineStyle.WebVTT != nil {
			css = append(css, style.InlineStyle.WebVTT.CSS...)
		}
	}
	return css
}

func writeRegion(b *strings.Builder, region *subtitle.Region) {
	b.WriteString("Region: id=")
	b.WriteString(region.ID)
	if region.InlineStyle != nil && region.InlineStyle.WebVTT != nil {
		attrs := region.InlineStyle.WebVTT
		if attrs.Lines != 0 {
			fmt.Fprintf(b, " lines=%d", attrs.Lines)
		}
		if attrs.RegionAnchor != "" {
			b.WriteString(" regionanchor=")
			b.WriteString(attrs.RegionAnchor)
		}
		if attrs.Scroll != "" {
			b.WriteString(" scroll=")
			b.WriteString(attrs.Scroll)
		}
		if attrs.ViewportAnchor != "" {
			b.WriteString(" viewportanchor=")
			b.WriteString(attrs.ViewportAnchor)
		}
		if attrs.Width != "" {
			b.WriteString(" width=")
			b.WriteString(attrs.Width)
		}
	}
	b.WriteString("\n")
}

func writeCueSettings(b *strings.Builder, item *subtitle.Item) {
	if item.Region != nil {
		b.WriteString(" region:")
		b.WriteString(item.Region.ID)
	}
	attrs := item.InlineStyle
	if attrs == nil && item.Style != nil {
		attrs = item.Style.InlineStyle
	}
	if attrs == nil || attrs.WebVTT == nil {
		return
	}
	settings := attrs.WebVTT
	if settings.Align != "" {
		b.WriteString(" align:")
		b.WriteString(settings.Align)
	}
	if settings.Line != "" {
		b.WriteString(" line:")
		b.WriteString(settings.Line)
	}
	if settings.Position != "" {
		b.WriteString(" position:")
		b.WriteString(settings.Position)
	}
	if settings.Size != "" {
		b.WriteString(" size:")
		b.WriteString(settings.Size)
	}
	if settings.Vertical != "" {
		b.WriteString(" vertical:")
		b.WriteString(settings.Vertical)
	}
}

// writeLine renders a cue payload line, re-opening only the tags that differ
// from the previous item's stack so adjacent runs sharing a style coalesce
// into one span.
func writeLine(b *strings.Builder, line subtitle.Line) {
	if line.VoiceName != "" {
		fmt.Fprintf(b, "<v %s>", line.VoiceName)
	}
	var prev []subtitle.WebVTTTag
	for _, lineItem := range line.Items {
		tags := effectiveTags(lineItem)
		shared := sharedDepth(prev, tags)
		closeTags(b, prev[shared:])
		if lineItem.StartAt != nil {
			fmt.Fprintf(b, "<%s>", timecode.FormatWebVTT(*lineItem.StartAt))
		}
		openTags(b, tags[shared:])
		b.WriteString(markup.EscapeHTML(lineItem.Text))
		prev = tags
	}
	closeTags(b, prev)
}

// sharedDepth counts how many leading stack entries two tag stacks have in
// common.
func sharedDepth(a, b []subtitle.WebVTTTag) int {
	depth := 0
	for depth < len(a) && depth < len(b) && tagsEqual(a[depth], b[depth]) {
		depth++
	}
	return depth
}

func tagsEqual(a, b subtitle.WebVTTTag) bool {
	if a.Name != b.Name || a.Annotation != b.Annotation || len(a.Classes) != len(b.Classes) {
		return false
	}
	for i := range a.Classes {
		if a.Classes[i] != b.Classes[i] {
			return false
		}
	}
	return true
}

func openTags(b *strings.Builder, tags []subtitle.WebVTTTag) {
	for _, tag := range tags {
		b.WriteString("<")
		b.WriteString(tag.Name)
		for _, class := range tag.Classes {
			b.WriteString(".")
			b.WriteString(class)
		}
		if tag.Annotation != "" {
			b.WriteString(" ")
			b.WriteString(tag.Annotation)
		}
		b.WriteString(">")
	}
}

func closeTags(b *strings.Builder, tags []subtitle.WebVTTTag) {
	for i := len(tags) - 1; i >= 0; i-- {
		b.WriteString("</")
		b.WriteString(tags[i].Name)
		b.WriteString(">")
	}
}
