package webvtt

import (
	"slices"
	"strings"
	"time"
	"unicode"

	"recue/internal/markup"
	"recue/internal/subtitle"
	"recue/internal/timecode"
)

// parseTextLine tokenizes one cue payload line against the shared tag stack.
// The stack is owned by the caller so unterminated tags keep applying on the
// following lines of the same cue; a blank line resets it.
func parseTextLine(raw string, stack *[]subtitle.WebVTTTag) subtitle.Line {
	var line subtitle.Line
	var run strings.Builder
	var startAt *time.Duration

	flush := func() {
		text := run.String()
		run.Reset()
		if strings.TrimSpace(text) == "" {
			return
		}
		line.Items = append(line.Items, subtitle.LineItem{
			Text:        markup.UnescapeHTML(text),
			InlineStyle: snapshot(*stack),
			StartAt:     startAt,
		})
	}

	for pos := 0; pos < len(raw); {
		if raw[pos] != '<' {
			next := strings.IndexByte(raw[pos:], '<')
			if next < 0 {
				run.WriteString(raw[pos:])
				break
			}
			run.WriteString(raw[pos : pos+next])
			pos += next
			continue
		}
		closeIdx := strings.IndexByte(raw[pos:], '>')
		if closeIdx < 0 {
			run.WriteString(raw[pos:])
			break
		}
		token := raw[pos+1 : pos+closeIdx]
		pos += closeIdx + 1

		switch {
		case strings.HasPrefix(token, "/"):
			flush()
			name := strings.TrimSpace(token[1:])
			if name != "v" && len(*stack) > 0 {
				*stack = (*stack)[:len(*stack)-1]
			}
		case token != "" && unicode.IsDigit(rune(token[0])):
			// inline timestamp; an unparseable one degrades to plain text
			if d, err := timecode.ParseWebVTT(token); err == nil {
				flush()
				startAt = &d
			} else {
				run.WriteString("<" + token + ">")
			}
		default:
			flush()
			tag := parseTag(token)
			if tag.Name == "v" {
				if line.VoiceName == "" {
					line.VoiceName = tag.Annotation
				}
			} else {
				*stack = append(*stack, tag)
			}
		}
	}
	flush()
	return line
}

// parseTag splits "tag.class1.class2 annotation" into its parts.
func parseTag(token string) subtitle.WebVTTTag {
	var tag subtitle.WebVTTTag
	head, annotation, _ := strings.Cut(token, " ")
	tag.Annotation = strings.TrimSpace(annotation)
	pieces := strings.Split(head, ".")
	tag.Name = pieces[0]
	for _, class := range pieces[1:] {
		if class != "" {
			tag.Classes = append(tag.Classes, class)
		}
	}
	return tag
}

func snapshot(stack []subtitle.WebVTTTag) *subtitle.StyleAttributes {
	if len(stack) == 0 {
		return nil
	}
	return &subtitle.StyleAttributes{
		WebVTT: &subtitle.WebVTTAttributes{Tags: slices.Clone(stack)},
	}
}

// webVTTColorNames maps hex colors to the CSS class names WebVTT renderers
// style by default, for synthesizing <c.color> wrappers from converted
// subtitles.
var webVTTColorNames = map[string]string{
	"#000000": "black",
	"#0000ff": "blue",
	"#00ffff": "cyan",
	"#00ff00": "lime",
	"#ff00ff": "magenta",
	"#ff0000": "red",
	"#ffffff": "white",
	"#ffff00": "yellow",
}

// colorClass resolves a carried color attribute to a class name usable in a
// <c.name> wrapper. Unknown hex values have no class and synthesize nothing.
func colorClass(color string) string {
	if color == "" {
		return ""
	}
	if strings.HasPrefix(color, "#") {
		return webVTTColorNames[strings.ToLower(color)]
	}
	return color
}

// effectiveTags returns the tag stack a line item renders under, synthesizing
// a <c.color> tag from a carried color attribute when no explicit tag stack
// already encodes styling.
func effectiveTags(lineItem subtitle.LineItem) []subtitle.WebVTTTag {
	attrs := lineItem.InlineStyle
	if attrs == nil && lineItem.Style != nil {
		attrs = lineItem.Style.InlineStyle
	}
	if attrs == nil {
		return nil
	}
	if attrs.WebVTT != nil && len(attrs.WebVTT.Tags) > 0 {
		return attrs.WebVTT.Tags
	}
	if attrs.TTML != nil {
		if class := colorClass(attrs.TTML.Color); class != "" {
			return []subtitle.WebVTTTag{{Name: "c", Classes: []string{class}}}
		}
	}
	return nil
}
