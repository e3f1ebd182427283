package srt

import (
	"regexp"
	"strings"

	"recue/internal/markup"
	"recue/internal/subtitle"
)

var (
	inlineTagPattern  = regexp.MustCompile(`(?i)</?\s*(?:b|i|u)\s*>|</?\s*font[^<>]*>`)
	fontColorPattern  = regexp.MustCompile(`(?i)color\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s">]+))`)
	closingTagPattern = regexp.MustCompile(`^<\s*/`)
)

// inlineState is the running style of a cue's inline tag parser. Open tags
// set flags, closing tags clear them, and the state carries over across the
// lines of one cue so an unclosed tag keeps applying.
type inlineState struct {
	bold      bool
	italic    bool
	underline bool
	color     string
}

func (st *inlineState) active() bool {
	return st.bold || st.italic || st.underline || st.color != ""
}

// snapshot captures the current style as attributes, or nil when nothing is
// set so plain text stays unstyled.
func (st *inlineState) snapshot() *subtitle.StyleAttributes {
	if !st.active() {
		return nil
	}
	attrs := &subtitle.StyleAttributes{}
	if st.bold || st.italic || st.underline {
		attrs.SRT = &subtitle.SRTAttributes{Bold: st.bold, Italic: st.italic, Underline: st.underline}
	}
	if st.color != "" {
		attrs.TTML = &subtitle.TTMLAttributes{Color: st.color}
	}
	return attrs
}

func (st *inlineState) apply(tag string) {
	closing := closingTagPattern.MatchString(tag)
	name := strings.ToLower(strings.Trim(tag, "</> \t"))
	switch {
	case name == "b":
		st.bold = !closing
	case name == "i":
		st.italic = !closing
	case name == "u":
		st.underline = !closing
	case strings.HasPrefix(name, "font"):
		if closing {
			st.color = ""
		} else if m := fontColorPattern.FindStringSubmatch(tag); m != nil {
			for _, group := range m[1:] {
				if group != "" {
					st.color = group
					break
				}
			}
		}
	}
}

// parseLine tokenizes one raw text line into styled runs. Text between
// recognized tags becomes one LineItem carrying a snapshot of the running
// style; whitespace-only runs are dropped.
func (st *inlineState) parseLine(raw string) subtitle.Line {
	var line subtitle.Line
	appendRun := func(run string) {
		if strings.TrimSpace(run) == "" {
			return
		}
		line.Items = append(line.Items, subtitle.LineItem{
			Text:        markup.UnescapeHTML(run),
			InlineStyle: st.snapshot(),
		})
	}

	pos := 0
	for _, loc := range inlineTagPattern.FindAllStringIndex(raw, -1) {
		appendRun(raw[pos:loc[0]])
		st.apply(raw[loc[0]:loc[1]])
		pos = loc[1]
	}
	appendRun(raw[pos:])
	return line
}
