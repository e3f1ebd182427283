// Package subtitle defines the unified in-memory representation shared by all
// format codecs and the timeline transformations that operate on it.
//
// A Subtitles value owns its items plus the shared styles and regions those
// items reference by pointer. Styles and regions are borrowed references into
// the owning maps, never exclusive ownership: dropping an item must not drop
// the style it pointed at. Optimize and RemoveStyling are the only operations
// that invalidate such references, and both clear the referencing fields in
// the same pass that deletes the map entries.
//
// Subtitles values have no internal locking. Treat each instance as owned by
// one logical operation at a time.
package subtitle

import (
	"strings"
	"time"
)

// Subtitles is the root aggregate: an ordered item sequence plus shared
// styles, regions, and format-specific header metadata.
type Subtitles struct {
	Items    []*Item
	Styles   map[string]*Style
	Regions  map[string]*Region
	Metadata *Metadata
}

// NewSubtitles returns an empty Subtitles with initialized maps.
func NewSubtitles() *Subtitles {
	return &Subtitles{
		Styles:  make(map[string]*Style),
		Regions: make(map[string]*Region),
	}
}

// Metadata carries format-specific header fields.
type Metadata struct {
	WebVTTTimestampMap *WebVTTTimestampMap
}

// WebVTTTimestampMap mirrors an X-TIMESTAMP-MAP header, which maps the local
// cue timeline onto an MPEG transport stream clock.
type WebVTTTimestampMap struct {
	Local  time.Duration
	MPEGTS int64
}

// Item is one subtitle cue.
type Item struct {
	StartAt     time.Duration
	EndAt       time.Duration
	Lines       []Line
	Index       int
	Comments    []string
	InlineStyle *StyleAttributes
	Style       *Style
	Region      *Region
}

// String returns the rendered text of the item, lines joined by " - ".
func (i Item) String() string {
	texts := make([]string, 0, len(i.Lines))
	for _, l := range i.Lines {
		texts = append(texts, l.String())
	}
	return strings.Join(texts, " - ")
}

// Line is one visual line of a cue.
type Line struct {
	Items     []LineItem
	VoiceName string
}

// String returns the concatenated text of the line's items.
func (l Line) String() string {
	var b strings.Builder
	for _, item := range l.Items {
		b.WriteString(item.Text)
	}
	return b.String()
}

// LineItem is a contiguous run of text sharing one style context. Text holds
// the literal rendered string, already unescaped. StartAt, when non-nil, is a
// WebVTT inline timestamp revealing the run mid-cue.
type LineItem struct {
	Text        string
	InlineStyle *StyleAttributes
	Style       *Style
	StartAt     *time.Duration
}

// Style is a named, reusable attribute bundle. Parent, when set, is a
// single-level reference whose attributes are inherited; it is a lookup into
// the owning Subtitles map, not an owning pointer, so cycles in source files
// stay textual.
type Style struct {
	ID          string
	InlineStyle *StyleAttributes
	Parent      *Style
}

// Region is a named rendering area referenced by cues.
type Region struct {
	ID          string
	InlineStyle *StyleAttributes
	Style       *Style
}

// StyleAttributes gathers per-format attribute namespaces. Only the namespaces
// relevant to the active format are populated, though a value converted
// between formats may carry several at once.
type StyleAttributes struct {
	SRT    *SRTAttributes
	WebVTT *WebVTTAttributes
	TTML   *TTMLAttributes
}

// SRTAttributes are the inline styling flags SubRip supports, plus the numpad
// position written as an "{\anN}" prefix.
type SRTAttributes struct {
	Bold      bool
	Italic    bool
	Underline bool
	Position  int
}

// WebVTTAttributes carries cue settings, region attributes, raw STYLE-block
// CSS, and the inline tag stack of a text run.
type WebVTTAttributes struct {
	Align    string
	Line     string
	Position string
	Size     string
	Vertical string

	Lines          int
	RegionAnchor   string
	Scroll         string
	ViewportAnchor string
	Width          string

	CSS  []string
	Tags []WebVTTTag
}

// WebVTTTag is one entry of a WebVTT inline tag stack, such as
// "<c.yellow.bg_blue Annotation>".
type WebVTTTag struct {
	Name       string
	Classes    []string
	Annotation string
}

// TTMLAttributes holds the format-neutral color carried across conversions;
// SubRip font colors and WebVTT class colors both map through it.
type TTMLAttributes struct {
	Color string
}
