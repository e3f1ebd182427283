package subtitle

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"
)

// ErrNoSubtitleToWrite is returned by codec writers when the item sequence is
// empty.
var ErrNoSubtitleToWrite = errors.New("no subtitle to write")

// ErrIdenticalReferenceTimes is returned by ApplyLinearCorrection when both
// actual reference points are equal, which makes the correction degenerate.
var ErrIdenticalReferenceTimes = errors.New("identical actual reference times")

// IsEmpty reports whether the subtitles contain no items.
func (s *Subtitles) IsEmpty() bool {
	return len(s.Items) == 0
}

// Duration returns the end time of the last item, or zero when empty. Items
// are assumed ordered; call Order first when mutation order is uncertain.
func (s *Subtitles) Duration() time.Duration {
	if len(s.Items) == 0 {
		return 0
	}
	return s.Items[len(s.Items)-1].EndAt
}

// Add shifts every item by d. An item whose both timestamps end up at or
// below zero is dropped; an item that merely starts before zero is truncated
// to start at zero.
func (s *Subtitles) Add(d time.Duration) {
	kept := s.Items[:0]
	for _, item := range s.Items {
		item.StartAt += d
		item.EndAt += d
		if item.StartAt <= 0 && item.EndAt <= 0 {
			continue
		}
		if item.StartAt < 0 {
			item.StartAt = 0
		}
		kept = append(kept, item)
	}
	s.Items = kept
}

// Order stably sorts the items by ascending start time.
func (s *Subtitles) Order() {
	slices.SortStableFunc(s.Items, func(a, b *Item) int {
		switch {
		case a.StartAt < b.StartAt:
			return -1
		case a.StartAt > b.StartAt:
			return 1
		default:
			return 0
		}
	})
}

// Fragment splits items on every multiple-of-window boundary so that no item
// spans one. Items are reordered afterwards.
func (s *Subtitles) Fragment(window time.Duration) {
	if window <= 0 || len(s.Items) == 0 {
		return
	}
	for fragmentStart := time.Duration(0); fragmentStart < s.Items[len(s.Items)-1].EndAt; fragmentStart += window {
		fragmentEnd := fragmentStart + window
		for i := 0; i < len(s.Items); i++ {
			item := s.Items[i]
			split := *item
			if item.StartAt < fragmentStart && fragmentStart < item.EndAt {
				split.EndAt = fragmentStart
				item.StartAt = fragmentStart
			} else if item.StartAt < fragmentEnd && fragmentEnd < item.EndAt {
				split.StartAt = fragmentEnd
				item.EndAt = fragmentEnd
			} else {
				continue
			}
			s.Items = slices.Insert(s.Items, i+1, &split)
			i++
		}
	}
	s.Order()
}

// Unfragment merges time-adjacent items whose rendered text is identical,
// extending the earlier item over the later one. Items are ordered first.
func (s *Subtitles) Unfragment() {
	s.Order()
	for i := 0; i < len(s.Items); i++ {
		item := s.Items[i]
		text := item.String()
		for j := i + 1; j < len(s.Items); {
			next := s.Items[j]
			if next.StartAt > item.EndAt {
				break
			}
			if next.String() == text && item.EndAt >= next.StartAt {
				if next.EndAt > item.EndAt {
					item.EndAt = next.EndAt
				}
				s.Items = slices.Delete(s.Items, j, j+1)
				continue
			}
			j++
		}
	}
}

// Merge appends o's items, reorders, and unions o's styles and regions into
// s, keeping s's entry on an id collision.
func (s *Subtitles) Merge(o *Subtitles) {
	if o == nil {
		return
	}
	s.Items = append(s.Items, o.Items...)
	s.Order()
	if s.Regions == nil {
		s.Regions = make(map[string]*Region)
	}
	for id, region := range o.Regions {
		if _, ok := s.Regions[id]; !ok {
			s.Regions[id] = region
		}
	}
	if s.Styles == nil {
		s.Styles = make(map[string]*Style)
	}
	for id, style := range o.Styles {
		if _, ok := s.Styles[id]; !ok {
			s.Styles[id] = style
		}
	}
}

// Optimize drops styles and regions that nothing references. A retained
// region keeps its linked style.
func (s *Subtitles) Optimize() {
	if len(s.Items) == 0 && len(s.Regions) == 0 && len(s.Styles) == 0 {
		return
	}
	usedRegions := make(map[string]bool)
	usedStyles := make(map[string]bool)
	for _, item := range s.Items {
		if item.Region != nil {
			usedRegions[item.Region.ID] = true
		}
		if item.Style != nil {
			usedStyles[item.Style.ID] = true
		}
		for _, line := range item.Lines {
			for _, lineItem := range line.Items {
				if lineItem.Style != nil {
					usedStyles[lineItem.Style.ID] = true
				}
			}
		}
	}
	for id, region := range s.Regions {
		if !usedRegions[id] {
			delete(s.Regions, id)
			continue
		}
		if region.Style != nil {
			usedStyles[region.Style.ID] = true
		}
	}
	for id := range s.Styles {
		if !usedStyles[id] {
			delete(s.Styles, id)
		}
	}
}

// RemoveStyling clears the style and region maps and every reference into
// them, leaving plain timed text.
func (s *Subtitles) RemoveStyling() {
	s.Styles = make(map[string]*Style)
	s.Regions = make(map[string]*Region)
	for _, item := range s.Items {
		item.Region = nil
		item.Style = nil
		item.InlineStyle = nil
		for li := range item.Lines {
			for lii := range item.Lines[li].Items {
				item.Lines[li].Items[lii].Style = nil
				item.Lines[li].Items[lii].InlineStyle = nil
			}
		}
	}
}

// ApplyLinearCorrection remaps every timestamp through the affine transform
// fixed by two (actual, desired) reference pairs, flooring to milliseconds.
// It fails when both actual reference times coincide.
func (s *Subtitles) ApplyLinearCorrection(actual1, desired1, actual2, desired2 time.Duration) error {
	if actual1 == actual2 {
		return fmt.Errorf("correct %v -> %v and %v -> %v: %w", actual1, desired1, actual2, desired2, ErrIdenticalReferenceTimes)
	}
	slope := float64(desired2-desired1) / float64(actual2-actual1)
	intercept := float64(desired1) - slope*float64(actual1)
	correct := func(t time.Duration) time.Duration {
		ms := math.Floor((slope*float64(t) + intercept) / float64(time.Millisecond))
		corrected := time.Duration(ms) * time.Millisecond
		if corrected < 0 {
			return 0
		}
		return corrected
	}
	for _, item := range s.Items {
		item.StartAt = correct(item.StartAt)
		item.EndAt = correct(item.EndAt)
	}
	return nil
}

// ForceDuration clips or extends the subtitles to exactly d. When the current
// duration falls short and addDummyItem is set, a one-line "..." item is
// appended over the final millisecond.
func (s *Subtitles) ForceDuration(d time.Duration, addDummyItem bool) {
	if s.Duration() == d {
		return
	}
	if s.Duration() > d {
		kept := s.Items[:0]
		for _, item := range s.Items {
			if item.StartAt >= d {
				continue
			}
			if item.EndAt > d {
				item.EndAt = d
			}
			kept = append(kept, item)
		}
		s.Items = kept
	}
	if s.Duration() < d && addDummyItem {
		s.Items = append(s.Items, &Item{
			StartAt: d - time.Millisecond,
			EndAt:   d,
			Lines:   []Line{{Items: []LineItem{{Text: "..."}}}},
		})
	}
}
