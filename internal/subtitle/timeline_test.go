package subtitle

import (
	"errors"
	"testing"
	"time"
)

func textItem(start, end time.Duration, text string) *Item {
	return &Item{
		StartAt: start,
		EndAt:   end,
		Lines:   []Line{{Items: []LineItem{{Text: text}}}},
	}
}

func TestItemString(t *testing.T) {
	item := Item{Lines: []Line{
		{Items: []LineItem{{Text: "Hello "}, {Text: "World"}}},
		{Items: []LineItem{{Text: "Goodbye"}}},
	}}
	if got := item.String(); got != "Hello World - Goodbye" {
		t.Fatalf("String() = %q, want %q", got, "Hello World - Goodbye")
	}
}

func TestAddShiftsAndClamps(t *testing.T) {
	s := NewSubtitles()
	s.Items = append(s.Items,
		textItem(500*time.Millisecond, 2*time.Second, "dropped"),
		textItem(time.Second, 3*time.Second, "truncated"),
		textItem(time.Second, 5*time.Second, "clamped"),
		textItem(10*time.Second, 12*time.Second, "shifted"),
	)

	s.Add(-2 * time.Second)

	// [500ms, 2s) lands entirely at or below zero and is dropped; an item
	// that still ends after zero survives with its start clamped.
	if len(s.Items) != 3 {
		t.Fatalf("expected 3 items after Add, got %d", len(s.Items))
	}
	if s.Items[0].StartAt != 0 || s.Items[0].EndAt != time.Second {
		t.Fatalf("truncated item = [%v, %v], want [0s, 1s]", s.Items[0].StartAt, s.Items[0].EndAt)
	}
	if s.Items[1].StartAt != 0 || s.Items[1].EndAt != 3*time.Second {
		t.Fatalf("clamped item = [%v, %v], want [0s, 3s]", s.Items[1].StartAt, s.Items[1].EndAt)
	}
	if s.Items[2].StartAt != 8*time.Second || s.Items[2].EndAt != 10*time.Second {
		t.Fatalf("shifted item = [%v, %v], want [8s, 10s]", s.Items[2].StartAt, s.Items[2].EndAt)
	}
}

func TestOrderIsStableAndIdempotent(t *testing.T) {
	s := NewSubtitles()
	s.Items = append(s.Items,
		textItem(2*time.Second, 3*time.Second, "c"),
		textItem(time.Second, 2*time.Second, "a"),
		textItem(time.Second, 4*time.Second, "b"),
	)

	s.Order()
	s.Order()

	got := []string{s.Items[0].String(), s.Items[1].String(), s.Items[2].String()}
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestFragmentSplitsOnWindowBoundaries(t *testing.T) {
	s := NewSubtitles()
	s.Items = append(s.Items, textItem(0, 6*time.Second, "hello"))

	s.Fragment(2 * time.Second)

	if len(s.Items) != 3 {
		t.Fatalf("expected 3 items after Fragment, got %d", len(s.Items))
	}
	for i, want := range [][2]time.Duration{
		{0, 2 * time.Second},
		{2 * time.Second, 4 * time.Second},
		{4 * time.Second, 6 * time.Second},
	} {
		if s.Items[i].StartAt != want[0] || s.Items[i].EndAt != want[1] {
			t.Fatalf("item %d = [%v, %v], want [%v, %v]", i, s.Items[i].StartAt, s.Items[i].EndAt, want[0], want[1])
		}
		if s.Items[i].String() != "hello" {
			t.Fatalf("item %d text = %q, want %q", i, s.Items[i].String(), "hello")
		}
	}
}

func TestUnfragmentIsLeftInverseOfFragment(t *testing.T) {
	s := NewSubtitles()
	s.Items = append(s.Items, textItem(0, 6*time.Second, "hello"))

	s.Fragment(2 * time.Second)
	s.Unfragment()

	if len(s.Items) != 1 {
		t.Fatalf("expected 1 item after Unfragment, got %d", len(s.Items))
	}
	if s.Items[0].StartAt != 0 || s.Items[0].EndAt != 6*time.Second {
		t.Fatalf("item = [%v, %v], want [0s, 6s]", s.Items[0].StartAt, s.Items[0].EndAt)
	}
	if s.Items[0].String() != "hello" {
		t.Fatalf("text = %q, want %q", s.Items[0].String(), "hello")
	}
}

func TestUnfragmentKeepsDistinctText(t *testing.T) {
	s := NewSubtitles()
	s.Items = append(s.Items,
		textItem(0, 2*time.Second, "one"),
		textItem(2*time.Second, 4*time.Second, "two"),
		textItem(4*time.Second, 6*time.Second, "two"),
		textItem(10*time.Second, 12*time.Second, "two"),
	)

	s.Unfragment()

	if len(s.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(s.Items))
	}
	if s.Items[1].StartAt != 2*time.Second || s.Items[1].EndAt != 6*time.Second {
		t.Fatalf("merged item = [%v, %v], want [2s, 6s]", s.Items[1].StartAt, s.Items[1].EndAt)
	}
	if s.Items[2].StartAt != 10*time.Second {
		t.Fatal("non-touching identical item must not be merged")
	}
}

func TestMergeKeepsExistingOnCollision(t *testing.T) {
	s := NewSubtitles()
	mine := &Style{ID: "shared"}
	s.Styles["shared"] = mine
	s.Items = append(s.Items, textItem(5*time.Second, 6*time.Second, "late"))

	o := NewSubtitles()
	o.Styles["shared"] = &Style{ID: "shared"}
	o.Styles["other"] = &Style{ID: "other"}
	o.Regions["r"] = &Region{ID: "r"}
	o.Items = append(o.Items, textItem(time.Second, 2*time.Second, "early"))

	s.Merge(o)

	if len(s.Items) != 2 || s.Items[0].String() != "early" {
		t.Fatalf("expected ordered merge, got %d items, first %q", len(s.Items), s.Items[0].String())
	}
	if s.Styles["shared"] != mine {
		t.Fatal("collision must keep the receiver's style")
	}
	if _, ok := s.Styles["other"]; !ok {
		t.Fatal("missing merged style")
	}
	if _, ok := s.Regions["r"]; !ok {
		t.Fatal("missing merged region")
	}
}

func TestOptimizeDropsOnlyUnused(t *testing.T) {
	s := NewSubtitles()
	used := &Style{ID: "used"}
	regionStyle := &Style{ID: "region-style"}
	inlineUsed := &Style{ID: "inline-used"}
	s.Styles["used"] = used
	s.Styles["region-style"] = regionStyle
	s.Styles["inline-used"] = inlineUsed
	s.Styles["unused"] = &Style{ID: "unused"}
	region := &Region{ID: "r", Style: regionStyle}
	s.Regions["r"] = region
	s.Regions["unused-region"] = &Region{ID: "unused-region"}

	item := textItem(0, time.Second, "hi")
	item.Style = used
	item.Region = region
	item.Lines[0].Items[0].Style = inlineUsed
	s.Items = append(s.Items, item)

	s.Optimize()

	for _, id := range []string{"used", "region-style", "inline-used"} {
		if _, ok := s.Styles[id]; !ok {
			t.Fatalf("style %q must survive Optimize", id)
		}
	}
	if _, ok := s.Styles["unused"]; ok {
		t.Fatal("unused style must be dropped")
	}
	if _, ok := s.Regions["r"]; !ok {
		t.Fatal("referenced region must survive")
	}
	if _, ok := s.Regions["unused-region"]; ok {
		t.Fatal("unused region must be dropped")
	}
}

func TestRemoveStyling(t *testing.T) {
	s := NewSubtitles()
	style := &Style{ID: "x"}
	s.Styles["x"] = style
	s.Regions["r"] = &Region{ID: "r"}
	item := textItem(0, time.Second, "hi")
	item.Style = style
	item.InlineStyle = &StyleAttributes{SRT: &SRTAttributes{Bold: true}}
	item.Lines[0].Items[0].Style = style
	item.Lines[0].Items[0].InlineStyle = &StyleAttributes{SRT: &SRTAttributes{Italic: true}}
	s.Items = append(s.Items, item)

	s.RemoveStyling()

	if len(s.Styles) != 0 || len(s.Regions) != 0 {
		t.Fatal("maps must be cleared")
	}
	if item.Style != nil || item.InlineStyle != nil || item.Region != nil {
		t.Fatal("item references must be cleared")
	}
	if item.Lines[0].Items[0].Style != nil || item.Lines[0].Items[0].InlineStyle != nil {
		t.Fatal("line item references must be cleared")
	}
}

func TestApplyLinearCorrection(t *testing.T) {
	s := NewSubtitles()
	s.Items = append(s.Items, textItem(3*time.Second, 4*time.Second, "hi"))

	err := s.ApplyLinearCorrection(time.Second, 2*time.Second, 5*time.Second, 7*time.Second)
	if err != nil {
		t.Fatalf("ApplyLinearCorrection returned error: %v", err)
	}
	if s.Items[0].StartAt != 4500*time.Millisecond {
		t.Fatalf("StartAt = %v, want 4.5s", s.Items[0].StartAt)
	}
	if s.Items[0].EndAt != 5750*time.Millisecond {
		t.Fatalf("EndAt = %v, want 5.75s", s.Items[0].EndAt)
	}
}

func TestApplyLinearCorrectionDegenerate(t *testing.T) {
	s := NewSubtitles()
	s.Items = append(s.Items, textItem(0, time.Second, "hi"))

	err := s.ApplyLinearCorrection(time.Second, 2*time.Second, time.Second, 3*time.Second)
	if !errors.Is(err, ErrIdenticalReferenceTimes) {
		t.Fatalf("expected ErrIdenticalReferenceTimes, got %v", err)
	}
}

func TestForceDuration(t *testing.T) {
	t.Run("clips overlong items", func(t *testing.T) {
		s := NewSubtitles()
		s.Items = append(s.Items,
			textItem(0, 4*time.Second, "kept"),
			textItem(3*time.Second, 8*time.Second, "clipped"),
			textItem(6*time.Second, 9*time.Second, "dropped"),
		)
		s.ForceDuration(5*time.Second, false)
		if len(s.Items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(s.Items))
		}
		if s.Items[1].EndAt != 5*time.Second {
			t.Fatalf("clipped EndAt = %v, want 5s", s.Items[1].EndAt)
		}
	})

	t.Run("appends dummy item", func(t *testing.T) {
		s := NewSubtitles()
		s.Items = append(s.Items, textItem(0, 2*time.Second, "hi"))
		s.ForceDuration(10*time.Second, true)
		last := s.Items[len(s.Items)-1]
		if last.StartAt != 10*time.Second-time.Millisecond || last.EndAt != 10*time.Second {
			t.Fatalf("dummy item = [%v, %v]", last.StartAt, last.EndAt)
		}
		if last.String() != "..." {
			t.Fatalf("dummy text = %q, want ...", last.String())
		}
	})

	t.Run("matching duration is a no-op", func(t *testing.T) {
		s := NewSubtitles()
		s.Items = append(s.Items, textItem(0, 2*time.Second, "hi"))
		s.ForceDuration(2*time.Second, true)
		if len(s.Items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(s.Items))
		}
	})
}

func TestDurationAndIsEmpty(t *testing.T) {
	s := NewSubtitles()
	if !s.IsEmpty() || s.Duration() != 0 {
		t.Fatal("fresh subtitles must be empty with zero duration")
	}
	s.Items = append(s.Items, textItem(time.Second, 3*time.Second, "hi"))
	if s.IsEmpty() {
		t.Fatal("IsEmpty() = true with one item")
	}
	if s.Duration() != 3*time.Second {
		t.Fatalf("Duration() = %v, want 3s", s.Duration())
	}
}
