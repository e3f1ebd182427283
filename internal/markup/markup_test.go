package markup

import "testing"

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ampersand", "Tom & Jerry", "Tom &amp; Jerry"},
		{"angle bracket", "1 < 2", "1 &lt; 2"},
		{"non breaking space", "a b", "a&nbsp;b"},
		{"single pass", "&lt;", "&amp;lt;"},
		{"plain", "hello", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeHTML(tt.in); got != tt.want {
				t.Fatalf("EscapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnescapeHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"all entities", "&amp;&lt;&gt;&quot;&nbsp;&#39;&#x27;", "&<>\" ''"},
		{"unrecognized passes through", "&copy; 2020", "&copy; 2020"},
		{"mixed", "Tom &amp; Jerry &lt;3", "Tom & Jerry <3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnescapeHTML(tt.in); got != tt.want {
				t.Fatalf("UnescapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "<b>bold</b>", "bold"},
		{"attributes", `<font color="#ff0000">red</font>`, "red"},
		{"adjacent", "<i><b>both</b></i>", "both"},
		{"no tags", "plain text", "plain text"},
		{"dangling bracket stays", "a < b", "a < b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripTags(tt.in); got != tt.want {
				t.Fatalf("StripTags(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
