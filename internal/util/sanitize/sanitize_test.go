package sanitize

import "testing"

func TestField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text unchanged", "Lamma Bada Yatathanna", "Lamma Bada Yatathanna"},
		{"trims whitespace", "  Fairuz  ", "Fairuz"},
		{"strips ANSI escape", "title\x1b[31mred\x1b[0m", "title[31mred[0m"},
		{"strips newlines", "line1\nline2", "line1line2"},
		{"strips zero-width space", "Fai\u200Bruz", "Fairuz"},
		{"strips BOM", "\uFEFFSong", "Song"},
		{"strips soft hyphen and word joiner", "Um\u00ADm Kul\u2060thum", "Umm Kulthum"},
		{"empty stays empty", "", ""},
		{"arabic text preserved", "لما بدا يتثنى", "لما بدا يتثنى"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Field(tt.input); got != tt.want {
				t.Errorf("Field(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"keeps newlines", "verse one\nverse two", "verse one\nverse two"},
		{"normalizes CRLF", "verse one\r\nverse two", "verse one\nverse two"},
		{"normalizes CR", "verse one\rverse two", "verse one\nverse two"},
		{"strips escape keeps tab", "a\x1bb\tc", "ab\tc"},
		{"trims outer whitespace", "\n\nlyrics\n\n", "lyrics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Block(tt.input); got != tt.want {
				t.Errorf("Block(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
