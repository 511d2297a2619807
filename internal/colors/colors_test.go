package colors_test

import (
	"testing"

	"github.com/klondiff/klondiff/internal/colors"
	"github.com/klondiff/klondiff/internal/hunks"
	"github.com/klondiff/klondiff/internal/matcher"
)

func TestDefaultPaletteMatchesSpecDefaults(t *testing.T) {
	p := colors.DefaultPalette()
	cases := map[string]string{
		"metaline": p.Metaline, "plain": p.Plain, "newtext": p.NewText,
		"oldtext": p.OldText, "newsame": p.NewSame, "oldsame": p.OldSame,
		"diffstuff": p.Diffstuff, "trailingspace": p.TrailingSpace,
		"leadingtabs": p.LeadingTabs, "longline": p.LongLine,
	}
	want := map[string]string{
		"metaline": "darkyellow", "plain": "darkwhite", "newtext": "darkgreen",
		"oldtext": "darkred", "newsame": "darkyellow", "oldsame": "darkyellow",
		"diffstuff": "darkcyan", "trailingspace": "red", "leadingtabs": "magenta",
		"longline": "white",
	}
	for k, v := range want {
		if cases[k] != v {
			t.Errorf("DefaultPalette().%s = %q, want %q", k, cases[k], v)
		}
	}
}

func TestRenderSegmentsEmptyTextIsUnchanged(t *testing.T) {
	r := colors.NewRenderer(colors.DefaultPalette())
	got := r.RenderSegments([]matcher.Segment{{Style: matcher.StyleOldSame, Text: ""}})
	if got != "" {
		t.Errorf("RenderSegments(empty text) = %q, want empty", got)
	}
}

func TestDetectSpuriousWhitespaceCountsWhitespaceOnlyHunks(t *testing.T) {
	a := []string{"foo  \n", "bar\n"}
	b := []string{"foo\n", "bar\n"}
	h := hunks.Hunk{Ops: []matcher.Opcode{
		{Tag: matcher.Replace, I1: 0, I2: 1, J1: 0, J2: 1},
		{Tag: matcher.Equal, I1: 1, I2: 2, J1: 1, J2: 2},
	}}
	got := colors.DetectSpuriousWhitespace(a, b, []hunks.Hunk{h})
	if got != 1 {
		t.Errorf("DetectSpuriousWhitespace() = %d, want 1", got)
	}
}

func TestDetectSpuriousWhitespaceIgnoresRealChanges(t *testing.T) {
	a := []string{"foo\n"}
	b := []string{"baz\n"}
	h := hunks.Hunk{Ops: []matcher.Opcode{{Tag: matcher.Replace, I1: 0, I2: 1, J1: 0, J2: 1}}}
	got := colors.DetectSpuriousWhitespace(a, b, []hunks.Hunk{h})
	if got != 0 {
		t.Errorf("DetectSpuriousWhitespace() = %d, want 0", got)
	}
}
