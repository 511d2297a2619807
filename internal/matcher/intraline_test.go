package matcher_test

import (
	"testing"

	"github.com/klondiff/klondiff/internal/matcher"
)

func TestHighlightBelowThresholdIsNotHighlighted(t *testing.T) {
	got := matcher.Highlight("-abc", "+xyz")
	if got.Highlighted {
		t.Errorf("expected no highlight for lines with no shared run >=5, got %v", got)
	}
}

func TestHighlightMarksSharedPrefix(t *testing.T) {
	got := matcher.Highlight("-helloworld", "+helloplanet")
	if !got.Highlighted {
		t.Fatalf("expected a highlight, got %v", got)
	}
	want := []matcher.Segment{
		{Style: matcher.StyleMarkerOld, Text: "-"},
		{Style: matcher.StyleOldSame, Text: "hello"},
		{Style: matcher.StyleOldChange, Text: "world"},
	}
	if !segmentsEqual(got.Old, want) {
		t.Errorf("Old = %v, want %v", got.Old, want)
	}
	wantNew := []matcher.Segment{
		{Style: matcher.StyleMarkerNew, Text: "+"},
		{Style: matcher.StyleNewSame, Text: "hello"},
		{Style: matcher.StyleNewChange, Text: "planet"},
	}
	if !segmentsEqual(got.New, wantNew) {
		t.Errorf("New = %v, want %v", got.New, wantNew)
	}
}

func TestHighlightSplitsTrailingWhitespace(t *testing.T) {
	got := matcher.Highlight("-aaaaa\n", "+aaaaa  \n")
	if !got.Highlighted {
		t.Fatalf("expected a highlight, got %v", got)
	}
	last := got.New[len(got.New)-1]
	if last.Style != matcher.StyleTrailingSpace {
		t.Errorf("last new segment = %v, want StyleTrailingSpace", last)
	}
}

func segmentsEqual(got, want []matcher.Segment) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
