package matcher_test

import (
	"testing"

	"github.com/klondiff/klondiff/internal/matcher"
)

func TestUniqueLCSEmptyWhenNoSharedElements(t *testing.T) {
	got := matcher.UniqueLCS([]string{"a", "a"}, []string{"b", "b"})
	if len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestUniqueLCSIgnoresDuplicates(t *testing.T) {
	// "x" repeats on both sides so it must not anchor; "u" is unique on
	// both sides and must.
	a := []string{"x", "u", "x"}
	b := []string{"x", "x", "u"}
	got := matcher.UniqueLCS(a, b)
	if len(got) != 1 || got[0] != (matcher.MatchPair{A: 1, B: 2}) {
		t.Errorf("UniqueLCS(%v, %v) = %v, want [{1 2}]", a, b, got)
	}
}

func TestUniqueLCSOrderedChain(t *testing.T) {
	a := []string{"p", "q", "r"}
	b := []string{"p", "q", "r"}
	got := matcher.UniqueLCS(a, b)
	want := []matcher.MatchPair{{A: 0, B: 0}, {A: 1, B: 1}, {A: 2, B: 2}}
	if len(got) != len(want) {
		t.Fatalf("UniqueLCS length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
