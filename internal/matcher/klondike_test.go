package matcher_test

import (
	"testing"

	"github.com/klondiff/klondiff/internal/matcher"
)

// S5: klondike normalizes away interior whitespace changes, so a line that
// only gained spaces around its punctuation is treated as unchanged.
func TestKlondikeWhitespaceInvariance(t *testing.T) {
	a := []string{"foo(x,y)\n"}
	b := []string{"foo( x , y )\n"}
	m := matcher.NewKlondikeMatcher(a, b)
	got, err := m.MatchingBlocks()
	if err != nil {
		t.Fatalf("MatchingBlocks: %v", err)
	}
	want := []matcher.MatchBlock{{I: 0, J: 0, N: 1}, {I: 1, J: 1, N: 0}}
	if !blocksEqual(got, want) {
		t.Errorf("MatchingBlocks() = %v, want %v", got, want)
	}
}

// S6: a run of 3+ repeated characters collapses to one copy before
// comparison, so "---" and "-----" normalize identically.
func TestKlondikeRepeatCollapse(t *testing.T) {
	a := []string{"---\n", "body\n"}
	b := []string{"-----\n", "body\n"}
	m := matcher.NewKlondikeMatcher(a, b)
	got, err := m.MatchingBlocks()
	if err != nil {
		t.Fatalf("MatchingBlocks: %v", err)
	}
	want := []matcher.MatchBlock{{I: 0, J: 0, N: 2}, {I: 2, J: 2, N: 0}}
	if !blocksEqual(got, want) {
		t.Errorf("MatchingBlocks() = %v, want %v", got, want)
	}
	ops, err := m.Opcodes()
	if err != nil {
		t.Fatalf("Opcodes: %v", err)
	}
	// The two lines normalize equal, but "---\n" and "-----\n" still
	// differ byte-for-byte, so that pair surfaces as a singleton
	// replace inside the otherwise-equal block while "body\n" (an
	// exact match) stays equal.
	want2 := []matcher.Opcode{
		{Tag: matcher.Replace, I1: 0, I2: 1, J1: 0, J2: 1},
		{Tag: matcher.Equal, I1: 1, I2: 2, J1: 1, J2: 2},
	}
	if !opsEqual(ops, want2) {
		t.Errorf("Opcodes() = %v, want %v", ops, want2)
	}
}

func TestKlondikeUnsupportedOption(t *testing.T) {
	_, err := matcher.NewKlondikeMatcherOption(func(string) bool { return true }, nil, nil)
	if _, ok := err.(*matcher.UnsupportedOptionError); !ok {
		t.Errorf("expected UnsupportedOptionError, got %v", err)
	}
}

func TestKlondikeDisjointLinesOpcodesCoverInputs(t *testing.T) {
	a := []string{"alpha\n", "beta\n", "gamma\n"}
	b := []string{"one\n", "two\n", "three\n"}
	m := matcher.NewKlondikeMatcher(a, b)
	ops, err := m.Opcodes()
	if err != nil {
		t.Fatalf("Opcodes: %v", err)
	}
	i, j := 0, 0
	for _, op := range ops {
		if op.I1 != i || op.J1 != j {
			t.Fatalf("opcode %v not edge-adjacent at (%d,%d)", op, i, j)
		}
		i, j = op.I2, op.J2
	}
	if i != len(a) || j != len(b) {
		t.Errorf("opcodes cover (%d,%d), want (%d,%d)", i, j, len(a), len(b))
	}
}
