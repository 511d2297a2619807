package matcher_test

import (
	"strings"
	"testing"

	"github.com/klondiff/klondiff/internal/matcher"
)

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// S2: patience doctest.
func TestPatienceMatchingBlocksDoctest(t *testing.T) {
	a := chars("abxcd")
	b := chars("abcd")
	m := matcher.NewPatienceMatcher(a, b)
	got, err := m.MatchingBlocks()
	if err != nil {
		t.Fatalf("MatchingBlocks: %v", err)
	}
	want := []matcher.MatchBlock{{I: 0, J: 0, N: 2}, {I: 3, J: 2, N: 2}, {I: 5, J: 4, N: 0}}
	if !blocksEqual(got, want) {
		t.Errorf("MatchingBlocks() = %v, want %v", got, want)
	}
}

// S1: identity.
func TestIdentityAcrossMatchers(t *testing.T) {
	lines := chars("abxcd")
	for name, m := range map[string]matcher.Matcher{
		"patience": matcher.NewPatienceMatcher(lines, lines),
		"klondike": matcher.NewKlondikeMatcher(lines, lines),
		"classical": matcher.NewClassicalMatcher(nil, lines, lines),
	} {
		blocks, err := m.MatchingBlocks()
		if err != nil {
			t.Fatalf("%s: MatchingBlocks: %v", name, err)
		}
		want := []matcher.MatchBlock{{I: 0, J: 0, N: 5}, {I: 5, J: 5, N: 0}}
		if !blocksEqual(blocks, want) {
			t.Errorf("%s: MatchingBlocks() = %v, want %v", name, blocks, want)
		}
		ops, err := m.Opcodes()
		if err != nil {
			t.Fatalf("%s: Opcodes: %v", name, err)
		}
		wantOps := []matcher.Opcode{{Tag: matcher.Equal, I1: 0, I2: 5, J1: 0, J2: 5}}
		if !opsEqual(ops, wantOps) {
			t.Errorf("%s: Opcodes() = %v, want %v", name, ops, wantOps)
		}
	}
}

func TestPatienceRepeatedCallsAreIdempotent(t *testing.T) {
	a, b := chars("abxcd"), chars("abcd")
	m := matcher.NewPatienceMatcher(a, b)
	first, err := m.MatchingBlocks()
	if err != nil {
		t.Fatalf("MatchingBlocks: %v", err)
	}
	second, err := m.MatchingBlocks()
	if err != nil {
		t.Fatalf("MatchingBlocks: %v", err)
	}
	if !blocksEqual(first, second) {
		t.Errorf("repeated MatchingBlocks() differ: %v vs %v", first, second)
	}
}

func TestPatienceWhitespaceReplace(t *testing.T) {
	// S5 (patience half): a single line changes only in whitespace;
	// patience (unlike klondike) does not treat it as equal.
	a := []string{"foo(x,y)\n"}
	b := []string{"foo( x , y )\n"}
	m := matcher.NewPatienceMatcher(a, b)
	ops, err := m.Opcodes()
	if err != nil {
		t.Fatalf("Opcodes: %v", err)
	}
	want := []matcher.Opcode{{Tag: matcher.Replace, I1: 0, I2: 1, J1: 0, J2: 1}}
	if !opsEqual(ops, want) {
		t.Errorf("Opcodes() = %v, want %v", ops, want)
	}
}

func TestPatienceUnsupportedOption(t *testing.T) {
	_, err := matcher.NewPatienceMatcherOption(func(string) bool { return false }, nil, nil)
	var target *matcher.UnsupportedOptionError
	if err == nil || !errorsAs(err, &target) {
		t.Errorf("expected UnsupportedOptionError, got %v", err)
	}
}

func errorsAs(err error, target **matcher.UnsupportedOptionError) bool {
	if e, ok := err.(*matcher.UnsupportedOptionError); ok {
		*target = e
		return true
	}
	return false
}

func blocksEqual(got, want []matcher.MatchBlock) bool {
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

func opsEqual(got, want []matcher.Opcode) bool {
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

func linesOf(s string) []string {
	return strings.Split(s, "\n")
}
