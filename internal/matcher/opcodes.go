package matcher

import "strings"

// separatorA and separatorB are the sentinel line separators used by the
// extra-effort intra-replace split, the same joined-string trick
// klondikediff.py's get_opcodes uses to hand a whole replace block to
// difflib.SequenceMatcher at once. Normalized lines never contain a raw
// newline (patience strips whitespace; klondike's junk-clearing regex
// deletes every whitespace character outright), so joining with
// "a\n"/"b\n" can never be confused with real content.
const (
	separatorA = "a\n"
	separatorB = "b\n"
)

// buildOpcodes converts a monotone MatchBlock list (ending in the
// sentinel) into a fully covering Opcode stream, the way
// SequenceMatcher.get_opcodes walks get_matching_blocks' output.
// extraEffort enables the klondike-only intra-replace sub-line split;
// aNorm/bNorm supply the normalized views the split operates over (pass
// a, b themselves when extraEffort is false).
func buildOpcodes(a, b, aNorm, bNorm []string, blocks []MatchBlock, extraEffort bool) ([]Opcode, error) {
	var answer []Opcode
	i, j := 0, 0

	for _, blk := range blocks {
		ai, bj, size := blk.I, blk.J, blk.N

		switch {
		case i < ai && j < bj:
			if extraEffort && (i < ai-1 || j < bj-1) {
				answer = appendReplaceSplit(answer, a, b, aNorm, bNorm, i, ai, j, bj)
			} else {
				answer = append(answer, Opcode{Tag: Replace, I1: i, I2: ai, J1: j, J2: bj})
			}
		case i < ai:
			answer = append(answer, Opcode{Tag: Delete, I1: i, I2: ai, J1: j, J2: bj})
		case j < bj:
			answer = append(answer, Opcode{Tag: Insert, I1: i, I2: ai, J1: j, J2: bj})
		}

		i, j = ai+size, bj+size

		// Within the block: lines equal only under normalization may
		// differ byte-for-byte. Split those out as singleton replace
		// opcodes interleaved with equal runs.
		n1 := 0
		for n := 0; n < size; n++ {
			if a[ai+n] != b[bj+n] {
				if n1 < n {
					answer = append(answer, Opcode{Tag: Equal, I1: ai + n1, I2: ai + n, J1: bj + n1, J2: bj + n})
				}
				n1 = n + 1
				answer = append(answer, Opcode{Tag: Replace, I1: ai + n, I2: ai + n + 1, J1: bj + n, J2: bj + n + 1})
			}
		}
		if n1 < size {
			answer = append(answer, Opcode{Tag: Equal, I1: ai + n1, I2: ai + size, J1: bj + n1, J2: bj + size})
		}
	}

	if err := checkCoverage(answer, len(a), len(b)); err != nil {
		return nil, err
	}
	return answer, nil
}

// addTag picks delete/insert/replace from the shape of the span, the way
// klondikediff.py's add_tag does for the intermediate splits produced
// inside appendReplaceSplit.
func addTag(i1, i2, j1, j2 int) Opcode {
	switch {
	case i1 == i2:
		return Opcode{Tag: Insert, I1: i1, I2: i2, J1: j1, J2: j2}
	case j1 == j2:
		return Opcode{Tag: Delete, I1: i1, I2: i2, J1: j1, J2: j2}
	default:
		return Opcode{Tag: Replace, I1: i1, I2: i2, J1: j1, J2: j2}
	}
}

// appendReplaceSplit implements the extra-effort intra-replace split:
// join the normalized lines of a[i:ai] / b[j:bj] with a per-line
// sentinel separator, run the classical matcher character-by-character
// on the joined strings, and keep only character matches of length >=5.
// Each such match maps back to a pair of line indices; lines strictly
// between the previous and current match are replaced, and the matching
// line pair itself is emitted as equal (if byte-identical) or a
// singleton replace. klondikediff.py's get_opcodes prints a diagnostic
// line when this split fires; that print is dropped here.
func appendReplaceSplit(answer []Opcode, a, b, aNorm, bNorm []string, i, ai, j, bj int) []Opcode {
	joinedA := strings.Join(aNorm[i:ai], separatorA) + separatorA
	joinedB := strings.Join(bNorm[j:bj], separatorB) + separatorB

	matches := classicalBlocks(splitChars(joinedA), splitChars(joinedB))

	curA, curB := 0, 0
	curAN, curBN := 0, 0
	prevAN, prevBN := 0, 0

	lineLen := func(s string) int { return len([]rune(s)) }

	for _, m := range matches {
		if m.N < 5 {
			continue
		}
		for curA <= m.I {
			curA += lineLen(aNorm[i+curAN]) + len([]rune(separatorA))
			curAN++
		}
		for curB <= m.J {
			curB += lineLen(bNorm[j+curBN]) + len([]rune(separatorB))
			curBN++
		}
		if prevAN < curAN && prevBN < curBN {
			if prevAN < curAN-1 || prevBN < curBN-1 {
				answer = append(answer, addTag(i+prevAN, i+curAN-1, j+prevBN, j+curBN-1))
			}
			tag := Replace
			if a[i+curAN-1] == b[j+curBN-1] {
				tag = Equal
			}
			answer = append(answer, Opcode{Tag: tag, I1: i + curAN - 1, I2: i + curAN, J1: j + curBN - 1, J2: j + curBN})
			prevAN, prevBN = curAN, curBN
		}
	}

	if i+prevAN < ai || j+prevBN < bj {
		answer = append(answer, addTag(i+prevAN, ai, j+prevBN, bj))
	}
	return answer
}

func splitChars(s string) []string {
	runes := []rune(s)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}

// checkCoverage verifies an opcode list is edge-adjacent and covers
// [0,m] x [0,n] exactly once.
func checkCoverage(ops []Opcode, m, n int) error {
	i3, j3 := 0, 0
	for _, op := range ops {
		if op.I1 != i3 || op.J1 != j3 {
			return &ProgrammerError{Reason: "opcode not edge-adjacent", Tuple: op}
		}
		i3, j3 = op.I2, op.J2
	}
	if i3 != m || j3 != n {
		return &ProgrammerError{Reason: "opcodes do not cover the inputs", Tuple: [2]int{i3, j3}}
	}
	return nil
}
