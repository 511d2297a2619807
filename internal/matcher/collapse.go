package matcher

// collapseSequences folds a sequence of monotone (i,j) pairs into
// maximal runs (i,j,n) where consecutive pairs increment both
// coordinates together. Ported from _collapse_sequences in
// _piersdiff_py.py.
func collapseSequences(matches []MatchPair) []MatchBlock {
	var answer []MatchBlock
	startA, startB, length := -1, -1, 0
	hasStart := false

	for _, m := range matches {
		if hasStart && m.A == startA+length && m.B == startB+length {
			length++
			continue
		}
		if hasStart {
			answer = append(answer, MatchBlock{I: startA, J: startB, N: length})
		}
		startA, startB, length = m.A, m.B, 1
		hasStart = true
	}

	if length != 0 && hasStart {
		answer = append(answer, MatchBlock{I: startA, J: startB, N: length})
	}

	return answer
}

// checkMonotone verifies that blocks is strictly monotone: consecutive
// blocks never overlap in either coordinate. Returns a *ProgrammerError
// naming the offending tuple on violation.
func checkMonotone(blocks []MatchBlock) error {
	nextA, nextB := -1, -1
	for _, blk := range blocks {
		if blk.I < nextA {
			return &ProgrammerError{Reason: "non-increasing matches for a", Tuple: blk}
		}
		if blk.J < nextB {
			return &ProgrammerError{Reason: "non-increasing matches for b", Tuple: blk}
		}
		nextA = blk.I + blk.N
		nextB = blk.J + blk.N
	}
	return nil
}
