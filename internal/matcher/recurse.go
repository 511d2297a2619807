package matcher

// maxRecursionDepth bounds how deep RecurseMatches will descend,
// guarding against pathological inputs driving it into unbounded
// recursion. It is part of the contract, not an implementation detail.
const maxRecursionDepth = 10

// RecurseMatches appends monotone (ai, bi) pairs to answer for which
// a[ai] == b[bi], covering the region [alo,ahi) x [blo,bhi). It drives
// UniqueLCS between unmatched regions, extends matches greedily into
// neighboring equal elements when no anchors are found, and recurses
// with a bounded depth. Exceeding maxrecursion silently stops the
// recursion and returns whatever has been found so far; it is not an
// error, matching patiencediff.py's recurse_matches.
func RecurseMatches(a, b []string, alo, blo, ahi, bhi int, answer *[]MatchPair, maxrecursion int) {
	if maxrecursion < 0 {
		return
	}
	if alo == ahi || blo == bhi {
		return
	}

	oldLength := len(*answer)
	lastAPos := alo - 1
	lastBPos := blo - 1

	for _, p := range UniqueLCS(a[alo:ahi], b[blo:bhi]) {
		apos := p.A + alo
		bpos := p.B + blo
		if lastAPos+1 != apos || lastBPos+1 != bpos {
			RecurseMatches(a, b, lastAPos+1, lastBPos+1, apos, bpos, answer, maxrecursion-1)
		}
		lastAPos = apos
		lastBPos = bpos
		*answer = append(*answer, MatchPair{A: apos, B: bpos})
	}

	if len(*answer) > oldLength {
		RecurseMatches(a, b, lastAPos+1, lastBPos+1, ahi, bhi, answer, maxrecursion-1)
		return
	}

	switch {
	case a[alo] == b[blo]:
		for alo < ahi && blo < bhi && a[alo] == b[blo] {
			*answer = append(*answer, MatchPair{A: alo, B: blo})
			alo++
			blo++
		}
		RecurseMatches(a, b, alo, blo, ahi, bhi, answer, maxrecursion-1)
	case a[ahi-1] == b[bhi-1]:
		nahi, nbhi := ahi-1, bhi-1
		for nahi > alo && nbhi > blo && a[nahi-1] == b[nbhi-1] {
			nahi--
			nbhi--
		}
		RecurseMatches(a, b, lastAPos+1, lastBPos+1, nahi, nbhi, answer, maxrecursion-1)
		for i := 0; i < ahi-nahi; i++ {
			*answer = append(*answer, MatchPair{A: nahi + i, B: nbhi + i})
		}
	}
}
