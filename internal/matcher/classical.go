package matcher

/*
This file adapts the sequence-matching core of internal/diff/diff.go,
itself sourced from github.com/gkampitakis/go-snaps, available with the
following License:

MIT License

Copyright (c) 2021 Georgios Kampitakis

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.

=======================

Originally a partial port of Python difflib.

Original source: https://github.com/pmezard/go-difflib

Copyright (c) 2013, Patrick Mezard
All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are
met:

    Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.
    Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.
    The names of its contributors may not be used to endorse or promote
products derived from this software without specific prior written
permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS
IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED
TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A
PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED
TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR
PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF
LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE OF THIS
SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

// ClassicalMatcher implements the Ratcliff/Obershelp "gestalt pattern
// matching" algorithm, as popularized by Python's
// difflib.SequenceMatcher. It is the only matcher in this package that
// accepts an isJunk predicate; patience and klondike both reject one via
// UnsupportedOptionError.
//
// It also backs the klondike matcher's gap fallback and OpcodeBuilder's
// extra-effort intra-replace splitting: both call sites go through
// classicalBlocks, a pure function with no caching of their own.
type ClassicalMatcher struct {
	a, b     []string
	isJunk   func(string) bool
	autoJunk bool

	blocks  []MatchBlock
	opcodes []Opcode
}

// NewClassicalMatcher constructs a classical matcher. isJunk may be nil.
func NewClassicalMatcher(isJunk func(string) bool, a, b []string) *ClassicalMatcher {
	return &ClassicalMatcher{a: a, b: b, isJunk: isJunk, autoJunk: true}
}

func (m *ClassicalMatcher) MatchingBlocks() ([]MatchBlock, error) {
	if m.blocks != nil {
		return m.blocks, nil
	}
	blocks := classicalBlocksJunk(m.a, m.b, m.isJunk, m.autoJunk)
	if err := checkMonotone(blocks); err != nil {
		return nil, err
	}
	m.blocks = blocks
	return m.blocks, nil
}

func (m *ClassicalMatcher) Opcodes() ([]Opcode, error) {
	if m.opcodes != nil {
		return m.opcodes, nil
	}
	blocks, err := m.MatchingBlocks()
	if err != nil {
		return nil, err
	}
	ops, err := buildOpcodes(m.a, m.b, m.a, m.b, blocks, false)
	if err != nil {
		return nil, err
	}
	m.opcodes = ops
	return m.opcodes, nil
}

// classicalBlocks runs the classical matcher with no junk predicate and
// no auto-junk popular-line suppression. It is the subroutine klondike
// and the opcode builder reuse for gap-filling and intra-replace
// splitting; those call sites operate on small, already-isolated slices
// where popular-line suppression would only hide real structure.
func classicalBlocks(a, b []string) []MatchBlock {
	return classicalBlocksJunk(a, b, nil, false)
}

func classicalBlocksJunk(a, b []string, isJunk func(string) bool, autoJunk bool) []MatchBlock {
	cm := &classicalCore{a: a, b: b, isJunk: isJunk, autoJunk: autoJunk}
	cm.chainB()
	return cm.matchingBlocks()
}

type classicalMatch struct {
	a, b, size int
}

type classicalCore struct {
	a, b     []string
	isJunk   func(string) bool
	autoJunk bool
	b2j      map[string][]int
	bJunk    map[string]struct{}
	bPopular map[string]struct{}
}

func (m *classicalCore) chainB() {
	b2j := map[string][]int{}
	for i, elt := range m.b {
		b2j[elt] = append(b2j[elt], i)
	}

	m.bJunk = map[string]struct{}{}
	if m.isJunk != nil {
		for elt := range b2j {
			if m.isJunk(elt) {
				m.bJunk[elt] = struct{}{}
			}
		}
		for elt := range m.bJunk {
			delete(b2j, elt)
		}
	}

	popular := map[string]struct{}{}
	n := len(m.b)
	if m.autoJunk && n >= 200 {
		ntest := n/100 + 1
		for s, indices := range b2j {
			if len(indices) > ntest {
				popular[s] = struct{}{}
			}
		}
		for s := range popular {
			delete(b2j, s)
		}
	}
	m.bPopular = popular
	m.b2j = b2j
}

func (m *classicalCore) isBJunk(s string) bool {
	_, ok := m.bJunk[s]
	return ok
}

func (m *classicalCore) findLongestMatch(alo, ahi, blo, bhi int) classicalMatch {
	besti, bestj, bestsize := alo, blo, 0

	j2len := map[int]int{}
	for i := alo; i != ahi; i++ {
		newj2len := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}

	for besti > alo && bestj > blo && !m.isBJunk(m.b[bestj-1]) &&
		m.a[besti-1] == m.b[bestj-1] {
		besti, bestj, bestsize = besti-1, bestj-1, bestsize+1
	}
	for besti+bestsize < ahi && bestj+bestsize < bhi &&
		!m.isBJunk(m.b[bestj+bestsize]) &&
		m.a[besti+bestsize] == m.b[bestj+bestsize] {
		bestsize++
	}

	for besti > alo && bestj > blo && m.isBJunk(m.b[bestj-1]) &&
		m.a[besti-1] == m.b[bestj-1] {
		besti, bestj, bestsize = besti-1, bestj-1, bestsize+1
	}
	for besti+bestsize < ahi && bestj+bestsize < bhi &&
		m.isBJunk(m.b[bestj+bestsize]) &&
		m.a[besti+bestsize] == m.b[bestj+bestsize] {
		bestsize++
	}

	return classicalMatch{besti, bestj, bestsize}
}

func (m *classicalCore) matchingBlocks() []MatchBlock {
	var walk func(alo, ahi, blo, bhi int, matched []classicalMatch) []classicalMatch
	walk = func(alo, ahi, blo, bhi int, matched []classicalMatch) []classicalMatch {
		mm := m.findLongestMatch(alo, ahi, blo, bhi)
		i, j, k := mm.a, mm.b, mm.size
		if mm.size > 0 {
			if alo < i && blo < j {
				matched = walk(alo, i, blo, j, matched)
			}
			matched = append(matched, mm)
			if i+k < ahi && j+k < bhi {
				matched = walk(i+k, ahi, j+k, bhi, matched)
			}
		}
		return matched
	}
	matched := walk(0, len(m.a), 0, len(m.b), nil)

	var blocks []MatchBlock
	i1, j1, k1 := 0, 0, 0
	for _, mm := range matched {
		if i1+k1 == mm.a && j1+k1 == mm.b {
			k1 += mm.size
		} else {
			if k1 > 0 {
				blocks = append(blocks, MatchBlock{I: i1, J: j1, N: k1})
			}
			i1, j1, k1 = mm.a, mm.b, mm.size
		}
	}
	if k1 > 0 {
		blocks = append(blocks, MatchBlock{I: i1, J: j1, N: k1})
	}
	blocks = append(blocks, MatchBlock{I: len(m.a), J: len(m.b), N: 0})
	return blocks
}
