package matcher

// PatienceMatcher anchors on lines that are unique on both sides after
// whitespace-stripping, the patience diff algorithm as implemented by
// patiencediff.py's PatienceSequenceMatcher_py. It rejects an isJunk
// predicate: use NewPatienceMatcher(a, b) directly, or
// NewPatienceMatcherOption for the constructor shape that reports
// UnsupportedOptionError the way PatienceSequenceMatcher_py does when
// isjunk is non-nil.
type PatienceMatcher struct {
	a, b []string

	blocks  []MatchBlock
	opcodes []Opcode
}

func NewPatienceMatcher(a, b []string) *PatienceMatcher {
	return &PatienceMatcher{a: a, b: b}
}

// NewPatienceMatcherOption mirrors PatienceSequenceMatcher_py's isjunk
// parameter for API parity; supplying a non-nil predicate is always an
// UnsupportedOptionError, since neither patience nor klondike support it.
func NewPatienceMatcherOption(isJunk func(string) bool, a, b []string) (*PatienceMatcher, error) {
	if isJunk != nil {
		return nil, &UnsupportedOptionError{Option: "isJunk"}
	}
	return NewPatienceMatcher(a, b), nil
}

func (m *PatienceMatcher) MatchingBlocks() ([]MatchBlock, error) {
	if m.blocks != nil {
		return m.blocks, nil
	}

	stripped := func(lines []string) []string {
		out := make([]string, len(lines))
		for i, l := range lines {
			out[i] = StripNormalize(l)
		}
		return out
	}
	aStripped := stripped(m.a)
	bStripped := stripped(m.b)

	var matches []MatchPair
	RecurseMatches(aStripped, bStripped, 0, 0, len(m.a), len(m.b), &matches, maxRecursionDepth)

	// Stripping was only for anchoring; keep pairs where the raw lines
	// are equal.
	filtered := matches[:0]
	for _, p := range matches {
		if m.a[p.A] == m.b[p.B] {
			filtered = append(filtered, p)
		}
	}

	blocks := collapseSequences(filtered)
	blocks = append(blocks, MatchBlock{I: len(m.a), J: len(m.b), N: 0})

	if err := checkMonotone(blocks); err != nil {
		return nil, err
	}
	m.blocks = blocks
	return m.blocks, nil
}

func (m *PatienceMatcher) Opcodes() ([]Opcode, error) {
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
