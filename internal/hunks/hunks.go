// Package hunks groups an Opcode stream into context-padded hunks and
// renders them as a unified diff. Both pieces are thin wrappers around
// the matcher's opcode stream: the hard algorithmic work lives in
// internal/matcher.
package hunks

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/klondiff/klondiff/internal/matcher"
)

// Hunk is a contiguous run of opcodes padded with up to Context equal
// lines of surrounding unchanged text on each side.
type Hunk struct {
	Ops []matcher.Opcode
}

// Group partitions opcodes at equal runs longer than 2*context, trimming
// their ends to context lines. Ported from patiencediff.py's use of
// difflib's get_grouped_opcodes, generalized to any matcher's opcode
// stream.
func Group(ops []matcher.Opcode, context int) []Hunk {
	if context < 0 {
		context = 3
	}
	if len(ops) == 0 {
		return nil
	}

	padded := make([]matcher.Opcode, len(ops))
	copy(padded, ops)

	if padded[0].Tag == matcher.Equal {
		op := padded[0]
		i1 := max(op.I1, op.I2-context)
		j1 := max(op.J1, op.J2-context)
		padded[0] = matcher.Opcode{Tag: matcher.Equal, I1: i1, I2: op.I2, J1: j1, J2: op.J2}
	}
	last := len(padded) - 1
	if padded[last].Tag == matcher.Equal {
		op := padded[last]
		i2 := min(op.I2, op.I1+context)
		j2 := min(op.J2, op.J1+context)
		padded[last] = matcher.Opcode{Tag: matcher.Equal, I1: op.I1, I2: i2, J1: op.J1, J2: j2}
	}

	var hunks []Hunk
	var current []matcher.Opcode

	flush := func() {
		if len(current) > 0 {
			hunks = append(hunks, Hunk{Ops: current})
			current = nil
		}
	}

	for _, op := range padded {
		if op.Tag == matcher.Equal && op.I2-op.I1 > 2*context {
			current = append(current, matcher.Opcode{
				Tag: matcher.Equal,
				I1:  op.I1, I2: op.I1 + context,
				J1: op.J1, J2: op.J1 + context,
			})
			flush()
			current = append(current, matcher.Opcode{
				Tag: matcher.Equal,
				I1:  op.I2 - context, I2: op.I2,
				J1: op.J2 - context, J2: op.J2,
			})
			continue
		}
		current = append(current, op)
	}
	flush()

	return hunks
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// formatRangeUnified converts a half-open range to the "ed" format used
// by unified-diff hunk headers.
func formatRangeUnified(start, stop int) string {
	beginning := start + 1
	length := stop - start
	if length == 1 {
		return fmt.Sprintf("%d", beginning)
	}
	if length == 0 {
		beginning--
	}
	return fmt.Sprintf("%d,%d", beginning, length)
}

// EmitOptions configures UnifiedEmitter rendering.
type EmitOptions struct {
	FromFile, ToFile         string
	FromFileDate, ToFileDate string
	LineTerm                 string
	Context                  int
	// FunctionHeaderRegexp, when non-nil, suffixes each hunk header
	// with the most recent line in a[0:first_i+context] it matches.
	FunctionHeaderRegexp *regexp.Regexp
}

// Emit renders grouped hunks as a POSIX unified diff, one line per
// returned string. The "---", "+++" and "@@" lines end in
// opts.LineTerm; content lines keep the input line's own terminator.
func Emit(a, b []string, hunkList []Hunk, opts EmitOptions) []string {
	if len(hunkList) == 0 {
		return nil
	}
	lineterm := opts.LineTerm

	var funcLines []int
	if opts.FunctionHeaderRegexp != nil {
		for k, line := range a {
			if opts.FunctionHeaderRegexp.MatchString(line) {
				funcLines = append(funcLines, k)
			}
		}
	}
	currentFunction := 0

	var out []string
	fromdate := ""
	if opts.FromFileDate != "" {
		fromdate = "\t" + opts.FromFileDate
	}
	todate := ""
	if opts.ToFileDate != "" {
		todate = "\t" + opts.ToFileDate
	}
	out = append(out, fmt.Sprintf("--- %s%s%s", opts.FromFile, fromdate, lineterm))
	out = append(out, fmt.Sprintf("+++ %s%s%s", opts.ToFile, todate, lineterm))

	context := opts.Context
	if context == 0 {
		context = 3
	}

	for _, h := range hunkList {
		first, last := h.Ops[0], h.Ops[len(h.Ops)-1]
		fileRangeA := formatRangeUnified(first.I1, last.I2)
		fileRangeB := formatRangeUnified(first.J1, last.J2)

		function := ""
		if len(funcLines) > 0 {
			for currentFunction < len(funcLines) && funcLines[currentFunction] < first.I1+context {
				currentFunction++
			}
			if currentFunction > 0 {
				function = " " + strings.TrimRight(a[funcLines[currentFunction-1]], "\n")
			}
		}

		out = append(out, fmt.Sprintf("@@ -%s +%s @@%s%s", fileRangeA, fileRangeB, function, lineterm))

		for _, op := range h.Ops {
			switch op.Tag {
			case matcher.Equal:
				for i := op.I1; i < op.I2; i++ {
					out = append(out, " "+a[i])
				}
			case matcher.Replace:
				for i := op.I1; i < op.I2; i++ {
					out = append(out, "-"+a[i])
				}
				for j := op.J1; j < op.J2; j++ {
					out = append(out, "+"+b[j])
				}
			case matcher.Delete:
				for i := op.I1; i < op.I2; i++ {
					out = append(out, "-"+a[i])
				}
			case matcher.Insert:
				for j := op.J1; j < op.J2; j++ {
					out = append(out, "+"+b[j])
				}
			}
		}
	}

	return out
}
