// Package review implements the interactive hunk-by-hunk acceptance
// walk, adapted from shutter's accept/reject/skip snapshot review loop
// for reviewing new snapshots one at a time.
package review

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klondiff/klondiff/internal/colors"
	"github.com/klondiff/klondiff/internal/hunks"
	"github.com/klondiff/klondiff/internal/matcher"
)

// Choice is one answer to a hunk prompt.
type Choice int

const (
	Accept Choice = iota
	Reject
	Skip
	AcceptAll
	RejectAll
	SkipAll
	Quit
)

// Run walks hunkList one hunk at a time, printing each as a box via
// renderHunkBox and asking in for a Choice. It returns the subset of
// hunks the reviewer accepted or skipped, in original order.
func Run(out io.Writer, in *bufio.Reader, fileA, fileB string, linesA, linesB []string, hunkList []hunks.Hunk, renderer *colors.Renderer) ([]hunks.Hunk, error) {
	if len(hunkList) == 0 {
		fmt.Fprintln(out, "No hunks to review")
		return nil, nil
	}

	fmt.Fprintf(out, "%s vs %s -- %d hunk(s) to review\n\n", fileA, fileB, len(hunkList))

	var accepted []hunks.Hunk
	for i, h := range hunkList {
		fmt.Fprintf(out, "\n[%d/%d]\n", i+1, len(hunkList))
		fmt.Fprintln(out, renderHunkBox(linesA, linesB, h, renderer))

		choice, err := askChoice(in, out)
		if err != nil {
			return accepted, err
		}

		switch choice {
		case Accept, Skip:
			accepted = append(accepted, h)
		case Reject:
			// dropped
		case AcceptAll, SkipAll:
			accepted = append(accepted, hunkList[i:]...)
			return accepted, nil
		case RejectAll, Quit:
			return accepted, nil
		}
	}

	return accepted, nil
}

func askChoice(in *bufio.Reader, out io.Writer) (Choice, error) {
	fmt.Fprint(out, "\nOptions: [a]ccept [r]eject [s]kip [A]ccept All [R]eject All [S]kip All [q]uit: ")

	input, err := in.ReadString('\n')
	if err != nil {
		return Quit, err
	}
	input = strings.TrimSpace(input)

	switch input {
	case "a", "accept":
		return Accept, nil
	case "r", "reject":
		return Reject, nil
	case "s", "skip":
		return Skip, nil
	case "A":
		return AcceptAll, nil
	case "R":
		return RejectAll, nil
	case "S":
		return SkipAll, nil
	case "q", "quit":
		return Quit, nil
	default:
		fmt.Fprintln(out, "Invalid option, please try again")
		return askChoice(in, out)
	}
}

// renderHunkBox draws one hunk between rule lines, a generalization of
// shutter's NewSnapshotBox/DiffSnapshotBox to a matcher.Opcode stream
// instead of a whole-file snapshot comparison.
func renderHunkBox(a, b []string, h hunks.Hunk, renderer *colors.Renderer) string {
	width := 72

	var sb strings.Builder
	sb.WriteString(strings.Repeat("-", width) + "\n")

	first, last := h.Ops[0], h.Ops[len(h.Ops)-1]
	header := "@@ -" + strconv.Itoa(first.I1+1) + "," + strconv.Itoa(last.I2-first.I1) +
		" +" + strconv.Itoa(first.J1+1) + "," + strconv.Itoa(last.J2-first.J1) + " @@"
	sb.WriteString("  " + colorizeLine(renderer, colors.CategoryMetaline, header) + "\n")
	sb.WriteString(strings.Repeat("-", width) + "\n")

	for _, op := range h.Ops {
		switch op.Tag {
		case matcher.Equal:
			for i := op.I1; i < op.I2; i++ {
				sb.WriteString("  " + strings.TrimRight(a[i], "\n") + "\n")
			}
		case matcher.Delete, matcher.Replace:
			for i := op.I1; i < op.I2; i++ {
				sb.WriteString("  " + colorizeLine(renderer, colors.CategoryOldText, "- "+strings.TrimRight(a[i], "\n")) + "\n")
			}
			if op.Tag == matcher.Replace {
				for j := op.J1; j < op.J2; j++ {
					sb.WriteString("  " + colorizeLine(renderer, colors.CategoryNewText, "+ "+strings.TrimRight(b[j], "\n")) + "\n")
				}
			}
		case matcher.Insert:
			for j := op.J1; j < op.J2; j++ {
				sb.WriteString("  " + colorizeLine(renderer, colors.CategoryNewText, "+ "+strings.TrimRight(b[j], "\n")) + "\n")
			}
		}
	}

	sb.WriteString(strings.Repeat("-", width))
	return sb.String()
}

func colorizeLine(r *colors.Renderer, category colors.LineCategory, line string) string {
	if r == nil {
		return line
	}
	return r.ColorizeLine(category, line)
}
