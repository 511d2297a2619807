package matcher

import "strings"

// Style names the semantic role of a rendered segment; the rendering
// layer (internal/colors) maps these onto ANSI escapes or plain text.
type Style int

const (
	StyleMarkerOld Style = iota
	StyleMarkerNew
	StyleOldSame
	StyleOldChange
	StyleNewSame
	StyleNewChange
	StyleTrailingSpace
)

// Segment is one styled run of text within a highlighted line.
type Segment struct {
	Style Style
	Text  string
}

// HighlightResult is the output of IntralineHighlighter: two styled
// renderings of a deleted/inserted line pair, or Highlighted=false when
// the pair didn't share enough to be worth marking up.
type HighlightResult struct {
	Old, New    []Segment
	Highlighted bool
}

// Highlight runs the classical matcher character-by-character over a
// deleted line and an inserted line, each still carrying its leading
// "-"/"+" marker, and produces styled renderings marking same/changed
// substrings when substantial substring overlap exists. Mirrors
// colordiff.py's intra-line highlighting of adjacent -/+ pairs.
func Highlight(oldLine, newLine string) HighlightResult {
	oldBody := strings.TrimPrefix(oldLine, "-")
	newBody := strings.TrimPrefix(newLine, "+")

	oldChars := splitChars(oldBody)
	newChars := splitChars(newBody)
	blocks := classicalBlocks(oldChars, newChars)

	longest := 0
	for _, b := range blocks {
		if b.N > longest {
			longest = b.N
		}
	}
	if longest < 5 {
		return HighlightResult{Highlighted: false}
	}

	retained := make([]MatchBlock, 0, len(blocks))
	for _, b := range blocks {
		if b.N == 0 || b.N >= 3 {
			retained = append(retained, b)
		}
	}

	var oldSeg, newSeg []Segment
	oldSeg = append(oldSeg, Segment{Style: StyleMarkerOld, Text: "-"})
	newSeg = append(newSeg, Segment{Style: StyleMarkerNew, Text: "+"})

	if len(retained) > 0 {
		oldSeg = append(oldSeg, styledSpan(oldBody, 0, retained[0].I, StyleOldChange)...)
		newSeg = append(newSeg, styledSpanNew(newBody, 0, retained[0].J, StyleNewChange)...)
	}
	for n, b := range retained {
		if n == len(retained)-1 {
			break
		}
		oldSeg = append(oldSeg, styledSpan(oldBody, b.I, b.I+b.N, StyleOldSame)...)
		newSeg = append(newSeg, styledSpanNew(newBody, b.J, b.J+b.N, StyleNewSame)...)

		next := retained[n+1]
		oldSeg = append(oldSeg, styledSpan(oldBody, b.I+b.N, next.I, StyleOldChange)...)
		newSeg = append(newSeg, styledSpanNew(newBody, b.J+b.N, next.J, StyleNewChange)...)
	}

	return HighlightResult{Old: oldSeg, New: newSeg, Highlighted: true}
}

func styledSpan(s string, from, to int, style Style) []Segment {
	if from >= to {
		return nil
	}
	runes := []rune(s)
	if to > len(runes) {
		to = len(runes)
	}
	if from >= to {
		return nil
	}
	return []Segment{{Style: style, Text: string(runes[from:to])}}
}

// styledSpanNew additionally splits off a trailing-whitespace tail on
// "new text" spans, styling the tail as StyleTrailingSpace when it is
// the final span reaching the end of the line. Trailing whitespace on
// an inserted line is easy to miss by eye, so it gets its own style.
func styledSpanNew(s string, from, to int, style Style) []Segment {
	if from >= to {
		return nil
	}
	runes := []rune(s)
	if to > len(runes) {
		to = len(runes)
	}
	if from >= to {
		return nil
	}
	span := string(runes[from:to])
	if to == len(runes) {
		if prefix, tail, ok := trailingWhitespace(span); ok {
			var out []Segment
			if prefix != "" {
				out = append(out, Segment{Style: style, Text: prefix})
			}
			if tail != "" {
				out = append(out, Segment{Style: StyleTrailingSpace, Text: tail})
			}
			return out
		}
	}
	return []Segment{{Style: style, Text: span}}
}

// trailingWhitespace implements the regex `^(.*?)([\t ]*)(\r?\n)$`:
// split a line ending in a newline into its body and its trailing run
// of spaces/tabs just before that newline.
func trailingWhitespace(s string) (prefix, tail string, ok bool) {
	body := s
	var newline string
	switch {
	case strings.HasSuffix(body, "\r\n"):
		newline = "\r\n"
		body = body[:len(body)-2]
	case strings.HasSuffix(body, "\n"):
		newline = "\n"
		body = body[:len(body)-1]
	default:
		return "", "", false
	}

	end := len(body)
	for end > 0 && (body[end-1] == ' ' || body[end-1] == '\t') {
		end--
	}
	if end == len(body) {
		return "", "", false
	}
	return body[:end], body[end:] + newline, true
}
