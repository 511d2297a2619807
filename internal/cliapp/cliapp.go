// Package cliapp implements the command-line front-end: matcher selection
// (--patience/--difflib/--klondike, defaulting by argv0 the way
// patiencediff.py's main() does), stdin/"-" handling, the binary-file
// heuristic, the git external-diff invocation shape, and optional ANSI
// rendering plus the --check-style diagnostic.
package cliapp

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klondiff/klondiff/internal/binaryheur"
	"github.com/klondiff/klondiff/internal/colors"
	"github.com/klondiff/klondiff/internal/gitdiff"
	"github.com/klondiff/klondiff/internal/hunks"
	"github.com/klondiff/klondiff/internal/inspect"
	"github.com/klondiff/klondiff/internal/matcher"
	"github.com/klondiff/klondiff/internal/review"
	"github.com/klondiff/klondiff/internal/scrub"
)

// MatcherKind names one of the three pluggable line-matching strategies.
type MatcherKind string

const (
	Patience  MatcherKind = "patience"
	Difflib   MatcherKind = "difflib"
	Klondike  MatcherKind = "klondike"
)

// DefaultMatcherFor mirrors patiencediff.py's main(): klondike when the
// program is invoked under a name starting with "klondi", patience
// otherwise.
func DefaultMatcherFor(argv0 string) MatcherKind {
	if strings.HasPrefix(filepath.Base(argv0), "klondi") {
		return Klondike
	}
	return Patience
}

// Options holds the parsed CLI configuration for one invocation.
type Options struct {
	Matcher    MatcherKind
	Context    int
	CheckStyle bool
	Color      bool
	Scrubbers  []scrub.Scrubber
	Args       []string
}

// presetList accumulates repeated --scrub-preset flag values and
// resolves them to scrub.Scrubber values, matching the multi-flag
// pattern flag.Value was designed for.
type presetList struct {
	scrubbers *[]scrub.Scrubber
}

func (p presetList) String() string { return "" }

func (p presetList) Set(name string) error {
	s, ok := scrub.Named(scrub.Preset(name))
	if !ok {
		return fmt.Errorf("unknown scrub preset %q", name)
	}
	*p.scrubbers = append(*p.scrubbers, s)
	return nil
}

// ParseFlags parses argv (excluding the program name) against the same
// three-boolean-flag contract patiencediff.py's main() uses, defaulting
// the matcher by argv0.
func ParseFlags(argv0 string, argv []string) (Options, error) {
	fs := flag.NewFlagSet(filepath.Base(argv0), flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [--patience | --difflib | --klondike] [--check-style] [--context N] [--scrub-preset NAME]... file_a file_b\nFiles can be \"-\" to read from stdin.\n", filepath.Base(argv0))
	}

	def := DefaultMatcherFor(argv0)
	patience := fs.Bool("patience", false, "use the patience diff algorithm")
	difflib := fs.Bool("difflib", false, "use the classical (difflib-style) diff algorithm")
	klondike := fs.Bool("klondike", false, "use the klondike diff algorithm")
	checkStyle := fs.Bool("check-style", false, "warn about whitespace-only hunks")
	context := fs.Int("context", 3, "number of context lines")
	noColor := fs.Bool("no-color", false, "disable ANSI color output")
	var scrubbers []scrub.Scrubber
	fs.Var(presetList{scrubbers: &scrubbers}, "scrub-preset", "normalize dynamic content (uuids, timestamps, emails, unix-timestamps, ips, dates, api-keys, jwts) before comparing; repeatable")

	if err := fs.Parse(argv); err != nil {
		return Options{}, err
	}

	m := def
	switch {
	case *klondike:
		m = Klondike
	case *difflib:
		m = Difflib
	case *patience:
		m = Patience
	}

	return Options{
		Matcher:    m,
		Context:    *context,
		CheckStyle: *checkStyle,
		Color:      !*noColor,
		Scrubbers:  scrubbers,
		Args:       fs.Args(),
	}, nil
}

// NewMatcher constructs the matcher.Matcher implementation named by kind.
func NewMatcher(kind MatcherKind, a, b []string) matcher.Matcher {
	switch kind {
	case Klondike:
		return matcher.NewKlondikeMatcher(a, b)
	case Difflib:
		return matcher.NewClassicalMatcher(nil, a, b)
	default:
		return matcher.NewPatienceMatcher(a, b)
	}
}

// openInput opens path for reading, treating "-" as stdin.
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// readLines splits raw content into lines, each retaining its trailing
// newline (the last line may lack one), matching difflib's own notion
// of a line.
func readLines(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var lines []string
	for len(data) > 0 {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			lines = append(lines, string(data))
			break
		}
		lines = append(lines, string(data[:idx+1]))
		data = data[idx+1:]
	}
	return lines, nil
}

// Result is the full outcome of a Run, available to callers (the TUI)
// that want the structured data rather than pre-rendered text.
type Result struct {
	A, B       []string
	Hunks      []hunks.Hunk
	SpuriousWS int
	Binary     bool
	BinarySame bool
}

// Diff runs the configured matcher over a and b and groups the resulting
// opcodes into hunks. When opts.Scrubbers is non-empty, both inputs are
// normalized first so that differences confined to scrubbed substrings
// (UUIDs, timestamps, ...) disappear.
func Diff(opts Options, a, b []string) (Result, error) {
	if len(opts.Scrubbers) > 0 {
		a = scrub.Apply(opts.Scrubbers, a)
		b = scrub.Apply(opts.Scrubbers, b)
	}
	m := NewMatcher(opts.Matcher, a, b)
	ops, err := m.Opcodes()
	if err != nil {
		return Result{}, err
	}
	// hunks.Group returns one context-only hunk for an all-equal opcode
	// stream; keep only hunks that contain a change.
	var grouped []hunks.Hunk
	for _, h := range hunks.Group(ops, opts.Context) {
		for _, op := range h.Ops {
			if op.Tag != matcher.Equal {
				grouped = append(grouped, h)
				break
			}
		}
	}
	res := Result{A: a, B: b, Hunks: grouped}
	if opts.CheckStyle {
		res.SpuriousWS = colors.DetectSpuriousWhitespace(a, b, grouped)
	}
	return res, nil
}

// Run executes the full CLI contract: binary-file sniffing, git
// external-diff header synthesis, diffing, and rendering. w receives the
// rendered transcript; it returns the process exit code.
func Run(argv0 string, argv []string, w io.Writer) int {
	opts, err := ParseFlags(argv0, argv)
	if err != nil {
		return 2
	}

	if gitArgs, ok := gitdiff.Parse(opts.Args); ok {
		for _, line := range gitdiff.Header(gitArgs) {
			fmt.Fprintln(w, line)
		}
		opts.Args = []string{gitArgs.ABlob, gitArgs.BBlob}
	}

	if len(opts.Args) != 2 {
		fmt.Fprintln(os.Stderr, "you must supply 2 filenames to diff")
		return 2
	}

	fa, err := openInput(opts.Args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}
	defer fa.Close()
	fb, err := openInput(opts.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}
	defer fb.Close()

	bufA := bufio.NewReader(fa)
	bufB := bufio.NewReader(fb)
	sniffA, _ := bufA.Peek(512)
	sniffB, _ := bufB.Peek(512)
	classA, classB := binaryheur.ClassifyPair(sniffA, sniffB)

	if classA == binaryheur.Binary && classB == binaryheur.Binary {
		result, err := binaryheur.CompareBinary(bufA, bufB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 2
		}
		if result == binaryheur.BinarySame {
			return 0
		}
		fmt.Fprintf(w, "Binary files %s and %s differ\n", opts.Args[0], opts.Args[1])
		return 2
	}

	linesA, err := readLines(bufA)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}
	linesB, err := readLines(bufB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}

	res, err := Diff(opts, linesA, linesB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}

	emitted := hunks.Emit(linesA, linesB, res.Hunks, hunks.EmitOptions{
		FromFile: opts.Args[0],
		ToFile:   opts.Args[1],
		Context:  opts.Context,
	})

	var renderer *colors.Renderer
	if opts.Color {
		p, perr := colors.LoadPalette()
		if perr == nil {
			r := colors.NewRenderer(p)
			renderer = &r
		}
	}
	for _, line := range emitted {
		line = strings.TrimSuffix(line, "\n")
		if renderer != nil {
			line = renderLine(*renderer, line)
		}
		fmt.Fprintln(w, line)
	}

	if opts.CheckStyle && res.SpuriousWS > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d hunk(s) contain only whitespace changes\n", res.SpuriousWS)
	}

	if len(res.Hunks) == 0 {
		return 0
	}
	return 1
}

// RunInspect implements `klondiff inspect file_a file_b`: it dumps the
// matching blocks and opcodes of every matcher strategy, via
// internal/inspect, the way shutter.go dumps a snapshot value for
// debugging. It never synthesizes a unified diff.
func RunInspect(argv0 string, argv []string, w io.Writer) int {
	opts, err := ParseFlags(argv0, argv)
	if err != nil {
		return 2
	}
	if len(opts.Args) != 2 {
		fmt.Fprintln(os.Stderr, "you must supply 2 filenames to inspect")
		return 2
	}

	fa, err := openInput(opts.Args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}
	defer fa.Close()
	fb, err := openInput(opts.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}
	defer fb.Close()

	linesA, err := readLines(fa)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}
	linesB, err := readLines(fb)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}

	for _, kind := range []MatcherKind{Patience, Difflib, Klondike} {
		report, err := inspect.Inspect(string(kind), NewMatcher(kind, linesA, linesB))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 2
		}
		fmt.Fprintln(w, inspect.Dump(report))
	}
	return 0
}

// RunReview implements `klondiff review file_a file_b`: an interactive
// hunk-by-hunk accept/reject/skip walk, printing only the unified diff
// of the hunks the reviewer accepted or skipped.
func RunReview(argv0 string, argv []string, in io.Reader, w io.Writer) int {
	opts, err := ParseFlags(argv0, argv)
	if err != nil {
		return 2
	}
	if len(opts.Args) != 2 {
		fmt.Fprintln(os.Stderr, "you must supply 2 filenames to review")
		return 2
	}

	fa, err := openInput(opts.Args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}
	defer fa.Close()
	fb, err := openInput(opts.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}
	defer fb.Close()

	linesA, err := readLines(fa)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}
	linesB, err := readLines(fb)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}

	res, err := Diff(opts, linesA, linesB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}

	var renderer *colors.Renderer
	if opts.Color {
		p, perr := colors.LoadPalette()
		if perr == nil {
			r := colors.NewRenderer(p)
			renderer = &r
		}
	}

	accepted, err := review.Run(w, bufio.NewReader(in), opts.Args[0], opts.Args[1], linesA, linesB, res.Hunks, renderer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}

	emitted := hunks.Emit(linesA, linesB, accepted, hunks.EmitOptions{
		FromFile: opts.Args[0],
		ToFile:   opts.Args[1],
		Context:  opts.Context,
	})
	fmt.Fprintln(w, "\nAccepted diff:")
	for _, line := range emitted {
		fmt.Fprintln(w, strings.TrimSuffix(line, "\n"))
	}

	if len(accepted) == 0 {
		return 0
	}
	return 1
}

// renderLine colors a rendered unified-diff line by its leading marker,
// matching colordiff.py's LineParser categories. colordiff.py's
// _writeline special-cases lines starting with "---"/"+++" as metaline
// before falling through to the generic "-"/"+" cases, since a file
// header also starts with one of those characters. It does not attempt
// intra-line highlighting here; that is exposed separately through
// matcher.Highlight for callers (like the TUI) that want it.
func renderLine(r colors.Renderer, line string) string {
	switch {
	case strings.HasPrefix(line, "@"):
		return r.ColorizeLine(colors.CategoryDiffstuff, line)
	case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
		return r.ColorizeLine(colors.CategoryMetaline, line)
	case strings.HasPrefix(line, "+"):
		return r.ColorizeLine(colors.CategoryNewText, line)
	case strings.HasPrefix(line, "-"):
		return r.ColorizeLine(colors.CategoryOldText, line)
	default:
		return line
	}
}
