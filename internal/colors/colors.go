// Package colors implements the colordiffrc-configurable ANSI rendering
// layer ported from colordiff.py's DiffWriter: reading /etc/colordiffrc
// and ~/.colordiffrc, mapping matcher.Style values onto terminal colors,
// and the style-check diagnostics supplemented from the same writer.
package colors

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/muesli/termenv"
	"gopkg.in/ini.v1"

	"github.com/klondiff/klondiff/internal/hunks"
	"github.com/klondiff/klondiff/internal/matcher"
)

// Palette holds one color name per category, matching colordiff.py's
// self.colors dict. A nil/empty value disables the category, mirroring
// "none"/"normal"/"off" in a colordiffrc file.
type Palette struct {
	Metaline      string
	Plain         string
	NewText       string
	OldText       string
	NewSame       string
	OldSame       string
	Diffstuff     string
	TrailingSpace string
	LeadingTabs   string
	LongLine      string
}

// DefaultPalette is the built-in palette applied before any colordiffrc
// override, taken verbatim from colordiff.py's DEFAULT_STYLES table.
func DefaultPalette() Palette {
	return Palette{
		Metaline:      "darkyellow",
		Plain:         "darkwhite",
		NewText:       "darkgreen",
		OldText:       "darkred",
		NewSame:       "darkyellow",
		OldSame:       "darkyellow",
		Diffstuff:     "darkcyan",
		TrailingSpace: "red",
		LeadingTabs:   "magenta",
		LongLine:      "white",
	}
}

// LoadPalette starts from DefaultPalette and applies /etc/colordiffrc then
// ~/.colordiffrc, later files winning key-by-key. A missing
// file is not an error (colordiff.py's _read_colordiffrc treats IOError
// the same way); a malformed one is surfaced so the CLI can report it.
func LoadPalette() (Palette, error) {
	p := DefaultPalette()
	if err := applyColordiffrc(&p, "/etc/colordiffrc"); err != nil {
		return p, err
	}
	home, err := os.UserHomeDir()
	if err == nil {
		if err := applyColordiffrc(&p, filepath.Join(home, ".colordiffrc")); err != nil {
			return p, err
		}
	}
	return p, nil
}

func applyColordiffrc(p *Palette, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	cfg, err := ini.LoadSources(ini.LoadOptions{AllowBooleanKeys: true}, path)
	if err != nil {
		return err
	}
	section := cfg.Section("")
	for _, key := range section.Keys() {
		val := normalizeColorValue(key.String())
		set(p, strings.ToLower(key.Name()), val)
	}
	return nil
}

// normalizeColorValue maps colordiffrc's disabling sentinels to the
// empty string, which Render treats as "no color applied".
func normalizeColorValue(val string) string {
	val = strings.TrimSpace(val)
	switch val {
	case "none", "normal", "off":
		return ""
	}
	return val
}

func set(p *Palette, key, val string) {
	switch key {
	case "metaline":
		p.Metaline = val
	case "plain":
		p.Plain = val
	case "newtext":
		p.NewText = val
	case "oldtext":
		p.OldText = val
	case "newsame":
		p.NewSame = val
	case "oldsame":
		p.OldSame = val
	case "diffstuff":
		p.Diffstuff = val
	case "trailingspace":
		p.TrailingSpace = val
	case "leadingtabs":
		p.LeadingTabs = val
	case "longline":
		p.LongLine = val
	}
}

func (p Palette) colorFor(style matcher.Style) string {
	switch style {
	case matcher.StyleMarkerOld, matcher.StyleOldChange:
		return p.OldText
	case matcher.StyleMarkerNew, matcher.StyleNewChange:
		return p.NewText
	case matcher.StyleOldSame:
		return p.OldSame
	case matcher.StyleNewSame:
		return p.NewSame
	case matcher.StyleTrailingSpace:
		return p.TrailingSpace
	default:
		return p.Plain
	}
}

// Renderer applies a Palette to matcher.Segment values using a detected
// terminal color profile, using termenv in place of a hand-rolled
// NO_COLOR check for a real capability probe.
type Renderer struct {
	palette Palette
	profile termenv.Profile
}

func NewRenderer(p Palette) Renderer {
	return Renderer{palette: p, profile: termenv.ColorProfile()}
}

// RenderSegments concatenates a Segment slice into one ANSI-colored
// string, honoring the named-color lookup table and the "color disabled"
// empty-string convention.
func (r Renderer) RenderSegments(segs []matcher.Segment) string {
	var b strings.Builder
	for _, seg := range segs {
		b.WriteString(r.colorize(seg.Text, r.palette.colorFor(seg.Style)))
	}
	return b.String()
}

// LineCategory names a whole-line category from colordiff.py's
// LineParser, used for lines that don't decompose into
// matcher.Segment values: "@@" hunk headers (diffstuff), plain context
// lines, and unparsed "+"/"-" lines rendered without intra-line detail.
type LineCategory int

const (
	CategoryPlain LineCategory = iota
	CategoryMetaline
	CategoryDiffstuff
	CategoryNewText
	CategoryOldText
)

// ColorizeLine applies the palette color for category to a whole line,
// for callers that render unified-diff lines without per-segment detail.
func (r Renderer) ColorizeLine(category LineCategory, line string) string {
	switch category {
	case CategoryMetaline:
		return r.colorize(line, r.palette.Metaline)
	case CategoryDiffstuff:
		return r.colorize(line, r.palette.Diffstuff)
	case CategoryNewText:
		return r.colorize(line, r.palette.NewText)
	case CategoryOldText:
		return r.colorize(line, r.palette.OldText)
	default:
		return r.colorize(line, r.palette.Plain)
	}
}

// colorize applies name (e.g. "darkred", "white") to s using the detected
// profile, or returns s unchanged when name is empty (category disabled)
// or unrecognized: colordiff.py ignores unknown color names rather than
// erroring.
func (r Renderer) colorize(s, name string) string {
	if s == "" || name == "" {
		return s
	}
	ansi, ok := namedColor[name]
	if !ok {
		return s
	}
	return termenv.String(s).Foreground(r.profile.Color(ansi)).String()
}

// namedColor maps colordiffrc color names (dark + bright variants of the
// 8 standard ANSI colors) to termenv ANSI color indices.
var namedColor = map[string]string{
	"black": "0", "darkred": "1", "darkgreen": "2", "darkyellow": "3",
	"darkblue": "4", "darkmagenta": "5", "darkcyan": "6", "darkwhite": "7",
	"darkgray": "8", "darkgrey": "8",
	"red": "9", "green": "10", "yellow": "11", "blue": "12",
	"magenta": "13", "cyan": "14", "white": "15",
}

// DetectSpuriousWhitespace implements D.4: count hunks whose only changes
// are whitespace-only replace opcodes (every deleted/inserted line pair is
// equal once trailing whitespace is stripped), grounded in colordiff.py's
// spurious_whitespace counter inside _analyse_old_new.
func DetectSpuriousWhitespace(a, b []string, hunkList []hunks.Hunk) int {
	count := 0
	for _, h := range hunkList {
		if hunkIsSpuriousWhitespace(a, b, h) {
			count++
		}
	}
	return count
}

func hunkIsSpuriousWhitespace(a, b []string, h hunks.Hunk) bool {
	sawReplace := false
	for _, op := range h.Ops {
		switch op.Tag {
		case matcher.Equal:
			continue
		case matcher.Replace:
			if op.I2-op.I1 != op.J2-op.J1 {
				return false
			}
			for k := 0; k < op.I2-op.I1; k++ {
				if strings.TrimRight(a[op.I1+k], " \t\r\n") != strings.TrimRight(b[op.J1+k], " \t\r\n") {
					return false
				}
			}
			sawReplace = true
		default:
			return false
		}
	}
	return sawReplace
}
