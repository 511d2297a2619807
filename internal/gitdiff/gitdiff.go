// Package gitdiff implements git's GIT_EXTERNAL_DIFF invocation
// contract: git invokes the external diff helper with 7 positional
// arguments for an ordinary change, or 9 for a detected rename, and
// expects a synthesized "diff --git" header ahead of the actual diff.
package gitdiff

import "fmt"

// Args is a parsed git external-diff invocation. Path/OldPath/NewPath
// hold the repository-relative name(s); ABlob/BBlob are the paths to the
// temporary blob files git wrote out for diffing; AHex/BHex are full
// blob object IDs; AMode/BMode are octal file mode strings.
type Args struct {
	Renamed          bool
	Path             string // set when !Renamed
	OldPath, NewPath string // set when Renamed

	ABlob, BBlob string
	AHex, BHex   string
	AMode, BMode string
}

// zeroHex is the all-zero object ID git uses for a side that doesn't
// exist (a new or deleted file).
const zeroHex = "0000000000000000000000000000000000000000"

// Parse recognizes the 7-argument (ordinary) and 9-argument (rename)
// forms of the git external-diff contract. It returns false if argv does
// not match either shape.
func Parse(argv []string) (Args, bool) {
	switch len(argv) {
	case 7:
		return Args{
			Path:  argv[0],
			ABlob: argv[1], AHex: argv[2], AMode: argv[3],
			BBlob: argv[4], BHex: argv[5], BMode: argv[6],
		}, true
	case 9:
		return Args{
			Renamed: true,
			OldPath: argv[0], NewPath: argv[1],
			ABlob: argv[2], AHex: argv[3], AMode: argv[4],
			BBlob: argv[5], BHex: argv[6], BMode: argv[7],
			// argv[8] is git's similarity-index metadata; it is not
			// kept, and Header builds the rename lines from the paths.
		}, true
	default:
		return Args{}, false
	}
}

// Header synthesizes the "diff --git" header line(s) git expects ahead
// of the actual diff body: a rename gets `diff --git a/old
// b/new` plus `rename from` / `rename to` lines built from the two
// paths (git's ninth metadata argument is not included); an ordinary
// change gets `diff --git a/path b/path`, then `new file mode` /
// `deleted file mode` when one side is absent, then an `index` line in
// every case.
func Header(a Args) []string {
	if a.Renamed {
		return []string{
			fmt.Sprintf("diff --git a/%s b/%s", a.OldPath, a.NewPath),
			fmt.Sprintf("rename from %s", a.OldPath),
			fmt.Sprintf("rename to %s", a.NewPath),
		}
	}

	lines := []string{fmt.Sprintf("diff --git a/%s b/%s", a.Path, a.Path)}
	switch {
	case a.AHex == zeroHex:
		lines = append(lines, fmt.Sprintf("new file mode %s", a.BMode))
	case a.BHex == zeroHex:
		lines = append(lines, fmt.Sprintf("deleted file mode %s", a.AMode))
	}
	lines = append(lines, fmt.Sprintf("index %s..%s %s", short(a.AHex), short(a.BHex), a.AMode))
	return lines
}

func short(hex string) string {
	if len(hex) > 7 {
		return hex[:7]
	}
	return hex
}
