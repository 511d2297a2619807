// Package inspect pretty-prints matcher internals for the "klondiff
// inspect" debug subcommand, the way shutter.go and freeze.go use
// kortschak/utter to dump snapshot values for debugging.
package inspect

import (
	"github.com/kortschak/utter"

	"github.com/klondiff/klondiff/internal/matcher"
)

func init() {
	utter.Config.ElideType = true
	utter.Config.SortKeys = true
}

// Report is the dumped shape of one matcher run: its block list and
// opcode stream side by side, for `klondiff inspect`.
type Report struct {
	Matcher string
	Blocks  []matcher.MatchBlock
	Opcodes []matcher.Opcode
}

// Dump renders v (typically a Report) as a Go-syntax literal via
// kortschak/utter, matching shutter.go's dumpValue helper.
func Dump(v any) string {
	return utter.Sdump(v)
}

// Inspect runs m and builds a Report, or returns the first error from
// computing its blocks/opcodes.
func Inspect(name string, m matcher.Matcher) (Report, error) {
	blocks, err := m.MatchingBlocks()
	if err != nil {
		return Report{}, err
	}
	ops, err := m.Opcodes()
	if err != nil {
		return Report{}, err
	}
	return Report{Matcher: name, Blocks: blocks, Opcodes: ops}, nil
}
