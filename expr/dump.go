package expr

import (
	"io"

	"github.com/davecgh/go-spew/spew"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

// Dump returns a multi-line dump of the tree showing every node's Go type
// and fields.
func Dump(e Expression) string {
	return dumpConfig.Sdump(e)
}

// Fdump writes the Dump of e to w.
func Fdump(w io.Writer, e Expression) {
	dumpConfig.Fdump(w, e)
}
