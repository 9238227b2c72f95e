// microscope-lint checks for per-item session, archive and recall calls
// that should be batched.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/ersonp/microscope-solo/tools/microscope-lint/analyzers"
)

func main() {
	multichecker.Main(analyzers.All()...)
}
