// Command chainhash loads a word list into a separately chained hash table
// and reports how long random searches take and how many probes they need.
package main

import (
	"os"

	"github.com/spf13/afero"
)

func main() {
	if err := newCommand(afero.NewOsFs()).Execute(); err != nil {
		os.Exit(1)
	}
}
