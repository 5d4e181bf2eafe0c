package main

import (
	"os"

	"github.com/tartampluch/circle-squared/internal/cli"
	"github.com/tartampluch/circle-squared/internal/ui"
)

// main delegates to cli.Execute so that deferred cleanup (log file, store)
// runs before the process terminates: os.Exit does not run defers.
func main() {
	os.Exit(cli.Execute(ui.Launch))
}
