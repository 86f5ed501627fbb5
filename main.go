// The main package for the tidearchiver executable.
package main

import (
	"github.com/coastalkit/tidearchiver/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
