// Command soundify serves the music recommendation API and offers a few
// operator tools for rendering prompts and inspecting the audit log.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
