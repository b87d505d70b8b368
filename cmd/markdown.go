package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders a markdown document to the terminal.
// When rendering fails (e.g. no usable terminal), the raw markdown is
// printed instead.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprintf(os.Stderr, "markdown rendering failed: %v\n", err)
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
