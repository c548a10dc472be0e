package render

import (
	"fmt"
	"io"
)

// CommandRenderer prints the mevlog CLI equivalent of a query
type CommandRenderer struct {
	out      io.Writer
	baseURL  string
	printURL bool
}

// NewCommandRenderer creates a new command renderer. With printURL set the
// shareable URL is printed below the command.
func NewCommandRenderer(out io.Writer, baseURL string, printURL bool) *CommandRenderer {
	return &CommandRenderer{out: out, baseURL: baseURL, printURL: printURL}
}

// Render prints the command and, if enabled, the URL
func (r *CommandRenderer) Render(command, url string) error {
	if command != "" {
		fmt.Fprintf(r.out, "CLI: %s\n", command)
	}
	if r.printURL && url != "" {
		fmt.Fprintf(r.out, "URL: %s%s\n", r.baseURL, url)
	}
	return nil
}
