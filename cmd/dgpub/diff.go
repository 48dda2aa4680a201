package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/dgpub/pkg/core"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// writeDiff prints a line-oriented diff between the published content and
// the content a pass would write.
func writeDiff(w io.Writer, res core.Result) {
	fmt.Fprintf(w, "--- %s\n+++ %s (%s)\n", res.Destination, res.Destination, res.Filename)

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(strings.TrimSpace(res.Previous), res.Content)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprint(w, prefix, strings.TrimSuffix(line, "\n"), "\n")
		}
	}
}
