package dom

import (
	"fmt"
	"strings"
)

// Tree renders the document as an indented tree for diagnostics:
//
//	root
//	├>paragraph
//	│ ├>"Hello "
//	│ └>"world" [bold]
//	└>paragraph
func (d *Document) Tree() string {
	var sb strings.Builder
	sb.WriteString("root\n")
	for i, b := range d.blocks {
		lastBlock := i == len(d.blocks)-1
		branch, indent := "├>", "│ "
		if lastBlock {
			branch, indent = "└>", "  "
		}
		sb.WriteString(branch + b.Kind.String() + "\n")
		for j, r := range b.Runs {
			leaf := "├>"
			if j == len(b.Runs)-1 {
				leaf = "└>"
			}
			sb.WriteString(indent + leaf + fmt.Sprintf("%q", r.Text))
			if r.Style.Formats != 0 || r.Style.Link != "" {
				sb.WriteString(" [" + r.Style.String() + "]")
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
