package dom

import (
	"strings"

	"golang.org/x/net/html"
)

var formatTags = map[Format]string{
	Bold:          "strong",
	Italic:        "em",
	StrikeThrough: "del",
	Underline:     "u",
	InlineCode:    "code",
}

// HTML renders the document. A document made of a single paragraph
// renders as bare inline markup; otherwise every block is wrapped in its
// element and consecutive list items share one list element.
func (d *Document) HTML() string {
	var sb strings.Builder
	if len(d.blocks) == 1 && d.blocks[0].Kind == Paragraph {
		writeRuns(&sb, d.blocks[0].Runs)
		return sb.String()
	}

	openList := ""
	for _, b := range d.blocks {
		list := listTag(b.Kind)
		if list != openList {
			if openList != "" {
				sb.WriteString("</" + openList + ">")
			}
			if list != "" {
				sb.WriteString("<" + list + ">")
			}
			openList = list
		}

		switch b.Kind {
		case Quote:
			sb.WriteString("<blockquote>")
			writeRuns(&sb, b.Runs)
			sb.WriteString("</blockquote>")
		case CodeBlock:
			sb.WriteString("<pre><code>")
			writeRuns(&sb, b.Runs)
			sb.WriteString("</code></pre>")
		case OrderedListItem, UnorderedListItem:
			sb.WriteString("<li>")
			writeRuns(&sb, b.Runs)
			sb.WriteString("</li>")
		default:
			sb.WriteString("<p>")
			writeRuns(&sb, b.Runs)
			sb.WriteString("</p>")
		}
	}
	if openList != "" {
		sb.WriteString("</" + openList + ">")
	}
	return sb.String()
}

func listTag(k BlockKind) string {
	switch k {
	case OrderedListItem:
		return "ol"
	case UnorderedListItem:
		return "ul"
	default:
		return ""
	}
}

func writeRuns(sb *strings.Builder, runs []Run) {
	for _, r := range runs {
		var closing []string
		if r.Style.Link != "" {
			sb.WriteString(`<a href="` + html.EscapeString(r.Style.Link) + `">`)
			closing = append(closing, "</a>")
		}
		for _, f := range r.Style.Formats.List() {
			tag := formatTags[f]
			sb.WriteString("<" + tag + ">")
			closing = append(closing, "</"+tag+">")
		}
		sb.WriteString(html.EscapeString(r.Text))
		for i := len(closing) - 1; i >= 0; i-- {
			sb.WriteString(closing[i])
		}
	}
}
