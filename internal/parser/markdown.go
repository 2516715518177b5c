package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser normalizes markdown using goldmark: every heading style
// (ATX or setext) comes out as a `#` line and block content as blank-line
// separated paragraphs, the shape the hierarchical chunker expects.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, _ string) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var out []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := string(node.Text(src))
			out = append(out, strings.Repeat("#", node.Level)+" "+title)
		default:
			if t := extractText(n, src); t != "" {
				out = append(out, t)
			}
		}
	}

	return strings.TrimSpace(strings.Join(out, "\n\n")), nil
}

// extractText gets the text content of a goldmark AST node. Leaf blocks
// carry their raw source lines; container blocks recurse.
func extractText(n ast.Node, src []byte) string {
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		var buf bytes.Buffer
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}

	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := extractText(c, src); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
