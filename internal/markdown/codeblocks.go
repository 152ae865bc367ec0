package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// CodeBlock is a fenced or indented code block found in markdown source.
type CodeBlock struct {
	Language string // info-string language; empty for indented blocks
	Text     string // raw block content without fences
}

var mdParser = goldmark.New().Parser()

// CodeBlocks returns the code blocks of src in document order.
func CodeBlocks(src string) []CodeBlock {
	source := []byte(src)
	doc := mdParser.Parse(text.NewReader(source))

	var blocks []CodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			blocks = append(blocks, CodeBlock{
				Language: string(node.Language(source)),
				Text:     linesText(node.Lines(), source),
			})
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			blocks = append(blocks, CodeBlock{
				Text: linesText(node.Lines(), source),
			})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return blocks
}

func linesText(lines *text.Segments, source []byte) string {
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimRight(b.String(), "\n")
}
