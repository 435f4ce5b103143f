package blocks

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Linkify))

// RenderHTML renders a preview of b. Paragraph text is treated as markdown;
// images render only when their URL is previewable. The output is sanitised.
func RenderHTML(b Block) (string, error) {
	var buf bytes.Buffer
	switch {
	case b.Paragraph != nil:
		if title := strings.TrimSpace(b.Paragraph.Title); title != "" {
			fmt.Fprintf(&buf, "<h3>%s</h3>\n", html.EscapeString(title))
		}
		if err := markdown.Convert([]byte(b.Paragraph.Text), &buf); err != nil {
			return "", fmt.Errorf("blocks: render paragraph: %w", err)
		}
	case b.Image != nil:
		if !IsPreviewableImage(b.Image.URL) {
			return "", nil
		}
		fmt.Fprintf(&buf, `<figure><img src="%s" alt="%s">`, html.EscapeString(b.Image.URL), html.EscapeString(b.Image.Alt))
		if caption := strings.TrimSpace(b.Image.Caption); caption != "" {
			fmt.Fprintf(&buf, "<figcaption>%s</figcaption>", html.EscapeString(caption))
		}
		buf.WriteString("</figure>")
	default:
		return "", unknownKind(b.Type)
	}
	return previewSanitizer().Sanitize(buf.String()), nil
}

// FromMarkdown splits a markdown document into blocks. A heading titles the
// paragraph that follows it; a paragraph holding only an image becomes an
// image block whose caption is the image title.
func FromMarkdown(source []byte) (Sequence, error) {
	doc := markdown.Parser().Parse(text.NewReader(source))

	var (
		seq          Sequence
		pendingTitle string
	)
	flushTitle := func() {
		if pendingTitle != "" {
			seq = append(seq, NewParagraph(pendingTitle, ""))
			pendingTitle = ""
		}
	}

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			flushTitle()
			pendingTitle = strings.TrimSpace(nodeText(n, source))
		case *ast.Paragraph:
			if img, ok := soleImage(n); ok {
				flushTitle()
				seq = append(seq, NewImage(string(img.Destination), strings.TrimSpace(string(img.Text(source))), string(img.Title)))
				continue
			}
			seq = append(seq, NewParagraph(pendingTitle, strings.TrimSpace(nodeText(n, source))))
			pendingTitle = ""
		case *ast.ThematicBreak:
			flushTitle()
		default:
			body := strings.TrimSpace(nodeText(n, source))
			if body == "" {
				continue
			}
			seq = append(seq, NewParagraph(pendingTitle, body))
			pendingTitle = ""
		}
	}
	flushTitle()
	if seq == nil {
		seq = Sequence{}
	}
	return seq, nil
}

func soleImage(p *ast.Paragraph) (*ast.Image, bool) {
	if p.ChildCount() != 1 {
		return nil, false
	}
	img, ok := p.FirstChild().(*ast.Image)
	return img, ok
}

// nodeText returns the source lines covered by n, descending into
// container blocks that carry no lines of their own.
func nodeText(n ast.Node, source []byte) string {
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		var buf bytes.Buffer
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}
		return buf.String()
	}
	var parts []string
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() != ast.TypeBlock {
			continue
		}
		if s := strings.TrimSpace(nodeText(child, source)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}
