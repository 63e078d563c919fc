package views

import (
	"bytes"
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/flyballhub/hubsite/content"
	"github.com/flyballhub/hubsite/imgcdn"
)

// RichText renders portable rich text as a templ component. Unknown node
// types were already dropped during decoding, so everything here is a shape
// the renderer understands.
func RichText(rt content.RichText, img *imgcdn.Builder) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		renderRichText(&buf, rt, img)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func renderRichText(buf *bytes.Buffer, rt content.RichText, img *imgcdn.Builder) {
	inList := ""
	flushList := func() {
		switch inList {
		case "bullet":
			buf.WriteString("</ul>")
		case "number":
			buf.WriteString("</ol>")
		}
		inList = ""
	}

	for _, node := range rt {
		text, isText := node.(*content.TextNode)
		if isText && text.ListItem != "" {
			if inList != text.ListItem {
				flushList()
				if text.ListItem == "number" {
					buf.WriteString(`<ol class="richtext-list">`)
				} else {
					buf.WriteString(`<ul class="richtext-list">`)
				}
				inList = text.ListItem
			}
			buf.WriteString("<li>")
			renderSpans(buf, text)
			buf.WriteString("</li>")
			continue
		}
		flushList()

		switch n := node.(type) {
		case *content.TextNode:
			tag := "p"
			switch n.Style {
			case "h1", "h2", "h3", "h4", "h5", "h6":
				tag = n.Style
			case "blockquote":
				tag = "blockquote"
			}
			buf.WriteString("<" + tag + ">")
			renderSpans(buf, n)
			buf.WriteString("</" + tag + ">")
		case *content.ImageNode:
			renderRichImage(buf, n, img)
		case *content.BlockquoteNode:
			buf.WriteString(`<blockquote class="richtext-quote"><p>` + e(n.Quote) + "</p>")
			if n.Attribution != "" {
				buf.WriteString("<cite>" + e(n.Attribution) + "</cite>")
			}
			buf.WriteString("</blockquote>")
		case *content.CodeNode:
			buf.WriteString("<pre><code")
			if n.Language != "" {
				buf.WriteString(` class="language-` + e(n.Language) + `"`)
			}
			buf.WriteString(">" + e(n.Code) + "</code></pre>")
		case *content.TableNode:
			renderRichTable(buf, n)
		case *content.BreakNode:
			buf.WriteString(`<hr class="richtext-break">`)
		}
	}
	flushList()
}

// renderSpans writes a text node's children with their marks applied. Marks
// referencing a link definition become anchors; decorator marks nest inside.
func renderSpans(buf *bytes.Buffer, n *content.TextNode) {
	defs := make(map[string]content.MarkDef, len(n.MarkDefs))
	for _, d := range n.MarkDefs {
		defs[d.Key] = d
	}

	for _, span := range n.Children {
		var open, close_ bytes.Buffer
		for _, mark := range span.Marks {
			if def, ok := defs[mark]; ok && def.Type == "link" {
				open.WriteString(`<a href="` + e(def.Href) + `"`)
				if def.OpenInNewTab {
					open.WriteString(` target="_blank" rel="noopener noreferrer"`)
				}
				open.WriteString(">")
				close_.WriteString("</a>")
				continue
			}
			switch mark {
			case "strong":
				open.WriteString("<strong>")
				close_.WriteString("</strong>")
			case "em":
				open.WriteString("<em>")
				close_.WriteString("</em>")
			case "underline":
				open.WriteString("<u>")
				close_.WriteString("</u>")
			case "strike-through":
				open.WriteString("<s>")
				close_.WriteString("</s>")
			case "code":
				open.WriteString("<code>")
				close_.WriteString("</code>")
			}
		}
		buf.Write(open.Bytes())
		buf.WriteString(e(span.Text))
		// Closing tags in reverse nesting order.
		closing := close_.String()
		buf.WriteString(reverseTags(closing))
	}
}

// reverseTags reverses the order of adjacent closing tags so nesting stays
// balanced with the opens written above.
func reverseTags(s string) string {
	var tags []string
	for len(s) > 0 {
		end := 0
		for end < len(s) && s[end] != '>' {
			end++
		}
		if end >= len(s) {
			break
		}
		tags = append(tags, s[:end+1])
		s = s[end+1:]
	}
	var buf bytes.Buffer
	for i := len(tags) - 1; i >= 0; i-- {
		buf.WriteString(tags[i])
	}
	return buf.String()
}

func renderRichImage(buf *bytes.Buffer, n *content.ImageNode, img *imgcdn.Builder) {
	src := img.URL(&n.Image, 1200)
	if src == "" {
		return
	}
	buf.WriteString(`<figure class="richtext-figure"><img src="` + e(src) + `" alt="` + e(n.Image.Alt) + `" loading="lazy">`)
	if n.Caption != "" {
		buf.WriteString("<figcaption>" + e(n.Caption) + "</figcaption>")
	}
	buf.WriteString("</figure>")
}

func renderRichTable(buf *bytes.Buffer, n *content.TableNode) {
	if len(n.Rows) == 0 {
		return
	}
	buf.WriteString(`<table class="richtext-table"><thead><tr>`)
	for _, cell := range n.Rows[0] {
		buf.WriteString("<th>" + e(cell) + "</th>")
	}
	buf.WriteString("</tr></thead><tbody>")
	for _, row := range n.Rows[1:] {
		buf.WriteString("<tr>")
		for _, cell := range row {
			buf.WriteString("<td>" + e(cell) + "</td>")
		}
		buf.WriteString("</tr>")
	}
	buf.WriteString("</tbody></table>")
}

// PlainText flattens rich text for meta descriptions and JSON-LD, truncating
// at max runes when max > 0.
func PlainText(rt content.RichText, max int) string {
	var buf bytes.Buffer
	for _, node := range rt {
		if t, ok := node.(*content.TextNode); ok {
			if buf.Len() > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString(t.PlainText())
		}
	}
	s := buf.String()
	if max > 0 {
		runes := []rune(s)
		if len(runes) > max {
			return string(runes[:max-1]) + "…"
		}
	}
	return s
}

// itoa keeps the block renderers free of strconv imports.
func itoa(n int) string {
	return strconv.Itoa(n)
}
