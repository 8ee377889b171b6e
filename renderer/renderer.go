// Package renderer compiles post/lesson markdown into the HTML served to
// readers: GFM, syntax-highlighted code blocks with a copy-to-clipboard
// shell, and anchored headings.
package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
			// 코드 블록을 복사 버튼이 붙은 래퍼로 감싼다. 버튼 동작은
			// 프론트엔드 스크립트가 data-copy 속성으로 연결한다.
			highlighting.WithWrapperRenderer(wrapCodeBlock),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	// 콘텐츠는 관리자 적재 경로로만 들어오므로 raw HTML 을 허용한다.
	goldmark.WithRendererOptions(
		goldmarkhtml.WithUnsafe(),
		renderer.WithNodeRenderers(
			util.Prioritized(&headingAnchorRenderer{}, 100),
		),
	),
)

// Render converts markdown source to HTML.
func Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

func wrapCodeBlock(w util.BufWriter, c highlighting.CodeBlockContext, entering bool) {
	if entering {
		lang := "text"
		if l, ok := c.Language(); ok && len(l) > 0 {
			lang = string(l)
		}
		w.WriteString(`<div class="code-block" data-language="` + lang + `">`)
		w.WriteString(`<button class="code-copy" type="button" data-copy aria-label="Copy code">Copy</button>`)
	} else {
		w.WriteString("</div>")
	}
}

// headingAnchorRenderer renders headings with their generated id plus a
// trailing anchor link, so readers can deep-link any section.
type headingAnchorRenderer struct{}

func (r *headingAnchorRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
}

func (r *headingAnchorRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	tag, id := "h"+strconv.Itoa(n.Level), headingID(n)

	if entering {
		w.WriteString("<" + tag)
		if id != "" {
			w.WriteString(` id="` + id + `"`)
		}
		w.WriteString(">")
		return ast.WalkContinue, nil
	}

	if id != "" {
		w.WriteString(`<a class="heading-anchor" href="#` + id + `" aria-hidden="true">#</a>`)
	}
	w.WriteString("</" + tag + ">\n")
	return ast.WalkContinue, nil
}

func headingID(n *ast.Heading) string {
	v, ok := n.AttributeString("id")
	if !ok {
		return ""
	}
	id, ok := v.([]byte)
	if !ok {
		return ""
	}
	return string(util.EscapeHTML(id))
}
