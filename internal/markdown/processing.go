package markdown

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/ashchan-dev/ashchan/internal/logger"
)

// TextProcessor turns raw message text into safe HTML. The parser is
// deliberately restricted to inline formatting and code: no headings,
// lists, links or raw HTML blocks in post bodies.
type TextProcessor struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *TextProcessor {
	p := parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewFencedCodeBlockParser(), 700),
			util.Prioritized(parser.NewParagraphParser(), 1000),
		),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewCodeSpanParser(), 100),
			util.Prioritized(parser.NewEmphasisParser(), 500),
		),
	)

	md := goldmark.New(
		goldmark.WithParser(p),
		goldmark.WithRendererOptions(html.WithUnsafe()),
		goldmark.WithExtensions(extension.Strikethrough),
	)

	policy := bluemonday.UGCPolicy()

	return &TextProcessor{md: md, policy: policy}
}

// Process renders markdown and sanitizes the result. On render failure
// the raw text is sanitized instead; a post never disappears.
func (tp *TextProcessor) Process(text string) template.HTML {
	var buf bytes.Buffer
	if err := tp.md.Convert([]byte(text), &buf); err != nil {
		logger.Log.Error("markdown render failed", "error", err)
		return template.HTML(tp.policy.Sanitize(text))
	}
	safe := tp.policy.Sanitize(strings.TrimSpace(buf.String()))
	return template.HTML(safe)
}
