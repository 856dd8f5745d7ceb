package ui

import (
	"image"
	"strings"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	goldtext "github.com/yuin/goldmark/text"
)

// BlockKind classifies a preview block.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockCode
	BlockQuote
	BlockList
	BlockRule
	BlockImage
)

// Span is a styled segment of text within a block.
type Span struct {
	Text    string
	Bold    bool
	Italic  bool
	Code    bool
	Link    string
	NewLine bool
}

// Block is one renderable unit of the preview.
type Block struct {
	Kind     BlockKind
	Level    int    // heading level
	Language string // fenced code language
	ImageSrc string // BlockImage destination
	Spans    []Span
}

var previewParser = goldmark.New(
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// ParsePreview parses markdown into blocks for the preview pane.
func ParsePreview(content string) []Block {
	source := []byte(content)
	doc := previewParser.Parser().Parse(goldtext.NewReader(source))

	var blocks []Block
	ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Heading:
			blocks = append(blocks, Block{
				Kind:  BlockHeading,
				Level: n.Level,
				Spans: inlineSpans(n, source, false, false),
			})
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph:
			if _, ok := node.Parent().(*ast.ListItem); ok {
				return ast.WalkContinue, nil
			}
			// A paragraph holding a single image becomes an image block.
			if img, ok := n.FirstChild().(*ast.Image); ok && n.ChildCount() == 1 {
				blocks = append(blocks, Block{
					Kind:     BlockImage,
					ImageSrc: string(img.Destination),
					Spans:    []Span{{Text: string(img.Text(source))}},
				})
				return ast.WalkSkipChildren, nil
			}
			blocks = append(blocks, Block{
				Kind:  BlockParagraph,
				Spans: inlineSpans(n, source, false, false),
			})
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			blocks = append(blocks, Block{
				Kind:     BlockCode,
				Language: string(n.Language(source)),
				Spans:    []Span{{Text: rawLines(n, source), Code: true}},
			})
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock:
			blocks = append(blocks, Block{
				Kind:  BlockCode,
				Spans: []Span{{Text: rawLines(n, source), Code: true}},
			})
			return ast.WalkSkipChildren, nil

		case *ast.List:
			for child := n.FirstChild(); child != nil; child = child.NextSibling() {
				item, ok := child.(*ast.ListItem)
				if !ok {
					continue
				}
				marker := "• "
				if n.IsOrdered() {
					marker = "1. "
				}
				spans := []Span{{Text: marker}}
				for c := item.FirstChild(); c != nil; c = c.NextSibling() {
					spans = append(spans, inlineSpans(c, source, false, false)...)
				}
				blocks = append(blocks, Block{Kind: BlockList, Spans: spans})
			}
			return ast.WalkSkipChildren, nil

		case *ast.Blockquote:
			var spans []Span
			for child := n.FirstChild(); child != nil; child = child.NextSibling() {
				spans = append(spans, inlineSpans(child, source, false, false)...)
			}
			blocks = append(blocks, Block{Kind: BlockQuote, Spans: spans})
			return ast.WalkSkipChildren, nil

		case *ast.ThematicBreak:
			blocks = append(blocks, Block{Kind: BlockRule})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return blocks
}

func rawLines(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}

func inlineSpans(node ast.Node, source []byte, bold, italic bool) []Span {
	var spans []Span
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			if t := string(n.Segment.Value(source)); t != "" {
				spans = append(spans, Span{Text: t, Bold: bold, Italic: italic})
			}
			if n.HardLineBreak() || n.SoftLineBreak() {
				spans = append(spans, Span{NewLine: true})
			}
		case *ast.Emphasis:
			b, i := bold, italic
			if n.Level >= 2 {
				b = true
			} else {
				i = true
			}
			spans = append(spans, inlineSpans(n, source, b, i)...)
		case *ast.CodeSpan:
			var code strings.Builder
			for seg := n.FirstChild(); seg != nil; seg = seg.NextSibling() {
				if t, ok := seg.(*ast.Text); ok {
					code.Write(t.Segment.Value(source))
				}
			}
			spans = append(spans, Span{Text: code.String(), Code: true})
		case *ast.Link:
			linked := inlineSpans(n, source, bold, italic)
			for i := range linked {
				linked[i].Link = string(n.Destination)
			}
			spans = append(spans, linked...)
		case *ast.AutoLink:
			url := string(n.URL(source))
			spans = append(spans, Span{Text: url, Link: url})
		case *ast.Image:
			alt := string(n.Text(source))
			if alt == "" {
				alt = "[image]"
			}
			spans = append(spans, Span{Text: alt, Italic: true})
		case *ast.String:
			spans = append(spans, Span{Text: string(n.Value), Bold: bold, Italic: italic})
		default:
			spans = append(spans, inlineSpans(child, source, bold, italic)...)
		}
	}
	return spans
}

// layoutBlock renders one preview block.
func (r *Renderer) layoutBlock(gtx layout.Context, docDir string, block Block) layout.Dimensions {
	switch block.Kind {
	case BlockHeading:
		sizes := []unit.Sp{24, 20, 18, 16, 14, 12}
		size := sizes[0]
		if block.Level >= 1 && block.Level <= 6 {
			size = sizes[block.Level-1]
		}
		return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return r.layoutSpans(gtx, block.Spans, size, font.Bold)
		})

	case BlockCode:
		return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			rr := gtx.Dp(4)
			return layout.Stack{}.Layout(gtx,
				layout.Expanded(func(gtx layout.Context) layout.Dimensions {
					shape := clip.RRect{
						Rect: image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y),
						NE:   rr, NW: rr, SE: rr, SW: rr,
					}
					paint.FillShape(gtx.Ops, colCodeBlockBg, shape.Op(gtx.Ops))
					return layout.Dimensions{Size: gtx.Constraints.Max}
				}),
				layout.Stacked(func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						var content strings.Builder
						for _, s := range block.Spans {
							content.WriteString(s.Text)
						}
						lbl := material.Body2(r.Theme, content.String())
						lbl.Font.Typeface = "monospace"
						lbl.TextSize = unit.Sp(12)
						return lbl.Layout(gtx)
					})
				}),
			)
		})

	case BlockQuote:
		return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			borderWidth := gtx.Dp(3)
			return layout.Stack{}.Layout(gtx,
				layout.Expanded(func(gtx layout.Context) layout.Dimensions {
					paint.FillShape(gtx.Ops, colQuoteBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return layout.Dimensions{Size: gtx.Constraints.Max}
				}),
				layout.Stacked(func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							paint.FillShape(gtx.Ops, colQuoteLine, clip.Rect{Max: image.Pt(borderWidth, gtx.Constraints.Max.Y)}.Op())
							return layout.Dimensions{Size: image.Pt(borderWidth, gtx.Constraints.Min.Y)}
						}),
						layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
						layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
							return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
								return r.layoutSpans(gtx, block.Spans, unit.Sp(14), font.Normal)
							})
						}),
					)
				}),
			)
		})

	case BlockRule:
		return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			h := gtx.Dp(1)
			paint.FillShape(gtx.Ops, colLightGray, clip.Rect{Max: image.Pt(gtx.Constraints.Max.X, h)}.Op())
			return layout.Dimensions{Size: image.Pt(gtx.Constraints.Max.X, h)}
		})

	case BlockList:
		return layout.Inset{Top: unit.Dp(2), Bottom: unit.Dp(2), Left: unit.Dp(16)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return r.layoutSpans(gtx, block.Spans, unit.Sp(14), font.Normal)
		})

	case BlockImage:
		return r.layoutImage(gtx, docDir, block)

	default:
		return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return r.layoutSpans(gtx, block.Spans, unit.Sp(14), font.Normal)
		})
	}
}

// layoutSpans renders spans as one wrapped label, applying the
// predominant style. Rich multi-style text is not worth the complexity
// for a preview pane.
func (r *Renderer) layoutSpans(gtx layout.Context, spans []Span, baseSize unit.Sp, baseWeight font.Weight) layout.Dimensions {
	var content strings.Builder
	hasCode := false
	hasLink := false
	for _, s := range spans {
		if s.NewLine {
			content.WriteString("\n")
			continue
		}
		content.WriteString(s.Text)
		if s.Code {
			hasCode = true
		}
		if s.Link != "" {
			hasLink = true
		}
	}

	lbl := material.Body1(r.Theme, content.String())
	lbl.TextSize = baseSize
	lbl.Font.Weight = baseWeight
	if hasCode {
		lbl.Font.Typeface = "monospace"
	}
	if hasLink {
		lbl.Color = colAccent
	}
	if len(spans) > 0 {
		if spans[0].Bold {
			lbl.Font.Weight = font.Bold
		}
		if spans[0].Italic {
			lbl.Font.Style = font.Italic
		}
	}
	lbl.Alignment = text.Start
	return lbl.Layout(gtx)
}
