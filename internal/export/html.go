// Package export renders documents for output. HTML is the only target
// format; the GUI export dialog and the export subcommand both go through
// it.
package export

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"

	"inkpad/internal/debug"
)

// FrontMatter is the optional TOML metadata block at the top of a
// document, fenced by "+++" lines.
type FrontMatter struct {
	Title string   `toml:"title"`
	Date  string   `toml:"date"`
	Tags  []string `toml:"tags"`
}

const frontMatterFence = "+++"

// SplitFrontMatter separates a document's TOML front matter from its body.
// Documents without a front matter block return a zero FrontMatter and the
// content unchanged. A malformed block is left in the body rather than
// dropped.
func SplitFrontMatter(content string) (FrontMatter, string) {
	var fm FrontMatter
	rest, ok := strings.CutPrefix(content, frontMatterFence+"\n")
	if !ok {
		return fm, content
	}
	end := strings.Index(rest, "\n"+frontMatterFence)
	if end < 0 {
		return fm, content
	}
	block := rest[:end]
	body := strings.TrimLeft(rest[end+len(frontMatterFence)+1:], "\n")
	if err := toml.Unmarshal([]byte(block), &fm); err != nil {
		debug.Log(debug.EXPORT, "front matter parse error: %v", err)
		return FrontMatter{}, content
	}
	return fm, body
}

// Options control HTML rendering.
type Options struct {
	// Title overrides the document title; front matter and then the file
	// name fill in when empty.
	Title string
	// KeepMetadata renders the front matter fields into the document head.
	KeepMetadata bool
}

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(ghtml.WithHardWraps()),
)

// HTML renders markdown content to a standalone HTML page.
func HTML(content string, opts Options) (string, error) {
	fm, body := SplitFrontMatter(content)

	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	title := opts.Title
	if title == "" {
		title = fm.Title
	}

	var page strings.Builder
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	if title != "" {
		page.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	}
	if opts.KeepMetadata {
		if fm.Date != "" {
			page.WriteString("<meta name=\"date\" content=\"" + html.EscapeString(fm.Date) + "\">\n")
		}
		if len(fm.Tags) > 0 {
			page.WriteString("<meta name=\"keywords\" content=\"" + html.EscapeString(strings.Join(fm.Tags, ",")) + "\">\n")
		}
	}
	page.WriteString("</head>\n<body>\n")
	page.Write(buf.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.String(), nil
}

// File renders a markdown file to HTML next to srcPath or at dstPath when
// given, returning the written path.
func File(srcPath, dstPath string, opts Options) (string, error) {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	out, err := HTML(string(content), opts)
	if err != nil {
		return "", err
	}
	if dstPath == "" {
		dstPath = strings.TrimSuffix(srcPath, ".md") + ".html"
	}
	if err := os.WriteFile(dstPath, []byte(out), 0o644); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	debug.Log(debug.EXPORT, "exported %s -> %s", srcPath, dstPath)
	return dstPath, nil
}
