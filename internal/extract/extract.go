// Package extract turns HTML sources into the text rwc counts, so that
// `rwc --html` measures what a reader sees instead of the markup.
package extract

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// Options controls which part of an HTML document is kept and how it is rendered.
type Options struct {
	Selector   string   // CSS selector; overrides IncludeAll when set
	IncludeAll bool     // keep the whole document instead of the readable article
	Markdown   bool     // render as Markdown rather than plain text
	BaseURL    *url.URL // used by readability to resolve relative links (can be nil)
}

// ToText extracts countable text from the HTML in content.
//
// With a selector only the matching elements are kept. With IncludeAll the
// whole body is kept. Otherwise go-readability picks the main article.
func ToText(content io.Reader, opts Options) (string, error) {
	var (
		html string
		err  error
	)

	switch {
	case opts.Selector != "":
		html, err = selectHTML(content, opts.Selector)
	case opts.IncludeAll:
		html, err = bodyHTML(content)
	default:
		html, err = articleHTML(content, opts.BaseURL)
	}
	if err != nil {
		return "", err
	}

	if opts.Markdown {
		return convertToMarkdown(html)
	}
	return plainText(html)
}

// articleHTML uses go-readability to find the main article content
func articleHTML(content io.Reader, baseURL *url.URL) (string, error) {
	if baseURL == nil {
		baseURL = &url.URL{}
	}

	article, err := readability.FromReader(content, baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract main content: %w", err)
	}
	return article.Content, nil
}

// selectHTML returns the outer HTML of every element matching selector
func selectHTML(content io.Reader, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("no elements found matching selector: %s", selector)
	}

	var parts []string
	selection.Each(func(_ int, s *goquery.Selection) {
		if html, err := goquery.OuterHtml(s); err == nil {
			parts = append(parts, html)
		}
	})
	if len(parts) == 0 {
		return "", fmt.Errorf("failed to extract HTML from selection")
	}

	return strings.Join(parts, "\n"), nil
}

// bodyHTML returns the document body without head, script or style elements
func bodyHTML(content io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	html, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("failed to render HTML body: %w", err)
	}
	return html, nil
}

// plainText renders the visible text of an HTML fragment, one block element per line
func plainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	// block boundaries become line breaks so words on either side stay apart
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6, tr, blockquote, pre, article, section").
		AppendHtml("\n")

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// convertToMarkdown converts an HTML string to tidy Markdown
func convertToMarkdown(html string) (string, error) {
	converter := md.NewConverter("", true, nil)

	markdown, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	cleaned := strings.TrimSpace(markdown)
	for strings.Contains(cleaned, "\n\n\n") {
		cleaned = strings.ReplaceAll(cleaned, "\n\n\n", "\n\n")
	}
	if cleaned == "" {
		return "", nil
	}
	return cleaned + "\n", nil
}
