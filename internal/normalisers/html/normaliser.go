// Package html provides a Normaliser implementation for HTML documents,
// plus the webpage main-content extraction used by URL ingestion. It
// strips tags, scripts, styles, and decodes entities into clean searchable
// text via precompiled regexes, the same technique the teacher repo uses
// for HTML rather than pulling in a DOM parser.
package html

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/custodia-labs/serchad/internal/core/domain"
	"github.com/custodia-labs/serchad/internal/core/ports/driven"
	"github.com/custodia-labs/serchad/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles uploaded .html/.htm files.
type Normaliser struct{}

// New creates an HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".html", ".htm"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise converts an HTML document to a normalised document, stripping
// tags and decoding entities.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	rawContent := string(raw.Content)
	title := extractTitle(rawContent, raw.URI)
	content := StripTags(rawContent)

	return &driven.NormaliseResult{
		Document: domain.Document{
			Name:    raw.URI,
			Type:    "html",
			Title:   title,
			Content: content,
		},
	}, nil
}

// Pre-compiled regular expressions for HTML parsing.
var (
	titleTag          = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	scriptTag         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag       = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	headTag           = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	svgTag            = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	navTag            = regexp.MustCompile(`(?is)<nav[^>]*>.*?</nav>`)
	footerTag         = regexp.MustCompile(`(?is)<footer[^>]*>.*?</footer>`)
	headerTag         = regexp.MustCompile(`(?is)<header[^>]*>.*?</header>`)
	asideTag          = regexp.MustCompile(`(?is)<aside[^>]*>.*?</aside>`)
	htmlComments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockElements     = regexp.MustCompile(`(?i)</(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|section|article)>`)
	openBlockElements = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	brTags            = regexp.MustCompile(`(?i)<br\s*/?>`)
	hrTags            = regexp.MustCompile(`(?i)<hr\s*/?>`)
	allTags           = regexp.MustCompile(`<[^>]+>`)
	multiSpaces       = regexp.MustCompile(`[ \t]+`)
	multiNewlines     = regexp.MustCompile(`\n{2,}`)
)

// mainContentSelectors are tried in order against the raw HTML to find the
// main-content container for webpage ingestion. Since no DOM parser is
// used, each selector is a best-effort tag/class/id regex: the main,
// article and body patterns capture up to the first matching closing tag,
// while the class and id patterns capture everything after the opening tag
// to the end of the document. Selectors are tried in priority order and the
// first present wins.
var mainContentSelectors = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<main[^>]*>(.*?)</main>`),
	regexp.MustCompile(`(?is)<article[^>]*>(.*?)</article>`),
	regexp.MustCompile(`(?is)<[^>]+class="[^"]*\bcontent\b[^"]*"[^>]*>(.*)`),
	regexp.MustCompile(`(?is)<[^>]+id="content"[^>]*>(.*)`),
	regexp.MustCompile(`(?is)<[^>]+class="[^"]*\bpost\b[^"]*"[^>]*>(.*)`),
	regexp.MustCompile(`(?is)<[^>]+class="[^"]*\bentry\b[^"]*"[^>]*>(.*)`),
	regexp.MustCompile(`(?is)<body[^>]*>(.*?)</body>`),
}

// extractTitle extracts a title from the HTML <title> tag or falls back to
// a filename-derived title.
func extractTitle(content, uri string) string {
	matches := titleTag.FindStringSubmatch(content)
	if len(matches) > 1 {
		title := strings.TrimSpace(matches[1])
		title = html.UnescapeString(title)
		if title != "" {
			return title
		}
	}
	return normalisers.TitleFromName(uri)
}

// ExtractTitle is the exported form of extractTitle, used by webpage
// ingestion where the HTML title or the source URL is the only title
// candidate.
func ExtractTitle(content, uri string) string {
	return extractTitle(content, uri)
}

// ExtractMainContent implements the webpage main-content selection rule:
// try main, article, .content, #content, .post, .entry in order, falling
// back to body, then strip remaining tags and collapse whitespace.
func ExtractMainContent(rawHTML string) string {
	stripped := stripNonContentSections(rawHTML)

	for _, sel := range mainContentSelectors {
		if m := sel.FindStringSubmatch(stripped); len(m) > 1 {
			return collapseWhitespace(StripTags(m[1]))
		}
	}
	return collapseWhitespace(StripTags(stripped))
}

// stripNonContentSections removes elements that are never part of main
// content regardless of extraction mode: script, style, nav, footer,
// header, aside.
func stripNonContentSections(content string) string {
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = noscriptTag.ReplaceAllString(content, "")
	content = headTag.ReplaceAllString(content, "")
	content = svgTag.ReplaceAllString(content, "")
	content = navTag.ReplaceAllString(content, "")
	content = footerTag.ReplaceAllString(content, "")
	content = headerTag.ReplaceAllString(content, "")
	content = asideTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")
	return content
}

// StripTags removes HTML tags and extracts readable text content.
func StripTags(content string) string {
	content = stripNonContentSections(content)

	content = openBlockElements.ReplaceAllString(content, "\n")
	content = blockElements.ReplaceAllString(content, "\n")
	content = brTags.ReplaceAllString(content, "\n")
	content = hrTags.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	return collapseWhitespace(content)
}

// collapseWhitespace collapses runs of whitespace to single spaces,
// collapses runs of >=2 newlines to one, and trims.
func collapseWhitespace(content string) string {
	content = multiSpaces.ReplaceAllString(content, " ")
	content = multiNewlines.ReplaceAllString(content, "\n")

	lines := strings.Split(content, "\n")
	var result []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.TrimSpace(strings.Join(result, "\n"))
}
