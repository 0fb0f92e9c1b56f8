package ai

import (
	"html"
	"regexp"
	"strings"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanResponseText normalizes model output to plain text. Models
// occasionally wrap answers in code fences or emit HTML markup despite
// plain-text instructions in the prompt, so the cleanup strips fences and
// tags, decodes HTML entities, and collapses runs of whitespace.
func CleanResponseText(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```text") {
		text = strings.TrimPrefix(text, "```text")
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(text, "```")

	text = htmlTagPattern.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = whitespacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
