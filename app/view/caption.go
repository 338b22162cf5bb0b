package view

import (
	"html/template"
	"regexp"
	"strings"
)

var (
	captionHashtag = regexp.MustCompile(`#(\w+)`)
	captionMention = regexp.MustCompile(`@(\w+)`)

	// Escapes &, <, > only. Quote characters must stay literal: numeric
	// entities like &#39; would be split by the hashtag pass, and quotes
	// need no escaping in text content.
	captionEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// MarkupCaption escapes caption text and wraps #hashtags and @mentions
// in styled spans. Escaping happens first and never produces the marker
// characters # or @.
func MarkupCaption(caption string) template.HTML {
	escaped := captionEscaper.Replace(caption)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	escaped = captionHashtag.ReplaceAllString(escaped, `<span class="hashtag">#$1</span>`)
	escaped = captionMention.ReplaceAllString(escaped, `<span class="mention">@$1</span>`)
	return template.HTML(escaped)
}
