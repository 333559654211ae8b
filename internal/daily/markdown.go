package daily

import (
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var blankLines = regexp.MustCompile(`\n{2,}`)

// ToMarkdown converts the judge's problem HTML into chat markdown. Only the
// inline tags the chat client understands are kept; everything else is
// reduced to its text.
func ToMarkdown(src string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return strings.TrimSpace(b.String())
			}
			return strings.TrimSpace(blankLines.ReplaceAllString(b.String(), "\n"))
		case html.TextToken:
			b.WriteString(strings.ReplaceAll(string(z.Text()), "`", "\\`"))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "code":
				b.WriteString("`")
			case "strong", "b":
				b.WriteString("**")
			case "em", "i":
				b.WriteString("*")
			case "li":
				b.WriteString("• ")
			case "br":
				b.WriteString("\n")
			case "sup":
				b.WriteString("^")
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "code":
				b.WriteString("`")
			case "strong", "b":
				b.WriteString("**")
			case "em", "i":
				b.WriteString("*")
			case "li", "p":
				b.WriteString("\n")
			}
		}
	}
}
