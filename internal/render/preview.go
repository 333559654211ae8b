package render

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/DeadlyParkour777/solution-share/internal/types"
	"github.com/yuin/goldmark"
)

var spoilerPattern = regexp.MustCompile(`(?s)\|\|(.+?)\|\|`)

// PreviewHTML renders a solution the way a web client would show it. Spoiler
// markup becomes a collapsed <details> element.
func PreviewHTML(sol types.RenderedSolution) (string, error) {
	var body strings.Builder
	parts := []string{fmt.Sprintf("## [%s](%s)", sol.Title, sol.URL), sol.Description}
	for _, f := range sol.Fields {
		parts = append(parts, fmt.Sprintf("**%s:** %s", f.Name, f.Value))
	}
	for _, part := range parts {
		if err := convertWithSpoilers(&body, part); err != nil {
			return "", err
		}
	}
	if sol.Attachment != nil {
		// The attachment is raw code, so its pipes are not spoiler markup.
		if err := convert(&body, sol.Content+"\n\n"+CodeBlock(sol.Attachment.Content, "")); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("<article style=\"border-left:4px solid #%06x;padding-left:8px\">%s</article><p>Bookmark: %s</p>",
		sol.Color, body.String(), html.EscapeString(sol.Bookmark.ProblemURL)), nil
}

// convertWithSpoilers renders the text between spoiler markers on its own, so
// a spoiler wraps whole blocks instead of cutting through the HTML around it.
func convertWithSpoilers(w *strings.Builder, src string) error {
	last := 0
	for _, loc := range spoilerPattern.FindAllStringSubmatchIndex(src, -1) {
		if err := convert(w, src[last:loc[0]]); err != nil {
			return err
		}
		w.WriteString("<details><summary>spoiler</summary>")
		if err := convert(w, src[loc[2]:loc[3]]); err != nil {
			return err
		}
		w.WriteString("</details>\n")
		last = loc[1]
	}
	return convert(w, src[last:])
}

func convert(w *strings.Builder, src string) error {
	if strings.TrimSpace(src) == "" {
		return nil
	}
	var out bytes.Buffer
	if err := goldmark.Convert([]byte(src), &out); err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}
	w.Write(out.Bytes())
	return nil
}
