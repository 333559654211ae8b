package sanitize

import (
	"strings"

	"github.com/DeadlyParkour777/solution-share/internal/language"
)

const (
	fence            = "```"
	fenceReplacement = "'''"
	orReplacement    = "⏐⏐"
	maxFilenameRunes = 50
	ellipsis         = "..."
)

// Code makes raw code safe to embed in a fenced block wrapped in spoiler
// markup.
func Code(code, lang string) string {
	code = strings.ReplaceAll(code, fence, fenceReplacement)
	if language.HasOrOperator(lang) {
		code = replaceUnescapedOr(code)
	}
	return code
}

// replaceUnescapedOr swaps every "||" whose first pipe is not preceded by a
// backslash. Matches do not overlap, scanning left to right.
func replaceUnescapedOr(code string) string {
	if !strings.Contains(code, "||") {
		return code
	}
	var b strings.Builder
	b.Grow(len(code) + 8)
	for i := 0; i < len(code); {
		if code[i] == '|' && i+1 < len(code) && code[i+1] == '|' && (i == 0 || code[i-1] != '\\') {
			b.WriteString(orReplacement)
			i += 2
			continue
		}
		b.WriteByte(code[i])
		i++
	}
	return b.String()
}

var unsafeFilenameChars = strings.NewReplacer(
	`\`, "", "/", "", "*", "", "?", "", ":", "", `"`, "", "<", "", ">", "", "|", "",
)

// Filename turns a problem title into an attachment file name.
func Filename(title, ext string) string {
	name := strings.ReplaceAll(title, " ", "_")
	name = unsafeFilenameChars.Replace(name)
	if runes := []rune(name); len(runes) > maxFilenameRunes {
		name = string(runes[:maxFilenameRunes-len(ellipsis)]) + ellipsis
	}
	return name + "." + ext
}
