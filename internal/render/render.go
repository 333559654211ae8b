package render

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/DeadlyParkour777/solution-share/internal/language"
	"github.com/DeadlyParkour777/solution-share/internal/sanitize"
	"github.com/DeadlyParkour777/solution-share/internal/types"
)

// MaxInlineDescription is the largest description payload, in characters,
// that is still delivered inline.
const MaxInlineDescription = 4000

const (
	ColorEasy    = 0x2ecc71
	ColorMedium  = 0xe67e22
	ColorHard    = 0xe74c3c
	ColorDefault = 0x9b59b6
)

const (
	TooLongNotice   = "Solution too long to embed. Uploaded as a file."
	TimeFieldName   = "Time Complexity"
	MemoryFieldName = "Memory Complexity"
)

// Options are per-call display settings. They are passed by value on every
// render and never stored.
type Options struct {
	HideSpoilers bool
}

func DefaultOptions() Options {
	return Options{HideSpoilers: true}
}

type Input struct {
	Problem    types.CanonicalProblem
	Code       string
	Language   string
	Complexity *types.ComplexityEstimate
	Author     types.Author
	Difficulty string
	Now        time.Time
}

func DifficultyColor(difficulty string) int {
	switch difficulty {
	case "Easy":
		return ColorEasy
	case "Medium":
		return ColorMedium
	case "Hard":
		return ColorHard
	default:
		return ColorDefault
	}
}

func mask(s string, opts Options) string {
	if !opts.HideSpoilers {
		return s
	}
	return "||" + s + "||"
}

var styleEscaper = strings.NewReplacer("_", `\_`, "*", `\*`)

// EscapeStyling stops markdown from reading underscores and asterisks in
// complexity expressions as emphasis.
func EscapeStyling(s string) string {
	return styleEscaper.Replace(s)
}

func CodeBlock(code, lang string) string {
	return "```" + lang + "\n" + code + "\n```"
}

func authorLine(a types.Author) string {
	return "Author: " + a.Mention
}

// InlineDescription is the description the inline delivery would send.
func InlineDescription(author types.Author, codeBlock string, opts Options) string {
	return authorLine(author) + "\n\n" + mask(codeBlock, opts)
}

// Assemble builds the rendered solution, picking attachment delivery when the
// inline description would exceed MaxInlineDescription characters. in.Code
// must already be sanitized.
func Assemble(in Input, opts Options) types.RenderedSolution {
	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	block := CodeBlock(in.Code, in.Language)

	sol := types.RenderedSolution{
		Title:     in.Problem.Title,
		URL:       in.Problem.CanonicalURL,
		Author:    in.Author.Mention,
		Color:     DifficultyColor(in.Difficulty),
		CodeBlock: block,
		Bookmark: types.Bookmark{
			UserID:     in.Author.UserID,
			ProblemURL: in.Problem.CanonicalURL,
		},
		Timestamp: now,
	}

	if in.Complexity != nil {
		sol.Complexity = in.Complexity
		sol.Fields = []types.Field{
			{Name: TimeFieldName, Value: mask(EscapeStyling(in.Complexity.Time), opts), Inline: true},
			{Name: MemoryFieldName, Value: mask(EscapeStyling(in.Complexity.Mem), opts), Inline: true},
		}
	}

	inline := InlineDescription(in.Author, block, opts)
	if utf8.RuneCountInString(inline) <= MaxInlineDescription {
		sol.DeliveryMode = types.DeliveryInline
		sol.Description = inline
		return sol
	}

	sol.DeliveryMode = types.DeliveryAttachment
	sol.Description = authorLine(in.Author)
	sol.Content = TooLongNotice
	sol.Attachment = &types.Attachment{
		Filename: sanitize.Filename(in.Problem.Title, language.Extension(in.Language)),
		Content:  in.Code,
	}
	return sol
}
