package daily

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/DeadlyParkour777/solution-share/internal/render"
	"github.com/DeadlyParkour777/solution-share/internal/types"
)

// MaxDescription is the chat client's description limit. Longer posts are
// still returned but logged.
const MaxDescription = 4096

var badges = map[string]string{
	"Hard":   ":red_square: Hard",
	"Medium": ":orange_square: Medium",
	"Easy":   ":green_square: Easy",
}

// Format renders the daily question. Topics and hints are masked when
// opts.HideSpoilers is set.
func Format(q *types.DailyQuestion, userID string, now time.Time, opts render.Options) types.DailyPost {
	mask := func(s string) string {
		if !opts.HideSpoilers {
			return s
		}
		return "||" + s + "||"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**[%s. %s](%s)**\n", q.QuestionFrontendID, q.QuestionTitle, q.QuestionLink)
	if badge, ok := badges[q.Difficulty]; ok {
		b.WriteString(badge + "\n")
	}
	if q.IsPaidOnly {
		b.WriteString("\n:lock: Premium required!")
	}

	b.WriteString("\n**Description:**\n")
	b.WriteString(ToMarkdown(q.Question))

	b.WriteString("\n\nTopics:\n")
	topics := make([]string, 0, len(q.TopicTags))
	for _, t := range q.TopicTags {
		topics = append(topics, mask(t.Name))
	}
	b.WriteString(strings.Join(topics, ", "))

	b.WriteString("\n\nHints:\n")
	for _, h := range q.Hints {
		fmt.Fprintf(&b, "- %s\n", mask(ToMarkdown(h)))
	}

	fmt.Fprintf(&b, "\n\n:+1: %d  :-1: %d\n", q.Likes, q.Dislikes)

	desc := b.String()
	if n := len([]rune(desc)); n >= MaxDescription {
		log.Printf("Daily description too long: %d exceeds limit of %d", n, MaxDescription)
	}

	return types.DailyPost{
		Title:       "Daily Question " + now.Format("01/02/06"),
		URL:         q.QuestionLink,
		Color:       render.DifficultyColor(q.Difficulty),
		Description: desc,
		Bookmark:    types.Bookmark{UserID: userID, ProblemURL: q.QuestionLink},
		Timestamp:   now,
	}
}
