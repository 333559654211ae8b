package daily

import (
	"strings"
	"testing"
	"time"

	"github.com/DeadlyParkour777/solution-share/internal/render"
	"github.com/DeadlyParkour777/solution-share/internal/types"
)

func TestToMarkdown(t *testing.T) {
	cases := map[string]string{
		"<p>Given an array <code>nums</code>.</p>":                 "Given an array `nums`.",
		"<p><strong>Example 1:</strong></p><p><em>note</em></p>":   "**Example 1:**\n*note*",
		"<ul><li>one</li><li>two</li></ul>":                        "• one\n• two",
		"line<br/>break":                                           "line\nbreak",
		"<p>2 <= n <= 10<sup>4</sup></p>":                          "2 <= n <= 10^4",
		"<p>a `tick`</p>":                                          "a \\`tick\\`",
		"<p>&lt;tag&gt; &amp;</p>":                                 "<tag> &",
		"<p>first</p>\n\n\n<p>second</p>":                          "first\nsecond",
		"<div><span>plain</span></div>":                            "plain",
	}
	for in, want := range cases {
		if got := ToMarkdown(in); got != want {
			t.Fatalf("ToMarkdown(%q) = %q, want %q", in, got, want)
		}
	}
}

func sampleQuestion() *types.DailyQuestion {
	return &types.DailyQuestion{
		QuestionLink:       "https://leetcode.com/problems/two-sum/",
		QuestionFrontendID: "1",
		QuestionTitle:      "Two Sum",
		Difficulty:         "Easy",
		Question:           "<p>Find <code>two</code> numbers.</p>",
		TopicTags:          []types.TopicTag{{Name: "Array"}, {Name: "Hash Table"}},
		Hints:              []string{"Use a <b>map</b>."},
		Likes:              10,
		Dislikes:           2,
	}
}

func TestFormat(t *testing.T) {
	now := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	post := Format(sampleQuestion(), "42", now, render.DefaultOptions())

	if post.Title != "Daily Question 03/04/26" {
		t.Fatalf("unexpected title: %q", post.Title)
	}
	if post.Color != render.ColorEasy {
		t.Fatalf("unexpected color: %x", post.Color)
	}
	if post.Bookmark.UserID != "42" || post.Bookmark.ProblemURL != "https://leetcode.com/problems/two-sum/" {
		t.Fatalf("unexpected bookmark: %+v", post.Bookmark)
	}
	for _, want := range []string{
		"**[1. Two Sum](https://leetcode.com/problems/two-sum/)**\n:green_square: Easy\n",
		"**Description:**\nFind `two` numbers.",
		"Topics:\n||Array||, ||Hash Table||",
		"Hints:\n- ||Use a **map**.||\n",
		":+1: 10  :-1: 2",
	} {
		if !strings.Contains(post.Description, want) {
			t.Fatalf("description missing %q:\n%s", want, post.Description)
		}
	}
	if strings.Contains(post.Description, "Premium") {
		t.Fatalf("free question must not carry the premium notice")
	}
}

func TestFormat_PremiumAndUnmasked(t *testing.T) {
	q := sampleQuestion()
	q.IsPaidOnly = true
	q.Difficulty = "Unrated"

	post := Format(q, "42", time.Now(), render.Options{HideSpoilers: false})
	if !strings.Contains(post.Description, ":lock: Premium required!") {
		t.Fatalf("missing premium notice")
	}
	if strings.Contains(post.Description, "||") {
		t.Fatalf("topics must not be masked: %s", post.Description)
	}
	if post.Color != render.ColorDefault {
		t.Fatalf("unexpected color: %x", post.Color)
	}
}
