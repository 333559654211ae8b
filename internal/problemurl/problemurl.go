package problemurl

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/DeadlyParkour777/solution-share/internal/types"
)

const PlaceholderTitle = "LeetCode Question"

var AllowedDomains = []string{"leetcode.com", "leetcode.cn", "leetcode-cn.com"}

var (
	slugPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i:leetcode(?:-cn)?\.(?:com|cn)/problems/)([^/?#]+)`),
		regexp.MustCompile(`(?i:leetcode(?:-cn)?\.(?:com|cn)/contest/)[^/]+(?i:/problems/)([^/?#]+)`),
	}
	numberedSlug = regexp.MustCompile(`^(\d+)-(.+)$`)
)

func trim(raw string) string {
	return strings.Trim(strings.TrimSpace(raw), `"'`)
}

func parseAbsolute(raw string) (*url.URL, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	if u.Hostname() == "" {
		return nil, false
	}
	return u, true
}

func allowedHost(host string) bool {
	host = strings.ToLower(host)
	for _, d := range AllowedDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// ValidateSubmissionLink checks that raw points at a problem page on one of
// the allowed judge domains and returns the trimmed link.
func ValidateSubmissionLink(raw string) (string, error) {
	link := trim(raw)
	u, ok := parseAbsolute(link)
	if !ok {
		return "", &types.ValidationError{Field: "submission_url", Message: "not a valid absolute URL"}
	}
	if !allowedHost(u.Hostname()) {
		return "", &types.ValidationError{Field: "submission_url", Message: "domain is not a LeetCode domain"}
	}
	if !strings.Contains(strings.ToLower(u.Path), "/problems/") {
		return "", &types.ValidationError{Field: "submission_url", Message: "link is not a LeetCode problem link"}
	}
	return link, nil
}

// StripSubmissions cuts a submission link back to its problem page. Only a
// "submissions" segment directly after /problems/<slug> is cut; any other
// link is returned unchanged.
func StripSubmissions(link string) string {
	u, ok := parseAbsolute(trim(link))
	if !ok {
		return link
	}
	segs := strings.Split(u.Path, "/")
	for i := 0; i+2 < len(segs); i++ {
		if strings.EqualFold(segs[i], "problems") && segs[i+1] != "" && strings.EqualFold(segs[i+2], "submissions") {
			u.Path = strings.Join(segs[:i+2], "/") + "/"
			u.RawPath = ""
			u.RawQuery = ""
			u.Fragment = ""
			return u.String()
		}
	}
	return link
}

// Canonicalize drops query and fragment. Input that does not parse as an
// absolute URL is returned trimmed.
func Canonicalize(raw string) string {
	link := trim(raw)
	u, ok := parseAbsolute(link)
	if !ok {
		return link
	}
	path := strings.TrimRight(u.EscapedPath(), "/")
	return u.Scheme + "://" + strings.ToLower(u.Host) + path
}

func Slug(link string) (string, bool) {
	for _, pat := range slugPatterns {
		if m := pat.FindStringSubmatch(link); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// Title builds a display title from the problem slug in link.
func Title(link string) (string, bool) {
	slug, ok := Slug(link)
	if !ok {
		return "", false
	}
	if m := numberedSlug.FindStringSubmatch(slug); m != nil {
		return m[1] + ". " + titleCase(strings.ReplaceAll(m[2], "-", " ")), true
	}
	return titleCase(strings.ReplaceAll(slug, "-", " ")), true
}

// titleCase upper-cases a letter that follows a non-letter and lower-cases
// the rest, so "3sum closest" becomes "3Sum Closest".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}

// FromSlug is the problem page the judge proxy's titleSlug refers to.
func FromSlug(slug string) string {
	return "https://leetcode.com/problems/" + slug + "/"
}

// Parse validates a user supplied link and reduces it to a CanonicalProblem.
func Parse(raw string) (types.CanonicalProblem, error) {
	link, err := ValidateSubmissionLink(raw)
	if err != nil {
		return types.CanonicalProblem{}, err
	}
	problem := Resolve(StripSubmissions(link))
	if problem.Slug == "" {
		return types.CanonicalProblem{}, &types.ValidationError{Field: "submission_url", Message: "link does not name a LeetCode problem"}
	}
	return problem, nil
}

// Resolve canonicalizes an already accepted link.
func Resolve(link string) types.CanonicalProblem {
	canonical := Canonicalize(link)
	slug, _ := Slug(canonical)
	title, ok := Title(canonical)
	if !ok {
		title = PlaceholderTitle
	}
	return types.CanonicalProblem{
		Slug:         slug,
		Title:        title,
		CanonicalURL: canonical,
	}
}
