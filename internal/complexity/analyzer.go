package complexity

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/DeadlyParkour777/solution-share/internal/types"
	"github.com/tidwall/gjson"
)

const (
	timeKey = "time_complexity"
	memKey  = "mem_complexity"
)

// Completer sends one free-text prompt to a text completion service.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Analyzer struct {
	completer Completer
	timeout   time.Duration
}

// NewAnalyzer returns an analyzer backed by completer. A nil completer
// disables analysis.
func NewAnalyzer(completer Completer, timeout time.Duration) *Analyzer {
	return &Analyzer{completer: completer, timeout: timeout}
}

// Analyze asks the completion service for an estimate of code. It never
// fails: any problem is logged and reported as nil.
func (a *Analyzer) Analyze(ctx context.Context, code string) *types.ComplexityEstimate {
	if a == nil || a.completer == nil {
		return nil
	}
	if strings.TrimSpace(code) == "" {
		return nil
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	reply, err := a.completer.Complete(ctx, BuildPrompt(code))
	if err != nil {
		log.Printf("Complexity request failed: %v", err)
		return nil
	}

	estimate, ok := Extract(reply)
	if !ok {
		log.Printf("Failed to parse complexity reply: %q", reply)
		return nil
	}
	return Usable(estimate)
}

// Extract parses a reply that should hold a single JSON object with both
// complexity keys. A surrounding fenced code marker is tolerated.
func Extract(reply string) (types.ComplexityEstimate, bool) {
	cleaned := stripFence(reply)
	if !gjson.Valid(cleaned) {
		return types.ComplexityEstimate{}, false
	}
	root := gjson.Parse(cleaned)
	if !root.IsObject() {
		return types.ComplexityEstimate{}, false
	}

	tc, mc := root.Get(timeKey), root.Get(memKey)
	if tc.Type != gjson.String || mc.Type != gjson.String {
		return types.ComplexityEstimate{}, false
	}
	return types.ComplexityEstimate{Time: tc.String(), Mem: mc.String()}, true
}

// Usable drops an estimate when either half is unknown or blank; a partial
// pair is never shown.
func Usable(e types.ComplexityEstimate) *types.ComplexityEstimate {
	if isUnknown(e.Time) || isUnknown(e.Mem) {
		return nil
	}
	return &types.ComplexityEstimate{
		Time: strings.TrimSpace(e.Time),
		Mem:  strings.TrimSpace(e.Mem),
	}
}

func isUnknown(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, types.UnknownComplexity)
}

func stripFence(reply string) string {
	s := strings.TrimSpace(reply)
	if strings.HasPrefix(s, "```") {
		s = s[3:]
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
