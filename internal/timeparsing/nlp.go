package timeparsing

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var (
	nlpOnce     sync.Once
	nlpParser   *when.Parser
	titleParser *when.Parser
)

// titleRules are the phrases looked for in issue titles. Month and slash
// dates are left to the calendar grammar: on their own, when's month rule
// reads "may" or "March" as a date.
var titleRules = []rules.Rule{
	en.Weekday(rules.Override),
	en.CasualDate(rules.Override),
	en.CasualTime(rules.Override),
	en.Deadline(rules.Override),
	en.PastTime(rules.Override),
}

// ambiguousWords are weekday abbreviations that are usually plain words
// in a title ("sat down", "sun").
var ambiguousWords = map[string]bool{
	"sat": true,
	"sun": true,
	"wed": true,
	"mon": true,
}

func initParsers() {
	nlpOnce.Do(func() {
		nlpParser = when.New(nil)
		nlpParser.Add(en.All...)
		nlpParser.Add(common.All...)

		titleParser = when.New(nil)
		titleParser.Add(titleRules...)
	})
}

// naturalLanguage returns the shared English parser.
func naturalLanguage() *when.Parser {
	initParsers()
	return nlpParser
}

// ParseNaturalLanguage resolves expressions such as "tomorrow",
// "next monday at 2pm" or "in 3 days" relative to now.
func ParseNaturalLanguage(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time expression")
	}

	r, err := naturalLanguage().Parse(s, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", s, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("no time expression found in %q", s)
	}
	return r.Time, nil
}

// casualPoints returns every natural-language date in text, in order.
func casualPoints(text string, ref time.Time) []point {
	initParsers()

	var out []point
	offset := 0
	for offset < len(text) {
		r, err := titleParser.Parse(text[offset:], ref)
		if err != nil || r == nil || r.Text == "" {
			break
		}
		start := offset + r.Index
		end := start + len(strings.TrimRight(r.Text, " \t"))
		offset = start + len(r.Text)
		if ambiguousWords[strings.ToLower(text[start:end])] {
			continue
		}
		out = append(out, point{start: start, end: end, at: r.Time})
	}
	return out
}
