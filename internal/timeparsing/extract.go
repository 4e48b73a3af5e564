package timeparsing

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// impliedHour is the hour given to expressions that name a day but no time.
const impliedHour = 12

// Expression is a date or date range found in free text.
// Start and End are nil when the expression does not resolve them; single
// dates resolve Start only.
type Expression struct {
	Text  string     // Matched substring, for diagnostics
	Index int        // Byte offset of Text in the source string
	Start *time.Time // Resolved start instant
	End   *time.Time // Resolved end instant (ranges only)
}

// IsRange reports whether the expression resolved an end instant.
func (e Expression) IsRange() bool {
	return e.End != nil
}

// Parser extracts date expressions from text.
// The zero value finds calendar dates only; NewParser also enables
// natural-language expressions such as "tomorrow".
type Parser struct {
	Casual bool // Also report natural-language expressions
}

// NewParser returns a parser that finds calendar dates and
// natural-language expressions.
func NewParser() *Parser {
	return &Parser{Casual: true}
}

// Extract returns the expressions in text, ordered by position.
// Partial dates (no year) are anchored to ref. Two dates joined by a range
// separator ("to", "until", "-") form one expression with both Start and End.
func (p *Parser) Extract(text string, ref time.Time) []Expression {
	points := calendarPoints(text)
	if p != nil && p.Casual {
		for _, c := range casualPoints(text, ref) {
			if !overlapsAny(c, points) {
				points = append(points, c)
			}
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].start < points[j].start
	})
	return joinRanges(text, points, ref)
}

// Extract finds expressions with a default parser (calendar and natural language).
func Extract(text string, ref time.Time) []Expression {
	return NewParser().Extract(text, ref)
}

// point is a single date located in text. Calendar points carry the
// written date and are resolved against ref on demand; casual points are
// already resolved.
type point struct {
	start, end int
	date       *dateMatch
	at         time.Time
}

func (pt point) resolve(ref time.Time, yearHint int) time.Time {
	if pt.date == nil {
		return pt.at
	}
	return pt.date.resolve(ref, yearHint)
}

func overlapsAny(pt point, others []point) bool {
	for _, o := range others {
		if pt.start < o.end && o.start < pt.end {
			return true
		}
	}
	return false
}

func calendarPoints(text string) []point {
	matches := findDates(text)
	points := make([]point, 0, len(matches))
	for i := range matches {
		m := matches[i]
		points = append(points, point{start: m.start, end: m.end, date: &m})
	}
	return points
}

const monthPattern = `(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

const ordinalSuffix = `(?:st|nd|rd|th)?`

var (
	// 2020-01-31
	isoDateRe = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)

	// Jan 31, January 31st, Jan. 31 2021
	monthDayRe = regexp.MustCompile(`(?i)\b` + monthPattern + `\.?\s*(\d{1,2})` + ordinalSuffix + `\b(?:,?\s+(\d{4})\b)?`)

	// 31 Jan, 31st of January 2021
	dayMonthRe = regexp.MustCompile(`(?i)\b(\d{1,2})` + ordinalSuffix + `\s+(?:of\s+)?` + monthPattern + `\b\.?(?:,?\s+(\d{4})\b)?`)

	// 1/31, 1/31/2021, 1/31/21
	numericDateRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{4}|\d{2}))?\b`)

	// Joins the two halves of a range.
	rangeSepRe = regexp.MustCompile(`(?i)^\s*(?:-|–|—|(?:to|until|till|through|thru)\b)\s*`)

	// Bare day closing a range: "Jan 3-5"
	bareDayRe = regexp.MustCompile(`(?i)^(\d{1,2})` + ordinalSuffix + `\b`)
)

// dateMatch is a calendar date located in text. year is 0 when not written.
type dateMatch struct {
	start, end int
	year       int
	month      time.Month
	day        int
}

// joinRanges turns ordered points into expressions, pairing each point
// with the one that directly follows a range separator.
func joinRanges(text string, points []point, ref time.Time) []Expression {
	var exprs []Expression
	for i := 0; i < len(points); i++ {
		pt := points[i]
		startTime := pt.resolve(ref, 0)
		spanEnd := pt.end
		var end *time.Time

		if sep := rangeSepRe.FindString(text[pt.end:]); sep != "" {
			rest := pt.end + len(sep)
			year := startTime.Year()
			if pt.date != nil && pt.date.year != 0 {
				year = pt.date.year
			}

			switch {
			case i+1 < len(points) && points[i+1].start == rest:
				next := points[i+1]
				endTime := next.resolve(ref, year)
				if next.date != nil && next.date.year == 0 && endTime.Before(startTime) {
					endTime = endTime.AddDate(1, 0, 0)
				}
				end = &endTime
				spanEnd = next.end
				i++
			case pt.date != nil:
				if loc := bareDayRe.FindStringSubmatchIndex(text[rest:]); loc != nil {
					day, _ := strconv.Atoi(text[rest+loc[2] : rest+loc[3]])
					if validDay(year, pt.date.month, day) {
						endTime := time.Date(year, pt.date.month, day, impliedHour, 0, 0, 0, ref.Location())
						if endTime.Before(startTime) {
							endTime = endTime.AddDate(0, 1, 0)
						}
						end = &endTime
						spanEnd = rest + loc[1]
					}
				}
			}
		}

		exprs = append(exprs, Expression{
			Text:  text[pt.start:spanEnd],
			Index: pt.start,
			Start: &startTime,
			End:   end,
		})
	}
	return exprs
}

// findDates returns non-overlapping date matches ordered by position.
// When candidates overlap, the earliest (then longest) wins.
func findDates(text string) []dateMatch {
	var candidates []dateMatch

	for _, loc := range isoDateRe.FindAllStringSubmatchIndex(text, -1) {
		year := atoi(text, loc[2], loc[3])
		month := atoi(text, loc[4], loc[5])
		day := atoi(text, loc[6], loc[7])
		candidates = appendValid(candidates, loc[0], loc[1], year, month, day)
	}
	for _, loc := range monthDayRe.FindAllStringSubmatchIndex(text, -1) {
		month := monthNumber(text[loc[2]:loc[3]])
		day := atoi(text, loc[4], loc[5])
		year := atoi(text, loc[6], loc[7])
		candidates = appendValid(candidates, loc[0], loc[1], year, month, day)
	}
	for _, loc := range dayMonthRe.FindAllStringSubmatchIndex(text, -1) {
		day := atoi(text, loc[2], loc[3])
		month := monthNumber(text[loc[4]:loc[5]])
		year := atoi(text, loc[6], loc[7])
		candidates = appendValid(candidates, loc[0], loc[1], year, month, day)
	}
	for _, loc := range numericDateRe.FindAllStringSubmatchIndex(text, -1) {
		month := atoi(text, loc[2], loc[3])
		day := atoi(text, loc[4], loc[5])
		year := atoi(text, loc[6], loc[7])
		if year > 0 && year < 100 {
			year += 2000
		}
		candidates = appendValid(candidates, loc[0], loc[1], year, month, day)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].start != candidates[j].start {
			return candidates[i].start < candidates[j].start
		}
		return candidates[i].end > candidates[j].end
	})

	var out []dateMatch
	lastEnd := -1
	for _, c := range candidates {
		if c.start < lastEnd {
			continue
		}
		out = append(out, c)
		lastEnd = c.end
	}
	return out
}

func appendValid(dst []dateMatch, start, end, year, month, day int) []dateMatch {
	if month < 1 || month > 12 {
		return dst
	}
	checkYear := year
	if checkYear == 0 {
		checkYear = 2000 // leap year, so Feb 29 passes
	}
	if !validDay(checkYear, time.Month(month), day) {
		return dst
	}
	return append(dst, dateMatch{start: start, end: end, year: year, month: time.Month(month), day: day})
}

// resolve turns the match into an instant in ref's location. Without a
// written year it uses yearHint when non-zero, otherwise the year that puts
// the date closest to ref.
func (m dateMatch) resolve(ref time.Time, yearHint int) time.Time {
	loc := ref.Location()
	if m.year != 0 {
		return time.Date(m.year, m.month, m.day, impliedHour, 0, 0, 0, loc)
	}
	if yearHint != 0 && validDay(yearHint, m.month, m.day) {
		return time.Date(yearHint, m.month, m.day, impliedHour, 0, 0, 0, loc)
	}

	var best time.Time
	var bestDist time.Duration = -1
	for _, y := range []int{ref.Year() - 1, ref.Year(), ref.Year() + 1} {
		if !validDay(y, m.month, m.day) {
			continue
		}
		t := time.Date(y, m.month, m.day, impliedHour, 0, 0, 0, loc)
		dist := t.Sub(ref)
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = t, dist
		}
	}
	return best
}

func validDay(year int, month time.Month, day int) bool {
	if day < 1 || day > 31 {
		return false
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Day() == day
}

func monthNumber(name string) int {
	prefix := strings.ToLower(name)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	switch prefix {
	case "jan":
		return 1
	case "feb":
		return 2
	case "mar":
		return 3
	case "apr":
		return 4
	case "may":
		return 5
	case "jun":
		return 6
	case "jul":
		return 7
	case "aug":
		return 8
	case "sep":
		return 9
	case "oct":
		return 10
	case "nov":
		return 11
	case "dec":
		return 12
	}
	return 0
}

// atoi returns the integer in text[start:end], or 0 for an unmatched group.
func atoi(text string, start, end int) int {
	if start < 0 {
		return 0
	}
	n, err := strconv.Atoi(text[start:end])
	if err != nil {
		return 0
	}
	return n
}
