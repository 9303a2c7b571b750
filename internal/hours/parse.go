package hours

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// WeeklyRule is the normalized schedule for one weekday.
// Weekday is 1=Sunday..7=Saturday. Open and Close are minutes since local
// midnight and are meaningless when Closed is set.
type WeeklyRule struct {
	Weekday int
	Open    int
	Close   int
	Closed  bool
}

// IsOvernight reports whether the window crosses midnight.
func (r WeeklyRule) IsOvernight() bool {
	return !r.Closed && r.Close <= r.Open
}

// Schedule holds at most one rule per weekday. The first rule seen for a
// weekday wins; later lines naming the same day are ignored.
type Schedule struct {
	rules [7]WeeklyRule
	set   [7]bool
}

// Rule returns the rule for weekday (1=Sunday), if any.
func (s Schedule) Rule(weekday int) (WeeklyRule, bool) {
	if weekday < 1 || weekday > 7 || !s.set[weekday-1] {
		return WeeklyRule{}, false
	}
	return s.rules[weekday-1], true
}

// Empty reports whether no weekday has a rule.
func (s Schedule) Empty() bool {
	for _, ok := range s.set {
		if ok {
			return false
		}
	}
	return true
}

// Rules returns the retained rules ordered by weekday.
func (s Schedule) Rules() []WeeklyRule {
	var out []WeeklyRule
	for i, ok := range s.set {
		if ok {
			out = append(out, s.rules[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out
}

func (s *Schedule) add(r WeeklyRule) {
	i := r.Weekday - 1
	if i < 0 || i > 6 || s.set[i] {
		return
	}
	s.rules[i] = r
	s.set[i] = true
}

// ParseWeekly turns weekly rule lines into a Schedule. When no line yields a
// rule, fallback is split into segments and parsed the same way.
func ParseWeekly(lines []string, fallback string) Schedule {
	var s Schedule
	for _, line := range lines {
		for _, r := range parseLine(line) {
			s.add(r)
		}
	}
	if !s.Empty() {
		return s
	}
	for _, seg := range fallbackSplitter.Split(fallback, -1) {
		for _, r := range parseLine(seg) {
			s.add(r)
		}
	}
	return s
}

var (
	punctuationReplacer = strings.NewReplacer(
		"\u2013", "-", // en dash
		"\u2014", "-", // em dash
		"\u2012", "-",
		"\u2010", "-",
		"\u2011", "-",
		"\u2212", "-", // minus sign
		"\u00a0", " ",
		"\u202f", " ",
		"\u2009", " ",
	)
	whitespaceRun = regexp.MustCompile(`\s+`)

	fallbackSplitter = regexp.MustCompile(`[;\n|]+`)

	allDayPhrase = regexp.MustCompile(`24/7|24 ?hours|24 ?hrs|open all day|always open|around the clock`)
	closedWord   = regexp.MustCompile(`\bclosed\b`)
	everyDay     = regexp.MustCompile(`\bdaily\b|\bevery ?day\b`)
	timeRange    = regexp.MustCompile(`(\d{1,2})[:.h](\d{2})\s*(?:-|to)\s*(\d{1,2})[:.h](\d{2})`)
	letters      = regexp.MustCompile(`[a-z]+`)

	dayListReplacer = strings.NewReplacer(
		"&", ",",
		"/", ",",
		" and ", ",",
		" to ", "-",
		" through ", "-",
		" thru ", "-",
	)
)

// normalize lowercases the line and folds dash and space variants.
func normalize(line string) string {
	s := strings.ToLower(punctuationReplacer.Replace(line))
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// parseLine extracts the rules described by one line of schedule text.
// An unparseable line yields nil.
func parseLine(raw string) []WeeklyRule {
	line := normalize(raw)
	if line == "" {
		return nil
	}

	if allDayPhrase.MatchString(line) {
		rules := make([]WeeklyRule, 0, 7)
		for d := 1; d <= 7; d++ {
			rules = append(rules, WeeklyRule{Weekday: d, Open: 0, Close: 23*60 + 59})
		}
		return rules
	}

	if loc := closedWord.FindStringIndex(line); loc != nil {
		var days []int
		if everyDay.MatchString(line) {
			days = allWeek()
		} else {
			days = parseDays(line[:loc[0]])
		}
		rules := make([]WeeklyRule, 0, len(days))
		for _, d := range days {
			rules = append(rules, WeeklyRule{Weekday: d, Closed: true})
		}
		return rules
	}

	m := timeRange.FindStringSubmatchIndex(line)
	if m == nil {
		return nil
	}
	open, ok := clockMinutes(line[m[2]:m[3]], line[m[4]:m[5]])
	if !ok {
		return nil
	}
	closeAt, ok := clockMinutes(line[m[6]:m[7]], line[m[8]:m[9]])
	if !ok {
		return nil
	}

	prefix := line[:m[0]]
	days := parseDays(prefix)
	if len(days) == 0 {
		// A bare "09:00-18:00" applies to the whole week.
		days = allWeek()
	}
	rules := make([]WeeklyRule, 0, len(days))
	for _, d := range days {
		rules = append(rules, WeeklyRule{Weekday: d, Open: open, Close: closeAt})
	}
	return rules
}

// clockMinutes converts "HH" and "MM" into minutes since midnight.
// "24:00" maps to 0 so that a window ending at midnight is overnight and
// closes at the start of the next day.
func clockMinutes(hh, mm string) (int, bool) {
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m > 59 {
		return 0, false
	}
	switch {
	case h == 24 && m == 0:
		return 0, true
	case h > 23:
		return 0, false
	}
	return h*60 + m, true
}

// parseClock parses a strict "HH:MM" value as used by exception rules.
func parseClock(s string) (int, bool) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(mm) != 2 {
		return 0, false
	}
	return clockMinutes(hh, mm)
}

var (
	dayAbbrevs = [7]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}
	dayNames   = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
)

func allWeek() []int { return []int{1, 2, 3, 4, 5, 6, 7} }

// wordDays maps a single word to the weekdays it names.
func wordDays(w string) []int {
	switch w {
	case "daily", "everyday":
		return allWeek()
	case "weekdays", "weekday":
		return []int{2, 3, 4, 5, 6}
	case "weekend", "weekends":
		return []int{7, 1}
	case "weds":
		return []int{4}
	}
	if len(w) < 3 {
		return nil
	}
	for i, name := range dayNames {
		if strings.HasPrefix(w, dayAbbrevs[i]) && strings.HasPrefix(name+"s", w) {
			return []int{i + 1}
		}
	}
	return nil
}

// firstDay returns the first single weekday named in s.
func firstDay(s string) (int, bool) {
	for _, w := range letters.FindAllString(s, -1) {
		if d := wordDays(w); len(d) == 1 {
			return d[0], true
		}
	}
	return 0, false
}

// parseDays reads a weekday list such as "mon-fri", "sat & sun",
// "tue, thu" or "fri-mon" (wrapping through the weekend). Duplicates are
// dropped; order follows first mention.
func parseDays(s string) []int {
	if everyDay.MatchString(s) {
		return allWeek()
	}
	s = dayListReplacer.Replace(" " + s + " ")

	var (
		days []int
		seen [8]bool
	)
	add := func(ds ...int) {
		for _, d := range ds {
			if !seen[d] {
				seen[d] = true
				days = append(days, d)
			}
		}
	}

	for _, part := range strings.Split(s, ",") {
		if from, to, ok := strings.Cut(part, "-"); ok {
			a, okA := firstDay(from)
			b, okB := firstDay(to)
			if okA && okB {
				add(daySpan(a, b)...)
				continue
			}
		}
		for _, w := range letters.FindAllString(part, -1) {
			add(wordDays(w)...)
		}
	}
	return days
}

// daySpan lists weekdays from a to b inclusive, wrapping past Saturday.
func daySpan(a, b int) []int {
	var out []int
	for d := a; ; d = d%7 + 1 {
		out = append(out, d)
		if d == b {
			return out
		}
	}
}
