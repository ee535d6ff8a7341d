package recurrence

import "fmt"

type Pattern string

const (
	PatternWeekly  Pattern = "WEEKLY"
	PatternMonthly Pattern = "MONTHLY"
)

var patternTable = map[Pattern]string{
	PatternWeekly:  "selected weekdays every N weeks",
	PatternMonthly: "a fixed day of the month every N months",
}

func ParsePattern(s string) (Pattern, error) {
	p := Pattern(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPattern, s)
	}
	return p, nil
}

func (p Pattern) String() string {
	return string(p)
}

func (p Pattern) IsValid() bool {
	_, ok := patternTable[p]
	return ok
}

func (p Pattern) Describe() string {
	return patternTable[p]
}
