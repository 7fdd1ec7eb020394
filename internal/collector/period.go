package collector

import (
	"fmt"
	"strings"
)

// DefaultPeriodDays is used when no period is given.
const DefaultPeriodDays = 30

var periods = map[string]int{
	"7": 7, "7d": 7,
	"30": 30, "30d": 30,
	"90": 90, "90d": 90,
	"365": 365, "365d": 365, "1y": 365,
}

// ParsePeriod converts a history period such as "7d" or "1y" to days.
func ParsePeriod(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultPeriodDays, nil
	}
	if d, ok := periods[s]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("unsupported period %q (use 7d, 30d, 90d or 1y)", s)
}
