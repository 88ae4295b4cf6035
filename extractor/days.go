package extractor

import (
	"fmt"
	"time"
)

// dayTokens maps the source system's two-letter weekday abbreviations onto Go
// weekdays. This table is the single place to extend when the source grows a
// new token.
var dayTokens = map[string]time.Weekday{
	"Mo": time.Monday,
	"Tu": time.Tuesday,
	"We": time.Wednesday,
	"Th": time.Thursday,
	"Fr": time.Friday,
	"Sa": time.Saturday,
	"Su": time.Sunday,
}

// splitDayTokens splits a concatenated day string like "MoWeFr" into
// weekdays, preserving token order and dropping repeats.
func splitDayTokens(s string) ([]time.Weekday, error) {
	if s == "" || len(s)%2 != 0 {
		return nil, fmt.Errorf("unrecognized day pattern %q", s)
	}
	var days []time.Weekday
	seen := make(map[time.Weekday]bool, len(dayTokens))
	for i := 0; i < len(s); i += 2 {
		token := s[i : i+2]
		day, ok := dayTokens[token]
		if !ok {
			return nil, fmt.Errorf("unrecognized day token %q", token)
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	return days, nil
}
