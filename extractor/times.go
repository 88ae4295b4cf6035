package extractor

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "01/02/2006"

// parseClockTime parses a time of day in the page's "1:30PM" form. Noon and
// midnight follow the 12-hour convention: 12:xxAM is 00:xx, 12:xxPM is 12:xx.
func parseClockTime(s string) (ClockTime, error) {
	var pm bool
	switch {
	case strings.HasSuffix(s, "AM"):
	case strings.HasSuffix(s, "PM"):
		pm = true
	default:
		return ClockTime{}, fmt.Errorf("time %q missing AM/PM suffix", s)
	}

	hhmm := strings.SplitN(strings.TrimSuffix(strings.TrimSuffix(s, "AM"), "PM"), ":", 2)
	if len(hhmm) != 2 {
		return ClockTime{}, fmt.Errorf("time %q is not in H:MM form", s)
	}
	hour, err := strconv.Atoi(hhmm[0])
	if err != nil || hour < 1 || hour > 12 {
		return ClockTime{}, fmt.Errorf("time %q has bad hour", s)
	}
	minute, err := strconv.Atoi(hhmm[1])
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("time %q has bad minute", s)
	}

	if pm && hour != 12 {
		hour += 12
	}
	if !pm && hour == 12 {
		hour = 0
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

// parseTimeRange parses a clock range like "10:00AM - 11:20AM".
func parseTimeRange(s string) (ClockTime, ClockTime, error) {
	parts := strings.SplitN(s, " - ", 2)
	if len(parts) != 2 {
		return ClockTime{}, ClockTime{}, fmt.Errorf("time range %q is not in start - end form", s)
	}
	start, err := parseClockTime(strings.TrimSpace(parts[0]))
	if err != nil {
		return ClockTime{}, ClockTime{}, err
	}
	end, err := parseClockTime(strings.TrimSpace(parts[1]))
	if err != nil {
		return ClockTime{}, ClockTime{}, err
	}
	return start, end, nil
}

// parseDateRange parses a term date range like "01/08/2024 - 04/12/2024".
func parseDateRange(s string) (time.Time, time.Time, error) {
	parts := strings.SplitN(s, " - ", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("date range %q is not in start - end form", s)
	}
	start, err := time.Parse(dateLayout, strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad start date in %q: %v", s, err)
	}
	end, err := time.Parse(dateLayout, strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad end date in %q: %v", s, err)
	}
	return start, end, nil
}
