package icalendar

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"schedule2ics/extractor"
)

const (
	prodID    = "-//schedule2ics//Class Schedule//EN"
	uidDomain = "schedule2ics"

	localStampLayout = "20060102T150405"
	utcStampLayout   = "20060102T150405Z"
)

// byDayOrder fixes the BYDAY emission order (WKST=MO) so identical inputs
// serialize identically.
var byDayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// byDayCodes maps Go weekdays onto RRULE BYDAY codes.
var byDayCodes = map[time.Weekday]string{
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
	time.Sunday:    "SU",
}

// BuildCalendar folds the meeting records into one calendar with a weekly
// recurring event per enrolled meeting. Nothing here reads the wall clock,
// so converting the same input twice yields byte-identical output.
func BuildCalendar(meetings []extractor.ClassMeeting, name, timezone string) (*ics.Calendar, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", timezone, err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(prodID)
	cal.SetXWRCalName(name)
	cal.SetXWRTimezone(timezone)

	uids := make(map[string]int)
	for i := range meetings {
		meeting := &meetings[i]
		if meeting.Status != extractor.StatusEnrolled {
			continue
		}
		addEvent(cal, meeting, loc, uids)
	}
	return cal, nil
}

func addEvent(cal *ics.Calendar, meeting *extractor.ClassMeeting, loc *time.Location, uids map[string]int) {
	date := firstOccurrence(meeting.TermStart, meeting.Days)
	start := atClockTime(date, meeting.StartTime, loc)
	end := atClockTime(date, meeting.EndTime, loc)
	until := time.Date(meeting.TermEnd.Year(), meeting.TermEnd.Month(), meeting.TermEnd.Day(),
		23, 59, 59, 0, loc)

	tzid := &ics.KeyValues{Key: string(ics.ParameterTzid), Value: []string{loc.String()}}

	event := cal.AddEvent(eventUID(meeting, uids))
	event.SetDtStampTime(time.Date(meeting.TermStart.Year(), meeting.TermStart.Month(),
		meeting.TermStart.Day(), 0, 0, 0, 0, time.UTC))
	event.SetProperty(ics.ComponentPropertyDtStart, start.Format(localStampLayout), tzid)
	event.SetProperty(ics.ComponentPropertyDtEnd, end.Format(localStampLayout), tzid)
	event.AddRrule(weeklyRule(meeting.Days, until))
	event.SetSummary(fmt.Sprintf("%s %s", meeting.CourseCode, meeting.Section))
	event.SetLocation(eventLocation(meeting))
	event.SetDescription(fmt.Sprintf("Name: %s | Component: %s | Instructor: %s",
		meeting.CourseTitle, meeting.Component, meeting.Instructor))
}

// firstOccurrence returns the earliest date on or after the term start whose
// weekday is in the day set.
func firstOccurrence(termStart time.Time, days []time.Weekday) time.Time {
	wanted := make(map[time.Weekday]bool, len(days))
	for _, day := range days {
		wanted[day] = true
	}
	date := termStart
	for i := 0; i < 6; i++ {
		if wanted[date.Weekday()] {
			break
		}
		date = date.AddDate(0, 0, 1)
	}
	return date
}

func atClockTime(date time.Time, t extractor.ClockTime, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, loc)
}

// weeklyRule builds a weekly RRULE limited to the meeting's days, ending at
// the term end inclusive. UNTIL is expressed in UTC to match the
// timezone-qualified DTSTART.
func weeklyRule(days []time.Weekday, until time.Time) string {
	wanted := make(map[time.Weekday]bool, len(days))
	for _, day := range days {
		wanted[day] = true
	}
	codes := make([]string, 0, len(days))
	for _, day := range byDayOrder {
		if wanted[day] {
			codes = append(codes, byDayCodes[day])
		}
	}
	return fmt.Sprintf("FREQ=WEEKLY;WKST=MO;BYDAY=%s;UNTIL=%s",
		strings.Join(codes, ","), until.UTC().Format(utcStampLayout))
}

// eventUID derives a stable identifier from course, section and day pattern.
// Duplicate rows get an ordinal suffix, in document order, so repeated rows
// stay distinct across runs.
func eventUID(meeting *extractor.ClassMeeting, uids map[string]int) string {
	pattern := make([]string, 0, len(meeting.Days))
	for _, day := range byDayOrder {
		for _, d := range meeting.Days {
			if d == day {
				pattern = append(pattern, strings.ToLower(byDayCodes[day]))
				break
			}
		}
	}
	base := fmt.Sprintf("%s-%s-%s", slug(meeting.CourseCode), slug(meeting.Section),
		strings.Join(pattern, ""))
	uids[base]++
	if n := uids[base]; n > 1 {
		base = fmt.Sprintf("%s-%d", base, n)
	}
	return base + "@" + uidDomain
}

func slug(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}

func eventLocation(meeting *extractor.ClassMeeting) string {
	if meeting.Building == "" {
		return meeting.Room
	}
	return fmt.Sprintf("%s, %s", meeting.Room, meeting.Building)
}
