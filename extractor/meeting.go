package extractor

import "time"

// Status is the enrollment status of a course block.
type Status string

const (
	StatusEnrolled Status = "Enrolled"
	StatusWaiting  Status = "Waiting"
	StatusDropped  Status = "Dropped"
)

// Component identifies the kind of class meeting.
type Component string

const (
	ComponentLecture    Component = "LEC"
	ComponentLaboratory Component = "LAB"
	ComponentTutorial   Component = "TUT"
)

// ClockTime is a time of day without a date or zone attached.
type ClockTime struct {
	Hour   int
	Minute int
}

// Minutes returns the time as minutes since midnight.
func (t ClockTime) Minutes() int {
	return t.Hour*60 + t.Minute
}

// ClassMeeting is one scheduled meeting row of the class schedule page. It is
// built once during parsing and never mutated afterwards.
type ClassMeeting struct {
	CourseCode  string
	CourseTitle string
	Status      Status
	Section     string
	Component   Component
	Days        []time.Weekday
	StartTime   ClockTime
	EndTime     ClockTime
	Room        string
	Building    string
	Instructor  string
	TermStart   time.Time
	TermEnd     time.Time
}
