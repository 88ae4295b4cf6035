package extractor

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// A meeting row carries class number, section, component, days & times, room,
// instructor and start/end date cells, in that order.
const rowCellCount = 7

// RowMatcher locates the schedule structure inside a parsed document. The
// page markers are brittle, so format drift is handled by swapping the
// matcher rather than rewriting the extractor.
type RowMatcher interface {
	// CourseHeaders returns the course header cells, one per course block.
	CourseHeaders(doc *goquery.Document) *goquery.Selection
	// StatusCell returns the enrollment status cell of a course block.
	StatusCell(header *goquery.Selection) *goquery.Selection
	// MeetingRows returns the meeting table rows of a course block,
	// header rows included.
	MeetingRows(header *goquery.Selection) *goquery.Selection
}

// ListViewMatcher matches the "List View" layout of the saved schedule page:
// course blocks marked by PAGROUPDIVIDER cells, each followed by two
// PSLEVEL3GRID tables holding the status and the meeting rows.
type ListViewMatcher struct{}

func (ListViewMatcher) CourseHeaders(doc *goquery.Document) *goquery.Selection {
	return doc.Find(".PAGROUPDIVIDER")
}

func (ListViewMatcher) StatusCell(header *goquery.Selection) *goquery.Selection {
	return blockGrids(header).Eq(0).Find("td").First()
}

func (ListViewMatcher) MeetingRows(header *goquery.Selection) *goquery.Selection {
	return blockGrids(header).Eq(1).Find("tr")
}

func blockGrids(header *goquery.Selection) *goquery.Selection {
	return header.Closest("table").Find("table.PSLEVEL3GRID")
}

// ParseSchedule parses the saved schedule page into meeting records, in
// document order. A nil matcher selects the List View matcher.
func ParseSchedule(r io.Reader, matcher RowMatcher) ([]ClassMeeting, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	if matcher == nil {
		matcher = ListViewMatcher{}
	}

	headers := matcher.CourseHeaders(doc)
	if headers.Length() == 0 {
		// A schedule with no enrollments still renders the grid
		// structure; a page without either is not a schedule at all.
		if doc.Find("table.PSLEVEL3GRID").Length() == 0 {
			return nil, ErrMalformedDocument
		}
		return nil, nil
	}

	var meetings []ClassMeeting
	var parseErr error
	headers.EachWithBreak(func(_ int, header *goquery.Selection) bool {
		block, err := parseCourseBlock(header, matcher)
		if err != nil {
			parseErr = err
			return false
		}
		meetings = append(meetings, block...)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return meetings, nil
}

func parseCourseBlock(header *goquery.Selection, matcher RowMatcher) ([]ClassMeeting, error) {
	code, title := splitCourseHeader(strings.TrimSpace(header.Text()))

	statusCell := matcher.StatusCell(header)
	if statusCell.Length() == 0 {
		return nil, fmt.Errorf("course %s: %w", code, ErrMalformedDocument)
	}
	status, err := parseStatus(cellText(statusCell))
	if err != nil {
		return nil, &RowError{Course: code, Row: 0, Field: "status", Err: err}
	}

	var meetings []ClassMeeting
	var rowErr error
	row := 0
	matcher.MeetingRows(header).EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		cells := rowCells(tr)
		if cells == nil {
			return true
		}
		row++

		var prev *ClassMeeting
		if len(meetings) > 0 {
			prev = &meetings[len(meetings)-1]
		}
		meeting, err := parseMeetingRow(code, title, status, cells, prev, row)
		if err != nil {
			rowErr = err
			return false
		}
		meetings = append(meetings, meeting)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	return meetings, nil
}

// rowCells collects the data cell texts of a meeting row. Header rows (th
// cells) and filler rows come back as nil.
func rowCells(tr *goquery.Selection) []string {
	tds := tr.Find("td")
	if tds.Length() < rowCellCount {
		return nil
	}
	cells := make([]string, 0, rowCellCount)
	empty := true
	tds.EachWithBreak(func(_ int, td *goquery.Selection) bool {
		text := cellText(td)
		if text != "" {
			empty = false
		}
		cells = append(cells, text)
		return len(cells) < rowCellCount
	})
	if empty {
		return nil
	}
	return cells
}

// cellText returns the trimmed text of the first span within a cell. The
// page fills blank cells with a bare non-breaking space, which trims away.
func cellText(cell *goquery.Selection) string {
	span := cell.Find("span").First()
	if span.Length() == 0 {
		return strings.TrimSpace(cell.Text())
	}
	return strings.TrimSpace(span.Text())
}

func parseMeetingRow(code, title string, status Status, cells []string, prev *ClassMeeting, row int) (ClassMeeting, error) {
	section := cells[1]
	if section == "" {
		if prev == nil {
			return ClassMeeting{}, &RowError{Course: code, Row: row, Field: "section",
				Err: fmt.Errorf("blank cell with no previous row to inherit from")}
		}
		section = prev.Section
	}

	component, err := parseComponent(cells[2], prev)
	if err != nil {
		return ClassMeeting{}, &RowError{Course: code, Row: row, Field: "component", Err: err}
	}

	dayPart, timePart, found := strings.Cut(cells[3], " ")
	if !found {
		return ClassMeeting{}, &RowError{Course: code, Row: row, Field: "days & times",
			Err: fmt.Errorf("cell %q is not in days time-range form", cells[3])}
	}
	days, err := splitDayTokens(dayPart)
	if err != nil {
		return ClassMeeting{}, &RowError{Course: code, Row: row, Field: "days", Err: err}
	}
	start, end, err := parseTimeRange(timePart)
	if err != nil {
		return ClassMeeting{}, &RowError{Course: code, Row: row, Field: "times", Err: err}
	}
	if start.Minutes() >= end.Minutes() {
		return ClassMeeting{}, &RowError{Course: code, Row: row, Field: "times",
			Err: fmt.Errorf("start is not before end in %q", cells[3])}
	}

	room, building := splitRoom(cells[4])

	termStart, termEnd, err := parseDateRange(cells[6])
	if err != nil {
		return ClassMeeting{}, &RowError{Course: code, Row: row, Field: "dates", Err: err}
	}
	if termStart.After(termEnd) {
		return ClassMeeting{}, &RowError{Course: code, Row: row, Field: "dates",
			Err: fmt.Errorf("term start %q is after term end", cells[6])}
	}

	return ClassMeeting{
		CourseCode:  code,
		CourseTitle: title,
		Status:      status,
		Section:     section,
		Component:   component,
		Days:        days,
		StartTime:   start,
		EndTime:     end,
		Room:        room,
		Building:    building,
		Instructor:  cells[5],
		TermStart:   termStart,
		TermEnd:     termEnd,
	}, nil
}

// splitCourseHeader splits a header like "CSI 2110 - Data Structures" into
// code and title.
func splitCourseHeader(header string) (code, title string) {
	parts := strings.SplitN(header, " - ", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return header, ""
}

func parseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusEnrolled, StatusWaiting, StatusDropped:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown enrollment status %q", s)
}

// parseComponent maps the page's component names onto their short codes. A
// blank cell inherits the component of the previous row.
func parseComponent(s string, prev *ClassMeeting) (Component, error) {
	switch s {
	case "Lecture":
		return ComponentLecture, nil
	case "Laboratory":
		return ComponentLaboratory, nil
	case "Tutorial":
		return ComponentTutorial, nil
	case "":
		if prev == nil {
			return "", fmt.Errorf("blank cell with no previous row to inherit from")
		}
		return prev.Component, nil
	}
	return "", fmt.Errorf("unknown component %q", s)
}

// splitRoom splits a room cell like "MRN AUD (Marion Hall)" into room and
// building. Without parentheses the whole cell is the room.
func splitRoom(s string) (room, building string) {
	room, building, found := strings.Cut(s, " (")
	if !found {
		return s, ""
	}
	return room, strings.TrimSuffix(building, ")")
}
