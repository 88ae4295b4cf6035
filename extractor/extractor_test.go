package extractor

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const meetingHeaderRow = `<tr><th>Class Nbr</th><th>Section</th><th>Component</th>` +
	`<th>Days &amp; Times</th><th>Room</th><th>Instructor</th><th>Start/End Date</th></tr>`

func meetingRow(cells ...string) string {
	var b strings.Builder
	b.WriteString("<tr>")
	for _, cell := range cells {
		b.WriteString("<td><span>" + cell + "</span></td>")
	}
	b.WriteString("</tr>")
	return b.String()
}

func courseBlock(header, status string, rows ...string) string {
	return `<table class="PSGROUPBOXWBO">
<tr><td class="PAGROUPDIVIDER">` + header + `</td></tr>
<tr><td>
<table class="PSLEVEL3GRID">
<tr><th>Status</th><th>Units</th></tr>
<tr><td><span>` + status + `</span></td><td><span>3.00</span></td></tr>
</table>
<table class="PSLEVEL3GRID">` + meetingHeaderRow + strings.Join(rows, "") + `</table>
</td></tr>
</table>`
}

func page(blocks ...string) string {
	return "<html><body>" + strings.Join(blocks, "") + "</body></html>"
}

func lectureRow() string {
	return meetingRow("4321", "A01", "Lecture", "MoWe 10:00AM - 11:20AM",
		"MRN AUD (Marion Hall)", "Jane Doe", "01/08/2024 - 04/12/2024")
}

func TestParseSchedule(t *testing.T) {
	doc := page(courseBlock("CSI 2110 - Data Structures", "Enrolled",
		lectureRow(),
		meetingRow("&nbsp;", "&nbsp;", "&nbsp;", "Fr 1:00PM - 2:20PM",
			"STM 117", "Jane Doe", "01/08/2024 - 04/12/2024"),
	))

	meetings, err := ParseSchedule(strings.NewReader(doc), nil)
	require.NoError(t, err)
	require.Len(t, meetings, 2)

	lecture := meetings[0]
	require.Equal(t, "CSI 2110", lecture.CourseCode)
	require.Equal(t, "Data Structures", lecture.CourseTitle)
	require.Equal(t, StatusEnrolled, lecture.Status)
	require.Equal(t, "A01", lecture.Section)
	require.Equal(t, ComponentLecture, lecture.Component)
	require.Equal(t, []time.Weekday{time.Monday, time.Wednesday}, lecture.Days)
	require.Equal(t, ClockTime{Hour: 10}, lecture.StartTime)
	require.Equal(t, ClockTime{Hour: 11, Minute: 20}, lecture.EndTime)
	require.Equal(t, "MRN AUD", lecture.Room)
	require.Equal(t, "Marion Hall", lecture.Building)
	require.Equal(t, "Jane Doe", lecture.Instructor)
	require.Equal(t, time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC), lecture.TermStart)
	require.Equal(t, time.Date(2024, time.April, 12, 0, 0, 0, 0, time.UTC), lecture.TermEnd)

	// blank section and component cells inherit from the row above
	second := meetings[1]
	require.Equal(t, "A01", second.Section)
	require.Equal(t, ComponentLecture, second.Component)
	require.Equal(t, []time.Weekday{time.Friday}, second.Days)
	require.Equal(t, ClockTime{Hour: 13}, second.StartTime)
	require.Equal(t, "STM 117", second.Room)
	require.Equal(t, "", second.Building)
}

func TestParseScheduleMultipleCourses(t *testing.T) {
	doc := page(
		courseBlock("CSI 2110 - Data Structures", "Enrolled", lectureRow()),
		courseBlock("MAT 1322 - Calculus II", "Waiting",
			meetingRow("8765", "B02", "Tutorial", "Th 8:30AM - 9:50AM",
				"SITE G0103", "John Roe", "01/08/2024 - 04/12/2024")),
	)

	meetings, err := ParseSchedule(strings.NewReader(doc), nil)
	require.NoError(t, err)
	require.Len(t, meetings, 2)
	require.Equal(t, "CSI 2110", meetings[0].CourseCode)
	require.Equal(t, "MAT 1322", meetings[1].CourseCode)
	require.Equal(t, StatusWaiting, meetings[1].Status)
	require.Equal(t, ComponentTutorial, meetings[1].Component)
}

func TestParseScheduleUnknownDayToken(t *testing.T) {
	doc := page(courseBlock("CSI 2110 - Data Structures", "Enrolled",
		meetingRow("4321", "A01", "Lecture", "MoXx 10:00AM - 11:20AM",
			"MRN AUD", "Jane Doe", "01/08/2024 - 04/12/2024")))

	_, err := ParseSchedule(strings.NewReader(doc), nil)
	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	require.Equal(t, "CSI 2110", rowErr.Course)
	require.Equal(t, 1, rowErr.Row)
	require.Equal(t, "days", rowErr.Field)
	require.Contains(t, rowErr.Error(), `"Xx"`)
}

func TestParseScheduleBadRows(t *testing.T) {
	cases := []struct {
		name  string
		row   string
		field string
	}{
		{
			name: "start after end",
			row: meetingRow("4321", "A01", "Lecture", "Mo 11:00AM - 10:00AM",
				"MRN AUD", "Jane Doe", "01/08/2024 - 04/12/2024"),
			field: "times",
		},
		{
			name: "garbled time",
			row: meetingRow("4321", "A01", "Lecture", "Mo 10:00 - 11:20",
				"MRN AUD", "Jane Doe", "01/08/2024 - 04/12/2024"),
			field: "times",
		},
		{
			name: "term start after term end",
			row: meetingRow("4321", "A01", "Lecture", "Mo 10:00AM - 11:20AM",
				"MRN AUD", "Jane Doe", "04/12/2024 - 01/08/2024"),
			field: "dates",
		},
		{
			name: "missing end date",
			row: meetingRow("4321", "A01", "Lecture", "Mo 10:00AM - 11:20AM",
				"MRN AUD", "Jane Doe", "01/08/2024"),
			field: "dates",
		},
		{
			name: "unknown component",
			row: meetingRow("4321", "A01", "Seminar", "Mo 10:00AM - 11:20AM",
				"MRN AUD", "Jane Doe", "01/08/2024 - 04/12/2024"),
			field: "component",
		},
		{
			name: "blank section on first row",
			row: meetingRow("&nbsp;", "&nbsp;", "Lecture", "Mo 10:00AM - 11:20AM",
				"MRN AUD", "Jane Doe", "01/08/2024 - 04/12/2024"),
			field: "section",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := page(courseBlock("CSI 2110 - Data Structures", "Enrolled", tc.row))
			_, err := ParseSchedule(strings.NewReader(doc), nil)
			var rowErr *RowError
			require.ErrorAs(t, err, &rowErr)
			require.Equal(t, tc.field, rowErr.Field)
			require.Equal(t, 1, rowErr.Row)
		})
	}
}

func TestParseScheduleMalformedDocument(t *testing.T) {
	doc := "<html><body><p>not a schedule</p></body></html>"
	meetings, err := ParseSchedule(strings.NewReader(doc), nil)
	require.ErrorIs(t, err, ErrMalformedDocument)
	require.Nil(t, meetings)
}

func TestParseScheduleEmptyTable(t *testing.T) {
	doc := page(courseBlock("CSI 2110 - Data Structures", "Enrolled"))
	meetings, err := ParseSchedule(strings.NewReader(doc), nil)
	require.NoError(t, err)
	require.Empty(t, meetings)
}

func TestParseScheduleUnknownStatus(t *testing.T) {
	doc := page(courseBlock("CSI 2110 - Data Structures", "Pending", lectureRow()))
	_, err := ParseSchedule(strings.NewReader(doc), nil)
	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	require.Equal(t, "status", rowErr.Field)
}

func TestSplitDayTokens(t *testing.T) {
	cases := []struct {
		in   string
		want []time.Weekday
		ok   bool
	}{
		{"Mo", []time.Weekday{time.Monday}, true},
		{"MoWeFr", []time.Weekday{time.Monday, time.Wednesday, time.Friday}, true},
		{"TuTh", []time.Weekday{time.Tuesday, time.Thursday}, true},
		{"SaSu", []time.Weekday{time.Saturday, time.Sunday}, true},
		{"MoMo", []time.Weekday{time.Monday}, true},
		{"TBA", nil, false},
		{"Xx", nil, false},
		{"MoW", nil, false},
		{"", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			days, err := splitDayTokens(tc.in)
			if !tc.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, days)
		})
	}
}

func TestParseClockTime(t *testing.T) {
	cases := []struct {
		in   string
		want ClockTime
		ok   bool
	}{
		{"9:05AM", ClockTime{Hour: 9, Minute: 5}, true},
		{"10:00AM", ClockTime{Hour: 10}, true},
		{"1:30PM", ClockTime{Hour: 13, Minute: 30}, true},
		{"12:00PM", ClockTime{Hour: 12}, true},
		{"12:00AM", ClockTime{}, true},
		{"11:59PM", ClockTime{Hour: 23, Minute: 59}, true},
		{"10:00", ClockTime{}, false},
		{"13:00PM", ClockTime{}, false},
		{"10:75AM", ClockTime{}, false},
		{"AM", ClockTime{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseClockTime(tc.in)
			if !tc.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
