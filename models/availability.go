package models

import "time"

// DateLayout is the wire format for calendar dates crossing the upstream
// API boundary.
const DateLayout = "2006-01-02"

// CourseEvent is one scheduled, bookable day-instance of a course at a
// location. Owned by the upstream school API; read-only here.
type CourseEvent struct {
	Date            string `json:"date"`
	Available       bool   `json:"available"`
	AvailableSpaces int    `json:"available_spaces"`
	EventStartTime  string `json:"event_start_time,omitempty"`
	EventEndTime    string `json:"event_end_time,omitempty"`
	CourseEventID   string `json:"course_event_id"`
}

// DateOnly returns the event date truncated to day granularity. Upstream
// sometimes sends full timestamps; only the calendar date matters for grid
// matching.
func (e CourseEvent) DateOnly() string {
	if len(e.Date) >= len(DateLayout) {
		return e.Date[:len(DateLayout)]
	}
	return e.Date
}

// CalendarCell is one day in the 6-week booking grid. Ephemeral; recomputed
// from scratch whenever the selection or the reference day changes.
type CalendarCell struct {
	Date          time.Time `json:"date"`
	Available     bool      `json:"available"`
	Spots         int       `json:"spots"`
	CourseEventID string    `json:"courseEventId,omitempty"`
}

// CalendarWeek is one Monday-to-Sunday row of the grid.
type CalendarWeek struct {
	Days [7]CalendarCell `json:"days"`
}
