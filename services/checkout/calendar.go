package checkout

import (
	"time"

	"motoschool/models"
)

// The booking calendar is a fixed 6-week window starting from the Monday of
// the reference week.
const (
	gridWeeks = 6
	gridDays  = gridWeeks * 7
)

// dayAggregate is the merged view of every event sharing one calendar date.
// Upstream should send at most one event per date; when it does not, the
// capacities are summed, availability is the OR of the contributors, and the
// first available contributor's id wins. Deterministic for identical input.
type dayAggregate struct {
	spaces    int
	available bool
	eventID   string
}

// BuildCalendarWeeks projects course events onto a 6x7 Monday-anchored grid
// of calendar cells. Pure function: no clock reads, no side effects, safe to
// call repeatedly.
func BuildCalendarWeeks(referenceDate time.Time, events []models.CourseEvent) []models.CalendarWeek {
	today := truncateToDay(referenceDate)

	// Offset back to Monday. Go's Weekday has Sunday=0, so (wd+6)%7 yields
	// 0 for Monday through 6 for Sunday.
	offset := (int(today.Weekday()) + 6) % 7
	monday := today.AddDate(0, 0, -offset)

	byDate := make(map[string]dayAggregate, len(events))
	for _, ev := range events {
		key := ev.DateOnly()
		agg := byDate[key]
		if agg.eventID == "" {
			agg.eventID = ev.CourseEventID
		}
		if ev.Available && !agg.available {
			agg.eventID = ev.CourseEventID
		}
		agg.available = agg.available || ev.Available
		agg.spaces += ev.AvailableSpaces
		byDate[key] = agg
	}

	weeks := make([]models.CalendarWeek, gridWeeks)
	for i := 0; i < gridDays; i++ {
		day := monday.AddDate(0, 0, i)
		cell := models.CalendarCell{Date: day}

		if agg, ok := byDate[day.Format(models.DateLayout)]; ok {
			cell.Spots = agg.spaces
			cell.CourseEventID = agg.eventID
			// A day strictly before today is never bookable, whatever the
			// event claims.
			cell.Available = agg.available && !day.Before(today)
		}

		weeks[i/7].Days[i%7] = cell
	}
	return weeks
}

// FindCell locates the grid cell for a YYYY-MM-DD date string, or nil when
// the date falls outside the 6-week window.
func FindCell(weeks []models.CalendarWeek, date string) *models.CalendarCell {
	for w := range weeks {
		for d := range weeks[w].Days {
			if weeks[w].Days[d].Date.Format(models.DateLayout) == date {
				return &weeks[w].Days[d]
			}
		}
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
