package booking

import (
	"fmt"
	"time"
)

var weekdayHeaders = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DayCell is one selectable day of the month grid.
type DayCell struct {
	Day      int    `json:"day"`
	Date     string `json:"date"`
	Today    bool   `json:"today"`
	Past     bool   `json:"past"`
	Selected bool   `json:"selected"`
}

// Calendar is the month grid shown in step 1.
type Calendar struct {
	Title         string     `json:"title"`
	Year          int        `json:"year"`
	Month         time.Month `json:"month"`
	Weekdays      []string   `json:"weekdays"`
	LeadingBlanks int        `json:"leading_blanks"`
	Days          []DayCell  `json:"days"`
}

// BuildCalendar renders the displayed month relative to today. Days strictly
// before today are flagged past; today itself stays selectable.
func BuildCalendar(year int, month time.Month, today time.Time, selected string) Calendar {
	loc := today.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	days := daysIn(year, month, loc)
	todayStr := today.Format(dateLayout)

	cal := Calendar{
		Title:         fmt.Sprintf("%s %d", month, year),
		Year:          year,
		Month:         month,
		Weekdays:      weekdayHeaders,
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]DayCell, 0, days),
	}
	for day := 1; day <= days; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, loc).Format(dateLayout)
		cal.Days = append(cal.Days, DayCell{
			Day:      day,
			Date:     date,
			Today:    date == todayStr,
			Past:     date < todayStr,
			Selected: date == selected,
		})
	}
	return cal
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// shiftMonth moves the displayed month by delta, wrapping the year.
func shiftMonth(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
