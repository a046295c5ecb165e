package models

import "time"

// Weekday is one of the seven English day names
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists the day names in display order
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// weekdayIndex aligns with time.Weekday: Sunday is 0 even though it ends an ISO week.
var weekdayIndex = map[Weekday]int{
	Sunday:    0,
	Monday:    1,
	Tuesday:   2,
	Wednesday: 3,
	Thursday:  4,
	Friday:    5,
	Saturday:  6,
}

// Index returns the 0-6 index of the day and false for unknown names
func (d Weekday) Index() (int, bool) {
	i, ok := weekdayIndex[d]
	return i, ok
}

// TimeWeekday converts the day into the standard library representation
func (d Weekday) TimeWeekday() (time.Weekday, bool) {
	i, ok := d.Index()
	return time.Weekday(i), ok
}

// WeekdayOf returns the day name of t
func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday().String())
}

// WeeklyNote is the outcome of one create-or-open run
type WeeklyNote struct {
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	WeekStart time.Time `json:"week_start"`
	Created   bool      `json:"created"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	Vault     string    `json:"vault,omitempty"`
}
