package domain

// CalendarCell is one day slot in a month grid. Day 0 marks a leading
// placeholder cell before the first of the month.
type CalendarCell struct {
	Day        int             `json:"day"`
	Date       string          `json:"date,omitempty"`
	Activities []*ActivityView `json:"activities,omitempty"`
}

func (c CalendarCell) Empty() bool {
	return c.Day == 0
}

// CalendarMonth is one month of the calendar view, as rows of week cells.
type CalendarMonth struct {
	Year  int              `json:"year"`
	Month int              `json:"month"`
	Label string           `json:"label"`
	Weeks [][]CalendarCell `json:"weeks"`
}
