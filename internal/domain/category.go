package domain

const (
	CategoryChain             = "Chain"
	CategoryPowerMeterBattery = "Power Meter Battery"
	CategoryShifterBattery    = "Di2 Shifter Battery"
	CategorySystemBattery     = "Di2 System Battery"
	CategoryTubelessSealant   = "Tubeless Sealant"
)

// Categories is the fixed set of tracked maintenance items, in display order.
var Categories = []string{
	CategoryChain,
	CategoryPowerMeterBattery,
	CategoryShifterBattery,
	CategorySystemBattery,
	CategoryTubelessSealant,
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ReplacementEvent is one row of the append-only replacement ledger.
type ReplacementEvent struct {
	ID              int64  `json:"id"`
	Category        string `json:"category"`
	ReplacementDate string `json:"replacement_date"`
	CreatedAt       string `json:"created_at"`
}

// CategoryStats is the accumulated usage since the last replacement.
type CategoryStats struct {
	Mileage         int     `json:"mileage"`
	Time            string  `json:"time"`
	LastReplacement *string `json:"lastReplacement"`
}

// ReplacementAction distinguishes what a replace request should do.
type ReplacementAction string

const (
	// ActionReplacement appends a ledger row and puts the event on the calendar.
	ActionReplacement ReplacementAction = "replacement"
	// ActionToppedOff puts the event on the calendar without touching the ledger,
	// and never dedupes against an existing same-day event.
	ActionToppedOff ReplacementAction = "toppedOff"
	// ActionCalendarOnly puts the event on the calendar without touching the ledger.
	ActionCalendarOnly ReplacementAction = "calendarOnly"
)

type RecordReplacementRequest struct {
	Category     string `json:"category" validate:"required"`
	Date         string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ToppedOff    bool   `json:"toppedOff"`
	CalendarOnly bool   `json:"calendarOnly"`
}

// Action normalizes the request's optional flags into a single tagged action.
func (r *RecordReplacementRequest) Action() ReplacementAction {
	if r.ToppedOff {
		return ActionToppedOff
	}
	if r.CalendarOnly {
		return ActionCalendarOnly
	}
	return ActionReplacement
}

type RecordReplacementResponse struct {
	Success         bool   `json:"success"`
	ReplacementDate string `json:"replacementDate"`
	ToppedOff       bool   `json:"toppedOff"`
}

// HistoryEntry is one event in a category's maintenance history. Type is
// "replacement" for ledger rows and "toppedOff" for calendar-only touch-ups.
type HistoryEntry struct {
	Date string `json:"date"`
	Type string `json:"type"`
}

const (
	HistoryTypeReplacement = "replacement"
	HistoryTypeToppedOff   = "toppedOff"
)
