package constant

import (
	"strings"
	"time"
)

// DaysOfWeek is a bitmask of enabled weekdays. Bit 0 is Monday, bit 6 is Sunday.
type DaysOfWeek int

const (
	Monday    DaysOfWeek = 1
	Tuesday   DaysOfWeek = 2
	Wednesday DaysOfWeek = 4
	Thursday  DaysOfWeek = 8
	Friday    DaysOfWeek = 16
	Saturday  DaysOfWeek = 32
	Sunday    DaysOfWeek = 64

	EveryDay DaysOfWeek = 127
)

var orderedDays = []struct {
	bit  DaysOfWeek
	abbr string
}{
	{Monday, "Mon"},
	{Tuesday, "Tue"},
	{Wednesday, "Wed"},
	{Thursday, "Thu"},
	{Friday, "Fri"},
	{Saturday, "Sat"},
	{Sunday, "Sun"},
}

// IsDayEnabled reports whether day is set in the mask.
func IsDayEnabled(mask DaysOfWeek, day DaysOfWeek) bool {
	return mask&day != 0
}

// ToDisplayString renders the mask as "Every day" or e.g. "Mon, Wed, Fri".
func ToDisplayString(mask DaysOfWeek) string {
	if mask == EveryDay {
		return "Every day"
	}
	names := make([]string, 0, len(orderedDays))
	for _, d := range orderedDays {
		if IsDayEnabled(mask, d.bit) {
			names = append(names, d.abbr)
		}
	}
	return strings.Join(names, ", ")
}

// FromWeekday maps a time.Weekday (Sunday=0 .. Saturday=6) to its bit.
// Anything outside that range maps to 0.
func FromWeekday(w time.Weekday) DaysOfWeek {
	switch w {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	case time.Sunday:
		return Sunday
	default:
		return 0
	}
}

func (d DaysOfWeek) String() string {
	return ToDisplayString(d)
}

// Int returns the raw mask value.
func (d DaysOfWeek) Int() int {
	return int(d)
}
