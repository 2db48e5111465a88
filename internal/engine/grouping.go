package engine

import (
	"time"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/domain"
)

// DayGroup is one calendar day's worth of consecutive log entries.
type DayGroup struct {
	Day      time.Time // midnight, local time of the first message
	Messages []domain.Message
}

// GroupByDay splits a message log into calendar-day groups by
// comparing consecutive entries in log order. It is a pure projection
// of the log, not stored state; the input order is preserved.
func GroupByDay(msgs []domain.Message) []DayGroup {
	if len(msgs) == 0 {
		return nil
	}

	var groups []DayGroup
	for _, m := range msgs {
		day := midnight(m.Timestamp)
		if len(groups) == 0 || !groups[len(groups)-1].Day.Equal(day) {
			groups = append(groups, DayGroup{Day: day})
		}
		last := len(groups) - 1
		groups[last].Messages = append(groups[last].Messages, m)
	}
	return groups
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// DayLabel renders a group's day the way the chat header shows it:
// Today, Yesterday, or the date.
func DayLabel(day time.Time, now time.Time) string {
	today := midnight(now)
	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return day.Format("Jan 2, 2006")
	}
}
