package attendance

import (
	"math"
	"strings"
	"time"

	"go-hr-portal/internal/shared/calendar"
)

const (
	standardWorkHours = 8.0
	lateAfterHour     = 9
	lateAfterMinute   = 15
)

// computeHours returns worked and overtime hours rounded to two decimals.
// Both are zero until the record has both ends.
func computeHours(in, out *time.Time) (working, overtime float64) {
	if in == nil || out == nil {
		return 0, 0
	}
	working = roundHours(math.Max(0, out.Sub(*in).Hours()))
	overtime = roundHours(math.Max(0, working-standardWorkHours))
	return working, overtime
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

func isLate(t time.Time) bool {
	u := t.UTC()
	return u.Hour() > lateAfterHour || (u.Hour() == lateAfterHour && u.Minute() > lateAfterMinute)
}

// parseClock reads s either as RFC3339 or as HH:MM on day (UTC).
func parseClock(day time.Time, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	hm, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, err
	}
	d := calendar.DayOf(day)
	return d.Add(time.Duration(hm.Hour())*time.Hour + time.Duration(hm.Minute())*time.Minute), nil
}
