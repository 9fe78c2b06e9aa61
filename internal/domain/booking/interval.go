package booking

import (
	"fmt"
	"regexp"
	"time"
)

// ======================================================
// Time intervals
// ======================================================

// TimeInterval is a half-open [Start, End) wall-clock range within a single
// day, minute resolution, "HH:MM". Touching endpoints do not overlap.
type TimeInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Bookable slots are carved at this granularity.
const SlotMinutes = 15

var clockRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ToMinutes parses "HH:MM" into minutes since midnight.
func ToMinutes(t string) (int, error) {
	if !clockRe.MatchString(t) {
		return 0, ErrMalformedTime
	}
	h := int(t[0]-'0')*10 + int(t[1]-'0')
	m := int(t[3]-'0')*10 + int(t[4]-'0')
	return h*60 + m, nil
}

func fromMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Validate checks both endpoints and that the interval is non-empty.
// Zero-padded "HH:MM" compares lexicographically in chronological order,
// so Start < End as strings is the chronological invariant.
func (iv TimeInterval) Validate() error {
	s, err := ToMinutes(iv.Start)
	if err != nil {
		return err
	}
	e, err := ToMinutes(iv.End)
	if err != nil {
		return err
	}
	if s >= e {
		return ErrInvalidWindow
	}
	return nil
}

// Overlaps reports whether two half-open intervals intersect.
func Overlaps(a, b TimeInterval) bool {
	return a.Start < b.End && b.Start < a.End
}

// SubSlots cuts window into consecutive slots of granularity minutes.
// A trailing remainder shorter than the granularity is dropped. The result
// is fully determined by the inputs; calling it again yields the same
// slice. An unparseable window yields no slots.
func SubSlots(window TimeInterval, granularity int) []TimeInterval {
	if granularity <= 0 {
		return nil
	}
	start, err := ToMinutes(window.Start)
	if err != nil {
		return nil
	}
	end, err := ToMinutes(window.End)
	if err != nil {
		return nil
	}

	var slots []TimeInterval
	for cur := start; cur+granularity <= end; cur += granularity {
		slots = append(slots, TimeInterval{
			Start: fromMinutes(cur),
			End:   fromMinutes(cur + granularity),
		})
	}
	return slots
}

// Bounds resolves a date + interval into absolute times in loc.
func Bounds(date string, iv TimeInterval, loc *time.Location) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrMalformedTime
	}
	s, err := ToMinutes(iv.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := ToMinutes(iv.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return day.Add(time.Duration(s) * time.Minute), day.Add(time.Duration(e) * time.Minute), nil
}
