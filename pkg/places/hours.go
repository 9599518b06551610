package places

import (
	"encoding/json"
	"fmt"
)

// TimeOfDay is a wall-clock time within a single day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Interval is one opening interval within a day. A nil Open means the
// interval started on a previous day; a nil Close means it continues into a
// following day. Both nil means the place is open for the whole day.
type Interval struct {
	Open  *TimeOfDay
	Close *TimeOfDay
}

// OpeningHours holds the opening intervals of a place for each day of the
// week. Periods is Monday-first: index 0 is Monday, index 6 is Sunday.
//
// WeekdayDescriptions are the localized, human-readable hours as formatted by
// the Places service. Their ordering depends on the result language: some
// locales start the week on Monday, others on Sunday.
type OpeningHours struct {
	Periods             [7][]Interval
	WeekdayDescriptions []string
}

type openingHoursWire struct {
	Periods             []periodWire `json:"periods"`
	WeekdayDescriptions []string     `json:"weekdayDescriptions"`
}

type periodWire struct {
	Open  *dayTimeWire `json:"open"`
	Close *dayTimeWire `json:"close"`
}

// dayTimeWire is a point in the week as sent by the API. Day is Sunday-first:
// 0 is Sunday, 6 is Saturday.
type dayTimeWire struct {
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// UnmarshalJSON rebuilds per-day opening intervals from the flat period list
// returned by the API.
//
// Periods are keyed by Sunday-first day indices. A period whose close time is
// on a later day than its open time spans midnight: the opening day gets a
// dangling open (nil close), the closing day gets a dangling close (nil
// open), and any day strictly between gets (nil, nil). A period with no close
// at all means the place is open 24/7 and is the only period in the list; any
// other entries are ignored. The buckets are rotated to Monday-first at the
// end.
func (h *OpeningHours) UnmarshalJSON(data []byte) error {
	var wire openingHoursWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	var buckets [7][]Interval
	for _, period := range wire.Periods {
		if period.Open == nil {
			return fmt.Errorf("opening hours period is missing an open time")
		}

		if period.Close == nil {
			// Open 24/7. The API sends this as the sole period.
			for day := 0; day < 7; day++ {
				buckets[day] = []Interval{{}}
			}
			break
		}

		start := period.Open
		end := period.Close
		if start.Day == end.Day {
			buckets[start.Day] = append(buckets[start.Day], Interval{
				Open:  &TimeOfDay{Hour: start.Hour, Minute: start.Minute},
				Close: &TimeOfDay{Hour: end.Hour, Minute: end.Minute},
			})
			continue
		}

		// The interval crosses midnight. In practice spans rarely exceed
		// one day, so a close day earlier in the week than the open day is
		// left unhandled.
		for day := start.Day; day <= end.Day; day++ {
			var interval Interval
			switch day {
			case start.Day:
				interval.Open = &TimeOfDay{Hour: start.Hour, Minute: start.Minute}
			case end.Day:
				interval.Close = &TimeOfDay{Hour: end.Hour, Minute: end.Minute}
			}
			buckets[day] = append(buckets[day], interval)
		}
	}

	// Rotate from the wire's Sunday-first convention to Monday-first.
	var periods [7][]Interval
	copy(periods[:6], buckets[1:])
	periods[6] = buckets[0]

	h.Periods = periods
	h.WeekdayDescriptions = wire.WeekdayDescriptions
	return nil
}
