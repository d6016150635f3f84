package event

import "time"

// Event is one gameweek in the season calendar.
type Event struct {
	ID           int
	Name         string
	DeadlineTime time.Time
	Finished     bool
	DataChecked  bool
	IsCurrent    bool
	IsNext       bool
}

// NextEventID returns the lowest id among unfinished events, or nil when the
// season is over.
func NextEventID(events []Event) *int {
	var next *int
	for _, e := range events {
		if e.Finished {
			continue
		}
		if next == nil || e.ID < *next {
			id := e.ID
			next = &id
		}
	}
	return next
}

// AnyInProgress reports whether a gameweek whose deadline has passed is still
// awaiting results. While true, freshly collected rows would mix played and
// unplayed fixtures, so collection must hold off.
func AnyInProgress(events []Event, now time.Time) bool {
	started := false
	allFinished := true
	for _, e := range events {
		if !e.DeadlineTime.Before(now) {
			continue
		}
		started = true
		if !e.Finished {
			allFinished = false
		}
	}
	return started && !allFinished
}
