package service

import "time"

// Clock abstracts wall-clock time. Daily goal baselines and streak runs
// depend on "today", so tests inject a fixed clock to cross day boundaries
// deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the production clock.
var SystemClock Clock = systemClock{}

// dayStart truncates t to midnight in its location.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// utcDay maps t to its calendar date at UTC midnight. Used as a map key so
// the same calendar day compares equal across locations.
func utcDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
