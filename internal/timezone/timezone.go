package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to DefaultTimezone and then UTC.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// Clock is the salon's notion of "now" and of its local calendar.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type zoneClock struct {
	loc *time.Location
}

func NewClock(tz string) Clock {
	return zoneClock{loc: Location(tz)}
}

func (c zoneClock) Now() time.Time           { return time.Now().In(c.loc) }
func (c zoneClock) Location() *time.Location { return c.loc }

// FixedClock always reports t, in t's location.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time           { return c.T }
func (c FixedClock) Location() *time.Location { return c.T.Location() }
