package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// SlotDuration is the length of every service. Slots are hour-aligned.
const SlotDuration = 60 * time.Minute

// Weekday is an ISO-8601 weekday number: 1 = Monday .. 7 = Sunday.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{
	"", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return "weekday(" + strconv.Itoa(int(d)) + ")"
	}
	return weekdayNames[d]
}

// ISOWeekday returns the ISO weekday of t in t's own location.
func ISOWeekday(t time.Time) Weekday {
	wd := t.Weekday()
	if wd == time.Sunday {
		return Sunday
	}
	return Weekday(wd)
}

// WeekdaySet is a set of working weekdays stored as a bitmask
// (bit 0 = Monday .. bit 6 = Sunday).
type WeekdaySet uint8

const allWeekdays WeekdaySet = 1<<7 - 1

// DefaultWorkingDays is Monday to Saturday.
var DefaultWorkingDays = WeekdaySet(allWeekdays &^ (1 << (Sunday - 1)))

// NewWeekdaySet builds a set from ISO weekday numbers, rejecting anything
// outside 1..7. Duplicates are accepted.
func NewWeekdaySet(days ...int) (WeekdaySet, error) {
	var s WeekdaySet
	for _, n := range days {
		d := Weekday(n)
		if !d.Valid() {
			return 0, fmt.Errorf("invalid weekday %d: must be between 1 (Monday) and 7 (Sunday)", n)
		}
		s |= 1 << (d - 1)
	}
	return s, nil
}

// MustWeekdaySet is NewWeekdaySet for constant input.
func MustWeekdaySet(days ...int) WeekdaySet {
	s, err := NewWeekdaySet(days...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s WeekdaySet) Contains(d Weekday) bool {
	if !d.Valid() {
		return false
	}
	return s&(1<<(d-1)) != 0
}

func (s WeekdaySet) IsEmpty() bool {
	return s&allWeekdays == 0
}

// Days lists the members in ascending order.
func (s WeekdaySet) Days() []Weekday {
	days := make([]Weekday, 0, 7)
	for d := Monday; d <= Sunday; d++ {
		if s.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	days := s.Days()
	out := make([]int, len(days))
	for i, d := range days {
		out[i] = int(d)
	}
	return json.Marshal(out)
}

func (s *WeekdaySet) UnmarshalJSON(b []byte) error {
	var days []int
	if err := json.Unmarshal(b, &days); err != nil {
		return fmt.Errorf("working days must be a list of weekday numbers: %w", err)
	}
	set, err := NewWeekdaySet(days...)
	if err != nil {
		return err
	}
	*s = set
	return nil
}

func (s WeekdaySet) Value() (driver.Value, error) {
	return int64(s & allWeekdays), nil
}

func (s *WeekdaySet) Scan(src any) error {
	var n int64
	switch v := src.(type) {
	case int64:
		n = v
	case int32:
		n = int64(v)
	case []byte:
		parsed, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return fmt.Errorf("scan weekday set: %w", err)
		}
		n = parsed
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("scan weekday set: %w", err)
		}
		n = parsed
	case nil:
		n = 0
	default:
		return fmt.Errorf("scan weekday set: unsupported type %T", src)
	}
	if n < 0 || n > int64(allWeekdays) {
		return fmt.Errorf("scan weekday set: invalid bitmask %d", n)
	}
	*s = WeekdaySet(n)
	return nil
}

func (WeekdaySet) GormDataType() string {
	return "smallint"
}
