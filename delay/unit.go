package delay

import "time"

// Unit is a time unit usable with OfUnit. Units up to Hours are fixed
// durations; Days and above follow calendar arithmetic, so adding one Month
// lands on the same day of the next month regardless of its length.
type Unit int

const (
	Nanoseconds Unit = iota
	Microseconds
	Milliseconds
	Seconds
	Minutes
	Hours
	Days
	Weeks
	Months
	Years
)

var unitNames = map[Unit]string{
	Nanoseconds:  "Nanoseconds",
	Microseconds: "Microseconds",
	Milliseconds: "Milliseconds",
	Seconds:      "Seconds",
	Minutes:      "Minutes",
	Hours:        "Hours",
	Days:         "Days",
	Weeks:        "Weeks",
	Months:       "Months",
	Years:        "Years",
}

func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return "Unit(?)"
}

func (u Unit) addTo(t time.Time, amount int64) time.Time {
	switch u {
	case Nanoseconds:
		return t.Add(time.Duration(amount))
	case Microseconds:
		return t.Add(time.Duration(amount) * time.Microsecond)
	case Milliseconds:
		return t.Add(time.Duration(amount) * time.Millisecond)
	case Seconds:
		return t.Add(time.Duration(amount) * time.Second)
	case Minutes:
		return t.Add(time.Duration(amount) * time.Minute)
	case Hours:
		return t.Add(time.Duration(amount) * time.Hour)
	case Days:
		return t.AddDate(0, 0, int(amount))
	case Weeks:
		return t.AddDate(0, 0, int(amount)*7)
	case Months:
		return t.AddDate(0, int(amount), 0)
	case Years:
		return t.AddDate(int(amount), 0, 0)
	default:
		panic("delay: unknown unit")
	}
}
