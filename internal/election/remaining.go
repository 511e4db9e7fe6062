package election

import "time"

// Urgency windows in calendar days from now to the next round.
const (
	ImminentDays = 7
	NearDays     = 30
)

// Urgency tiers how soon the next round of an election is.
type Urgency int

const (
	UrgencyCompleted Urgency = iota
	UrgencyImminent
	UrgencyNear
	UrgencyDistant
)

func (u Urgency) String() string {
	switch u {
	case UrgencyImminent:
		return "imminent"
	case UrgencyNear:
		return "near"
	case UrgencyDistant:
		return "distant"
	default:
		return "completed"
	}
}

// Remaining describes the time left before the next round of an election.
type Remaining struct {
	Round RoundDate
	// From is the reference time in the round's location.
	From      time.Time
	At        time.Time
	Until     time.Duration
	Days      int
	Completed bool
}

// NextRound returns the first round whose local midnight is strictly after
// now. A round starting exactly at now is no longer upcoming.
func NextRound(dates []RoundDate, now time.Time, loc *time.Location) (RoundDate, time.Time, bool) {
	for _, rd := range dates {
		at := rd.Date.In(loc)
		if at.After(now) {
			return rd, at, true
		}
	}
	return RoundDate{}, time.Time{}, false
}

// RemainingAt computes the remaining time for r as seen at now. Round
// dates are read as midnight in loc.
func RemainingAt(r Record, now time.Time, loc *time.Location) Remaining {
	rd, at, ok := NextRound(r.Dates, now, loc)
	if !ok {
		return Remaining{Completed: true}
	}
	from := now.In(loc)
	return Remaining{
		Round: rd,
		From:  from,
		At:    at,
		Until: at.Sub(now),
		Days:  daysBetween(DateOf(from), rd.Date),
	}
}

// daysBetween counts calendar days from a to b. Rounds start at midnight,
// so a started day always counts as a whole one.
func daysBetween(a, b CivilDate) int {
	return int(b.In(time.UTC).Sub(a.In(time.UTC)) / (24 * time.Hour))
}

// Classify returns the urgency tier of rem. The windows end at the same
// wall-clock time 7 and 30 days after From, bounds inclusive.
func Classify(rem Remaining) Urgency {
	switch {
	case rem.Completed:
		return UrgencyCompleted
	case !rem.At.After(rem.From.AddDate(0, 0, ImminentDays)):
		return UrgencyImminent
	case !rem.At.After(rem.From.AddDate(0, 0, NearDays)):
		return UrgencyNear
	default:
		return UrgencyDistant
	}
}
