package hours

import (
	"errors"
	"fmt"
	"time"
)

// Data source tags, recorded on every schedule for provenance.
const (
	SourceAffluences = "affluences"
	SourceWeb        = "web"
	SourceDefault    = "default"
	SourceCache      = "cache"
)

// DaysFr orders the French week, matching the Affluences dayOfWeek 1..7.
var DaysFr = []string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi", "Dimanche"}

// DayHours is one structured schedule entry.
type DayHours struct {
	Day   string `json:"day"`
	Hours string `json:"hours"`
}

// Schedule is the normalized fact record produced by any tier of the live
// source chain. Structured sources fill Days; unstructured ones fill Text.
type Schedule struct {
	FacilityId   string     `json:"facility_id"`
	FacilityName string     `json:"facility_name"`
	Source       string     `json:"source"`
	Days         []DayHours `json:"days,omitempty"`
	Text         string     `json:"text,omitempty"`
	URL          string     `json:"url,omitempty"`
	FetchedAt    time.Time  `json:"fetched_at"`
}

// Today returns the structured hours for the given day of week, if known.
func (s *Schedule) Today(now time.Time) (string, bool) {
	if len(s.Days) == 0 {
		return "", false
	}
	// time.Weekday starts at Sunday; DaysFr starts at Monday.
	idx := (int(now.Weekday()) + 6) % 7
	day := DaysFr[idx]
	for _, d := range s.Days {
		if d.Day == day {
			return d.Hours, true
		}
	}
	return "", false
}

// ErrUnknownFacility is returned when a facility id is not registered.
var ErrUnknownFacility = errors.New("unknown facility")

// SourceUnavailableError means every tier of the chain failed for a facility.
// It carries the public page so the caller can refer the user to it.
type SourceUnavailableError struct {
	FacilityId   string
	FacilityName string
	FallbackURL  string
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("hours unavailable for %s", e.FacilityId)
}

// ParseFailure marks a response whose shape matched no recognized provider
// schema. It is a typed outcome, not silent nil propagation: the chain logs
// it and falls through to the next tier.
type ParseFailure struct {
	Provider string
	Reason   string
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("%s: unrecognized response shape: %s", e.Provider, e.Reason)
}
