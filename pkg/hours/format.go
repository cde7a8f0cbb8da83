package hours

import (
	"fmt"
	"strings"
	"time"
)

// Formatter renders schedules as French user-facing text, mirroring the
// public hours page wording.
type Formatter struct {
	HorairesURL string // global hours page, last-resort pointer
}

func NewFormatter(horairesURL string) *Formatter {
	return &Formatter{HorairesURL: horairesURL}
}

// FormatSchedule renders one facility's schedule.
func (fm *Formatter) FormatSchedule(s *Schedule, fullDetails bool) string {
	var b strings.Builder

	if len(s.Days) > 0 {
		fmt.Fprintf(&b, "Horaires de la %s:\n", s.FacilityName)
		for _, d := range s.Days {
			fmt.Fprintf(&b, "- %s: %s\n", d.Day, d.Hours)
		}
		fmt.Fprintf(&b, "\nDernière mise à jour: %s", fm.lastUpdated(s))
		if fullDetails {
			fmt.Fprintf(&b, "\nSource: %s\nURL: %s", sourceLabel(s.Source), s.URL)
		}
		return b.String()
	}

	fmt.Fprintf(&b, "Horaires de la %s: %s", s.FacilityName, orDefault(s.Text, "non disponibles"))
	if fullDetails {
		fmt.Fprintf(&b, "\nDernière mise à jour: %s", fm.lastUpdated(s))
		fmt.Fprintf(&b, "\nSource: %s\nURL: %s", sourceLabel(s.Source), s.URL)
	}
	fmt.Fprintf(&b, "\n\nPour des informations en temps réel, consultez: %s", fm.HorairesURL)
	return b.String()
}

// FormatUnavailable renders the graceful failure message with the facility's
// public page so the user can self-serve.
func (fm *Formatter) FormatUnavailable(e *SourceUnavailableError) string {
	url := e.FallbackURL
	if url == "" {
		url = fm.HorairesURL
	}
	return fmt.Sprintf(
		"Je n'ai pas pu récupérer les horaires de la %s. Veuillez consulter directement le site web: %s",
		orDefault(e.FacilityName, "bibliothèque"), url,
	)
}

// FormatOverview renders the all-facility summary used when no specific
// facility was identified in the question.
func (fm *Formatter) FormatOverview(outcomes []Outcome, now time.Time) string {
	var b strings.Builder
	b.WriteString("Voici les horaires des principales bibliothèques de l'Université Paris-Saclay:\n\n")

	for _, o := range outcomes {
		if o.Err != nil || o.Schedule == nil {
			name := o.FacilityId
			if e, ok := o.Err.(*SourceUnavailableError); ok && e.FacilityName != "" {
				name = e.FacilityName
			}
			fmt.Fprintf(&b, "%s: horaires non disponibles\n", name)
			continue
		}
		s := o.Schedule
		if today, ok := s.Today(now); ok {
			fmt.Fprintf(&b, "%s: %s (aujourd'hui)\n", s.FacilityName, today)
		} else {
			fmt.Fprintf(&b, "%s: %s\n", s.FacilityName, orDefault(s.Text, "horaires non disponibles"))
		}
	}

	fmt.Fprintf(&b, "\nPour des informations détaillées et en temps réel, consultez: %s", fm.HorairesURL)
	return b.String()
}

func (fm *Formatter) lastUpdated(s *Schedule) string {
	if s.FetchedAt.IsZero() {
		return "inconnue"
	}
	return s.FetchedAt.Format("2006-01-02 15:04")
}

func sourceLabel(source string) string {
	switch source {
	case SourceWeb:
		return "Site web"
	case SourceAffluences:
		return "Affluences"
	case SourceDefault:
		return "Horaires habituels"
	case SourceCache:
		return "Cache local"
	default:
		return source
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
