package hours

// DefaultSchedules are the hardcoded last-resort facts, served only when both
// the structured API and the page scrape fail. They are deliberately never
// written to the cache. The Lumen has no default: its hours vary too much
// between academic periods to pin one down.
func DefaultSchedules(d *Directory) map[string]*Schedule {
	defaults := map[string]string{
		"orsay":           "Lundi - Vendredi: 8h30 - 19h00, Samedi: 9h00 - 17h00",
		"sceaux":          "Lundi - Vendredi: 9h00 - 19h00",
		"kremlin-bicetre": "Lundi - Vendredi: 9h00 - 22h00, Samedi - Dimanche: 10h00 - 19h00",
	}

	out := make(map[string]*Schedule, len(defaults))
	for id, text := range defaults {
		f := d.Get(id)
		if f == nil {
			continue
		}
		out[id] = &Schedule{
			FacilityId:   id,
			FacilityName: f.DisplayName,
			Source:       SourceDefault,
			Text:         text,
			URL:          f.PageURL,
		}
	}
	return out
}
