package hours

import "strings"

// Facility describes one library of the university network. Loaded once at
// startup, immutable afterwards.
type Facility struct {
	Id           string
	DisplayName  string
	Aliases      []string // lowercase fragments used for fuzzy matching
	AffluencesId string   // empty = no structured API endpoint
	PageURL      string   // fallback scrape target, also the public pointer
}

// Directory is the static registry of known facilities. Lookup helpers keep
// registration order, so overlapping aliases resolve first-registered-first.
type Directory struct {
	facilities []*Facility
	byId       map[string]*Facility
}

func NewDirectory(facilities []*Facility) *Directory {
	byId := make(map[string]*Facility, len(facilities))
	for _, f := range facilities {
		byId[f.Id] = f
	}
	return &Directory{facilities: facilities, byId: byId}
}

// DefaultDirectory registers the four Paris-Saclay university libraries.
func DefaultDirectory() *Directory {
	return NewDirectory([]*Facility{
		{
			Id:           "orsay",
			DisplayName:  "BU Sciences d'Orsay",
			Aliases:      []string{"orsay", "science", "sciences"},
			AffluencesId: "1",
			PageURL:      "https://www.universite-paris-saclay.fr/vie-de-campus/bibliotheques/bibliotheque-universitaire-orsay",
		},
		{
			Id:           "sceaux",
			DisplayName:  "BU Droit-Économie-Gestion (Sceaux)",
			Aliases:      []string{"sceaux", "droit", "eco", "économie", "gestion"},
			AffluencesId: "2",
			PageURL:      "https://www.universite-paris-saclay.fr/vie-de-campus/bibliotheques/bibliotheque-universitaire-sceaux",
		},
		{
			Id:           "kremlin-bicetre",
			DisplayName:  "BU Kremlin-Bicêtre",
			Aliases:      []string{"kremlin", "bicetre", "bicêtre", "medecine", "médecine"},
			AffluencesId: "3",
			PageURL:      "https://www.universite-paris-saclay.fr/vie-de-campus/bibliotheques/bibliotheque-universitaire-kremlin-bicetre",
		},
		{
			Id:          "lumen",
			DisplayName: "Lumen Learning Center Paris-Saclay",
			Aliases:     []string{"lumen", "learning"},
			// No Affluences endpoint registered for the Lumen yet.
			PageURL: "https://www.universite-paris-saclay.fr/lumen-learning-center",
		},
	})
}

// Get returns the facility for a stable id, or nil.
func (d *Directory) Get(id string) *Facility {
	return d.byId[id]
}

// All returns facilities in registration order.
func (d *Directory) All() []*Facility {
	return d.facilities
}

// Match resolves a lowercase question fragment to a facility id by testing
// each facility's id and aliases in registration order. First match wins.
func (d *Directory) Match(question string) string {
	q := strings.ToLower(question)
	for _, f := range d.facilities {
		if strings.Contains(q, f.Id) {
			return f.Id
		}
		if strings.Contains(q, strings.ToLower(f.DisplayName)) {
			return f.Id
		}
		for _, alias := range f.Aliases {
			if strings.Contains(q, alias) {
				return f.Id
			}
		}
	}
	return ""
}
