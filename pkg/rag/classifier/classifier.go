package classifier

import (
	"strings"
	"unicode"

	"github.com/l-pommeret/RAG-DiBiSo/pkg/hours"
)

// Intent is the routing decision for a question.
type Intent string

const (
	IntentGeneral  Intent = "GENERAL"   // static-corpus RAG path
	IntentLiveData Intent = "LIVE_DATA" // live hours path
)

// Classification is the derived routing of a raw question.
// FacilityId is empty when the intent is LiveData but no specific facility
// resolved, meaning "answer for all known facilities".
type Classification struct {
	Intent     Intent
	FacilityId string
}

// Declarative lexicons. Adding a facility or an intent keyword must never
// require touching control flow.
var (
	// Temporal/availability terms signalling a live-data question.
	intentKeywords = []string{
		"horaire", "ouverture", "ouvre", "ouvert",
		"fermeture", "ferme", "fermé",
		"heure", "quand", "moment", "période",
		"disponible", "accès", "accessible",
	}

	// Generic library-domain terms. A time-related question that never
	// mentions a library is NOT live-data (avoids false positives on
	// generic temporal questions).
	domainKeywords = []string{
		"biblio", "bibliothèque", "mediathèque", "médiathèque",
	}

	// Terms too short for substring matching; "bu" inside "bureau" or
	// "tribut" must not count, but a question ending in "la bu" must.
	domainTokens = []string{"bu"}
)

// Classifier maps a free-text question to a routing decision using fixed
// lexicons plus the facility directory's aliases.
type Classifier struct {
	directory *hours.Directory
}

func New(directory *hours.Directory) *Classifier {
	return &Classifier{directory: directory}
}

// Classify lowercases the question and tests it against both lexicons.
// Both must match for LiveData; facility resolution follows registration
// order, first match wins.
func (c *Classifier) Classify(question string) Classification {
	q := strings.ToLower(question)

	if !containsAny(q, intentKeywords) {
		return Classification{Intent: IntentGeneral}
	}
	if !c.mentionsLibrary(q) {
		return Classification{Intent: IntentGeneral}
	}

	return Classification{
		Intent:     IntentLiveData,
		FacilityId: c.directory.Match(q),
	}
}

// mentionsLibrary tests the generic domain lexicon plus every registered
// facility's id and aliases, so "Quand ouvre le Lumen ?" routes live even
// without the word "bibliothèque".
func (c *Classifier) mentionsLibrary(q string) bool {
	if containsAny(q, domainKeywords) || containsAnyToken(q, domainTokens) {
		return true
	}
	return c.directory.Match(q) != ""
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func containsAnyToken(haystack string, tokens []string) bool {
	fields := strings.FieldsFunc(haystack, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, field := range fields {
		for _, tok := range tokens {
			if field == tok {
				return true
			}
		}
	}
	return false
}
