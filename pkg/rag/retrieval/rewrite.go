package retrieval

import "strings"

// rewriteRule appends normalized synonyms when every group of trigger terms
// is matched. This is a small fixed substitution table, not general NLP.
type rewriteRule struct {
	triggers [][]string // AND of ORs: each group must match on at least one term
	expand   string
}

var rewriteRules = []rewriteRule{
	{
		// Hours questions: reinforce schedule vocabulary for the vector stage.
		triggers: [][]string{
			{"horaire", "ouvert", "ferme", "heures", "quand"},
			{"bibliothèque", "biblio", "bu"},
		},
		expand: "horaires heures ouverture fermeture",
	},
	{
		// A4 printing price questions.
		triggers: [][]string{
			{"prix", "coût", "tarif"},
			{"impression", "imprime", "imprimer"},
			{"a4", "page", "feuille"},
		},
		expand: "prix impression a4 photocopie",
	},
}

// Rewrite expands the raw question with domain keyword augmentation when a
// recognizable sub-intent is detected. Unrecognized questions pass through
// unchanged.
func Rewrite(question string) string {
	q := strings.ToLower(question)

	for _, rule := range rewriteRules {
		if matchesAllGroups(q, rule.triggers) {
			return question + " " + rule.expand
		}
	}
	return question
}

func matchesAllGroups(q string, groups [][]string) bool {
	for _, group := range groups {
		matched := false
		for _, term := range group {
			if strings.Contains(q, term) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
