package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewrite(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     string
	}{
		{
			name:     "hours question expanded",
			question: "Quels sont les horaires de la bibliothèque ?",
			want:     "Quels sont les horaires de la bibliothèque ? horaires heures ouverture fermeture",
		},
		{
			name:     "hours synonym triggers",
			question: "quand ouvre la BU d'Orsay",
			want:     "quand ouvre la BU d'Orsay horaires heures ouverture fermeture",
		},
		{
			name:     "printing price expanded",
			question: "Quel est le prix d'une impression A4 ?",
			want:     "Quel est le prix d'une impression A4 ? prix impression a4 photocopie",
		},
		{
			name:     "printing tarif synonym",
			question: "tarif pour imprimer une page",
			want:     "tarif pour imprimer une page prix impression a4 photocopie",
		},
		{
			name:     "partial trigger groups pass through",
			question: "combien coûte un café",
			want:     "combien coûte un café",
		},
		{
			name:     "hours word without library pass through",
			question: "quels sont les horaires du secrétariat",
			want:     "quels sont les horaires du secrétariat",
		},
		{
			name:     "unrelated question unchanged",
			question: "Comment emprunter un livre ?",
			want:     "Comment emprunter un livre ?",
		},
		{
			name:     "empty unchanged",
			question: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rewrite(tt.question))
		})
	}
}
