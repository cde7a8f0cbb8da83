package retrieval

import (
	"testing"

	"github.com/l-pommeret/RAG-DiBiSo/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestKeywords(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     []string
	}{
		{
			name:     "short tokens dropped",
			question: "Où est la BU d'Orsay",
			want:     []string{"est", "orsay"},
		},
		{
			name:     "accents preserved",
			question: "horaires bibliothèque médecine",
			want:     []string{"horaires", "bibliothèque", "médecine"},
		},
		{
			name:     "punctuation stripped",
			question: "prix, impression... A4 ?",
			want:     []string{"prix", "impression"},
		},
		{
			name:     "empty",
			question: "",
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Keywords(tt.question))
		})
	}
}

func TestRerankTitleWeighting(t *testing.T) {
	docs := []store.Document{
		{ID: "body", Content: "impression impression", Metadata: store.Metadata{Title: "Autre chose"}},
		{ID: "title", Content: "texte neutre", Metadata: store.Metadata{Title: "Tarifs impression"}},
	}

	// Two body occurrences score 2x2=4; two title keyword hits score
	// 2x5=10, so the title match must come first.
	out := Rerank(docs, "tarifs impression", 5)
	assert.Equal(t, "title", out[0].ID)
}

func TestRerankExactPhraseBonus(t *testing.T) {
	docs := []store.Document{
		{ID: "scattered", Content: "les prix sont affichés, toute impression se paie"},
		{ID: "exact", Content: "le prix impression est de 10 centimes"},
	}

	out := Rerank(docs, "prix impression", 5)
	assert.Equal(t, "exact", out[0].ID)
}

func TestRerankFreshnessBonus(t *testing.T) {
	docs := []store.Document{
		{ID: "static", Content: "la bibliothèque est ouverte", Metadata: store.Metadata{Source: store.SourceAllPages}},
		{ID: "live", Content: "la bibliothèque est ouverte", Metadata: store.Metadata{Source: store.SourceLiveHours}},
	}

	out := Rerank(docs, "bibliothèque ouverte", 5)
	assert.Equal(t, "live", out[0].ID)
}

func TestRerankHoursAffinityBonus(t *testing.T) {
	docs := []store.Document{
		{ID: "other", Content: "services de la bibliothèque"},
		{ID: "hours", Content: "horaires de la bibliothèque"},
	}

	out := Rerank(docs, "quels horaires pour la bibliothèque", 5)
	assert.Equal(t, "hours", out[0].ID)
}

func TestRerankTruncatesToTopK(t *testing.T) {
	docs := []store.Document{
		{ID: "a", Content: "horaires horaires horaires"},
		{ID: "b", Content: "horaires horaires"},
		{ID: "c", Content: "horaires"},
		{ID: "d", Content: "rien"},
	}

	out := Rerank(docs, "horaires", 2)
	assert.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
}

func TestRerankStableOnTies(t *testing.T) {
	docs := []store.Document{
		{ID: "first", Content: "texte sans rapport"},
		{ID: "second", Content: "texte sans rapport"},
	}

	// Equal scores keep the incoming vector-similarity order.
	out := Rerank(docs, "question inconnue", 5)
	assert.Equal(t, "first", out[0].ID)
	assert.Equal(t, "second", out[1].ID)
}

func TestRerankDeterministic(t *testing.T) {
	docs := []store.Document{
		{ID: "a", Content: "horaires ouverture"},
		{ID: "b", Content: "horaires"},
		{ID: "c", Content: "ouverture"},
	}

	first := Rerank(docs, "horaires ouverture bibliothèque", 3)
	for i := 0; i < 10; i++ {
		again := Rerank(docs, "horaires ouverture bibliothèque", 3)
		assert.Equal(t, first, again)
	}
}

func TestRerankEmptyInput(t *testing.T) {
	assert.Nil(t, Rerank(nil, "question", 5))
}
