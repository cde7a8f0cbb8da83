package hours

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectoryMatch(t *testing.T) {
	d := DefaultDirectory()

	tests := []struct {
		name     string
		question string
		want     string
	}{
		{
			name:     "facility id",
			question: "quels sont les horaires d'orsay",
			want:     "orsay",
		},
		{
			name:     "alias",
			question: "la bu de médecine est-elle ouverte",
			want:     "kremlin-bicetre",
		},
		{
			name:     "accented alias",
			question: "bibliothèque droit et économie",
			want:     "sceaux",
		},
		{
			name:     "lumen",
			question: "le lumen learning center",
			want:     "lumen",
		},
		{
			name:     "no facility",
			question: "comment emprunter un livre",
			want:     "",
		},
		{
			name:     "first registered wins on overlap",
			question: "sciences et droit",
			want:     "orsay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Match(tt.question))
		})
	}
}

func TestDirectoryGet(t *testing.T) {
	d := DefaultDirectory()

	f := d.Get("orsay")
	assert.NotNil(t, f)
	assert.Equal(t, "BU Sciences d'Orsay", f.DisplayName)
	assert.Equal(t, "1", f.AffluencesId)

	assert.Nil(t, d.Get("unknown"))
}

func TestDirectoryAllKeepsRegistrationOrder(t *testing.T) {
	d := DefaultDirectory()

	all := d.All()
	assert.Len(t, all, 4)
	assert.Equal(t, "orsay", all[0].Id)
	assert.Equal(t, "sceaux", all[1].Id)
	assert.Equal(t, "kremlin-bicetre", all[2].Id)
	assert.Equal(t, "lumen", all[3].Id)
}

func TestLumenHasNoAffluencesEndpoint(t *testing.T) {
	f := DefaultDirectory().Get("lumen")
	assert.NotNil(t, f)
	assert.Empty(t, f.AffluencesId)
	assert.NotEmpty(t, f.PageURL)
}
