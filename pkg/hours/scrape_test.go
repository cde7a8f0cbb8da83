package hours

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	assert.NoError(t, err)
	return doc
}

func TestExtractHoursDedicatedContainer(t *testing.T) {
	doc := parseHTML(t, `
		<html><body>
		<div class="bloc-horaires">
			Lundi - Vendredi : 8h30 - 22h30
		</div>
		<table><tr><td>horaires</td><td>ignored, container wins</td></tr></table>
		</body></html>`)

	text := ExtractHours(doc, testFacility)
	assert.Equal(t, "Lundi - Vendredi : 8h30 - 22h30", text)
}

func TestExtractHoursContainerById(t *testing.T) {
	doc := parseHTML(t, `
		<html><body>
		<section id="opening-hours-widget">9h - 18h tous les jours</section>
		</body></html>`)

	assert.Equal(t, "9h - 18h tous les jours", ExtractHours(doc, testFacility))
}

func TestExtractHoursScheduleTable(t *testing.T) {
	doc := parseHTML(t, `
		<html><body>
		<table>
			<tr><th>Jour</th><th>Horaires</th></tr>
			<tr><td>Lundi</td><td>8h30 - 22h30</td></tr>
			<tr><td>Samedi</td><td>9h - 18h</td></tr>
		</table>
		</body></html>`)

	text := ExtractHours(doc, testFacility)
	assert.Equal(t, "Jour Horaires; Lundi 8h30 - 22h30; Samedi 9h - 18h", text)
}

func TestExtractHoursTableMatchedByFacilityName(t *testing.T) {
	doc := parseHTML(t, `
		<html><body>
		<table>
			<tr><td>BU Sciences d'Orsay</td><td>8h30 - 22h30</td></tr>
		</table>
		</body></html>`)

	text := ExtractHours(doc, testFacility)
	assert.Contains(t, text, "8h30 - 22h30")
}

func TestExtractHoursIgnoresIrrelevantTable(t *testing.T) {
	doc := parseHTML(t, `
		<html><body>
		<table>
			<tr><td>Tarifs impression</td><td>0,10 €</td></tr>
		</table>
		</body></html>`)

	assert.Equal(t, "", ExtractHours(doc, testFacility))
}

func TestExtractHoursHeading(t *testing.T) {
	doc := parseHTML(t, `
		<html><body>
		<h2>Horaires d'ouverture</h2>
		<p>Du lundi au vendredi de 8h30 à 22h30</p>
		</body></html>`)

	text := ExtractHours(doc, testFacility)
	assert.Equal(t, "Du lundi au vendredi de 8h30 à 22h30", text)
}

func TestExtractHoursRegexFallback(t *testing.T) {
	doc := parseHTML(t, `
		<html><body>
		<p>La bibliothèque vous accueille toute l'année, horaires : 9h - 19h du lundi au samedi</p>
		</body></html>`)

	text := ExtractHours(doc, testFacility)
	assert.Equal(t, "9h - 19h du lundi au samedi", text)
}

func TestExtractHoursNothingFound(t *testing.T) {
	doc := parseHTML(t, `<html><body><p>Aucune information utile ici</p></body></html>`)
	assert.Equal(t, "", ExtractHours(doc, testFacility))
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", collapseWhitespace("  a \n\t b   c  "))
}
