package answer

import (
	"strings"
	"unicode/utf8"

	"github.com/l-pommeret/RAG-DiBiSo/pkg/store"
)

// maxContextChars bounds the context block handed to the generator.
const maxContextChars = 6000

// BuildPrompt assembles the fixed instruction template around the retrieved
// context. The template forbids fabrication beyond the provided context and
// instructs the direct-contact fallback when information is absent.
func BuildPrompt(question string, docs []store.Document) string {
	var b strings.Builder

	b.WriteString("Vous êtes un assistant virtuel spécialisé dans les bibliothèques de l'Université Paris-Saclay.\n")
	b.WriteString("Utilisez les informations suivantes pour répondre à la question.\n")
	b.WriteString("Si vous ne connaissez pas la réponse, dites simplement que vous n'avez pas cette information et suggérez de contacter directement la bibliothèque.\n")
	b.WriteString("Ne fabriquez pas de réponse si l'information n'est pas présente dans le contexte fourni.\n\n")

	b.WriteString("Contexte:\n")
	b.WriteString(buildContext(docs))
	b.WriteString("\n\n")

	b.WriteString("Question: ")
	b.WriteString(question)
	b.WriteString("\n\nRéponse:")

	return b.String()
}

// buildContext joins document contents under the rune budget. Counting and
// cutting both happen in runes so accented text never overshoots.
func buildContext(docs []store.Document) string {
	var b strings.Builder
	written := 0
	for _, doc := range docs {
		sep := 0
		if written > 0 {
			sep = len("\n\n")
		}
		remaining := maxContextChars - written - sep
		if remaining <= 0 {
			break
		}
		chunk := doc.Content
		n := utf8.RuneCountInString(chunk)
		if n > remaining {
			chunk = truncateRunes(chunk, remaining)
			n = remaining
		}
		if sep > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(chunk)
		written += sep + n
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
