package retrieval

import (
	"regexp"
	"sort"
	"strings"

	"github.com/l-pommeret/RAG-DiBiSo/pkg/store"
)

// Lexical scoring weights. Titles are a stronger relevance signal than body
// occurrences; live-derived documents get a freshness boost.
const (
	bodyWeight       = 2
	titleWeight      = 5
	exactPhraseBonus = 10
	freshnessBonus   = 10
	hoursMatchBonus  = 15

	// Tokens at or below this length are treated as stop words.
	minKeywordLen = 2
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Keywords extracts the scoring tokens from a lowercased question. Stop-word
// filtering is implicit via the length threshold.
func Keywords(question string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(question), -1)
	keywords := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len([]rune(tok)) > minKeywordLen {
			keywords = append(keywords, tok)
		}
	}
	return keywords
}

// Rerank reorders vector-stage candidates by lexical relevance and truncates
// to topK. The sort is stable: ties keep the original vector-similarity rank.
// Deterministic for identical inputs.
func Rerank(docs []store.Document, question string, topK int) []store.Document {
	if len(docs) == 0 {
		return nil
	}

	query := strings.ToLower(question)
	keywords := Keywords(question)

	scored := make([]scoredDocument, len(docs))
	for i, doc := range docs {
		scored[i] = scoredDocument{doc: doc, score: scoreDocument(doc, query, keywords)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if topK > 0 && len(scored) > topK {
		scored = scored[:topK]
	}

	out := make([]store.Document, len(scored))
	for i, s := range scored {
		out[i] = s.doc
	}
	return out
}

type scoredDocument struct {
	doc   store.Document
	score int
}

func scoreDocument(doc store.Document, query string, keywords []string) int {
	content := strings.ToLower(doc.Content)

	score := 0
	for _, kw := range keywords {
		score += strings.Count(content, kw) * bodyWeight
	}

	if strings.Contains(content, query) {
		score += exactPhraseBonus
	}

	if title := strings.ToLower(doc.Metadata.Title); title != "" {
		for _, kw := range keywords {
			if strings.Contains(title, kw) {
				score += titleWeight
			}
		}
	}

	if doc.IsLive() {
		score += freshnessBonus
	}

	if strings.Contains(query, "horaire") && strings.Contains(content, "horaire") {
		score += hoursMatchBonus
	}

	return score
}
