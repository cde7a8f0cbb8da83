package answer

import "strings"

// maxRepeatedSentences caps how many sentences survive once the generator
// starts looping. Small local models echo and repeat; the cut keeps the
// first non-repeating run.
const maxRepeatedSentences = 3

// Postprocess cleans a raw generation: strips echoed prompt/template text
// and truncates runaway sentence repetition.
func Postprocess(raw, prompt string) string {
	result := strings.TrimSpace(raw)

	// The generator sometimes replays the whole prompt before answering.
	if strings.HasPrefix(result, prompt) {
		result = strings.TrimSpace(result[len(prompt):])
	}

	// Keep only what follows the last template marker.
	if idx := strings.LastIndex(result, "Réponse:"); idx >= 0 {
		result = strings.TrimSpace(result[idx+len("Réponse:"):])
	}

	return cutRepetition(result)
}

// cutRepetition detects a repeated sentence and cuts the output there.
func cutRepetition(text string) string {
	sentences := strings.Split(text, ". ")
	if len(sentences) <= maxRepeatedSentences {
		return text
	}

	seen := make(map[string]bool)
	var unique []string
	for _, s := range sentences {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		if seen[trimmed] {
			break
		}
		seen[trimmed] = true
		unique = append(unique, s)
	}

	if len(unique) == len(sentences) {
		return text
	}

	result := strings.Join(unique, ". ")
	if !strings.HasSuffix(result, ".") {
		result += "."
	}
	return result
}
