// Package profile holds the offline text generators: remark merging
// for habits and questionnaire-based user profiles. The AI-backed
// equivalents live behind the remote classifier collaborator; these
// are the fallbacks that always work.
package profile

import "strings"

// maxRemarkWords bounds a merged remark.
const maxRemarkWords = 20

// MergeRemark combines an existing remark with a new observation. If
// the observation is already contained in the remark the remark is
// kept as is; the result is truncated to 20 words.
func MergeRemark(existing, text string) string {
	merged := strings.TrimSpace(strings.TrimPrefix(existing+". "+text, ". "))
	if existing != "" && strings.Contains(existing, text) {
		merged = existing
	}

	words := strings.Fields(merged)
	if len(words) > maxRemarkWords {
		merged = strings.Join(words[:maxRemarkWords], " ")
	}
	return merged
}

// Generate assembles a short profile from questionnaire answers. The
// answer values may be strings or lists of strings, mirroring the
// questionnaire payload shape.
func Generate(answers map[string]any) string {
	var b strings.Builder
	b.WriteString("Based on your answers, ")

	for _, choice := range stringList(answers["How do you usually prefer to spend your free time?"]) {
		switch choice {
		case "Engaging in creative activities":
			b.WriteString("you're interested in creative pursuits. ")
		case "Socializing with friends/family":
			b.WriteString("you value social connections. ")
		case "Learning something new":
			b.WriteString("you have a thirst for knowledge. ")
		}
	}

	if work, ok := answers["What's your ideal work style?"].(string); ok {
		if strings.Contains(strings.ToLower(work), "structured environment") {
			b.WriteString("You thrive with structure and organization. ")
		}
	}

	if approach, ok := answers["Which of the following statements best describes your approach to tasks?"].(string); ok {
		if strings.Contains(strings.ToLower(approach), "small, manageable tasks") {
			b.WriteString("You prefer breaking down tasks into smaller parts. ")
		}
	}

	if motivation, ok := answers["What motivates you the most to stick to a goal or habit?"].(string); ok {
		if strings.Contains(motivation, "Internal satisfaction") {
			b.WriteString("You're intrinsically motivated and driven by personal growth.")
		}
	}

	return strings.TrimSpace(b.String())
}

// stringList normalizes a questionnaire answer into a string slice.
// JSON decoding hands us []any; direct callers may pass []string.
func stringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		var out []string
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
