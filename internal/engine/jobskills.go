package engine

import (
	"strings"

	"github.com/resumatch/resumatch/internal/model"
	"github.com/resumatch/resumatch/internal/nlp"
	"github.com/resumatch/resumatch/internal/taxonomy"
)

var preferredMarkers = []string{
	"prefer",
	"nice to have",
	"bonus",
	"a plus",
	"plus point",
	"ideally",
	"advantage",
	"familiarity with",
}

// DeriveSkills extracts required and preferred skill lists from posting
// text for postings that do not list them explicitly. Sentences phrased
// as preferences ("nice to have", "a plus") feed the preferred list, the
// rest feed the required one.
func DeriveSkills(tax *taxonomy.Taxonomy, posting *model.JobPosting) (required, preferred []string) {
	text := posting.Requirements
	if strings.TrimSpace(text) == "" {
		text = posting.Description
	}

	var requiredText, preferredText strings.Builder
	for _, sentence := range splitSentences(text) {
		if isPreferredSentence(sentence) {
			preferredText.WriteString(sentence)
			preferredText.WriteString(" ")
		} else {
			requiredText.WriteString(sentence)
			requiredText.WriteString(" ")
		}
	}
	// preference wording in the description counts even when the
	// requirements section was the primary source
	if text != posting.Description {
		for _, sentence := range splitSentences(posting.Description) {
			if isPreferredSentence(sentence) {
				preferredText.WriteString(sentence)
				preferredText.WriteString(" ")
			}
		}
	}

	required = tax.ExtractSkills(requiredText.String())
	inRequired := make(map[string]bool, len(required))
	for _, s := range required {
		inRequired[s] = true
	}
	for _, s := range tax.ExtractSkills(preferredText.String()) {
		if !inRequired[s] {
			preferred = append(preferred, s)
		}
	}
	return required, preferred
}

// splitSentences breaks posting text on sentence and bullet boundaries.
// A dot only terminates a sentence when followed by whitespace, so
// dotted skill names like "node.js" stay intact.
func splitSentences(text string) []string {
	replacer := strings.NewReplacer(
		". ", "\x00", ".\n", "\x00",
		"!", "\x00", "?", "\x00", ";", "\x00",
		"\n", "\x00", "\r", "\x00", "•", "\x00",
	)
	parts := strings.Split(replacer.Replace(text), "\x00")
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func isPreferredSentence(sentence string) bool {
	norm := nlp.Normalize(sentence)
	for _, marker := range preferredMarkers {
		if strings.Contains(norm, marker) {
			return true
		}
	}
	return false
}
