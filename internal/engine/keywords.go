package engine

import (
	"sort"
	"strings"

	"github.com/resumatch/resumatch/internal/model"
	"github.com/resumatch/resumatch/internal/nlp"
)

// maxKeywordTokens bounds n-gram extraction on pathological postings.
const maxKeywordTokens = 5000

type weightedPhrase struct {
	phrase string
	weight float64
}

// keywordScore extracts the posting's top weighted 1-3 word phrases and
// measures how much of that weight the resume text covers. Coverage is a
// binary presence test per phrase, so adding an occurrence of a missing
// phrase can only raise the score.
func (e *Engine) keywordScore(resume *model.ResumeProfile, posting *model.JobPosting) float64 {
	phrases := e.extractPhrases(posting.AnalysisText())
	if len(phrases) == 0 {
		return 100
	}

	// rebuilt from the same tokenization the phrases came from, so
	// sentence punctuation around a phrase cannot hide it
	resumeText := " " + strings.Join(nlp.Tokenize(resume.AggregateText()), " ") + " "

	total := 0.0
	covered := 0.0
	for _, p := range phrases {
		total += p.weight
		if strings.Contains(resumeText, " "+p.phrase+" ") {
			covered += p.weight
		}
	}
	if total == 0 {
		return 100
	}
	return covered / total * 100
}

// extractPhrases builds stopword-free 1-3 grams weighted by frequency and
// by how early the phrase first occurs, and keeps the top N.
func (e *Engine) extractPhrases(text string) []weightedPhrase {
	tokens := nlp.Tokenize(text)
	if len(tokens) > maxKeywordTokens {
		tokens = tokens[:maxKeywordTokens]
	}
	if len(tokens) == 0 {
		return nil
	}

	freq := make(map[string]int)
	first := make(map[string]int)

	for n := 1; n <= 3; n++ {
		for i, phrase := range nlp.NGrams(tokens, n) {
			gram := tokens[i : i+n]
			if containsStopword(gram) {
				continue
			}
			if n == 1 && len(gram[0]) <= 2 {
				continue
			}
			freq[phrase]++
			if _, ok := first[phrase]; !ok {
				first[phrase] = i
			}
		}
	}

	phrases := make([]weightedPhrase, 0, len(freq))
	for phrase, count := range freq {
		// Earlier phrases matter more: up to +50% for an opening mention.
		earliness := 1 + 0.5*(1-float64(first[phrase])/float64(len(tokens)))
		phrases = append(phrases, weightedPhrase{phrase: phrase, weight: float64(count) * earliness})
	}

	sort.Slice(phrases, func(i, j int) bool {
		if phrases[i].weight != phrases[j].weight {
			return phrases[i].weight > phrases[j].weight
		}
		return phrases[i].phrase < phrases[j].phrase
	})

	if len(phrases) > e.cfg.TopKeywords {
		phrases = phrases[:e.cfg.TopKeywords]
	}
	return phrases
}

func containsStopword(gram []string) bool {
	for _, t := range gram {
		if nlp.IsStopword(t) {
			return true
		}
	}
	return false
}
