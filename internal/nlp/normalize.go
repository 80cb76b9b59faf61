package nlp

import (
	"regexp"
	"strings"
)

var (
	punctRe      = regexp.MustCompile(`[^\p{L}\p{N}+#.]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// stopwords shared by keyword extraction and coverage measurement.
var stopwords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "with": true, "by": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "been": true,
	"have": true, "has": true, "had": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true, "can": true,
	"must": true, "this": true, "that": true, "these": true, "those": true,
	"you": true, "your": true, "our": true, "we": true, "they": true,
	"a": true, "an": true, "as": true, "it": true, "its": true, "from": true,
	"not": true, "their": true, "them": true, "his": true, "her": true,
	"who": true, "what": true, "which": true, "while": true, "also": true,
	"about": true, "into": true, "than": true, "then": true, "so": true,
	"such": true, "more": true, "most": true, "other": true, "some": true,
	"all": true, "any": true, "each": true, "per": true, "etc": true,
}

// Normalize lowercases, strips punctuation and collapses whitespace.
// Tokens like "c++", "c#" and "next.js" survive normalization.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = punctRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(strings.Trim(s, ". "))
}

// Tokenize splits normalized text into tokens, dropping empty entries.
func Tokenize(text string) []string {
	norm := Normalize(text)
	if norm == "" {
		return nil
	}
	fields := strings.Fields(norm)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// IsStopword reports whether the token carries no keyword signal.
func IsStopword(token string) bool {
	return stopwords[token]
}

// ContentTokens returns the tokens of text with stopwords removed.
func ContentTokens(text string) []string {
	all := Tokenize(text)
	out := make([]string, 0, len(all))
	for _, t := range all {
		if !IsStopword(t) {
			out = append(out, t)
		}
	}
	return out
}

// NGrams builds contiguous n-token phrases from tokens.
func NGrams(tokens []string, n int) []string {
	if n <= 0 || len(tokens) < n {
		return nil
	}
	grams := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, strings.Join(tokens[i:i+n], " "))
	}
	return grams
}

// Similarity scores two normalized terms in [0,1] using the better of a
// Levenshtein ratio and a token-overlap (Jaccard) ratio. Multi-word terms
// mostly win on token overlap, single words on edit distance.
func Similarity(a, b string) float64 {
	a = Normalize(a)
	b = Normalize(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	lev := levenshteinRatio(a, b)
	jac := tokenJaccard(a, b)
	if jac > lev {
		return jac
	}
	return lev
}

func levenshteinRatio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 || lb == 0 {
		return 0
	}

	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}

	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	return 1 - float64(prev[lb])/float64(maxLen)
}

func tokenJaccard(a, b string) float64 {
	ta := strings.Fields(a)
	tb := strings.Fields(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	set := make(map[string]bool, len(ta))
	for _, t := range ta {
		set[t] = true
	}
	union := make(map[string]bool, len(ta)+len(tb))
	for _, t := range ta {
		union[t] = true
	}
	common := 0
	for _, t := range tb {
		if !union[t] {
			union[t] = true
		}
	}
	seen := make(map[string]bool, len(tb))
	for _, t := range tb {
		if set[t] && !seen[t] {
			common++
			seen[t] = true
		}
	}
	return float64(common) / float64(len(union))
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
