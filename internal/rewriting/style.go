package rewriting

import (
	"regexp"
	"strings"
)

// Common strong action verbs for resume bullets (heuristic check)
var strongVerbs = map[string]bool{
	"achieved": true, "architected": true, "built": true, "created": true,
	"delivered": true, "designed": true, "developed": true, "drove": true,
	"engineered": true, "grew": true, "implemented": true, "improved": true,
	"increased": true, "launched": true, "led": true, "optimized": true,
	"owned": true, "reduced": true, "scaled": true, "shipped": true,
	"spearheaded": true, "transformed": true,
}

// buzzwords are phrases recruiters read as filler.
var buzzwords = []string{
	"synergy", "synergies", "rockstar", "ninja", "guru", "go-getter", "results-driven",
	"detail-oriented", "team player", "hard worker", "think outside the box", "best of breed",
	"dynamic", "passionate",
}

var digitPattern = regexp.MustCompile(`\d`)

// StyleReport holds the results of the style heuristics for one line of text.
type StyleReport struct {
	StrongVerb bool     `json:"strong_verb"`
	Quantified bool     `json:"quantified"`
	Buzzwords  []string `json:"buzzwords,omitempty"`
}

// Review runs the style heuristics. It never changes text; the report is advisory.
func Review(text string) StyleReport {
	textLower := strings.ToLower(strings.TrimSpace(text))
	return StyleReport{
		StrongVerb: checkStrongVerb(textLower),
		Quantified: checkQuantifiedImpact(text),
		Buzzwords:  findBuzzwords(textLower),
	}
}

// checkStrongVerb checks if text starts with a strong action verb
func checkStrongVerb(textLower string) bool {
	words := strings.Fields(textLower)
	if len(words) == 0 {
		return false
	}

	firstWord := strings.TrimRight(words[0], ".,!?;:")
	if strongVerbs[firstWord] {
		return true
	}

	// Past-tense verbs of reasonable length are usually action verbs
	return strings.HasSuffix(firstWord, "ed") && len(firstWord) > 3
}

// checkQuantifiedImpact checks if text contains numbers or metrics
func checkQuantifiedImpact(text string) bool {
	return digitPattern.MatchString(text) || strings.Contains(text, "%")
}

// findBuzzwords returns the buzzwords present in textLower, each at most once.
func findBuzzwords(textLower string) []string {
	var found []string
	seen := make(map[string]bool)
	for _, phrase := range buzzwords {
		if seen[phrase] {
			continue
		}
		if strings.Contains(textLower, phrase) {
			found = append(found, phrase)
			seen[phrase] = true
		}
	}
	return found
}
