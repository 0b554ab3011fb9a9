package query

import (
	"regexp"

	"github.com/poiesic/askit/core"
)

// IntentRule pairs an intent with the pattern that detects it. Rules are
// evaluated in slice order and the first match wins; the ordering is a
// priority policy, configured here rather than implied by iteration order.
type IntentRule struct {
	Name    string
	Intent  core.Intent
	Pattern *regexp.Regexp
}

// DefaultIntentRules returns the ordered rule list: definition before
// comparison before list, service intents next, and the general catch-all
// last. The catch-all has a nil pattern and matches anything.
func DefaultIntentRules() []IntentRule {
	return []IntentRule{
		{
			Name:    "definition",
			Intent:  core.IntentDefinition,
			Pattern: regexp.MustCompile(`(?i)^\s*(what\s+(is|are)\b|define\b|meaning\s+of\b|definition\s+of\b)`),
		},
		{
			Name:    "comparison",
			Intent:  core.IntentComparison,
			Pattern: regexp.MustCompile(`(?i)\b(vs\.?|versus|compare|comparison|difference\s+between)\b`),
		},
		{
			Name:    "list",
			Intent:  core.IntentList,
			Pattern: regexp.MustCompile(`(?i)^\s*(list\b|name\s+(some|the)\b|give\s+me\b|show\s+me\b|examples?\s+of\b)`),
		},
		{
			Name:    "service",
			Intent:  core.IntentService,
			Pattern: regexp.MustCompile(`(?i)\b(weather|current\s+time|time\s+now|stock\s+price|latest\s+news)\b`),
		},
		{
			Name:   "general",
			Intent: core.IntentGeneral,
		},
	}
}

// DefaultConcepts returns the concept tag tables. A query token carries a
// concept when it appears in that concept's keyword list; keywords are
// stored in stemmed form so they line up with normalized query tokens.
func DefaultConcepts() map[string][]string {
	return map[string][]string{
		"computing": {"comput", "processor", "algorithm", "software", "hardware", "program", "code"},
		"quantum":   {"quantum", "qubit", "superposition", "entanglement"},
		"biology":   {"cell", "photosynthesi", "organism", "dna", "gene", "evolution"},
		"physics":   {"energi", "force", "gravity", "particle", "relativ"},
		"space":     {"planet", "star", "galaxi", "orbit", "universe"},
		"history":   {"ancient", "war", "empire", "revolution", "century"},
	}
}

// DefaultRelatedTerms returns the semantic expansion table. Each related
// term is added to the query at a fixed partial weight; the original token
// keeps its full weight.
func DefaultRelatedTerms() map[string][]string {
	return map[string][]string{
		"quantum":       {"qubit", "superposition"},
		"qubit":         {"quantum"},
		"comput":        {"processor", "machine"},
		"intelligence":  {"learning", "neural"},
		"learning":      {"training", "model"},
		"photosynthesi": {"plant", "sunlight"},
		"energi":        {"power"},
		"network":       {"internet", "protocol"},
		"encrypt":       {"security", "cipher"},
	}
}
