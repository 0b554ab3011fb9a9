package textnorm

// Stop words dropped from every token stream. Includes interrogatives so
// question scaffolding ("what is ...") never competes with content terms.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "what": true, "how": true, "why": true,
	"who": true, "when": true, "where": true, "which": true, "does": true,
	"can": true, "will": true, "about": true, "or": true,
}

// DefaultAliases maps abbreviations to their multi-word expansions.
// An alias replaces the matched piece entirely.
func DefaultAliases() map[string][]string {
	return map[string][]string{
		"ai":  {"artificial", "intelligence"},
		"ml":  {"machine", "learning"},
		"nlp": {"natural", "language", "processing"},
		"qc":  {"quantum", "computing"},
		"db":  {"database"},
		"os":  {"operating", "system"},
		"vr":  {"virtual", "reality"},
		"iot": {"internet", "things"},
	}
}

// DefaultSynonyms maps tokens to additional related tokens. Unlike aliases,
// synonyms are injected alongside the original token, not in place of it.
func DefaultSynonyms() map[string][]string {
	return map[string][]string{
		"computer":    {"machine"},
		"fast":        {"quick", "rapid"},
		"build":       {"create", "make"},
		"difference":  {"comparison"},
		"application": {"program"},
		"network":     {"connection"},
		"secure":      {"safety"},
	}
}

// Suffixes stripped during stemming, longest first; the first match wins
// and exactly one suffix is removed. A suffix is only stripped when the
// remaining stem is at least three characters.
var stemSuffixes = []string{
	"ization", "ational", "fulness", "ousness",
	"iveness", "ation", "ility", "ness",
	"ment", "tion", "sion", "able", "ible",
	"ing", "ers", "ies", "ion", "est",
	"ed", "es", "ly", "s",
}
