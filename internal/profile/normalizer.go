package profile

import "strings"

// identifiers maps every known button/command payload to its classification.
// Older keyboards used several prefixes for the same action; all of them are
// still accepted.
var identifiers = map[string]Classification{
	"stable":            Stable,
	"high-risk":         HighRisk,
	"high_risk":         HighRisk,
	"highrisk":          HighRisk,
	"risk_stable":       Stable,
	"risk_high":         HighRisk,
	"risk_high_risk":    HighRisk,
	"risk_highrisk":     HighRisk,
	"profile_stable":    Stable,
	"profile_high_risk": HighRisk,
	"profile_highrisk":  HighRisk,
	"set_risk_stable":   Stable,
	"set_risk_high":     HighRisk,
	"set_stable":        Stable,
	"set_high_risk":     HighRisk,
	"/stable":           Stable,
	"/highrisk":         HighRisk,
	"/high_risk":        HighRisk,
}

// tokens are the canonical spellings searched for when no exact match exists.
// Input is lowercased and "_"/" " become "-" before the search.
var tokens = []struct {
	class  Classification
	tokens []string
}{
	{Stable, []string{"stable"}},
	{HighRisk, []string{"high-risk", "highrisk"}},
}

// Normalize resolves a raw identifier to a classification. Exact matches win;
// otherwise the identifier must contain the token of exactly one
// classification. Anything else is not a profile action.
func Normalize(identifier string) (Classification, bool) {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return "", false
	}
	if c, ok := identifiers[id]; ok {
		return c, true
	}

	folded := strings.NewReplacer("_", "-", " ", "-").Replace(strings.ToLower(id))

	var found Classification
	matches := 0
	for _, t := range tokens {
		for _, tok := range t.tokens {
			if strings.Contains(folded, tok) {
				found = t.class
				matches++
				break
			}
		}
	}
	if matches != 1 {
		return "", false
	}
	return found, true
}
