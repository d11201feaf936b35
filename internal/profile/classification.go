// Package profile keeps each user's risk profile in step with what they ask
// for, and renders the replies the bot shows for it.
package profile

// Classification is a user's risk profile.
type Classification string

const (
	Stable   Classification = "stable"
	HighRisk Classification = "high-risk"
)

// Classifications lists every valid classification in menu order.
var Classifications = []Classification{Stable, HighRisk}

// Valid reports whether c is one of the known classifications.
func (c Classification) Valid() bool {
	return c == Stable || c == HighRisk
}

// Label is the human readable name shown in account summaries.
func (c Classification) Label() string {
	switch c {
	case Stable:
		return "Stable"
	case HighRisk:
		return "High-risk"
	default:
		return string(c)
	}
}

// ParseClassification accepts only the canonical stored values.
func ParseClassification(s string) (Classification, error) {
	c := Classification(s)
	if !c.Valid() {
		return "", invalidClassification(s)
	}
	return c, nil
}
