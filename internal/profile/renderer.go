package profile

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Terms are the pool filters a classification stands for. They are only
// shown to the user.
type Terms struct {
	MinTVL      decimal.Decimal // USD
	MinAPR      decimal.Decimal // percent
	MaxAPR      decimal.Decimal // percent
	PoolTypes   string
	Volatility  string
	Description string
}

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
)

var terms = map[Classification]Terms{
	Stable: {
		MinTVL:      decimal.NewFromInt(10_000_000),
		MinAPR:      decimal.NewFromInt(3),
		MaxAPR:      decimal.NewFromInt(15),
		PoolTypes:   "stablecoin pairs and blue-chip tokens",
		Volatility:  "low",
		Description: "Capital preservation first. Deep, established pools with predictable yield and minimal impermanent loss.",
	},
	HighRisk: {
		MinTVL:      decimal.NewFromInt(250_000),
		MinAPR:      decimal.NewFromInt(25),
		MaxAPR:      decimal.NewFromInt(300),
		PoolTypes:   "new listings, volatile pairs and incentive farms",
		Volatility:  "high",
		Description: "Yield first. Younger and thinner pools that can pay far more, with real risk of impermanent loss and sharp drawdowns.",
	},
}

// TermsFor returns the display terms of c.
func TermsFor(c Classification) (Terms, error) {
	t, ok := terms[c]
	if !ok {
		return Terms{}, invalidClassification(string(c))
	}
	return t, nil
}

// Render returns the confirmation shown after a user picks c. The text is
// Markdown and depends on nothing but c.
func Render(c Classification) (string, error) {
	t, err := TermsFor(c)
	if err != nil {
		return "", err
	}

	emoji := "🛡️"
	if c == HighRisk {
		emoji = "🔥"
	}

	return fmt.Sprintf(`%s *Risk profile: %s*
━━━━━━━━━━━━━━━━━━━━━

%s

*What you will see:*
• Pools: %s
• Min TVL: *%s*
• Typical APR: *%s%% – %s%%*
• Volatility: *%s*

━━━━━━━━━━━━━━━━━━━━━
💡 Change it any time with /profile`,
		emoji, c.Label(),
		t.Description,
		t.PoolTypes,
		formatUSD(t.MinTVL),
		t.MinAPR.StringFixed(0), t.MaxAPR.StringFixed(0),
		t.Volatility,
	), nil
}

// formatUSD prints compact dollar amounts: $250K, $10M, $1.5B.
func formatUSD(d decimal.Decimal) string {
	switch {
	case d.GreaterThanOrEqual(billion):
		return "$" + trimZero(d.Div(billion).StringFixed(1)) + "B"
	case d.GreaterThanOrEqual(million):
		return "$" + trimZero(d.Div(million).StringFixed(1)) + "M"
	case d.GreaterThanOrEqual(thousand):
		return "$" + trimZero(d.Div(thousand).StringFixed(1)) + "K"
	default:
		return "$" + d.StringFixed(0)
	}
}

func trimZero(s string) string {
	if len(s) > 2 && s[len(s)-2:] == ".0" {
		return s[:len(s)-2]
	}
	return s
}
