package domain

// TrendDirection qualitative direction of price action.
type TrendDirection string

const (
	TrendDirectionBullish TrendDirection = "bullish"
	TrendDirectionBearish TrendDirection = "bearish"
	TrendDirectionNeutral TrendDirection = "neutral"
)

// String returns the string representation.
func (t TrendDirection) String() string {
	return string(t)
}

// Title returns a human-readable representation.
func (t TrendDirection) Title() string {
	switch t {
	case TrendDirectionBullish:
		return "Bullish"
	case TrendDirectionBearish:
		return "Bearish"
	default:
		return "Neutral"
	}
}
