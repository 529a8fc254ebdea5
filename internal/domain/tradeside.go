package domain

import "strings"

// TradeSide direction of an intended trade.
type TradeSide string

const (
	// TradeSideLong buy to open.
	TradeSideLong TradeSide = "long"
	// TradeSideShort sell to open.
	TradeSideShort TradeSide = "short"
)

// String returns the string representation.
func (s TradeSide) String() string {
	return string(s)
}

// IsValid checks if the TradeSide value is valid.
func (s TradeSide) IsValid() bool {
	return s == TradeSideLong || s == TradeSideShort
}

// ParseTradeSide parses a side case-insensitively.
// The second result is false for anything other than long or short.
func ParseTradeSide(raw string) (TradeSide, bool) {
	side := TradeSide(strings.ToLower(strings.TrimSpace(raw)))
	if !side.IsValid() {
		return "", false
	}
	return side, true
}
