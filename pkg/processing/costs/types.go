package costs

import (
	"math/big"
)

// DefaultTokensPerUnit is the divisor used when none is configured.
const DefaultTokensPerUnit = 100.0

// CostUnit is a TNA cost: Tokens divided by TokensPerUnit, kept as an
// exact rational so downstream billing can round however it needs.
type CostUnit struct {
	// Tokens is the token count the cost was derived from.
	Tokens int

	// TokensPerUnit is the divisor that was applied.
	TokensPerUnit float64

	value *big.Rat
}

// Rat returns a copy of the exact cost.
func (c *CostUnit) Rat() *big.Rat {
	return new(big.Rat).Set(c.value)
}

// Float64 returns the nearest float64 to the exact cost.
func (c *CostUnit) Float64() float64 {
	f, _ := c.value.Float64()
	return f
}

// String returns the exact cost as a fraction in lowest terms ("3/100").
func (c *CostUnit) String() string {
	return c.value.RatString()
}

// Decimal formats the cost with prec digits after the decimal point.
func (c *CostUnit) Decimal(prec int) string {
	return c.value.FloatString(prec)
}
