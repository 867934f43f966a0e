// Package costs converts token counts into TNA cost units.
//
// A TNA cost is the token count divided by a tokens-per-unit divisor
// (100 by default). The result is an exact rational; no rounding is
// applied, so downstream billing keeps full precision:
//
//	cost, err := costs.Estimate("Some sample text", tokens.WhitespaceTokenizer{}, store, 100)
//	if errors.Is(err, costs.ErrInvalidConfiguration) {
//		// tokensPerUnit <= 0
//	}
//	cost.String()  // "3/100"
//	cost.Float64() // 0.03
//
// # Configuration Updates
//
// Estimator reads its divisor from config.CostsConfig and accepts a new
// configuration at runtime through UpdateConfig.
package costs
