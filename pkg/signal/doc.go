// Package signal models the error-correction status indicator shown next to
// accounted text.
//
// Props holds the indicator inputs with their defaults. Indicator is the
// animation state machine: a transition into "corrected" animates for one
// second unless another status change cancels it first.
//
//	ind := signal.NewIndicator(signal.IndicatorConfig{})
//	ind.SetStatus(signal.StatusCorrected) // Animating
//	// one second later: Idle
//
// The indicator reports nothing back to the accounting core.
package signal
