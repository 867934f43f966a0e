package processing

import (
	"time"

	"qdpi-hq/tna/pkg/processing/costs"
	"qdpi-hq/tna/pkg/processing/tokens"
)

// Result is the outcome of one accounting call.
type Result struct {
	// RequestID uniquely identifies the call in logs and spans.
	RequestID string

	// Strategy is the name of the tokenizer that produced Tokens.
	Strategy string

	// Tokens is the annotated token sequence.
	Tokens tokens.Sequence

	// Count is len(Tokens).
	Count int

	// Special is the number of tokens found in the vocabulary's special groups.
	Special int

	// Cost is the estimated cost. Nil for tokenize calls.
	Cost *costs.CostUnit

	// VocabularySource is where the store that served the call was loaded
	// from. Empty for stores built in memory.
	VocabularySource string

	// Duration is the time spent in the call.
	Duration time.Duration
}

// specialCount returns the number of special tokens in seq.
func specialCount(seq tokens.Sequence) int {
	n := 0
	for _, tok := range seq {
		if tok.Special {
			n++
		}
	}
	return n
}
