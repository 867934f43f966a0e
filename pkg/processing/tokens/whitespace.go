package tokens

import (
	"strings"

	"qdpi-hq/tna/pkg/vocab"
)

// Strategy names accepted by New.
const (
	StrategyWhitespace = "whitespace"
	StrategyTiktoken   = "tiktoken"
)

// WhitespaceTokenizer is the baseline tokenizer: every run of non-space
// characters is one token. It applies no subword merges, so special markers
// glued to words stay part of the surrounding fragment.
type WhitespaceTokenizer struct{}

// Name returns "whitespace".
func (WhitespaceTokenizer) Name() string {
	return StrategyWhitespace
}

// Tokenize splits text on runs of Unicode whitespace, dropping empty
// fragments.
func (WhitespaceTokenizer) Tokenize(text string, store *vocab.Store) (Sequence, error) {
	if err := validate(text, store); err != nil {
		return nil, err
	}

	fields := strings.Fields(text)
	seq := make(Sequence, 0, len(fields))
	for _, f := range fields {
		seq = append(seq, annotate(f, store))
	}
	return seq, nil
}
