package tokens

import (
	"fmt"

	"qdpi-hq/tna/pkg/config"
	"qdpi-hq/tna/pkg/vocab"
)

// Tokenizer turns text into an ordered token sequence.
// Implementations hold no mutable state; Tokenize is reentrant.
type Tokenizer interface {
	// Name identifies the strategy ("whitespace", "tiktoken").
	Name() string

	// Tokenize splits text into tokens in left-to-right order. The empty
	// string yields an empty sequence. A nil store or text that is not
	// valid UTF-8 fails with *InvalidInputError.
	Tokenize(text string, store *vocab.Store) (Sequence, error)
}

// UnknownID is the Token.ID of a fragment that is not a vocabulary entry.
const UnknownID = -1

// Token is one element of a Sequence.
type Token struct {
	// Text is the token string as it appears in the source text.
	Text string

	// ID is the vocabulary id of Text, or UnknownID.
	ID int

	// Special reports whether Text is a reserved special token.
	Special bool
}

// Sequence is an ordered list of tokens.
type Sequence []Token

// Len returns the number of tokens.
func (s Sequence) Len() int {
	return len(s)
}

// Texts returns the token strings in order.
func (s Sequence) Texts() []string {
	out := make([]string, len(s))
	for i, tok := range s {
		out[i] = tok.Text
	}
	return out
}

// IDs returns the vocabulary ids in order, UnknownID for unknown tokens.
func (s Sequence) IDs() []int {
	out := make([]int, len(s))
	for i, tok := range s {
		out[i] = tok.ID
	}
	return out
}

// Count tokenizes text and returns the number of tokens.
func Count(t Tokenizer, text string, store *vocab.Store) (int, error) {
	seq, err := t.Tokenize(text, store)
	if err != nil {
		return 0, err
	}
	return seq.Len(), nil
}

// New returns the tokenizer selected by cfg.Strategy.
func New(cfg *config.TokenizerConfig) (Tokenizer, error) {
	switch cfg.Strategy {
	case "", StrategyWhitespace:
		return WhitespaceTokenizer{}, nil
	case StrategyTiktoken:
		return NewTiktokenTokenizer(cfg.Encoding)
	default:
		return nil, fmt.Errorf("unknown tokenizer strategy %q", cfg.Strategy)
	}
}

// annotate builds a Token for text using the store's id and special-token
// tables.
func annotate(text string, store *vocab.Store) Token {
	tok := Token{Text: text, ID: UnknownID, Special: store.IsSpecial(text)}
	if id, ok := store.ID(text); ok {
		tok.ID = id
	}
	return tok
}
