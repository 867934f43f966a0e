package tokens

import (
	"fmt"
	"strings"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"

	"qdpi-hq/tna/pkg/vocab"
)

var offlineLoader sync.Once

// TiktokenTokenizer applies a published BPE encoding (cl100k_base by
// default) to the text between special tokens. Special tokens found in the
// store are emitted whole and never BPE-encoded.
//
// BPE ranks are read from the embedded offline loader, so construction
// never touches the network.
type TiktokenTokenizer struct {
	encoding string
	enc      *tiktoken.Tiktoken
}

// NewTiktokenTokenizer loads the named encoding.
func NewTiktokenTokenizer(encoding string) (*TiktokenTokenizer, error) {
	offlineLoader.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})

	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: get encoding %q: %w", encoding, err)
	}
	return &TiktokenTokenizer{encoding: encoding, enc: enc}, nil
}

// Name returns "tiktoken".
func (t *TiktokenTokenizer) Name() string {
	return StrategyTiktoken
}

// Encoding returns the BPE encoding name.
func (t *TiktokenTokenizer) Encoding() string {
	return t.encoding
}

// Tokenize cuts special tokens out of text and BPE-encodes the remainder.
// Concatenating the token texts reproduces the input.
func (t *TiktokenTokenizer) Tokenize(text string, store *vocab.Store) (Sequence, error) {
	if err := validate(text, store); err != nil {
		return nil, err
	}

	seq := Sequence{}
	for _, seg := range splitSpecial(text, store.SpecialTokens()) {
		if seg.special {
			seq = append(seq, annotate(seg.text, store))
			continue
		}
		for _, rank := range t.enc.Encode(seg.text, nil, nil) {
			piece := t.enc.Decode([]int{rank})
			tok := annotate(piece, store)
			// A BPE piece that happens to spell a marker is still ordinary text.
			tok.Special = false
			seq = append(seq, tok)
		}
	}
	return seq, nil
}

type segment struct {
	text    string
	special bool
}

// splitSpecial splits text around occurrences of markers. At each step the
// earliest match wins, and the longest marker wins among matches at the
// same offset.
func splitSpecial(text string, markers []string) []segment {
	var out []segment
	for len(text) > 0 {
		pos, match := -1, ""
		for _, m := range markers {
			if m == "" {
				continue
			}
			i := strings.Index(text, m)
			if i < 0 {
				continue
			}
			if pos < 0 || i < pos || (i == pos && len(m) > len(match)) {
				pos, match = i, m
			}
		}
		if pos < 0 {
			out = append(out, segment{text: text})
			break
		}
		if pos > 0 {
			out = append(out, segment{text: text[:pos]})
		}
		out = append(out, segment{text: match, special: true})
		text = text[pos+len(match):]
	}
	return out
}
