package tokens

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"qdpi-hq/tna/pkg/config"
	"qdpi-hq/tna/pkg/vocab"
)

func testStore(t *testing.T) *vocab.Store {
	t.Helper()
	store, err := vocab.Load("../../vocab/testdata/qdpi_vocab.json", "")
	if err != nil {
		t.Fatalf("failed to load test vocabulary: %v", err)
	}
	return store
}

func TestWhitespaceTokenizer_Tokenize(t *testing.T) {
	store := testStore(t)
	tok := WhitespaceTokenizer{}

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty string",
			text: "",
			want: []string{},
		},
		{
			name: "only whitespace",
			text: " \t\n  \r\n",
			want: []string{},
		},
		{
			name: "simple sentence",
			text: "Some sample text",
			want: []string{"Some", "sample", "text"},
		},
		{
			name: "markers stay glued to words",
			text: "<X_READ>Hello jacklyn-variance<Y_INDEX>",
			want: []string{"<X_READ>Hello", "jacklyn-variance<Y_INDEX>"},
		},
		{
			name: "runs of mixed whitespace",
			text: "  a\t\tb \n c  ",
			want: []string{"a", "b", "c"},
		},
		{
			name: "unicode whitespace",
			text: "α β γ",
			want: []string{"α", "β", "γ"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := tok.Tokenize(tt.text, store)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if seq == nil {
				t.Fatal("expected non-nil sequence")
			}
			if got := seq.Texts(); !slices.Equal(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.text, got, tt.want)
			}
			if seq.Len() != len(strings.Fields(tt.text)) {
				t.Errorf("expected %d tokens, got %d", len(strings.Fields(tt.text)), seq.Len())
			}
		})
	}
}

func TestWhitespaceTokenizer_Annotations(t *testing.T) {
	store := testStore(t)

	seq, err := WhitespaceTokenizer{}.Tokenize("Hello <X_READ> unknown", store)
	if err != nil {
		t.Fatal(err)
	}

	want := Sequence{
		{Text: "Hello", ID: 5},
		{Text: "<X_READ>", ID: 2, Special: true},
		{Text: "unknown", ID: UnknownID},
	}
	if !slices.Equal(seq, want) {
		t.Errorf("got %+v, want %+v", seq, want)
	}
	if ids := seq.IDs(); !slices.Equal(ids, []int{5, 2, UnknownID}) {
		t.Errorf("unexpected ids %v", ids)
	}
}

func TestWhitespaceTokenizer_Idempotent(t *testing.T) {
	store := testStore(t)
	tok := WhitespaceTokenizer{}
	text := "<X_READ>Hello jacklyn-variance<Y_INDEX> and more"

	first, err := tok.Tokenize(text, store)
	if err != nil {
		t.Fatal(err)
	}
	second, err := tok.Tokenize(text, store)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(first, second) {
		t.Errorf("tokenize is not idempotent: %v vs %v", first, second)
	}
}

func TestWhitespaceTokenizer_InvalidInput(t *testing.T) {
	store := testStore(t)

	tests := []struct {
		name      string
		text      string
		store     *vocab.Store
		wantField string
	}{
		{name: "nil store", text: "hello", store: nil, wantField: "store"},
		{name: "invalid UTF-8", text: "bad \xff\xfe bytes", store: store, wantField: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WhitespaceTokenizer{}.Tokenize(tt.text, tt.store)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			var ierr *InvalidInputError
			if !errors.As(err, &ierr) || ierr.Field != tt.wantField {
				t.Errorf("expected field %q, got %+v", tt.wantField, ierr)
			}
		})
	}
}

func TestCount(t *testing.T) {
	store := testStore(t)

	n, err := Count(WhitespaceTokenizer{}, "Some sample text", store)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("expected 3 tokens, got %d", n)
	}

	if _, err := Count(WhitespaceTokenizer{}, "x", nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.TokenizerConfig
		wantName string
		wantErr  bool
	}{
		{name: "default", cfg: config.TokenizerConfig{}, wantName: StrategyWhitespace},
		{name: "whitespace", cfg: config.TokenizerConfig{Strategy: "whitespace"}, wantName: StrategyWhitespace},
		{name: "tiktoken", cfg: config.TokenizerConfig{Strategy: "tiktoken", Encoding: "cl100k_base"}, wantName: StrategyTiktoken},
		{name: "unknown", cfg: config.TokenizerConfig{Strategy: "sentencepiece"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := New(&tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tok.Name() != tt.wantName {
				t.Errorf("expected %q, got %q", tt.wantName, tok.Name())
			}
		})
	}
}
