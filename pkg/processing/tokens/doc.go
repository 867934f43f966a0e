// Package tokens turns text into token sequences for TNA accounting.
//
// Two strategies implement the Tokenizer interface:
//
//   - WhitespaceTokenizer (default): one token per run of non-whitespace
//     characters. It is a deliberate stand-in for real subword
//     tokenization and makes no use of the vocabulary beyond annotating
//     tokens with their ids.
//   - TiktokenTokenizer: a published BPE encoding applied between the
//     vocabulary's special tokens, which are always emitted whole.
//
// # Usage
//
//	store, _ := vocab.Load("qdpi_vocab.json", "")
//	tok, _ := tokens.New(&cfg.Tokenizer)
//
//	seq, err := tok.Tokenize("<X_READ>Hello jacklyn-variance<Y_INDEX>", store)
//	if errors.Is(err, tokens.ErrInvalidInput) {
//		// nil store or invalid UTF-8
//	}
//	fmt.Println(seq.Len()) // 2: "<X_READ>Hello", "jacklyn-variance<Y_INDEX>"
//
// # Extension Point
//
// The QDPI vocabulary's own merge rules are not implemented. A tokenizer
// that applies them plugs in by implementing Tokenizer; callers such as the
// cost estimator depend only on the interface.
package tokens
