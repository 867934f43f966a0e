// Package vocab loads and queries the QDPI vocabulary resource.
//
// A vocabulary resource is a JSON (or YAML) document with four required
// top-level fields:
//
//	{
//	  "vocab":          {"<pad>": 0, "<X_READ>": 1, "hello": 2},
//	  "pieces":         [...],
//	  "special_tokens": {"qdpi_tokens": ["<X_READ>", "<Y_INDEX>"]},
//	  "model_info":     {"model_type": "bpe", "vocab_size": 3}
//	}
//
// Load returns an immutable *Store or a *LoadError:
//
//	store, err := vocab.Load("qdpi_vocab.json", "")
//	if errors.Is(err, vocab.ErrLoad) {
//		// missing, unreadable, malformed or incomplete resource
//	}
//
//	store.Size()               // number of entries
//	store.IsSpecial("<X_READ>") // true
package vocab
