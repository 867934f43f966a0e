package vocab

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the serialization of a vocabulary resource.
type Format string

const (
	// FormatJSON is the JSON document format (the default).
	FormatJSON Format = "json"
	// FormatYAML is the YAML document format.
	FormatYAML Format = "yaml"
)

// FormatFromPath selects a format from the file extension. Unknown
// extensions fall back to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// document mirrors the top-level layout of a vocabulary resource. Pointer
// fields distinguish absent keys from empty values.
type document struct {
	Vocab         *map[string]int `json:"vocab" yaml:"vocab"`
	Pieces        any             `json:"pieces" yaml:"pieces"`
	SpecialTokens *map[string]any `json:"special_tokens" yaml:"special_tokens"`
	ModelInfo     *map[string]any `json:"model_info" yaml:"model_info"`
}

// Load reads and parses the vocabulary resource at path. The format is
// taken from the extension unless format is non-empty.
func Load(path string, format Format) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	if format == "" {
		format = FormatFromPath(path)
	}

	store, err := Parse(data, format)
	if err != nil {
		var lerr *LoadError
		if errors.As(err, &lerr) {
			lerr.Path = path
		}
		return nil, err
	}
	store.source = path
	return store, nil
}

// Parse decodes a vocabulary resource held in memory.
func Parse(data []byte, format Format) (*Store, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &LoadError{Err: errors.New("resource is empty")}
	}

	var doc document
	if err := decode(data, format, &doc); err != nil {
		return nil, err
	}
	// A second, untyped pass tells a null value apart from an absent key.
	var keys map[string]any
	if err := decode(data, format, &keys); err != nil {
		return nil, err
	}

	switch {
	case doc.Vocab == nil:
		return nil, requiredField(keys, "vocab")
	case doc.Pieces == nil:
		return nil, requiredField(keys, "pieces")
	case doc.SpecialTokens == nil:
		return nil, requiredField(keys, "special_tokens")
	case doc.ModelInfo == nil:
		return nil, requiredField(keys, "model_info")
	}

	groups, err := specialGroups(*doc.SpecialTokens)
	if err != nil {
		return nil, err
	}

	store, err := New(*doc.Vocab, groups, *doc.ModelInfo)
	if err != nil {
		return nil, err
	}
	store.pieces = doc.Pieces
	return store, nil
}

func decode(data []byte, format Format, v any) error {
	switch format {
	case FormatJSON, "":
		if err := json.Unmarshal(data, v); err != nil {
			return &LoadError{Err: fmt.Errorf("malformed JSON: %w", err)}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return &LoadError{Err: fmt.Errorf("malformed YAML: %w", err)}
		}
	default:
		return &LoadError{Err: fmt.Errorf("unsupported format %q", format)}
	}
	return nil
}

// requiredField reports a required field that decoded to nothing, either
// because the key is absent or because its value is null.
func requiredField(keys map[string]any, field string) *LoadError {
	if _, present := keys[field]; present {
		return &LoadError{Field: field, Err: errors.New("must not be null")}
	}
	return missingField(field)
}

// specialGroups extracts the string-list groups of special_tokens. The
// qdpi_tokens group is mandatory and must be a list of strings; other
// entries that are not string lists are treated as opaque and skipped.
func specialGroups(raw map[string]any) (map[string][]string, error) {
	if _, ok := raw[QDPIGroup]; !ok {
		return nil, missingField("special_tokens." + QDPIGroup)
	}

	groups := make(map[string][]string, len(raw))
	for name, value := range raw {
		toks, ok := stringList(value)
		if !ok {
			if name == QDPIGroup {
				return nil, &LoadError{
					Field: "special_tokens." + QDPIGroup,
					Err:   errors.New("must be a list of strings"),
				}
			}
			continue
		}
		groups[name] = toks
	}
	return groups, nil
}

func stringList(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
