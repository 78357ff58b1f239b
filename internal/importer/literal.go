package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotObject is returned when a dict column does not hold an object.
var ErrNotObject = errors.New("not a dict literal")

// pythonToJSON turns a python style literal with single quoted strings into json.
func pythonToJSON(s string) string {
	return strings.ReplaceAll(s, "'", `"`)
}

// ParseList decodes a list literal such as ['a', 'b'].
func ParseList(s string) ([]string, error) {
	var out []string
	if err := json.Unmarshal([]byte(pythonToJSON(s)), &out); err != nil {
		return nil, fmt.Errorf("decode list %q: %w", s, err)
	}

	return out, nil
}

// Pair is one key/value of a dict literal.
type Pair struct {
	Key   string
	Value string
}

// ParseDict decodes a dict literal such as {'salt': '1 pinch'} keeping the key order.
func ParseDict(s string) ([]Pair, error) {
	dec := json.NewDecoder(strings.NewReader(pythonToJSON(s)))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode dict %q: %w", s, err)
	}

	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: %q", ErrNotObject, s)
	}

	var pairs []Pair

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode dict %q: %w", s, err)
		}

		key, _ := keyTok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode dict %q: %w", s, err)
		}

		pairs = append(pairs, Pair{Key: key, Value: fmt.Sprint(value)})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode dict %q: %w", s, err)
	}

	return pairs, nil
}

// Lines renders pairs as "key: value" lines.
func Lines(pairs []Pair) string {
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		lines = append(lines, p.Key+": "+p.Value)
	}

	return strings.Join(lines, "\n")
}
