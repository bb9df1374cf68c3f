package generator

import (
	"encoding/json"
	"errors"
)

// ErrEmptyResponse means the webhook envelope reduced to no usable text.
// It is the only hard parse failure; everything downstream degrades instead.
var ErrEmptyResponse = errors.New("empty webhook response")

// The webhook's envelope shape is not contractually fixed: it may be an array
// of items, a single object, or a bare string, with the real text usually
// under an "output" field. The shape is classified once here; nothing after
// Unwrap branches on it again.
type envelopeKind int

const (
	kindEmpty envelopeKind = iota
	kindSequence
	kindRecord
	kindText
)

type envelope struct {
	kind envelopeKind
	seq  []any
	rec  map[string]any
	text string
}

func classify(v any) envelope {
	switch t := v.(type) {
	case []any:
		if len(t) == 0 {
			return envelope{kind: kindEmpty}
		}
		return envelope{kind: kindSequence, seq: t}
	case map[string]any:
		if len(t) == 0 {
			return envelope{kind: kindEmpty}
		}
		return envelope{kind: kindRecord, rec: t}
	case string:
		if t == "" {
			return envelope{kind: kindEmpty}
		}
		return envelope{kind: kindText, text: t}
	default:
		return envelope{kind: kindEmpty}
	}
}

// Unwrap reduces an arbitrary envelope value to the single text payload.
// First match wins: sequence head (output field, bare string, or serialized
// item), record output field, bare string, serialized record.
func Unwrap(v any) (string, error) {
	env := classify(v)
	switch env.kind {
	case kindSequence:
		first := env.seq[0]
		if rec, ok := first.(map[string]any); ok {
			if out, ok := rec["output"].(string); ok {
				return out, nil
			}
		}
		if s, ok := first.(string); ok {
			return s, nil
		}
		return serialize(first)
	case kindRecord:
		if out, ok := env.rec["output"].(string); ok {
			return out, nil
		}
		return serialize(env.rec)
	case kindText:
		return env.text, nil
	default:
		return "", ErrEmptyResponse
	}
}

func serialize(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil || len(b) == 0 {
		return "", ErrEmptyResponse
	}
	return string(b), nil
}
