package question

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
)

// AnswerKind tells how a stored correct answer was encoded.
type AnswerKind string

const (
	// KindPlain is a literal answer that was not valid JSON.
	KindPlain AnswerKind = "plain"
	// KindSingle is a JSON scalar (string, number, bool).
	KindSingle AnswerKind = "single"
	// KindMulti is a JSON array of acceptable answers.
	KindMulti AnswerKind = "multi"
)

// AnswerKey is the correct answer of a question, classified once when the
// question is written so readers never have to guess the encoding again.
type AnswerKey struct {
	Kind   AnswerKind
	Raw    string   // original text, meaningful for KindPlain
	Values []string // one value for KindSingle, any number for KindMulti
}

func PlainText(raw string) AnswerKey {
	return AnswerKey{Kind: KindPlain, Raw: raw}
}

func SingleValue(v string) AnswerKey {
	return AnswerKey{Kind: KindSingle, Raw: v, Values: []string{v}}
}

func MultiValue(values ...string) AnswerKey {
	vs := make([]string, len(values))
	copy(vs, values)
	return AnswerKey{Kind: KindMulti, Values: vs}
}

// ParseAnswerKey classifies a raw stored answer:
//   - a JSON array becomes KindMulti, each element in its string form;
//   - any other JSON value becomes KindSingle;
//   - anything that is not a single JSON document is KindPlain.
//
// It never fails: undecodable input is simply plain text.
func ParseAnswerKey(raw string) AnswerKey {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return PlainText(raw)
	}
	// trailing garbage means the whole text is not JSON
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return PlainText(raw)
	}

	if arr, ok := v.([]any); ok {
		values := make([]string, len(arr))
		for i, e := range arr {
			values[i] = stringForm(e)
		}
		return MultiValue(values...)
	}
	return SingleValue(stringForm(v))
}

func stringForm(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return canonicalNumber(t)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return "null"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// canonicalNumber writes a JSON number the way it reads as a value, so 1.0,
// 1e0 and 1 all become "1".
func canonicalNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Matches reports whether userAnswer is correct. Both sides are trimmed at
// the ends only; comparison is case-sensitive.
func (k AnswerKey) Matches(userAnswer string) bool {
	u := strings.TrimSpace(userAnswer)
	switch k.Kind {
	case KindSingle, KindMulti:
		for _, v := range k.Values {
			if strings.TrimSpace(v) == u {
				return true
			}
		}
		return false
	default:
		return strings.TrimSpace(k.Raw) == u
	}
}

// Accepted lists the acceptable answers.
func (k AnswerKey) Accepted() []string {
	if k.Kind == KindPlain || k.Kind == "" {
		return []string{k.Raw}
	}
	out := make([]string, len(k.Values))
	copy(out, k.Values)
	return out
}

// Encode returns the storage form of the key.
func (k AnswerKey) Encode() (text string, kind AnswerKind) {
	switch k.Kind {
	case KindSingle:
		b, _ := json.Marshal(k.Values[0])
		return string(b), KindSingle
	case KindMulti:
		values := k.Values
		if values == nil {
			values = []string{}
		}
		b, _ := json.Marshal(values)
		return string(b), KindMulti
	default:
		return k.Raw, KindPlain
	}
}

// DecodeAnswerKey rebuilds a key from its storage form. Rows written before
// answer kinds existed carry an empty kind and go through ParseAnswerKey.
func DecodeAnswerKey(text string, kind AnswerKind) AnswerKey {
	switch kind {
	case KindPlain:
		return PlainText(text)
	case KindSingle:
		var v string
		if err := json.Unmarshal([]byte(text), &v); err != nil {
			return ParseAnswerKey(text)
		}
		return SingleValue(v)
	case KindMulti:
		var vs []string
		if err := json.Unmarshal([]byte(text), &vs); err != nil {
			return ParseAnswerKey(text)
		}
		return MultiValue(vs...)
	default:
		return ParseAnswerKey(text)
	}
}
