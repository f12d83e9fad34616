package pact

import (
	"encoding/json"
	"strings"
)

// Number decodes a ledger numeric result. The wire representation varies by
// ledger-side type: a plain JSON number, {"decimal": "1.5"} or {"int": 42}.
// Anything else decodes as absent - never as zero - so balance and reward
// classification fails closed on unparsable values.
type Number struct {
	text string
	ok   bool
}

type taggedNumber struct {
	Decimal json.RawMessage `json:"decimal"`
	Int     json.RawMessage `json:"int"`
}

// tagText extracts the numeric text of a tag value, which arrives as either a
// JSON number or a numeric string.
func tagText(raw json.RawMessage) (string, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return "", false
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return "", false
	}
	return num.String(), true
}

// UnmarshalJSON accepts all known wire shapes and marks unknown ones absent.
// It never returns an error: decoding failure is a value, not a fault.
func (n *Number) UnmarshalJSON(b []byte) error {
	n.text = ""
	n.ok = false

	trimmed := strings.TrimSpace(string(b))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	// Plain JSON number
	if trimmed[0] != '{' && trimmed[0] != '"' && trimmed[0] != '[' {
		var plain json.Number
		if err := json.Unmarshal(b, &plain); err == nil {
			n.text = plain.String()
			n.ok = true
		}
		return nil
	}

	// Tagged object: {"decimal": "..."} or {"int": ...}. The tag values are
	// accepted as either JSON numbers or numeric strings.
	if trimmed[0] == '{' {
		var tagged taggedNumber
		if err := json.Unmarshal(b, &tagged); err != nil {
			return nil
		}
		switch {
		case tagged.Decimal != nil:
			if text, ok := tagText(tagged.Decimal); ok {
				n.setValidated(text)
			}
		case tagged.Int != nil:
			if text, ok := tagText(tagged.Int); ok {
				n.setValidated(text)
			}
		}
	}
	return nil
}

func (n *Number) setValidated(s string) {
	if decimalPattern.MatchString(s) {
		n.text = s
		n.ok = true
	}
}

// Decimal returns the canonical decimal text and whether a value was decoded
func (n Number) Decimal() (string, bool) {
	return n.text, n.ok
}

// Positive reports whether the decoded value is strictly greater than zero.
// The second result is false when no value was decoded.
func (n Number) Positive() (bool, bool) {
	if !n.ok {
		return false, false
	}
	if strings.HasPrefix(n.text, "-") {
		return false, true
	}
	for _, c := range n.text {
		if c >= '1' && c <= '9' {
			return true, true
		}
	}
	return false, true
}

// DecodeNumber parses a raw JSON value into a Number
func DecodeNumber(raw json.RawMessage) Number {
	var n Number
	// UnmarshalJSON never fails; unknown shapes decode as absent
	_ = n.UnmarshalJSON(raw)
	return n
}
