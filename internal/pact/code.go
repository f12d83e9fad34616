package pact

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Arg is a typed, already-rendered script argument. Arguments can only be
// produced through the constructors below, so a caller-controlled value can
// never break out of its argument position in the script text.
type Arg struct {
	text string
}

// String renders a quoted-and-escaped string literal
func String(v string) Arg {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range v {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return Arg{text: b.String()}
}

// Int renders an integer literal
func Int(v int64) Arg {
	return Arg{text: strconv.FormatInt(v, 10)}
}

// Bool renders a boolean literal
func Bool(v bool) Arg {
	return Arg{text: strconv.FormatBool(v)}
}

var decimalPattern = regexp.MustCompile(`^-?[0-9]+\.[0-9]+$|^-?[0-9]+$`)

// Decimal renders a decimal literal from its canonical string form.
// Rejects anything that is not a plain decimal number.
func Decimal(v string) (Arg, error) {
	if !decimalPattern.MatchString(v) {
		return Arg{}, fmt.Errorf("invalid decimal literal: %q", v)
	}
	// The ledger distinguishes integer and decimal literals; force a decimal
	if !strings.Contains(v, ".") {
		v += ".0"
	}
	return Arg{text: v}, nil
}

// Keyset renders a keyset read from the command environment
func Keyset(name string) Arg {
	return Arg{text: "(read-keyset " + String(name).text + ")"}
}

// App renders a function application: (fn arg1 arg2 ...). The function name
// comes from configuration, not from callers of the public API.
func App(fn string, args ...Arg) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(fn)
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(a.text)
	}
	b.WriteByte(')')
	return b.String()
}
