// Package resolver rewrites ${NAME} and ${NAME:default} tokens in raw
// configuration text against an environment snapshot, before the text is
// handed to a grammar parser.
//
// Defaults may nest to arbitrary depth: in ${A:${B:fallback}} the inner
// token resolves first, and a colon inside a nested token does not
// terminate the outer default. The scanner is an explicit recursive
// descent over a cursor, not a regex split, so nesting depth is unbounded.
package resolver

import (
	"strings"

	"github.com/yodelconfig/yodel/pkg/errors"
)

// Mode selects how an unresolved placeholder without a default is handled.
type Mode int

const (
	// Lenient leaves the original ${NAME} token in the output.
	Lenient Mode = iota

	// Strict fails with an UnresolvedPlaceholderError.
	Strict
)

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}

	return "lenient"
}

// LookupFunc reads one variable from the environment snapshot.
// It matches the signature of os.LookupEnv.
type LookupFunc func(name string) (string, bool)

// Resolve substitutes every ${...} token in text, left to right. Literal
// text outside tokens passes through unchanged, as does an unterminated
// token.
func Resolve(text string, lookup LookupFunc, mode Mode) (string, error) {
	sb := strings.Builder{}
	pos := 0

	for pos < len(text) {
		start := strings.Index(text[pos:], "${")
		if start < 0 {
			sb.WriteString(text[pos:])
			break
		}

		start += pos
		sb.WriteString(text[pos:start])

		replacement, consumed, err := resolveToken(text[start:], lookup, mode)
		if err != nil {
			return "", err
		}

		sb.WriteString(replacement)
		pos = start + consumed
	}

	return sb.String(), nil
}

// resolveToken handles one token at the start of text and returns its
// replacement plus the number of bytes consumed. Resolution order per the
// placeholder contract: look the name up first; only a miss resolves the
// default, recursively.
func resolveToken(text string, lookup LookupFunc, mode Mode) (string, int, error) {
	name, def, hasDef, consumed, ok := tokenExtent(text)
	if !ok {
		// Unterminated token: pass the literal text through
		return text, len(text), nil
	}

	v, found := lookup(name)
	if found {
		return v, consumed, nil
	}

	if hasDef {
		resolved, err := Resolve(def, lookup, mode)
		if err != nil {
			return "", 0, err
		}

		return resolved, consumed, nil
	}

	if mode == Strict {
		return "", 0, &errors.UnresolvedPlaceholderError{Name: name, Value: text[:consumed]}
	}

	return text[:consumed], consumed, nil
}

// tokenExtent delimits the "${...}" token at the start of text, tracking
// brace nesting depth so a colon or close brace inside a nested token does
// not terminate the outer one. ok is false for an unterminated token.
func tokenExtent(text string) (name, def string, hasDef bool, consumed int, ok bool) {
	depth := 1
	nameEnd := -1
	defStart := -1

	i := 2 // past "${"

	for i < len(text) {
		switch {
		case strings.HasPrefix(text[i:], "${"):
			depth++
			i += 2

		case text[i] == '}':
			depth--
			if depth == 0 {
				if nameEnd < 0 {
					nameEnd = i
				}

				name = text[2:nameEnd]

				if defStart >= 0 {
					def = text[defStart:i]
					hasDef = true
				}

				return name, def, hasDef, i + 1, true
			}

			i++

		case text[i] == ':' && depth == 1 && nameEnd < 0:
			nameEnd = i
			defStart = i + 1
			i++

		default:
			i++
		}
	}

	return "", "", false, 0, false
}
