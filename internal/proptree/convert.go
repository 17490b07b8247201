package proptree

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

func number[T constraints.Integer | constraints.Float](l Leaf) (T, bool) {
	switch l.kind {
	case KindInt:
		return T(l.i), true
	case KindFloat:
		return T(l.f), true
	default:
		return 0, false
	}
}

// CoerceInt converts a compatible-looking leaf of another kind to an
// integer: integral floats, and numeric text.
func CoerceInt(l Leaf) (int64, bool) {
	switch l.kind {
	case KindInt:
		return l.i, true
	case KindFloat:
		if l.f != math.Trunc(l.f) {
			return 0, false
		}

		return number[int64](l)
	case KindString:
		v, err := strconv.ParseInt(strings.TrimSpace(l.s), 10, 64)
		if err != nil {
			return 0, false
		}

		return v, true
	default:
		return 0, false
	}
}

// CoerceFloat converts ints and numeric text to a float.
func CoerceFloat(l Leaf) (float64, bool) {
	switch l.kind {
	case KindInt, KindFloat:
		return number[float64](l)
	case KindString:
		v, err := strconv.ParseFloat(strings.TrimSpace(l.s), 64)
		if err != nil {
			return 0, false
		}

		return v, true
	default:
		return 0, false
	}
}

// CoerceBool converts boolean-looking text to a bool.
func CoerceBool(l Leaf) (bool, bool) {
	switch l.kind {
	case KindBool:
		return l.b, true
	case KindString:
		v, err := strconv.ParseBool(strings.TrimSpace(l.s))
		if err != nil {
			return false, false
		}

		return v, true
	default:
		return false, false
	}
}

// CoerceString renders any non-null leaf as text.
func CoerceString(l Leaf) (string, bool) {
	if l.kind == KindNull {
		return "", false
	}

	return l.String(), true
}
