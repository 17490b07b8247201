package proptree

import (
	"fmt"
	"strconv"
)

// Kind discriminates the closed set of leaf value variants.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Leaf is a terminal scalar stored at one path. Composite structure is
// represented by the set of paths, never by a leaf.
type Leaf struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

func Null() Leaf {
	return Leaf{kind: KindNull}
}

func String(v string) Leaf {
	return Leaf{kind: KindString, s: v}
}

func Int(v int64) Leaf {
	return Leaf{kind: KindInt, i: v}
}

func Float(v float64) Leaf {
	return Leaf{kind: KindFloat, f: v}
}

func Bool(v bool) Leaf {
	return Leaf{kind: KindBool, b: v}
}

func (l Leaf) Kind() Kind {
	return l.kind
}

func (l Leaf) StringValue() (string, bool) {
	return l.s, l.kind == KindString
}

func (l Leaf) IntValue() (int64, bool) {
	return l.i, l.kind == KindInt
}

func (l Leaf) FloatValue() (float64, bool) {
	return l.f, l.kind == KindFloat
}

func (l Leaf) BoolValue() (bool, bool) {
	return l.b, l.kind == KindBool
}

// Interface returns the leaf as a plain Go value for marshaling.
func (l Leaf) Interface() any {
	switch l.kind {
	case KindString:
		return l.s
	case KindInt:
		return l.i
	case KindFloat:
		return l.f
	case KindBool:
		return l.b
	default:
		return nil
	}
}

// String renders the leaf value as text.
func (l Leaf) String() string {
	switch l.kind {
	case KindString:
		return l.s
	case KindInt:
		return strconv.FormatInt(l.i, 10)
	case KindFloat:
		return strconv.FormatFloat(l.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(l.b)
	default:
		return "null"
	}
}
