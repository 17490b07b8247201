// Package proptree implements the normalized property tree that every
// grammar parser produces: a flat mapping from dot/bracket paths to scalar
// leaves, with a deterministic right-biased merge.
package proptree

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/yodelconfig/yodel/pkg/errors"
)

type entry struct {
	path Path
	leaf Leaf
}

// Tree maps paths to leaves. Lookup is order-independent; insertion order
// is preserved so renderings stay deterministic.
//
// Path identity is the rendered dot/bracket form: a literal map key that
// itself contains a dot ("a.b") occupies the same slot as the nested path
// a.b, so merging one over the other overwrites rather than coexisting.
// A dotted lookup string can never address such a key separately anyway,
// since ParsePath always treats the dot as a separator.
type Tree struct {
	byKey   map[string]int
	entries []entry
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{byKey: map[string]int{}}
}

// Singleton returns a tree holding exactly one leaf.
func Singleton(path Path, leaf Leaf) *Tree {
	t := New()
	t.set(path, leaf)

	return t
}

// Len returns the number of stored leaves.
func (t *Tree) Len() int {
	return len(t.entries)
}

// Get returns the leaf at path.
func (t *Tree) Get(path Path) (Leaf, bool) {
	i, found := t.byKey[path.String()]
	if !found {
		return Leaf{}, false
	}

	return t.entries[i].leaf, true
}

// Paths returns all stored paths in insertion order.
func (t *Tree) Paths() []Path {
	ret := make([]Path, len(t.entries))
	for i, e := range t.entries {
		ret[i] = e.path
	}

	return ret
}

// Walk calls fn for each (path, leaf) pair in insertion order.
func (t *Tree) Walk(fn func(Path, Leaf) error) error {
	for _, e := range t.entries {
		if err := fn(e.path, e.leaf); err != nil {
			return err
		}
	}

	return nil
}

func (t *Tree) set(path Path, leaf Leaf) {
	key := path.String()

	if i, found := t.byKey[key]; found {
		t.entries[i].leaf = leaf
		return
	}

	t.byKey[key] = len(t.entries)
	t.entries = append(t.entries, entry{path: path, leaf: leaf})
}

// Merge returns the right-biased union of a and b: for every path in both,
// b's leaf wins; paths in only one side copy through unchanged. Neither
// input is modified. Positions follow a's insertion order, with b's novel
// paths appended in b's order.
func Merge(a, b *Tree) *Tree {
	ret := New()

	for _, e := range a.entries {
		ret.set(e.path, e.leaf)
	}

	for _, e := range b.entries {
		ret.set(e.path, e.leaf)
	}

	return ret
}

// Insert returns a new tree with leaf stored at path, replacing any
// existing leaf there. Sugar for Merge(t, Singleton(path, leaf)).
func (t *Tree) Insert(path Path, leaf Leaf) *Tree {
	return Merge(t, Singleton(path, leaf))
}

// FromDocument converts a parsed document (nested map[string]any /
// []any / scalars) into a tree by depth-first walk: each object field
// extends the path with a key segment, each array element with an index
// segment, each scalar emits one leaf.
func FromDocument(obj any) (*Tree, error) {
	t := New()

	if obj == nil {
		// Empty or null document
		return t, nil
	}

	err := walk(t, Path{}, obj)
	if err != nil {
		return nil, err
	}

	return t, nil
}

func walk(t *Tree, path Path, obj any) error {
	switch obj2 := obj.(type) {
	case map[string]any:
		for _, k := range sortedKeys(obj2) {
			err := walk(t, path.AppendKey(k), obj2[k])
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		}

		return nil

	case []any:
		for i, v := range obj2 {
			err := walk(t, path.AppendIndex(i), v)
			if err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}

		return nil

	default:
		leaf, err := scalarLeaf(obj)
		if err != nil {
			return err
		}

		t.set(path, leaf)

		return nil
	}
}

func scalarLeaf(obj any) (Leaf, error) {
	switch v := obj.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return Float(float64(v)), nil
		}

		return Int(int64(v)), nil
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case json.Number:
		// The JSON decoder runs with UseNumber; an integer literal is an
		// Int leaf, anything else a Float
		if i, err := strconv.ParseInt(string(v), 10, 64); err == nil {
			return Int(i), nil
		}

		f, err := v.Float64()
		if err != nil {
			return Leaf{}, fmt.Errorf("number %q: %w", string(v), errors.ErrInvalidStructure)
		}

		return Float(f), nil
	default:
		return Leaf{}, fmt.Errorf("%T: %w", obj, errors.ErrInvalidStructure)
	}
}

// Validate screens the tree after parsing and merging complete: an empty
// tree is ErrEmptyConfig; a leaf at the root path (a bare scalar document)
// or a leaf that is also a prefix of other stored paths is ErrInvalidConfig.
func (t *Tree) Validate() error {
	if len(t.entries) == 0 {
		return errors.ErrEmptyConfig
	}

	for _, e := range t.entries {
		if e.path.Len() == 0 {
			return fmt.Errorf("value without key: %w", errors.ErrInvalidConfig)
		}
	}

	for _, a := range t.entries {
		for _, b := range t.entries {
			if a.path.IsPrefixOf(b.path) {
				return fmt.Errorf("%s: value is also a parent of %s: %w", a.path, b.path, errors.ErrInvalidConfig)
			}
		}
	}

	return nil
}
