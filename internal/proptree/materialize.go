package proptree

import (
	"fmt"
	"sort"

	"github.com/yodelconfig/yodel/pkg/errors"
)

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Materialize rebuilds the nested map/slice structure implied by the
// stored paths, for marshaling and struct decoding. List positions with
// no stored leaf come back as nil.
func (t *Tree) Materialize() (any, error) {
	return t.MaterializeAt(Path{})
}

// MaterializeAt rebuilds the structure under prefix. A leaf stored exactly
// at prefix comes back as its scalar value.
func (t *Tree) MaterializeAt(prefix Path) (any, error) {
	if leaf, found := t.Get(prefix); found {
		return leaf.Interface(), nil
	}

	var root any

	found := false

	for _, e := range t.entries {
		if !prefix.IsPrefixOf(e.path) && !prefix.Equal(e.path) {
			continue
		}

		found = true

		rel := e.path.Segments()[prefix.Len():]

		var err error

		root, err = graft(root, rel, e.leaf)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.path, err)
		}
	}

	if !found {
		return nil, &errors.PathNotFoundError{Path: prefix.String()}
	}

	return root, nil
}

func graft(node any, segs []Segment, leaf Leaf) (any, error) {
	if len(segs) == 0 {
		return leaf.Interface(), nil
	}

	seg := segs[0]

	if seg.IsIndex() {
		list, ok := node.([]any)
		if node != nil && !ok {
			return nil, fmt.Errorf("index into %T: %w", node, errors.ErrInvalidConfig)
		}

		for len(list) <= seg.IndexValue() {
			list = append(list, nil)
		}

		child, err := graft(list[seg.IndexValue()], segs[1:], leaf)
		if err != nil {
			return nil, err
		}

		list[seg.IndexValue()] = child

		return list, nil
	}

	m, ok := node.(map[string]any)
	if node == nil {
		m = map[string]any{}
	} else if !ok {
		return nil, fmt.Errorf("key into %T: %w", node, errors.ErrInvalidConfig)
	}

	child, err := graft(m[seg.KeyName()], segs[1:], leaf)
	if err != nil {
		return nil, err
	}

	m[seg.KeyName()] = child

	return m, nil
}

// ChildKeys returns the distinct key names of segments directly under
// prefix, sorted. Index segments are rendered as their bracket form.
func (t *Tree) ChildKeys(prefix Path) []string {
	seen := map[string]bool{}

	for _, e := range t.entries {
		if !prefix.IsPrefixOf(e.path) {
			continue
		}

		seg := e.path.Segments()[prefix.Len()]
		if seg.IsIndex() {
			seen[fmt.Sprintf("[%d]", seg.IndexValue())] = true
		} else {
			seen[seg.KeyName()] = true
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
