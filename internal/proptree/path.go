package proptree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yodelconfig/yodel/pkg/errors"
)

// Segment is one coordinate of a [Path]: either a map key or a list index.
type Segment struct {
	key   string
	index int
	isIdx bool
}

// Key returns a key segment.
func Key(name string) Segment {
	return Segment{key: name}
}

// Index returns an index segment. i must be non-negative.
func Index(i int) Segment {
	return Segment{index: i, isIdx: true}
}

// IsIndex reports whether the segment addresses a list element.
func (s Segment) IsIndex() bool {
	return s.isIdx
}

// KeyName returns the key for a key segment, or "" for an index segment.
func (s Segment) KeyName() string {
	return s.key
}

// IndexValue returns the index for an index segment, or -1 for a key segment.
func (s Segment) IndexValue() int {
	if !s.isIdx {
		return -1
	}

	return s.index
}

// Path is an immutable ordered sequence of segments addressing one leaf.
// The zero Path addresses the document root.
type Path struct {
	segs []Segment
}

// NewPath builds a Path from segments.
func NewPath(segs ...Segment) Path {
	return Path{segs: append([]Segment(nil), segs...)}
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segs)
}

// Segments returns a copy of the path's segments.
func (p Path) Segments() []Segment {
	return append([]Segment(nil), p.segs...)
}

// AppendKey returns a new Path extended by a key segment.
func (p Path) AppendKey(name string) Path {
	return p.append(Key(name))
}

// AppendIndex returns a new Path extended by an index segment.
func (p Path) AppendIndex(i int) Path {
	return p.append(Index(i))
}

func (p Path) append(seg Segment) Path {
	segs := make([]Segment, len(p.segs), len(p.segs)+1)
	copy(segs, p.segs)

	return Path{segs: append(segs, seg)}
}

// Equal reports structural equality.
func (p Path) Equal(other Path) bool {
	if len(p.segs) != len(other.segs) {
		return false
	}

	for i, seg := range p.segs {
		if seg != other.segs[i] {
			return false
		}
	}

	return true
}

// IsPrefixOf reports whether p is a strict prefix of other.
func (p Path) IsPrefixOf(other Path) bool {
	if len(p.segs) >= len(other.segs) {
		return false
	}

	for i, seg := range p.segs {
		if seg != other.segs[i] {
			return false
		}
	}

	return true
}

// String renders the path as dot-joined keys with bracketed indices,
// e.g. "database.servers[0].host". The root path renders as "".
func (p Path) String() string {
	sb := strings.Builder{}

	for i, seg := range p.segs {
		if seg.isIdx {
			fmt.Fprintf(&sb, "[%d]", seg.index)
			continue
		}

		if i > 0 {
			sb.WriteByte('.')
		}

		sb.WriteString(seg.key)
	}

	return sb.String()
}

// ParsePath parses the dot/bracket rendering back into a Path. An empty
// string parses to the root path.
func ParsePath(s string) (Path, error) {
	p := Path{}

	if s == "" {
		return p, nil
	}

	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return Path{}, fmt.Errorf("%q: empty path segment: %w", s, errors.ErrPathNotFound)
		}

		key := part

		brackets := ""
		if i := strings.IndexByte(part, '['); i >= 0 {
			key, brackets = part[:i], part[i:]
		}

		if key != "" {
			p = p.AppendKey(key)
		}

		for brackets != "" {
			if brackets[0] != '[' {
				return Path{}, fmt.Errorf("%q: malformed index: %w", s, errors.ErrPathNotFound)
			}

			end := strings.IndexByte(brackets, ']')
			if end < 0 {
				return Path{}, fmt.Errorf("%q: unterminated index: %w", s, errors.ErrPathNotFound)
			}

			idx, err := strconv.Atoi(brackets[1:end])
			if err != nil || idx < 0 {
				return Path{}, fmt.Errorf("%q: invalid index %q: %w", s, brackets[1:end], errors.ErrPathNotFound)
			}

			p = p.AppendIndex(idx)
			brackets = brackets[end+1:]
		}
	}

	return p, nil
}
