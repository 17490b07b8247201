package yodel

import (
	"github.com/go-viper/mapstructure/v2"

	"github.com/yodelconfig/yodel/internal/format"
	"github.com/yodelconfig/yodel/internal/proptree"
	"github.com/yodelconfig/yodel/pkg/errors"
)

// Context is the frozen, validated property tree produced by a load. It
// is immutable and safe for concurrent use.
type Context struct {
	tree *proptree.Tree
}

// Len returns the number of stored leaf values.
func (c *Context) Len() int {
	return c.tree.Len()
}

// Paths returns every stored path in its dot/bracket rendering, in
// insertion order.
func (c *Context) Paths() []string {
	paths := c.tree.Paths()

	ret := make([]string, len(paths))
	for i, p := range paths {
		ret[i] = p.String()
	}

	return ret
}

// Keys returns the sorted child key names directly under path. Pass "" for
// the top level.
func (c *Context) Keys(path string) ([]string, error) {
	p, err := proptree.ParsePath(path)
	if err != nil {
		return nil, err
	}

	return c.tree.ChildKeys(p), nil
}

// Has reports whether a leaf is stored at path.
func (c *Context) Has(path string) bool {
	p, err := proptree.ParsePath(path)
	if err != nil {
		return false
	}

	_, found := c.tree.Get(p)

	return found
}

func (c *Context) leaf(path string) (proptree.Leaf, error) {
	p, err := proptree.ParsePath(path)
	if err != nil {
		return proptree.Leaf{}, err
	}

	l, found := c.tree.Get(p)
	if !found {
		return proptree.Leaf{}, &errors.PathNotFoundError{Path: path}
	}

	return l, nil
}

// GetString returns the string stored at path. A value of another kind is
// a type mismatch; see [Context.ParseString] for the coercing variant.
func (c *Context) GetString(path string) (string, error) {
	l, err := c.leaf(path)
	if err != nil {
		return "", err
	}

	v, ok := l.StringValue()
	if !ok {
		return "", mismatch(path, "string", l)
	}

	return v, nil
}

// GetStringOr returns the string at path, or def when the path is missing
// or holds another kind.
func (c *Context) GetStringOr(path, def string) string {
	v, err := c.GetString(path)
	if err != nil {
		return def
	}

	return v
}

// GetInt returns the integer stored at path.
func (c *Context) GetInt(path string) (int64, error) {
	l, err := c.leaf(path)
	if err != nil {
		return 0, err
	}

	v, ok := l.IntValue()
	if !ok {
		return 0, mismatch(path, "int", l)
	}

	return v, nil
}

// GetIntOr returns the integer at path, or def.
func (c *Context) GetIntOr(path string, def int64) int64 {
	v, err := c.GetInt(path)
	if err != nil {
		return def
	}

	return v
}

// GetFloat returns the float stored at path.
func (c *Context) GetFloat(path string) (float64, error) {
	l, err := c.leaf(path)
	if err != nil {
		return 0, err
	}

	v, ok := l.FloatValue()
	if !ok {
		return 0, mismatch(path, "float", l)
	}

	return v, nil
}

// GetFloatOr returns the float at path, or def.
func (c *Context) GetFloatOr(path string, def float64) float64 {
	v, err := c.GetFloat(path)
	if err != nil {
		return def
	}

	return v
}

// GetBool returns the bool stored at path.
func (c *Context) GetBool(path string) (bool, error) {
	l, err := c.leaf(path)
	if err != nil {
		return false, err
	}

	v, ok := l.BoolValue()
	if !ok {
		return false, mismatch(path, "bool", l)
	}

	return v, nil
}

// GetBoolOr returns the bool at path, or def.
func (c *Context) GetBoolOr(path string, def bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		return def
	}

	return v
}

// ParseString renders any non-null leaf at path as text.
func (c *Context) ParseString(path string) (string, error) {
	l, err := c.leaf(path)
	if err != nil {
		return "", err
	}

	v, ok := proptree.CoerceString(l)
	if !ok {
		return "", mismatch(path, "string", l)
	}

	return v, nil
}

// ParseInt returns the value at path as an integer, coercing
// compatible-looking leaves of other kinds: integral floats and numeric
// text.
func (c *Context) ParseInt(path string) (int64, error) {
	l, err := c.leaf(path)
	if err != nil {
		return 0, err
	}

	v, ok := proptree.CoerceInt(l)
	if !ok {
		return 0, mismatch(path, "int", l)
	}

	return v, nil
}

// ParseFloat returns the value at path as a float, coercing ints and
// numeric text.
func (c *Context) ParseFloat(path string) (float64, error) {
	l, err := c.leaf(path)
	if err != nil {
		return 0, err
	}

	v, ok := proptree.CoerceFloat(l)
	if !ok {
		return 0, mismatch(path, "float", l)
	}

	return v, nil
}

// ParseBool returns the value at path as a bool, coercing boolean-looking
// text such as "true" or "1".
func (c *Context) ParseBool(path string) (bool, error) {
	l, err := c.leaf(path)
	if err != nil {
		return false, err
	}

	v, ok := proptree.CoerceBool(l)
	if !ok {
		return false, mismatch(path, "bool", l)
	}

	return v, nil
}

// Unmarshal decodes the subtree under path into target, which must be a
// pointer to a struct or map. Field names follow mapstructure conventions.
// Pass "" to decode the whole configuration.
func (c *Context) Unmarshal(path string, target any) error {
	p, err := proptree.ParsePath(path)
	if err != nil {
		return err
	}

	obj, err := c.tree.MaterializeAt(p)
	if err != nil {
		return err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	return dec.Decode(obj)
}

// Render encodes the whole configuration in the given format. In addition
// to the parseable grammars, marshal-only formats such as "json-pretty"
// are accepted.
func (c *Context) Render(f Format) ([]byte, error) {
	obj, err := c.tree.Materialize()
	if err != nil {
		return nil, err
	}

	return format.Marshal(obj, f)
}

func mismatch(path, expected string, l proptree.Leaf) error {
	return &errors.TypeMismatchError{
		Path:     path,
		Expected: expected,
		Actual:   l.Interface(),
	}
}
