// Package format owns the grammar registry: which file extensions map to
// which parser, how a format is detected from a filename or raw content,
// and the decode/marshal dispatch.
package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yodelconfig/yodel/pkg/errors"
)

// Format names one supported grammar. The zero value is Auto.
type Format string

const (
	Auto       Format = ""
	JSON       Format = "json"
	YAML       Format = "yaml"
	TOML       Format = "toml"
	Properties Format = "properties"
)

// grammar couples a format with its extensions, its content sniffer, and
// its codec.
type grammar struct {
	name       Format
	extensions []string
	sniff      func(content []byte) bool
	unmarshal  func([]byte) (any, error)
	marshal    func(any) ([]byte, error)
}

// Detection tries grammars in this order; TOML sniffs before JSON/YAML
// because its heuristic is the most specific.
var grammars = []*grammar{
	{
		name:       TOML,
		extensions: []string{"toml", "tml"},
		sniff:      sniffTOML,
		unmarshal:  tomlUnmarshal,
		marshal:    tomlMarshal,
	},
	{
		name:       JSON,
		extensions: []string{"json"},
		sniff:      sniffJSON,
		unmarshal:  jsonUnmarshal,
		marshal:    jsonMarshal,
	},
	{
		name:       YAML,
		extensions: []string{"yaml", "yml"},
		sniff:      sniffYAML,
		unmarshal:  yamlUnmarshal,
		marshal:    yamlMarshal,
	},
	{
		name:       Properties,
		extensions: []string{"properties"},
		sniff:      nil,
		unmarshal:  propertiesUnmarshal,
		marshal:    propertiesMarshal,
	},
}

var grammarByName = func() map[Format]*grammar {
	ret := map[Format]*grammar{}
	for _, g := range grammars {
		ret[g.name] = g
	}

	return ret
}()

// marshalOnly holds output-side encoders with no parse counterpart.
var marshalOnly = map[Format]func(any) ([]byte, error){
	"json-pretty": jsonMarshalPretty,
}

// Extensions returns every extension any grammar claims, sorted.
func Extensions() []string {
	exts := []string{}
	for _, g := range grammars {
		exts = append(exts, g.extensions...)
	}

	sort.Strings(exts)

	return exts
}

// Supported reports whether some grammar claims ext.
func Supported(ext string) bool {
	return byExtension(ext) != nil
}

func byExtension(ext string) *grammar {
	for _, g := range grammars {
		for _, e := range g.extensions {
			if e == ext {
				return g
			}
		}
	}

	return nil
}

// Ext returns the extension of path without the dot, lowercased.
func Ext(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 || strings.ContainsAny(path[i:], "/\\") {
		return ""
	}

	return strings.ToLower(path[i+1:])
}

// Detect picks the grammar for an input. An explicit format wins
// unconditionally. Otherwise each grammar is consulted in registry order,
// first by the path's extension, then (if no extension matched) by content
// sniffing. Auto means no verdict; parsing Auto fails downstream.
func Detect(path string, content []byte, explicit Format) Format {
	if explicit != Auto {
		return explicit
	}

	if ext := Ext(path); ext != "" {
		if g := byExtension(ext); g != nil {
			return g.name
		}
	}

	for _, g := range grammars {
		if g.sniff != nil && g.sniff(content) {
			return g.name
		}
	}

	return Auto
}

// Decode parses content as the given format into nested maps, slices, and
// scalars. Auto or an unregistered format is ErrUnknownFormat.
func Decode(content []byte, f Format) (any, error) {
	g, found := grammarByName[f]
	if !found {
		return nil, fmt.Errorf("%q: %w", string(f), errors.ErrUnknownFormat)
	}

	return g.unmarshal(content)
}

// Marshal encodes obj as the given format. In addition to the parseable
// grammars, marshal-only formats such as json-pretty are accepted.
func Marshal(obj any, f Format) ([]byte, error) {
	if fn, found := marshalOnly[f]; found {
		return fn(obj)
	}

	g, found := grammarByName[f]
	if !found {
		return nil, fmt.Errorf("%q: %w", string(f), errors.ErrUnknownFormat)
	}

	return g.marshal(obj)
}

// MarshalNames returns every format accepted by Marshal, sorted.
func MarshalNames() []string {
	names := []string{}
	for _, g := range grammars {
		names = append(names, string(g.name))
	}

	for f := range marshalOnly {
		names = append(names, string(f))
	}

	sort.Strings(names)

	return names
}

func sniffTOML(content []byte) bool {
	s := string(content)

	return strings.Contains(s, "=") &&
		!strings.Contains(s, ": ") &&
		!strings.HasPrefix(s, "---")
}

func sniffJSON(content []byte) bool {
	s := strings.TrimSpace(string(content))

	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}

func sniffYAML(content []byte) bool {
	s := string(content)

	return strings.HasPrefix(s, "---") || strings.Contains(s, ": ") || strings.Contains(s, ":\n")
}
