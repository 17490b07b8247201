package format

import (
	"fmt"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/yodelconfig/yodel/pkg/errors"
)

func yamlUnmarshal(in []byte) (any, error) {
	var node yaml.Node

	err := yaml.Unmarshal(in, &node)
	if err != nil {
		return nil, yamlParseError(err)
	}

	if node.Kind == 0 {
		// Empty document
		return nil, nil
	}

	obj, err := yamlTranslateNode(&node)
	if err != nil {
		return nil, err
	}

	return obj, nil
}

var yamlLineRE = regexp.MustCompile(`(?:^|\s)line (\d+): (.*)`)

// yamlParseError recovers the source line from yaml.v3's error text; the
// library does not expose positions structurally on syntax errors.
func yamlParseError(err error) error {
	msg := err.Error()

	if m := yamlLineRE.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])

		return &errors.ParseError{
			Grammar: "yaml",
			Line:    line,
			Column:  1,
			Message: m[2],
		}
	}

	return &errors.ParseError{Grammar: "yaml", Message: msg}
}

func yamlTranslateNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		return yamlTranslateNode(node.Content[0])

	case yaml.SequenceNode:
		ret := []any{}

		for _, v := range node.Content {
			v2, err := yamlTranslateNode(v)
			if err != nil {
				return nil, err
			}

			ret = append(ret, v2)
		}

		return ret, nil

	case yaml.MappingNode:
		ret := map[string]any{}

		// Merge keys (<<) first, then local values override them
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == "<<" {
				v2, err := yamlTranslateNode(node.Content[i+1])
				if err != nil {
					return nil, err
				}

				err = yamlMergeKey(ret, v2, node.Content[i+1])
				if err != nil {
					return nil, err
				}
			}
		}

		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == "<<" {
				continue
			}

			v2, err := yamlTranslateNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}

			ret[node.Content[i].Value] = v2
		}

		return ret, nil

	case yaml.ScalarNode:
		return yamlTranslateScalar(node)

	case yaml.AliasNode:
		return yamlTranslateNode(node.Alias)

	default:
		return nil, &errors.ParseError{
			Grammar: "yaml",
			Line:    node.Line,
			Column:  node.Column,
			Message: fmt.Sprintf("unknown yaml node kind %d", node.Kind),
		}
	}
}

func yamlTranslateScalar(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!bool":
		return strconv.ParseBool(node.Value)

	case "!!int":
		return strconv.ParseInt(node.Value, 0, 64)

	case "!!float":
		return strconv.ParseFloat(node.Value, 64)

	case "!!null":
		return nil, nil

	case "!!str", "!!timestamp":
		return node.Value, nil

	default:
		return nil, &errors.ParseError{
			Grammar: "yaml",
			Line:    node.Line,
			Column:  node.Column,
			Message: fmt.Sprintf("unknown yaml tag %s", node.ShortTag()),
		}
	}
}

// yamlMergeKey merges a mapping or list of mappings into dst, as per
// https://yaml.org/type/merge.html
func yamlMergeKey(dst map[string]any, src any, node *yaml.Node) error {
	switch src2 := src.(type) {
	case map[string]any:
		for k, v := range src2 {
			dst[k] = v
		}
	case []any:
		for i := len(src2) - 1; i >= 0; i-- {
			inner, ok := src2[i].(map[string]any)
			if !ok {
				return fmt.Errorf("line %d: merge key target %T: %w", node.Line, src2[i], errors.ErrInvalidStructure)
			}

			for k, v := range inner {
				dst[k] = v
			}
		}
	default:
		return fmt.Errorf("line %d: merge key target %T: %w", node.Line, src, errors.ErrInvalidStructure)
	}

	return nil
}

func yamlMarshal(obj any) ([]byte, error) {
	return yaml.Marshal(obj)
}
