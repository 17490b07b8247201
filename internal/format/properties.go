package format

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/magiconair/properties"

	"github.com/yodelconfig/yodel/pkg/errors"
)

func propertiesUnmarshal(in []byte) (any, error) {
	p, err := properties.Load(in, properties.UTF8)
	if err != nil {
		return nil, &errors.ParseError{Grammar: "properties", Message: err.Error()}
	}

	result := map[string]any{}
	for _, key := range p.Keys() {
		value := p.GetString(key, "")
		setNestedValue(result, key, value)
	}

	if len(result) == 0 {
		return nil, nil
	}

	return result, nil
}

func setNestedValue(m map[string]any, key string, value string) {
	parts := strings.Split(key, ".")
	current := m

	for i, part := range parts {
		if i == len(parts)-1 {
			current[part] = value
			return
		}

		if _, exists := current[part]; !exists {
			current[part] = map[string]any{}
		}

		nextMap, ok := current[part].(map[string]any)
		if !ok {
			return
		}

		current = nextMap
	}
}

func propertiesMarshal(obj any) ([]byte, error) {
	m, ok := obj.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("properties format requires top-level map, got %T", obj)
	}

	p := properties.NewProperties()
	p.WriteSeparator = "="

	err := flattenMap("", m, p)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	_, err = p.Write(&buf, properties.UTF8)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func flattenMap(prefix string, m map[string]any, p *properties.Properties) error {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		value := m[key]

		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]any:
			err := flattenMap(fullKey, v, p)
			if err != nil {
				return err
			}

		case []any:
			var values []string
			for _, item := range v {
				values = append(values, fmt.Sprintf("%v", item))
			}

			p.Set(fullKey, strings.Join(values, ","))

		default:
			p.Set(fullKey, fmt.Sprintf("%v", v))
		}
	}

	return nil
}
