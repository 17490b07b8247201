package main

import (
	"fmt"
	"testing/fstest"
)

func createTestFS(fileSystem map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for filename, content := range fileSystem {
		fsys[filename] = &fstest.MapFile{
			Data: []byte(content),
		}
	}

	return fsys
}

func parseFileSystem(args map[string]any) (map[string]string, error) {
	raw, found := args["fileSystem"]
	if !found {
		return nil, fmt.Errorf("fileSystem parameter is required")
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("fileSystem must be an object")
	}

	ret := map[string]string{}

	for name, content := range obj {
		s, ok := content.(string)
		if !ok {
			return nil, fmt.Errorf("fileSystem[%q] must be a string", name)
		}

		ret[name] = s
	}

	return ret, nil
}

func parseEnvironment(args map[string]any) (map[string]string, error) {
	raw, found := args["environment"]
	if !found {
		return map[string]string{}, nil
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("environment must be an object")
	}

	ret := map[string]string{}

	for name, value := range obj {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("environment[%q] must be a string", name)
		}

		ret[name] = s
	}

	return ret, nil
}

func parseOptionalString(args map[string]any, key, def string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}

	return def
}
