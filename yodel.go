// Package yodel loads structured configuration from JSON, YAML, TOML, or
// Java-properties sources, resolves ${NAME} / ${NAME:default} environment
// placeholders in the raw text, merges a base configuration with named
// profile overlays discovered from a directory, and exposes the result as
// a type-checked, dot-addressable value tree.
//
//	ctx, err := yodel.Load("config.yaml")
//	host, err := ctx.GetString("database.servers[0].host")
//
// Directory loads follow the {baseName}[-{profile}].{ext} convention:
//
//	opts := yodel.NewOptions().WithProfiles("prod")
//	ctx, err := yodel.LoadWithOptions(opts, "deploy/")
package yodel

import (
	"fmt"
	"strings"

	"github.com/yodelconfig/yodel/internal/discovery"
	"github.com/yodelconfig/yodel/internal/format"
	"github.com/yodelconfig/yodel/internal/fsys"
	"github.com/yodelconfig/yodel/internal/proptree"
	"github.com/yodelconfig/yodel/internal/resolver"
	"github.com/yodelconfig/yodel/pkg/log"
)

// Load loads configuration with default options. source may be a file
// path, a directory path, or literal configuration text; which it is gets
// detected, not declared.
func Load(source string) (*Context, error) {
	return LoadWithOptions(NewOptions(), source)
}

// LoadWithOptions loads configuration from a file, a directory, or
// literal content text. A path that stats as a directory runs profile
// discovery and layered merging; a path that stats as a file runs the
// single-file pipeline; anything else is treated as raw content, unless
// it looks like a config filename that simply does not exist.
func LoadWithOptions(opts Options, source string) (*Context, error) {
	fs := opts.fileSystem()

	info, err := fs.Stat(source)
	if err == nil && info.IsDir() {
		return loadDirectory(fs, opts, source)
	}

	if err == nil {
		tree, err := loadFile(fs, opts, source)
		if err != nil {
			return nil, err
		}

		return freeze(tree)
	}

	if looksLikePath(source) {
		return nil, fmt.Errorf("%s: %w", source, fsys.WrapError(err))
	}

	return loadContent(opts, source)
}

// looksLikePath distinguishes a missing config file from literal content:
// a single line ending in a supported extension is taken as a path.
func looksLikePath(source string) bool {
	if strings.ContainsAny(source, "\n\r") {
		return false
	}

	return format.Supported(format.Ext(strings.TrimSpace(source)))
}

// loadContent runs the single-document pipeline over literal text.
func loadContent(opts Options, content string) (*Context, error) {
	tree, err := parseDocument(opts, "", []byte(content))
	if err != nil {
		return nil, err
	}

	return freeze(tree)
}

// loadFile reads one file and runs it through the single-file pipeline:
// read, detect format, resolve placeholders, parse. Validation happens at
// freeze so directory loads validate the merged whole instead.
func loadFile(fs fsys.FS, opts Options, path string) (*proptree.Tree, error) {
	log.Debugf("[%s] loading", path)

	raw, err := fsys.Read(fs, path)
	if err != nil {
		return nil, err
	}

	return parseDocument(opts, path, raw)
}

func parseDocument(opts Options, path string, raw []byte) (*proptree.Tree, error) {
	f := format.Detect(path, raw, opts.format)
	log.Debugf("[%s] format %q", path, string(f))

	text := string(raw)

	if opts.resolve {
		resolved, err := resolver.Resolve(text, opts.environment(), opts.mode)
		if err != nil {
			return nil, wrapPath(path, err)
		}

		text = resolved
	}

	obj, err := format.Decode([]byte(text), f)
	if err != nil {
		return nil, wrapPath(path, err)
	}

	tree, err := proptree.FromDocument(obj)
	if err != nil {
		return nil, wrapPath(path, err)
	}

	return tree, nil
}

// loadDirectory discovers base and profile files, loads each through the
// single-file pipeline, and folds the trees left to right with the
// right-biased merge: base first, then profiles in active order.
func loadDirectory(fs fsys.FS, opts Options, dir string) (*Context, error) {
	active := discovery.ActiveProfiles(opts.environment(), opts.envVar, opts.profiles)
	log.Debugf("[%s] active profiles %v", dir, active)

	files, err := discovery.Discover(fs, dir, opts.baseName, active)
	if err != nil {
		return nil, err
	}

	merged := proptree.New()

	for _, cf := range files {
		tree, err := loadFile(fs, opts, cf.Path)
		if err != nil {
			return nil, err
		}

		merged = proptree.Merge(merged, tree)
	}

	return freeze(merged)
}

func freeze(tree *proptree.Tree) (*Context, error) {
	err := tree.Validate()
	if err != nil {
		return nil, err
	}

	return &Context{tree: tree}, nil
}

func wrapPath(path string, err error) error {
	if path == "" {
		return err
	}

	return fmt.Errorf("%s: %w", path, err)
}
