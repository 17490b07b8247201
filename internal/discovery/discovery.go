// Package discovery scans a directory for configuration files matching
// {baseName}[-{profile}].{ext}, validates that each slot is claimed by at
// most one file, and orders the result for merging: the base file first,
// then the requested profiles in request order.
package discovery

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yodelconfig/yodel/internal/format"
	"github.com/yodelconfig/yodel/internal/fsys"
	"github.com/yodelconfig/yodel/internal/resolver"
	"github.com/yodelconfig/yodel/pkg/errors"
	"github.com/yodelconfig/yodel/pkg/log"
)

// ConfigFile is one discovered file. Profile is "" for the base file.
type ConfigFile struct {
	Path    string
	Profile string
}

// IsBase reports whether this is the profile-less base file.
func (c ConfigFile) IsBase() bool {
	return c.Profile == ""
}

// ActiveProfiles computes the profile names to load. If the environment
// variable named envVar is set, even to the empty string, its
// comma-separated value replaces the programmatic list entirely.
// Whitespace is trimmed and empty segments dropped. An empty envVar
// disables the override.
func ActiveProfiles(lookup resolver.LookupFunc, envVar string, programmatic []string) []string {
	if envVar == "" {
		return programmatic
	}

	raw, found := lookup(envVar)
	if !found {
		return programmatic
	}

	names := []string{}

	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}

	return names
}

// Discover lists dir (non-recursive), classifies matching files, rejects
// duplicates, and returns the base file (if any) followed by the files for
// active, in that order. Active names with no matching file are skipped.
func Discover(fs fsys.FS, dir, baseName string, active []string) ([]ConfigFile, error) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, fsys.WrapError(err))
	}

	byProfile := map[string][]ConfigFile{}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		profile, ok := classify(entry.Name(), baseName)
		if !ok {
			continue
		}

		cf := ConfigFile{
			Path:    filepath.Join(dir, entry.Name()),
			Profile: profile,
		}

		log.Debugf("[%s] discovered (profile %q)", cf.Path, profile)

		byProfile[profile] = append(byProfile[profile], cf)
	}

	for profile, files := range byProfile {
		if len(files) > 1 {
			paths := make([]string, len(files))
			for i, f := range files {
				paths[i] = f.Path
			}

			return nil, &errors.DuplicateFileError{Profile: profile, Paths: paths}
		}
	}

	ret := []ConfigFile{}

	if base, found := byProfile[""]; found {
		ret = append(ret, base[0])
	}

	for _, name := range active {
		if files, found := byProfile[name]; found {
			ret = append(ret, files[0])
		}
	}

	return ret, nil
}

// classify matches a filename against {baseName}[-{profile}].{ext}. The
// extension must be one some registered grammar claims. Classification is
// longest-prefix-match on baseName: a name equal to baseName is always the
// base, even when baseName itself contains hyphens, and the profile suffix
// may contain hyphens ("config-prod-us" tags profile "prod-us").
func classify(name, baseName string) (string, bool) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return "", false
	}

	if !format.Supported(strings.ToLower(name[i+1:])) {
		return "", false
	}

	stem := name[:i]

	if stem == baseName {
		return "", true
	}

	if suffix, found := strings.CutPrefix(stem, baseName+"-"); found && suffix != "" {
		return suffix, true
	}

	return "", false
}
