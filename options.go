package yodel

import (
	"io/fs"
	"os"

	"github.com/yodelconfig/yodel/internal/format"
	"github.com/yodelconfig/yodel/internal/fsys"
	"github.com/yodelconfig/yodel/internal/resolver"
)

// Format selects a grammar explicitly; Auto lets detection decide.
type Format = format.Format

const (
	Auto       = format.Auto
	JSON       = format.JSON
	YAML       = format.YAML
	TOML       = format.TOML
	Properties = format.Properties
)

// ResolveMode controls unresolved-placeholder handling.
type ResolveMode = resolver.Mode

const (
	Lenient = resolver.Lenient
	Strict  = resolver.Strict
)

const (
	// DefaultBaseName is the filename stem directory discovery looks for.
	DefaultBaseName = "config"

	// DefaultProfilesEnvVar names the environment variable whose
	// comma-separated value overrides the programmatic profile list.
	DefaultProfilesEnvVar = "YODEL_PROFILES"
)

// Options configures a load. The zero value is not usable; start from
// [NewOptions]. Options is an immutable value: every With* method returns
// a modified copy and never mutates the receiver.
type Options struct {
	format   Format
	resolve  bool
	mode     ResolveMode
	baseName string
	envVar   string
	profiles []string
	lookup   resolver.LookupFunc
	fs       fsys.FS
}

// NewOptions returns the default options: auto-detected format, lenient
// placeholder resolution enabled, base name "config", profile list from
// YODEL_PROFILES, the process environment, and the process filesystem.
func NewOptions() Options {
	return Options{
		format:   Auto,
		resolve:  true,
		mode:     Lenient,
		baseName: DefaultBaseName,
		envVar:   DefaultProfilesEnvVar,
	}
}

// WithFormat sets an explicit grammar, bypassing detection.
func (o Options) WithFormat(f Format) Options {
	o.format = f
	return o
}

// WithResolve enables or disables placeholder resolution.
func (o Options) WithResolve(enabled bool) Options {
	o.resolve = enabled
	return o
}

// WithResolveMode selects strict or lenient resolution.
func (o Options) WithResolveMode(m ResolveMode) Options {
	o.mode = m
	return o
}

// WithBaseName sets the filename stem used by directory discovery.
func (o Options) WithBaseName(name string) Options {
	o.baseName = name
	return o
}

// WithProfilesEnvVar sets the environment variable consulted for active
// profiles. An empty name disables the environment override.
func (o Options) WithProfilesEnvVar(name string) Options {
	o.envVar = name
	return o
}

// WithProfiles sets the requested profile names, in merge order. The
// profiles environment variable, when set, still takes precedence.
func (o Options) WithProfiles(names ...string) Options {
	o.profiles = append([]string(nil), names...)
	return o
}

// WithEnvironment injects the environment snapshot used for placeholder
// resolution and profile activation, replacing os.LookupEnv. Deterministic
// tests pass a lookup over a fixed map.
func (o Options) WithEnvironment(lookup func(name string) (string, bool)) Options {
	o.lookup = lookup
	return o
}

// WithEnvironmentMap is [WithEnvironment] over a fixed map.
func (o Options) WithEnvironmentMap(env map[string]string) Options {
	o.lookup = func(name string) (string, bool) {
		v, found := env[name]
		return v, found
	}

	return o
}

// WithFS reads files from an io/fs filesystem instead of the process
// filesystem.
func (o Options) WithFS(f fs.FS) Options {
	o.fs = fsys.FromFS(f)
	return o
}

func (o Options) fileSystem() fsys.FS {
	if o.fs != nil {
		return o.fs
	}

	return fsys.OS()
}

func (o Options) environment() resolver.LookupFunc {
	if o.lookup != nil {
		return o.lookup
	}

	return os.LookupEnv
}
