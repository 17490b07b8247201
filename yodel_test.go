package yodel_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/yodelconfig/yodel"
)

func mapFS(files map[string]string) fstest.MapFS {
	fs := fstest.MapFS{}
	for name, content := range files {
		fs[name] = &fstest.MapFile{Data: []byte(content)}
	}

	return fs
}

func TestLoadLiteralContent(t *testing.T) {
	t.Parallel()

	ctx, err := yodel.Load("name: myService\nport: 8081\n")
	require.NoError(t, err)

	name, err := ctx.GetString("name")
	require.NoError(t, err)
	require.Equal(t, "myService", name)

	port, err := ctx.GetInt("port")
	require.NoError(t, err)
	require.Equal(t, int64(8081), port)
}

func TestLoadLiteralJSON(t *testing.T) {
	t.Parallel()

	ctx, err := yodel.Load(`{"server": {"addr": "127.0.0.1"}}`)
	require.NoError(t, err)

	addr, err := ctx.GetString("server.addr")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", addr)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	opts := yodel.NewOptions().WithFS(mapFS(map[string]string{
		"config.toml": "[database]\nhost = \"db1\"\nport = 5432\n",
	}))

	ctx, err := yodel.LoadWithOptions(opts, "config.toml")
	require.NoError(t, err)

	host, err := ctx.GetString("database.host")
	require.NoError(t, err)
	require.Equal(t, "db1", host)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	opts := yodel.NewOptions().WithFS(mapFS(nil))

	_, err := yodel.LoadWithOptions(opts, "nope.yaml")
	require.ErrorIs(t, err, yodel.ErrMissingFile)
}

func TestLoadDirectoryWithProfiles(t *testing.T) {
	t.Parallel()

	fs := mapFS(map[string]string{
		"conf/config.yaml":      "host: localhost\nport: 80\ndebug: false\n",
		"conf/config-dev.yaml":  "debug: true\nport: 8080\n",
		"conf/config-prod.toml": "port = 443\n",
	})

	opts := yodel.NewOptions().
		WithFS(fs).
		WithEnvironmentMap(nil).
		WithProfiles("prod", "dev")

	ctx, err := yodel.LoadWithOptions(opts, "conf")
	require.NoError(t, err)

	// dev is last in the active list, so its port wins over prod's
	port, err := ctx.GetInt("port")
	require.NoError(t, err)
	require.Equal(t, int64(8080), port)

	debug, err := ctx.GetBool("debug")
	require.NoError(t, err)
	require.True(t, debug)

	host, err := ctx.GetString("host")
	require.NoError(t, err)
	require.Equal(t, "localhost", host)
}

func TestLoadDirectoryBaseOnly(t *testing.T) {
	t.Parallel()

	fs := mapFS(map[string]string{
		"config.yaml":     "a: base\n",
		"config-dev.yaml": "a: dev\n",
	})

	opts := yodel.NewOptions().WithFS(fs).WithEnvironmentMap(nil)

	ctx, err := yodel.LoadWithOptions(opts, ".")
	require.NoError(t, err)

	a, err := ctx.GetString("a")
	require.NoError(t, err)
	require.Equal(t, "base", a)
}

func TestProfilesEnvVarOverride(t *testing.T) {
	t.Parallel()

	fs := mapFS(map[string]string{
		"config.yaml":     "a: base\n",
		"config-dev.yaml": "a: dev\n",
	})

	opts := yodel.NewOptions().
		WithFS(fs).
		WithEnvironmentMap(map[string]string{"YODEL_PROFILES": "dev"})

	ctx, err := yodel.LoadWithOptions(opts, ".")
	require.NoError(t, err)

	a, err := ctx.GetString("a")
	require.NoError(t, err)
	require.Equal(t, "dev", a)
}

func TestProfilesEnvVarEmptyDisables(t *testing.T) {
	t.Parallel()

	fs := mapFS(map[string]string{
		"config.yaml":     "a: base\n",
		"config-dev.yaml": "a: dev\n",
	})

	// Set-but-blank beats the programmatic list
	opts := yodel.NewOptions().
		WithFS(fs).
		WithProfiles("dev").
		WithEnvironmentMap(map[string]string{"YODEL_PROFILES": ""})

	ctx, err := yodel.LoadWithOptions(opts, ".")
	require.NoError(t, err)

	a, err := ctx.GetString("a")
	require.NoError(t, err)
	require.Equal(t, "base", a)
}

func TestLoadDirectoryDuplicateBase(t *testing.T) {
	t.Parallel()

	fs := mapFS(map[string]string{
		"config.yaml": "a: 1\n",
		"config.json": `{"a": 2}`,
	})

	opts := yodel.NewOptions().WithFS(fs).WithEnvironmentMap(nil)

	_, err := yodel.LoadWithOptions(opts, ".")
	require.ErrorIs(t, err, yodel.ErrDuplicateFile)
}

func TestPlaceholderResolution(t *testing.T) {
	t.Parallel()

	fs := mapFS(map[string]string{
		"config.yaml": "host: ${DB_HOST:localhost}\nuser: ${DB_USER}\n",
	})

	opts := yodel.NewOptions().
		WithFS(fs).
		WithEnvironmentMap(map[string]string{"DB_USER": "admin"})

	ctx, err := yodel.LoadWithOptions(opts, "config.yaml")
	require.NoError(t, err)

	host, err := ctx.GetString("host")
	require.NoError(t, err)
	require.Equal(t, "localhost", host)

	user, err := ctx.GetString("user")
	require.NoError(t, err)
	require.Equal(t, "admin", user)
}

func TestPlaceholderStrictMode(t *testing.T) {
	t.Parallel()

	fs := mapFS(map[string]string{
		"config.yaml": "user: ${MISSING_USER}\n",
	})

	opts := yodel.NewOptions().
		WithFS(fs).
		WithEnvironmentMap(nil).
		WithResolveMode(yodel.Strict)

	_, err := yodel.LoadWithOptions(opts, "config.yaml")
	require.ErrorIs(t, err, yodel.ErrUnresolvedPlaceholder)

	var unresolved *yodel.UnresolvedPlaceholderError
	require.ErrorAs(t, err, &unresolved)
	require.Equal(t, "MISSING_USER", unresolved.Name)
}

func TestPlaceholderLenientKeepsToken(t *testing.T) {
	t.Parallel()

	fs := mapFS(map[string]string{
		"config.yaml": "user: ${MISSING_USER}\n",
	})

	opts := yodel.NewOptions().WithFS(fs).WithEnvironmentMap(nil)

	ctx, err := yodel.LoadWithOptions(opts, "config.yaml")
	require.NoError(t, err)

	user, err := ctx.GetString("user")
	require.NoError(t, err)
	require.Equal(t, "${MISSING_USER}", user)
}

func TestPlaceholderResolutionDisabled(t *testing.T) {
	t.Parallel()

	fs := mapFS(map[string]string{
		"config.yaml": "host: ${DB_HOST:localhost}\n",
	})

	opts := yodel.NewOptions().
		WithFS(fs).
		WithEnvironmentMap(map[string]string{"DB_HOST": "db1"}).
		WithResolve(false)

	ctx, err := yodel.LoadWithOptions(opts, "config.yaml")
	require.NoError(t, err)

	host, err := ctx.GetString("host")
	require.NoError(t, err)
	require.Equal(t, "${DB_HOST:localhost}", host)
}

func TestExplicitFormat(t *testing.T) {
	t.Parallel()

	// TOML content in a file with no extension
	fs := mapFS(map[string]string{
		"settings": "port = 9000\n",
	})

	opts := yodel.NewOptions().WithFS(fs).WithFormat(yodel.TOML)

	ctx, err := yodel.LoadWithOptions(opts, "settings")
	require.NoError(t, err)

	port, err := ctx.GetInt("port")
	require.NoError(t, err)
	require.Equal(t, int64(9000), port)
}

func TestUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := yodel.Load("no recognizable structure\n")
	require.ErrorIs(t, err, yodel.ErrUnknownFormat)
}

func TestEmptyConfig(t *testing.T) {
	t.Parallel()

	fs := mapFS(map[string]string{
		"config.yaml": "",
	})

	opts := yodel.NewOptions().WithFS(fs)

	_, err := yodel.LoadWithOptions(opts, "config.yaml")
	require.ErrorIs(t, err, yodel.ErrEmptyConfig)
}

func TestBareScalarConfig(t *testing.T) {
	t.Parallel()

	fs := mapFS(map[string]string{
		"config.yaml": "42\n",
	})

	opts := yodel.NewOptions().WithFS(fs)

	_, err := yodel.LoadWithOptions(opts, "config.yaml")
	require.ErrorIs(t, err, yodel.ErrInvalidConfig)
}

func TestSyntaxErrorCarriesPosition(t *testing.T) {
	t.Parallel()

	fs := mapFS(map[string]string{
		"config.json": "{\n  \"a\": ,\n}",
	})

	opts := yodel.NewOptions().WithFS(fs)

	_, err := yodel.LoadWithOptions(opts, "config.json")
	require.ErrorIs(t, err, yodel.ErrInvalidSyntax)

	var perr *yodel.ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "json", perr.Grammar)
	require.Equal(t, 2, perr.Line)
}

func TestDirectoryLoadFailsFast(t *testing.T) {
	t.Parallel()

	fs := mapFS(map[string]string{
		"config.yaml":     "a: 1\n",
		"config-bad.yaml": "a: [broken\n",
	})

	opts := yodel.NewOptions().
		WithFS(fs).
		WithEnvironmentMap(nil).
		WithProfiles("bad")

	_, err := yodel.LoadWithOptions(opts, ".")
	require.ErrorIs(t, err, yodel.ErrInvalidSyntax)
}

func TestMixedFormatsMergeByPath(t *testing.T) {
	t.Parallel()

	fs := mapFS(map[string]string{
		"config.json":           `{"server": {"host": "localhost", "port": 80}}`,
		"config-prod.toml":      "[server]\nport = 443\n",
		"config-prod-eu.yaml":   "server:\n  region: eu-west-1\n",
		"config-ignored.tomlxx": "server = broken",
	})

	opts := yodel.NewOptions().
		WithFS(fs).
		WithEnvironmentMap(nil).
		WithProfiles("prod", "prod-eu")

	ctx, err := yodel.LoadWithOptions(opts, ".")
	require.NoError(t, err)

	port, err := ctx.GetInt("server.port")
	require.NoError(t, err)
	require.Equal(t, int64(443), port)

	host, err := ctx.GetString("server.host")
	require.NoError(t, err)
	require.Equal(t, "localhost", host)

	region, err := ctx.GetString("server.region")
	require.NoError(t, err)
	require.Equal(t, "eu-west-1", region)
}

func TestOptionsAreImmutable(t *testing.T) {
	t.Parallel()

	base := yodel.NewOptions()
	strict := base.WithResolveMode(yodel.Strict).WithProfiles("dev")

	fs := mapFS(map[string]string{
		"config.yaml": "user: ${NOBODY}\n",
	})

	// base must be unaffected by the transformations on strict
	_, err := yodel.LoadWithOptions(base.WithFS(fs).WithEnvironmentMap(nil), "config.yaml")
	require.NoError(t, err)

	_, err = yodel.LoadWithOptions(strict.WithFS(fs).WithEnvironmentMap(nil), "config.yaml")
	require.ErrorIs(t, err, yodel.ErrUnresolvedPlaceholder)
}

func TestLoadDirectoryArrayOverride(t *testing.T) {
	t.Parallel()

	fs := mapFS(map[string]string{
		"config.yaml":      "servers:\n  - host: db1\n  - host: db2\n",
		"config-prod.yaml": "servers:\n  - host: prod-db\n",
	})

	opts := yodel.NewOptions().
		WithFS(fs).
		WithEnvironmentMap(nil).
		WithProfiles("prod")

	ctx, err := yodel.LoadWithOptions(opts, ".")
	require.NoError(t, err)

	// Element 0 is overridden; element 1 survives from the base because
	// merge is keyed by full path, index included
	host, err := ctx.GetString("servers[0].host")
	require.NoError(t, err)
	require.Equal(t, "prod-db", host)

	host, err = ctx.GetString("servers[1].host")
	require.NoError(t, err)
	require.Equal(t, "db2", host)
}
