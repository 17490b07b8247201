package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yodelconfig/yodel/internal/resolver"
	"github.com/yodelconfig/yodel/pkg/errors"
)

func lookupMap(env map[string]string) resolver.LookupFunc {
	return func(name string) (string, bool) {
		v, found := env[name]
		return v, found
	}
}

func TestResolveSubstitutes(t *testing.T) {
	t.Parallel()

	lookup := lookupMap(map[string]string{"FOO": "fooey"})

	for _, mode := range []resolver.Mode{resolver.Lenient, resolver.Strict} {
		out, err := resolver.Resolve("name: ${FOO}", lookup, mode)
		require.NoError(t, err)
		require.Equal(t, "name: fooey", out)
	}
}

func TestResolveDefault(t *testing.T) {
	t.Parallel()

	lookup := lookupMap(nil)

	for _, mode := range []resolver.Mode{resolver.Lenient, resolver.Strict} {
		out, err := resolver.Resolve("name: ${BAR:default}", lookup, mode)
		require.NoError(t, err)
		require.Equal(t, "name: default", out)
	}
}

func TestResolveMissingLenient(t *testing.T) {
	t.Parallel()

	out, err := resolver.Resolve("name: ${BAZ}", lookupMap(nil), resolver.Lenient)
	require.NoError(t, err)
	require.Equal(t, "name: ${BAZ}", out)
}

func TestResolveMissingStrict(t *testing.T) {
	t.Parallel()

	_, err := resolver.Resolve("name: ${BAZ}", lookupMap(nil), resolver.Strict)
	require.ErrorIs(t, err, errors.ErrUnresolvedPlaceholder)

	var unresolved *errors.UnresolvedPlaceholderError
	require.ErrorAs(t, err, &unresolved)
	require.Equal(t, "BAZ", unresolved.Name)
	require.Equal(t, "${BAZ}", unresolved.Value)
}

func TestResolveNestedDefault(t *testing.T) {
	t.Parallel()

	out, err := resolver.Resolve("${OUTER:${INNER:0}}", lookupMap(map[string]string{"INNER": "7"}), resolver.Strict)
	require.NoError(t, err)
	require.Equal(t, "7", out)

	out, err = resolver.Resolve("${OUTER:${INNER:0}}", lookupMap(nil), resolver.Strict)
	require.NoError(t, err)
	require.Equal(t, "0", out)
}

func TestResolveNestedDefaultUnused(t *testing.T) {
	t.Parallel()

	// OUTER is set, so the default never resolves; INNER being absent in
	// strict mode must not fail.
	out, err := resolver.Resolve("${OUTER:${INNER}}", lookupMap(map[string]string{"OUTER": "x"}), resolver.Strict)
	require.NoError(t, err)
	require.Equal(t, "x", out)
}

func TestResolveColonInsideNestedToken(t *testing.T) {
	t.Parallel()

	// The colon in the inner token must not terminate the outer default.
	out, err := resolver.Resolve("${A:${B:inner}-tail}", lookupMap(nil), resolver.Lenient)
	require.NoError(t, err)
	require.Equal(t, "inner-tail", out)
}

func TestResolveDeepNesting(t *testing.T) {
	t.Parallel()

	out, err := resolver.Resolve("${A:${B:${C:${D:deep}}}}", lookupMap(nil), resolver.Strict)
	require.NoError(t, err)
	require.Equal(t, "deep", out)
}

func TestResolveMultipleTokens(t *testing.T) {
	t.Parallel()

	lookup := lookupMap(map[string]string{"HOST": "db1", "PORT": "5432"})

	out, err := resolver.Resolve("addr: ${HOST}:${PORT}/${NAME:app}", lookup, resolver.Strict)
	require.NoError(t, err)
	require.Equal(t, "addr: db1:5432/app", out)
}

func TestResolveEmptyDefault(t *testing.T) {
	t.Parallel()

	out, err := resolver.Resolve("v=${MISSING:}", lookupMap(nil), resolver.Strict)
	require.NoError(t, err)
	require.Equal(t, "v=", out)
}

func TestResolveNoRecursionIntoLookedUpValue(t *testing.T) {
	t.Parallel()

	// A substituted value is verbatim text; tokens inside it do not
	// resolve again.
	lookup := lookupMap(map[string]string{"A": "${B}", "B": "nope"})

	out, err := resolver.Resolve("${A}", lookup, resolver.Strict)
	require.NoError(t, err)
	require.Equal(t, "${B}", out)
}

func TestResolveUnterminatedToken(t *testing.T) {
	t.Parallel()

	out, err := resolver.Resolve("tail ${OOPS", lookupMap(nil), resolver.Strict)
	require.NoError(t, err)
	require.Equal(t, "tail ${OOPS", out)
}

func TestResolveLiteralPassthrough(t *testing.T) {
	t.Parallel()

	out, err := resolver.Resolve("plain text, no tokens", lookupMap(nil), resolver.Strict)
	require.NoError(t, err)
	require.Equal(t, "plain text, no tokens", out)
}

func TestResolveEmptyValue(t *testing.T) {
	t.Parallel()

	out, err := resolver.Resolve("v=${EMPTY}", lookupMap(map[string]string{"EMPTY": ""}), resolver.Strict)
	require.NoError(t, err)
	require.Equal(t, "v=", out)
}
