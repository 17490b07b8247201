package wrapper_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yodelconfig/yodel"
	"github.com/yodelconfig/yodel/pkg/wrapper"
)

func TestRenderArgsReplacesConfigSources(t *testing.T) {
	tmpDir := t.TempDir()

	cfgPath := filepath.Join(tmpDir, "app.yaml")
	err := os.WriteFile(cfgPath, []byte("name: myService\nport: ${WRAPPER_PORT_UNSET:8081}\n"), 0o644)
	require.NoError(t, err)

	args, err := wrapper.RenderArgs([]string{"--verbose", cfgPath, "plain-arg"}, yodel.YAML)
	require.NoError(t, err)
	require.Len(t, args, 3)

	require.Equal(t, "--verbose", args[0])
	require.Equal(t, "plain-arg", args[2])

	require.NotEqual(t, cfgPath, args[1])
	t.Cleanup(func() { os.Remove(args[1]) })

	rendered, err := os.ReadFile(args[1])
	require.NoError(t, err)
	require.Contains(t, string(rendered), "name: myService")
	require.Contains(t, string(rendered), "port: 8081")
}

func TestRenderArgsSkipsNonConfigArgs(t *testing.T) {
	args, err := wrapper.RenderArgs([]string{"build", "-o", "out.bin", "./..."}, yodel.YAML)
	require.NoError(t, err)
	require.Equal(t, []string{"build", "-o", "out.bin", "./..."}, args)
}

func TestRenderArgsSkipsMissingConfig(t *testing.T) {
	// A config-looking path that does not exist is the wrapped tool's
	// problem, not ours
	args, err := wrapper.RenderArgs([]string{"no-such-file.yaml"}, yodel.YAML)
	require.NoError(t, err)
	require.Equal(t, []string{"no-such-file.yaml"}, args)
}
