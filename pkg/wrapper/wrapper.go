package wrapper

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/exp/slices"

	"github.com/yodelconfig/yodel"
	"github.com/yodelconfig/yodel/internal/format"
	"github.com/yodelconfig/yodel/pkg/version"
)

// WrapOrDie execs cmd with the current arguments, after replacing every
// argument that loads as a configuration source with a temp file holding
// the rendered effective configuration. Profile selection still comes
// from YODEL_PROFILES, so the wrapped command sees the layered result
// without knowing about profiles at all.
func WrapOrDie(cmd string, f yodel.Format) {
	version.PrintVersion(false)

	cmdPath, err := exec.LookPath(cmd)
	if err != nil {
		fatal(err)
	}

	args, err := RenderArgs(os.Args[1:], f)
	if err != nil {
		fatal(err)
	}

	fatal(syscall.Exec(cmdPath, append([]string{cmd}, args...), os.Environ()))
}

// RenderArgs returns a copy of args in which every loadable configuration
// source is replaced by the path of a temp file holding its effective
// configuration rendered as f. Arguments without a supported config
// extension, and ones that fail to load, pass through untouched.
func RenderArgs(args []string, f yodel.Format) ([]string, error) {
	out := slices.Clone(args)

	for i, arg := range out {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(arg), "."))
		if ext == "" || !format.Supported(ext) {
			continue
		}

		ctx, err := yodel.Load(arg)
		if err != nil {
			// Not a loadable config source; pass through untouched.
			continue
		}

		output, err := ctx.Render(f)
		if err != nil {
			return nil, err
		}

		pat := fmt.Sprintf(
			"%s.*.%s",
			filepath.Base(os.Args[0]),
			filepath.Base(arg),
		)

		tmp, err := os.CreateTemp("", pat)
		if err != nil {
			return nil, err
		}

		_, err = tmp.Write(output)
		if err != nil {
			tmp.Close()
			return nil, err
		}

		out[i] = tmp.Name()

		tmp.Close()
	}

	return out, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}
