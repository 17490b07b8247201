package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/yodelconfig/yodel"
	"github.com/yodelconfig/yodel/pkg/wrapper"
)

func main() {
	debug.SetGCPercent(-1)
	cmd := filepath.Base(os.Args[0])

	if strings.HasSuffix(cmd, "w") {
		cmd = strings.TrimSuffix(cmd, "w")
	} else {
		fatal(fmt.Errorf(`Usage:
  ln -s $(which yodelw) toolw  # toolw will run 'tool' with config arguments pre-rendered`))
	}

	wrapper.WrapOrDie(cmd, yodel.YAML)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}
