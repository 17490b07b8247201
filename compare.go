package yodel

import (
	"fmt"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Compare loads source twice, once with zero profiles and once with the
// profiles requested in opts, and returns a unified diff of the two
// effective configurations rendered as f. An empty diff means the
// requested profiles change nothing.
func Compare(opts Options, source string, f Format) (string, error) {
	// Empty env var name disables the YODEL_PROFILES override, so the
	// base side really is profile-free.
	baseOpts := opts.WithProfiles().WithProfilesEnvVar("")

	base, err := LoadWithOptions(baseOpts, source)
	if err != nil {
		return "", fmt.Errorf("base: %w", err)
	}

	layered, err := LoadWithOptions(opts, source)
	if err != nil {
		return "", err
	}

	baseOut, err := base.Render(f)
	if err != nil {
		return "", err
	}

	layeredOut, err := layered.Render(f)
	if err != nil {
		return "", err
	}

	label := strings.TrimSuffix(source, "/")

	edits := myers.ComputeEdits(span.URIFromPath(label), string(baseOut), string(layeredOut))

	return fmt.Sprint(gotextdiff.ToUnified(label+" (base)", label+" (profiles)", string(baseOut), edits)), nil
}
