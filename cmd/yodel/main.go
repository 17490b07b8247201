package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"

	"github.com/yodelconfig/yodel"
	"github.com/yodelconfig/yodel/pkg/log"
	"github.com/yodelconfig/yodel/pkg/version"
)

type options struct {
	Format       *string         `short:"f" long:"format" description:"input format (default: auto-detect)" choice:"json" choice:"toml" choice:"yaml" choice:"properties"`
	OutputFormat string          `short:"F" long:"output-format" description:"output format" choice:"json" choice:"json-pretty" choice:"toml" choice:"yaml" choice:"properties" default:"yaml"`
	OutputPath   *flags.Filename `short:"o" long:"output" description:"output file path"`
	Profiles     string          `short:"p" long:"profiles" description:"comma-separated profile names to overlay"`
	BaseName     string          `short:"b" long:"base-name" description:"base filename for directory discovery" default:"config"`
	Strict       bool            `short:"s" long:"strict" description:"fail on unresolved ${VAR} placeholders"`
	NoResolve    bool            `short:"n" long:"no-resolve" description:"disable ${VAR} placeholder resolution"`
	Diff         bool            `short:"d" long:"diff" description:"show a unified diff of effective config with vs. without the profiles"`
	Verbose      bool            `short:"v" long:"verbose" description:"enable verbose logging"`
	Version      bool            `short:"V" long:"version" description:"print version and exit"`

	Positional struct {
		Source flags.Filename `positional-arg-name:"source" description:"config file or directory"`
	} `positional-args:"yes"`
}

func main() {
	opts := &options{}

	fp := flags.NewParser(opts, flags.Default)
	fp.LongDescription = `
yodel loads layered configuration from YAML, JSON, TOML, or properties files,
resolves ${VAR} placeholders from the environment, and merges profile overlays
discovered as {base-name}-{profile}.{ext} next to the base file.`

	_, err := fp.Parse()
	if err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}

		os.Exit(1)
	}

	version.PrintVersion(opts.Version)

	if opts.Positional.Source == "" {
		fp.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	if opts.Verbose {
		log.Debug = true
	}

	loadOpts := yodel.NewOptions().
		WithBaseName(opts.BaseName).
		WithResolve(!opts.NoResolve)

	if opts.Strict {
		loadOpts = loadOpts.WithResolveMode(yodel.Strict)
	}

	if opts.Format != nil {
		loadOpts = loadOpts.WithFormat(yodel.Format(*opts.Format))
	}

	if opts.Profiles != "" {
		names := []string{}

		for _, name := range strings.Split(opts.Profiles, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}

		loadOpts = loadOpts.WithProfiles(names...)
	}

	source := string(opts.Positional.Source)
	outFormat := yodel.Format(opts.OutputFormat)

	var output []byte

	if opts.Diff {
		diff, err := yodel.Compare(loadOpts, source, outFormat)
		if err != nil {
			fatal(err)
		}

		output = []byte(diff)
	} else {
		ctx, err := yodel.LoadWithOptions(loadOpts, source)
		if err != nil {
			fatal(err)
		}

		output, err = ctx.Render(outFormat)
		if err != nil {
			fatal(err)
		}
	}

	if opts.OutputPath == nil {
		_, err = os.Stdout.Write(output)
	} else {
		err = os.WriteFile(string(*opts.OutputPath), output, 0o644)
	}

	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", yodel.DescribeError(err))
	os.Exit(1)
}
