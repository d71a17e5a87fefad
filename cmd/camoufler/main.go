package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"camoufler/pkg/buildinfo"
	"camoufler/pkg/smudge"
)

const usageTemplate = `Usage: camoufler <input_image> <output_folder> [<arguments>]

Arguments:
  -w, --smudge-weight <uint8>    smudge weight, 0 disables smudging (default 5)
  -s, --smudge-shade  <bool>     true darkens, false lightens (default false)
  -m, --smudge-min    <0xRRGGBB> lower colour bound
  -M, --smudge-max    <0xRRGGBB> upper colour bound
  -S, --seed          <uint64>   seed for a reproducible smudge
  -p, --progress      <bool>     show a progress bar
  -h, --help                     show this help
      --version                  show version information
`

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the camoufler command. Flag parsing is left to
// smudge.Resolve, which owns the positional/pair grammar.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "camoufler <input_image> <output_folder> [<arguments>]",
		Short: "Camoufler smudges the colours of a raster image",
		Long: `Camoufler loads a raster image, shifts the red and green channel of every
pixel by a random amount bounded by the smudge weight and writes the
result to output.png in the output folder.`,
		Version:            buildinfo.Version,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetUsageTemplate(usageTemplate)
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "-h", "--help":
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", cmd.Long)
			return cmd.Usage()
		case "--version":
			_, err := fmt.Fprint(cmd.OutOrStdout(), buildinfo.String())
			return err
		}
	}

	path := configPath()
	cfg, cfgErr := safeLoadConfig(path)
	logger := newLogger(cmd.ErrOrStderr(), cfg.level())
	if cfgErr != nil {
		logger.Error(cfgErr)
		return cfgErr
	}
	logger.Debug("config", "path", path)

	ctx := withLogger(cmd.Context(), logger)
	if err := smudgeImage(ctx, cmd, args, cfg); err != nil {
		logger.Errorf("whilst %s: %v", smudge.Stage(err), err)
		fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		return err
	}
	return nil
}

func smudgeImage(ctx context.Context, cmd *cobra.Command, args []string, cfg config) error {
	logger := loggerFromContext(ctx)

	inv, err := smudge.Resolve(args, cfg.params(), cfg.Progress)
	if err != nil {
		return err
	}
	for _, w := range inv.Warnings {
		logger.Warn(w.String())
	}
	if inv.RangeSwapped {
		logger.Warn("smudge min exceeds max on some channels; bounds swapped", "range", inv.Params.Range)
	}
	logger.Debug("resolved",
		"input", inv.InputPath,
		"output", inv.OutputDir,
		"weight", inv.Params.Weight,
		"shade", inv.Params.Shade,
	)

	var opts smudge.RunOptions
	if inv.Progress {
		opts.Observer = rowProgress(cmd.ErrOrStderr())
	}

	t := newTimer(logger)
	res, err := smudge.Run(inv, opts)
	if err != nil {
		return err
	}
	t.done(fmt.Sprintf("smudged %dx%d image", res.Width, res.Height))

	logger.Infof("Successfully saved %s to %s", smudge.OutputName, inv.OutputDir)
	return nil
}
