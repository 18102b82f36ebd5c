// Command hdecompress is the CLI adapter around the compress package's
// decoder.
package main

import (
	"errors"
	"os"

	"github.com/urfave/cli/v2"

	compress "github.com/vladFlux/CUDA-Compression"
	"github.com/vladFlux/CUDA-Compression/internal/hlog"
)

var log = hlog.New("cmd", "hdecompress")

func main() {
	app := &cli.App{
		Name:      "hdecompress",
		Usage:     "decode a container produced by hcompress",
		ArgsUsage: "<input_path> <output_path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "enable debug logging"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Crit("hdecompress failed", "err", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	hlog.SetVerbose(c.Bool("verbose"))

	if c.NArg() != 2 {
		return cli.Exit(&compress.ArgumentError{Msg: "usage: hdecompress <input_path> <output_path>"}, 1)
	}
	inPath, outPath := c.Args().Get(0), c.Args().Get(1)

	data, err := os.ReadFile(inPath)
	if err != nil {
		return cli.Exit(&compress.IOError{Path: inPath, Err: err}, 1)
	}

	out, err := compress.Decompress(data)
	var trunc *compress.TruncationWarning
	if err != nil && !errors.As(err, &trunc) {
		return cli.Exit(err, 1)
	}
	if trunc != nil {
		log.Warn("input was truncated", "want", trunc.Want, "got", trunc.Got)
	}

	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return cli.Exit(&compress.IOError{Path: outPath, Err: err}, 1)
	}
	log.Info("wrote decoded output", "path", outPath, "bytes", len(out))
	return nil
}
