// Command hcompress is the CLI adapter around the compress package's core:
// a thin collaborator that handles argument parsing and file I/O, per
// the container format and error taxonomy, and nothing else.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	compress "github.com/vladFlux/CUDA-Compression"
	"github.com/vladFlux/CUDA-Compression/internal/device"
	"github.com/vladFlux/CUDA-Compression/internal/hlog"
)

var log = hlog.New("cmd", "hcompress")

func main() {
	app := &cli.App{
		Name:      "hcompress",
		Usage:     "compress a file with static Huffman coding on a simulated parallel backend",
		ArgsUsage: "<input_path> <output_path>",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "free-mem",
				Usage: "override the simulated device's reported free memory, in bytes",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Crit("hcompress failed", "err", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	hlog.SetVerbose(c.Bool("verbose"))

	if c.NArg() != 2 {
		return cli.Exit(&compress.ArgumentError{Msg: "usage: hcompress <input_path> <output_path>"}, 1)
	}
	inPath, outPath := c.Args().Get(0), c.Args().Get(1)

	src, err := os.ReadFile(inPath)
	if err != nil {
		return cli.Exit(&compress.IOError{Path: inPath, Err: err}, 1)
	}
	if len(src) == 0 {
		return cli.Exit(&compress.ArgumentError{Msg: fmt.Sprintf("%s is empty", inPath)}, 1)
	}

	var opts []compress.Option
	if c.IsSet("free-mem") {
		info := device.Simulated()
		info.FreeBytes = c.Int64("free-mem")
		opts = append(opts, compress.WithDevice(info))
	}

	out, err := compress.Compress(context.Background(), src, opts...)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return cli.Exit(&compress.IOError{Path: outPath, Err: err}, 1)
	}
	log.Info("wrote container", "path", outPath, "bytes", len(out))
	return nil
}
