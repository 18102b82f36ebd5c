// Package compress is the core of a lossless, static-Huffman byte-stream
// compressor whose bit-level encoding and packing stages are designed to
// run on a massively parallel execution backend (here, a simulated
// goroutine worker pool standing in for a cooperative GPU thread block).
package compress

import (
	"bytes"
	"context"

	"github.com/vladFlux/CUDA-Compression/internal/codebook"
	"github.com/vladFlux/CUDA-Compression/internal/container"
	"github.com/vladFlux/CUDA-Compression/internal/device"
	"github.com/vladFlux/CUDA-Compression/internal/histogram"
	"github.com/vladFlux/CUDA-Compression/internal/hlog"
	"github.com/vladFlux/CUDA-Compression/internal/kernel"
	"github.com/vladFlux/CUDA-Compression/internal/offsetplan"
	"github.com/vladFlux/CUDA-Compression/internal/tree"
)

var log = hlog.New("pkg", "compress")

// config holds the options a caller can tune; currently only the simulated
// device's reported memory, which exists so tests and the CLI's
// --free-mem flag can deterministically force the chunk/overflow
// scenarios without needing gigabyte-scale inputs.
type config struct {
	device device.Info
}

// Option configures a Compress call.
type Option func(*config)

// WithDevice overrides the simulated device info used to compute the
// per-kernel memory budget.
func WithDevice(info device.Info) Option {
	return func(c *config) { c.device = info }
}

func newConfig(opts []Option) config {
	c := config{device: device.Simulated()}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Compress encodes src into the container format (see internal/container).
// src must be nonempty; the core has no notion of an empty stream (the CLI
// rejects that case before ever calling in).
func Compress(ctx context.Context, src []byte, opts ...Option) ([]byte, error) {
	if len(src) == 0 {
		return nil, &ArgumentError{Msg: "input must be nonempty"}
	}
	cfg := newConfig(opts)

	hist := histogram.Scan(src)
	t := tree.Build(hist)
	book := codebook.Build(t)
	totalBits := hist.TotalBits(&book.Len)

	budget, err := device.PlanBudget(cfg.device, len(src), totalBits)
	if err != nil {
		log.Error("insufficient device memory", "err", err)
		return nil, err
	}
	log.Debug("planned budget", "M", budget.M, "K", budget.K, "O", budget.O, "totalBits", totalBits)

	memBudget := uint64(0)
	if budget.K > 1 {
		memBudget = budget.M
	}
	plan := offsetplan.Build(src, &book.Len, memBudget, budget.O)

	results, err := kernel.Run(ctx, book, src, plan)
	if err != nil {
		log.Error("kernel run failed", "err", err)
		return nil, &DeviceLaunchError{Err: err}
	}
	payload := kernel.Stitch(results)

	var buf bytes.Buffer
	buf.Grow(container.HeaderSize + len(payload))
	if err := container.Write(&buf, uint32(len(src)), hist, payload); err != nil {
		return nil, err
	}
	log.Info("compressed", "in", len(src), "out", buf.Len(), "segments", len(plan.Segments()))
	return buf.Bytes(), nil
}
