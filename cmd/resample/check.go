package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync/atomic"

	"github.com/born-ml/resample/internal/autodiff"
	"github.com/born-ml/resample/internal/backend/cpu"
	"github.com/born-ml/resample/internal/backend/webgpu"
	"github.com/born-ml/resample/internal/interp"
	"github.com/born-ml/resample/internal/tensor"
	"golang.org/x/sync/errgroup"
)

// checkConfig controls the random trials of the check command.
type checkConfig struct {
	Trials  int
	Workers int
	Seed    int64
	MaxDim  int
	GPU     bool
}

func defaultCheckConfig() checkConfig {
	return checkConfig{
		Trials:  64,
		Workers: runtime.NumCPU(),
		Seed:    1,
		MaxDim:  24,
		GPU:     true,
	}
}

func parseCheckFlags(args []string) (checkConfig, error) {
	cfg := defaultCheckConfig()
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.IntVar(&cfg.Trials, "trials", cfg.Trials, "number of random trials")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "trials run concurrently")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "base random seed")
	fs.IntVar(&cfg.MaxDim, "max-dim", cfg.MaxDim, "largest spatial size drawn")
	fs.BoolVar(&cfg.GPU, "gpu", cfg.GPU, "compare against WebGPU when available")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.Trials < 1 || cfg.Workers < 1 || cfg.MaxDim < 1 {
		return cfg, fmt.Errorf("trials, workers and max-dim must be positive")
	}
	return cfg, nil
}

// trial is one random resize problem.
type trial struct {
	shape tensor.Shape
	p     interp.Params
	x, gy *tensor.RawTensor
}

func newTrial(rng *rand.Rand, maxDim int) trial {
	shape := tensor.Shape{1 + rng.Intn(2), 1 + rng.Intn(3), 1 + rng.Intn(maxDim), 1 + rng.Intn(maxDim)}
	p := interp.Params{
		OutH:         1 + rng.Intn(2*maxDim),
		OutW:         1 + rng.Intn(2*maxDim),
		Mode:         interp.Mode(rng.Intn(2)),
		AlignCorners: rng.Intn(2) == 0,
	}
	return trial{
		shape: shape,
		p:     p,
		x:     randomRaw(rng, shape),
		gy:    randomRaw(rng, tensor.Shape{shape[0], shape[1], p.OutH, p.OutW}),
	}
}

func randomRaw(rng *rand.Rand, shape tensor.Shape) *tensor.RawTensor {
	data := make([]float32, shape.NumElements())
	for i := range data {
		data[i] = rng.Float32()*2 - 1
	}
	raw, err := tensor.FromFloat32(data, shape, tensor.CPU)
	if err != nil {
		panic(err)
	}
	return raw
}

func runCheck(args []string) error {
	cfg, err := parseCheckFlags(args)
	if err != nil {
		return err
	}

	host := cpu.New()
	reference := tensor.NewMockBackend()

	var gpu *webgpu.Backend
	if cfg.GPU && webgpu.IsAvailable() {
		if gpu, err = webgpu.New(); err != nil {
			fmt.Printf("WebGPU skipped: %v\n", err)
			gpu = nil
		} else {
			defer gpu.Release()
		}
	}

	var worstAdjoint, worstGPU atomic.Uint64 // float64 bits

	var g errgroup.Group
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Trials; i++ {
		seed := cfg.Seed + int64(i)
		g.Go(func() error {
			tr := newTrial(rand.New(rand.NewSource(seed)), cfg.MaxDim)

			y := host.ResizeImages(tr.x, tr.p)
			if err := sameFloats(reference.ResizeImages(tr.x, tr.p).AsFloat32(), y.AsFloat32()); err != nil {
				return fmt.Errorf("seed %d %v %v: forward differs from reference: %w", seed, tr.shape, tr.p, err)
			}

			lhs, rhs := autodiff.AdjointCheck(host, tr.x, tr.gy, tr.p)
			rel := math.Abs(lhs-rhs) / math.Max(1, math.Abs(lhs))
			storeMax(&worstAdjoint, rel)
			if rel > 1e-4 {
				return fmt.Errorf("seed %d %v %v: adjoint mismatch %g vs %g", seed, tr.shape, tr.p, lhs, rhs)
			}

			if gpu != nil {
				gy := gpu.ResizeImages(tr.x.WithDevice(tensor.WebGPU), tr.p)
				diff := maxRelDiff(y.AsFloat32(), gy.AsFloat32())
				storeMax(&worstGPU, diff)
				if diff > 1e-5 {
					return fmt.Errorf("seed %d %v %v: WebGPU differs by %g", seed, tr.shape, tr.p, diff)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("%d trials passed (worst adjoint error %.3g)\n", cfg.Trials, math.Float64frombits(worstAdjoint.Load()))
	if gpu != nil {
		fmt.Printf("WebGPU parity: worst relative difference %.3g\n", math.Float64frombits(worstGPU.Load()))
	}
	return nil
}

func sameFloats(want, got []float32) error {
	if len(want) != len(got) {
		return fmt.Errorf("length %d != %d", len(got), len(want))
	}
	for i := range want {
		if math.Float32bits(want[i]) != math.Float32bits(got[i]) {
			return fmt.Errorf("element %d: %v != %v", i, got[i], want[i])
		}
	}
	return nil
}

func maxRelDiff(want, got []float32) float64 {
	var worst float64
	for i := range want {
		d := math.Abs(float64(want[i])-float64(got[i])) / math.Max(1, math.Abs(float64(want[i])))
		worst = math.Max(worst, d)
	}
	return worst
}

// storeMax raises *bits to v if v is larger. Values are non-negative, so
// their float64 bit patterns order like the values.
func storeMax(bits *atomic.Uint64, v float64) {
	nv := math.Float64bits(v)
	for {
		old := bits.Load()
		if nv <= old || bits.CompareAndSwap(old, nv) {
			return
		}
	}
}
