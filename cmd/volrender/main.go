// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command volrender classifies a scalar volume and ray casts it to an image.
//
// Without -input it renders a synthetic field:
//
//	volrender -synthetic gaussian -mode btf -output blob.png
//	volrender -input head.xml -function log10 -filter linear -output head.exr
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/volume"
	"github.com/gogpu/volume/dataset"
)

type config struct {
	input     string
	synthetic string
	size      int
	width     int
	height    int
	scale     float64
	output    string
	function  string
	min, max  float64
	mode      string
	filter    string
	step      float64
	maxSteps  int
	azimuth   float64
	elevation float64
	tf        int
	saveTF    string
	workers   int
}

func main() {
	var cfg config
	flag.StringVar(&cfg.input, "input", "", "volume descriptor (XML); empty renders a synthetic field")
	flag.StringVar(&cfg.synthetic, "synthetic", "sphere", "synthetic field: sphere, gaussian or ramp")
	flag.IntVar(&cfg.size, "size", 64, "edge length of the synthetic field")
	flag.IntVar(&cfg.width, "width", 512, "image width")
	flag.IntVar(&cfg.height, "height", 512, "image height")
	flag.Float64Var(&cfg.scale, "scale", 1, "resample the output image by this factor")
	flag.StringVar(&cfg.output, "output", "volume.png", "output file (.png, .tif, .bmp, .exr)")
	flag.StringVar(&cfg.function, "function", "identity", "scalar function: identity, abs, log10, multiply, multiply-log10")
	flag.Float64Var(&cfg.min, "min", 0, "active range minimum; min == max derives the range")
	flag.Float64Var(&cfg.max, "max", 0, "active range maximum")
	flag.StringVar(&cfg.mode, "mode", "ftb", "compositing: ftb or btf")
	flag.StringVar(&cfg.filter, "filter", "nearest", "sampling filter: nearest or linear")
	flag.Float64Var(&cfg.step, "step", volume.DefaultStepSize, "step size in unit volume space")
	flag.IntVar(&cfg.maxSteps, "max-steps", volume.DefaultMaxSteps, "maximum samples per ray")
	flag.Float64Var(&cfg.azimuth, "azimuth", 30, "camera azimuth in degrees")
	flag.Float64Var(&cfg.elevation, "elevation", 20, "camera elevation in degrees")
	flag.IntVar(&cfg.tf, "tf", -1, "transfer function index; -1 keeps the active one")
	flag.StringVar(&cfg.saveTF, "save-tf", "", "write the transfer functions to this XML file")
	flag.IntVar(&cfg.workers, "workers", 0, "worker goroutines; 0 uses GOMAXPROCS")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	volume.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg); err != nil {
		log.Fatalf("volrender: %v", err)
	}
}

// source is what run renders: a field, its placement and its transfer
// functions.
type source struct {
	name      string
	field     *volume.ScalarField
	secondary *volume.ScalarField
	box       volume.BoundingBox
	tfs       *volume.TransferFunctionList
}

func load(cfg config) (*source, error) {
	if cfg.input == "" {
		field, err := synthetic(cfg.synthetic, cfg.size)
		if err != nil {
			return nil, err
		}
		return &source{
			name:  cfg.synthetic,
			field: field,
			box:   volume.CenteredBox(field.Dims()),
			tfs:   volume.NewTransferFunctionList(volume.DefaultTransferFunction()),
		}, nil
	}

	v, err := dataset.Load(cfg.input)
	if err != nil {
		return nil, err
	}
	if v.TransferFunctions.Len() == 0 {
		v.TransferFunctions.Add(volume.DefaultTransferFunction())
	}
	return &source{
		name:      filepath.Base(cfg.input),
		field:     v.Field,
		secondary: v.Secondary,
		box:       v.Box,
		tfs:       v.TransferFunctions,
	}, nil
}

func run(cfg config) error {
	fn, ok := volume.ParseScalarFunction(cfg.function)
	if !ok {
		return fmt.Errorf("unknown scalar function %q", cfg.function)
	}
	mode, ok := volume.ParseCompositingMode(cfg.mode)
	if !ok {
		return fmt.Errorf("unknown compositing mode %q", cfg.mode)
	}
	filter, ok := volume.ParseFilter(cfg.filter)
	if !ok {
		return fmt.Errorf("unknown filter %q", cfg.filter)
	}

	src, err := load(cfg)
	if err != nil {
		return err
	}
	if cfg.tf >= 0 {
		if err := src.tfs.SetActive(cfg.tf); err != nil {
			return err
		}
	}
	tf := src.tfs.Active()
	lut, err := tf.ComputeLUT()
	if err != nil {
		return fmt.Errorf("transfer function %q: %w", tf.Name(), err)
	}

	classifier := volume.NewClassifier(volume.WithWorkers(cfg.workers))
	defer classifier.Close()
	vol, err := classifier.ClassifyAuto(src.field, src.secondary, fn, volume.Range{Min: cfg.min, Max: cfg.max})
	if err != nil {
		return err
	}
	volume.Logger().Debug("volrender: classified", "range", vol.Range(), "cache", classifier.Stats())

	marcher := volume.NewMarcher(
		volume.WithStepSize(cfg.step),
		volume.WithMaxSteps(cfg.maxSteps),
		volume.WithMode(mode),
		volume.WithFilter(filter),
	)
	renderer := volume.NewRenderer(marcher, cfg.workers)
	cam := volume.OrbitCamera(src.box, cfg.azimuth, cfg.elevation)

	start := time.Now()
	frame, stats, err := renderer.Render(vol, lut, cam, src.box, cfg.width, cfg.height)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := save(frame, cfg.output, cfg.scale); err != nil {
		return err
	}
	if cfg.saveTF != "" {
		if err := saveTransferFunctions(cfg.saveTF, src); err != nil {
			return err
		}
	}

	p := message.NewPrinter(language.English)
	p.Printf("%s: %v field, range %v, %s/%s, %d rays, %d samples (%d missed, %d saturated, %d capped) in %v\n",
		src.name, src.field.Dims(), vol.Range(), mode, filter,
		stats.Rays, stats.Samples, stats.Missed, stats.Saturated, stats.Capped, elapsed.Round(time.Millisecond))
	p.Printf("saved %s (%dx%d)\n", cfg.output, int(float64(cfg.width)*cfg.scale), int(float64(cfg.height)*cfg.scale))
	return nil
}

// save writes frame to path, resampled by scale. EXR output is never
// resampled.
func save(frame *volume.Frame, path string, scale float64) (err error) {
	format, err := volume.FormatFromPath(path)
	if err != nil {
		return err
	}
	if scale == 1 || format == volume.FormatEXR {
		return frame.Save(path, volume.Black)
	}
	if scale <= 0 {
		return fmt.Errorf("invalid scale %v", scale)
	}

	src := frame.Resolve(volume.Black)
	w := max(1, int(float64(frame.Width())*scale))
	h := max(1, int(float64(frame.Height())*scale))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return volume.EncodeImage(f, dst, format)
}

func saveTransferFunctions(path string, src *source) (err error) {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return dataset.EncodeTransferFunctions(f, src.name, src.field.Dims(), src.tfs.All()...)
}
