package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"falling-sand/internal/core"
	"falling-sand/internal/logging"
	"falling-sand/internal/record"
	"falling-sand/internal/render"
	"falling-sand/internal/scene"
	"falling-sand/internal/sims/sand"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

type options struct {
	scenePath  string
	steps      int
	tps        int
	recordPath string
	framePath  string
	overrides  kvList
}

func main() {
	var opts options
	flag.StringVar(&opts.scenePath, "scene", scene.DemoName, "scene file (YAML), or \"demo\" for the built-in scene")
	flag.IntVar(&opts.steps, "steps", 600, "number of ticks to simulate")
	flag.IntVar(&opts.tps, "tps", 0, "pace ticks at this rate; 0 runs unthrottled")
	flag.StringVar(&opts.recordPath, "record", "", "write every frame to this .sand.zst recording")
	flag.StringVar(&opts.framePath, "frame", "", "save the final frame as .png or .bmp")
	flag.Var(&opts.overrides, "set", "grid override in key=value form, e.g. size=200 (repeatable)")
	level := flag.String("log-level", "info", "log level: info, debug, or trace for one line per step")
	flag.Parse()

	log := logging.NewLogger(*level, os.Stderr)
	if err := run(log, opts); err != nil {
		log.Error("sandbench failed", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, opts options) error {
	ctx := context.Background()
	sc, err := scene.Resolve(opts.scenePath)
	if err != nil {
		return err
	}

	cfg := sand.FromMap(configValues(sc, opts.overrides))
	grid, err := sand.NewWithConfig(cfg)
	if err != nil {
		return err
	}
	placed := sc.Apply(grid)
	log.Debug("grid config", "values", configValues(sc, opts.overrides))
	log.Info("scene ready", "size", cfg.Size, "seed", cfg.Seed, "strokes", len(sc.Strokes), "placed", placed)

	var rec *record.Writer
	if opts.recordPath != "" {
		rec, err = record.Create(opts.recordPath, grid.Size())
		if err != nil {
			return fmt.Errorf("create recording: %w", err)
		}
		if err := rec.WriteFrame(grid.Cells()); err != nil {
			rec.Close()
			return err
		}
	}

	var pacer *core.FixedStep
	if opts.tps > 0 {
		pacer = core.NewFixedStep(opts.tps)
		log.Debug("pacing enabled", "tps", opts.tps, "interval", pacer.Interval())
	}

	var stepTotal, stepMax, recordTotal time.Duration
	for i := 0; i < opts.steps; i++ {
		if pacer != nil {
			for !pacer.ShouldStep() {
				time.Sleep(pacer.Remaining())
			}
		}

		t0 := time.Now()
		grid.Step()
		t1 := time.Now()
		if rec != nil {
			if err := rec.WriteFrame(grid.Cells()); err != nil {
				rec.Close()
				return fmt.Errorf("record tick %d: %w", grid.Tick(), err)
			}
		}
		t2 := time.Now()

		took := t1.Sub(t0)
		stepTotal += took
		recordTotal += t2.Sub(t1)
		if took > stepMax {
			stepMax = took
		}
		log.Log(ctx, logging.LevelTrace, "step", "tick", grid.Tick(), "step", took, "record", t2.Sub(t1), "occupied", grid.Occupied(), "moved", grid.Moved())
	}

	if rec != nil {
		if err := rec.Close(); err != nil {
			return fmt.Errorf("close recording: %w", err)
		}
		log.Info("recording written", "path", opts.recordPath, "frames", rec.Frames())
	}

	mean := time.Duration(0)
	if opts.steps > 0 {
		mean = stepTotal / time.Duration(opts.steps)
	}
	sandCells, waterCells := grid.Counts()
	log.Info("run complete",
		"steps", opts.steps,
		"step_total", stepTotal,
		"step_mean", mean,
		"step_max", stepMax,
		"record_total", recordTotal,
		"occupied", grid.Occupied(),
		"sand", sandCells,
		"water", waterCells,
	)

	if opts.framePath != "" {
		img := render.Image(grid.Cells(), grid.Size(), sand.Palette)
		if err := render.SaveImage(opts.framePath, img); err != nil {
			return err
		}
		log.Info("frame saved", "path", opts.framePath)
	}
	return nil
}

// configValues layers -set overrides over the scene's own size and seed.
func configValues(sc scene.Scene, overrides kvList) map[string]string {
	values := map[string]string{}
	if sc.Size > 0 {
		values["size"] = strconv.Itoa(sc.Size)
	}
	if sc.Seed != 0 {
		values["seed"] = strconv.FormatInt(sc.Seed, 10)
	}
	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return values
}
