package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"
	"time"

	"falling-sand/internal/scene"
	"falling-sand/internal/sims/sand"
)

type scenarioResult struct {
	seed      int64
	settledAt int // -1 while cells were still moving at the last step
	moved     int
	surface   int
	sand      int
	water     int
	elapsed   time.Duration
}

func (r scenarioResult) String() string {
	settled := "never"
	if r.settledAt >= 0 {
		settled = fmt.Sprintf("tick %d", r.settledAt)
	}
	return fmt.Sprintf("seed=%d settled=%s moved=%d surface=%d sand=%d water=%d took=%s",
		r.seed, settled, r.moved, r.surface, r.sand, r.water, r.elapsed.Round(time.Microsecond))
}

func main() {
	scenePath := flag.String("scene", scene.DemoName, "scene file (YAML), or \"demo\" for the built-in scene")
	steps := flag.Int("steps", 600, "ticks to simulate per seed")
	runs := flag.Int("runs", 16, "number of consecutive seeds to try")
	first := flag.Int64("seed", 1, "first seed of the sweep")
	size := flag.Int("size", 0, "grid size override; 0 uses the scene or default size")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	sc, err := scene.Resolve(*scenePath)
	if err != nil {
		log.Fatalf("load scene: %v", err)
	}
	base := sc.Config(sand.DefaultConfig())
	if *size > 0 {
		base.Size = *size
	}

	seeds := make([]int64, *runs)
	for i := range seeds {
		seeds[i] = *first + int64(i)
	}

	fmt.Printf("Sweeping %d seeds (%d workers, %d steps, size %d)\n", len(seeds), *workers, *steps, base.Size)
	start := time.Now()
	all, err := sweep(sc, base, seeds, *steps, *workers)
	if err != nil {
		log.Fatalf("sweep: %v", err)
	}

	sort.SliceStable(all, func(i, j int) bool { return settledBefore(all[i], all[j]) })
	fmt.Printf("\nResults by settle time (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for i, res := range all {
		fmt.Printf("%2d) %s\n", i+1, res)
	}
}

// sweep runs the scene once per seed across a pool of workers and returns the
// results ordered by seed.
func sweep(sc scene.Scene, base sand.Config, seeds []int64, steps, workers int) ([]scenarioResult, error) {
	if workers < 1 {
		workers = 1
	}

	type outcome struct {
		res scenarioResult
		err error
	}
	jobs := make(chan int64)
	results := make(chan outcome)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				res, err := runScenario(sc, base, seed, steps)
				results <- outcome{res: res, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, seed := range seeds {
			jobs <- seed
		}
		close(jobs)
	}()

	var (
		all      []scenarioResult
		firstErr error
	)
	for out := range results {
		if out.err != nil {
			if firstErr == nil {
				firstErr = out.err
			}
			continue
		}
		all = append(all, out.res)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seed < all[j].seed })
	return all, nil
}

func runScenario(sc scene.Scene, base sand.Config, seed int64, steps int) (scenarioResult, error) {
	cfg := base
	cfg.Seed = seed
	g, err := sand.NewWithConfig(cfg)
	if err != nil {
		return scenarioResult{}, fmt.Errorf("seed %d: %w", seed, err)
	}
	sc.Apply(g)

	res := scenarioResult{seed: seed, settledAt: -1}
	start := time.Now()
	for i := 0; i < steps; i++ {
		g.Step()
		if g.Moved() == 0 {
			res.settledAt = int(g.Tick())
			break
		}
	}
	res.elapsed = time.Since(start)
	res.moved = g.Moved()
	res.surface = surface(g)
	res.sand, res.water = g.Counts()
	return res, nil
}

// surface returns one past the highest occupied row, or 0 for an empty grid.
func surface(g *sand.Grid) int {
	size := g.Size()
	for y := size.H - 1; y >= 0; y-- {
		for x := 0; x < size.W; x++ {
			if g.IsOccupied(x, y) {
				return y + 1
			}
		}
	}
	return 0
}

func settledBefore(a, b scenarioResult) bool {
	switch {
	case a.settledAt < 0 && b.settledAt < 0:
		return a.moved < b.moved
	case a.settledAt < 0:
		return false
	case b.settledAt < 0:
		return true
	}
	return a.settledAt < b.settledAt
}
