package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"lavahop/internal/app"
	"lavahop/internal/arena"
	"lavahop/internal/results"
)

type paramSet struct {
	lavaSpeed   float64
	spawnChance float64
	playerSpeed float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("lava=%.2f spawn=%.2f speed=%.2f", p.lavaSpeed, p.spawnChance, p.playerSpeed)
}

type job struct {
	params paramSet
	seed   int64
}

type matchResult struct {
	params paramSet
	match  results.Match
}

type setStats struct {
	params  paramSet
	matches int
	blue    int
	red     int
	deaths  int
	draws   int
	margin  float64
}

func main() {
	cfg := app.NewConfig()
	duration := flag.Float64("duration", 60, "running seconds per match")
	seeds := flag.Int("seeds", 8, "matches per parameter set")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	dbPath := flag.String("db", "", "record every match in this SQLite database")
	recent := flag.Int("recent", 5, "recorded matches to list after the sweep (with -db)")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "first seed; each match adds its index")
	flag.Var(&cfg.Overrides, "set", "arena parameter override in key=value form (repeatable)")
	flag.Parse()

	cfg.Blue = "ai"
	cfg.Red = "ai"
	cfg.Overrides = append(cfg.Overrides, "match_duration="+strconv.FormatFloat(*duration, 'f', -1, 64))
	base, err := cfg.Arena()
	if err != nil {
		log.Fatal(err)
	}

	var store *results.Store
	if *dbPath != "" {
		store, err = results.Open(*dbPath)
		if err != nil {
			log.WithError(err).Fatal("open results database")
		}
		defer store.Close()
	}

	lavaOptions := []float64{0.3, 0.5, 0.8}
	spawnOptions := []float64{0.5, 0.7, 0.9}
	speedOptions := []float64{1.5, 2.0, 3.0}

	var sets []paramSet
	for _, lava := range lavaOptions {
		for _, spawn := range spawnOptions {
			for _, speed := range speedOptions {
				sets = append(sets, paramSet{lavaSpeed: lava, spawnChance: spawn, playerSpeed: speed})
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets x %d seeds (%d workers, %.0fs matches)\n", len(sets), *seeds, *workers, *duration)

	jobs := make(chan job)
	out := make(chan matchResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				out <- matchResult{params: j.params, match: runMatch(base, j)}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	go func() {
		for _, params := range sets {
			for i := 0; i < *seeds; i++ {
				jobs <- job{params: params, seed: base.Seed + int64(i)}
			}
		}
		close(jobs)
	}()

	start := time.Now()
	stats := make(map[paramSet]*setStats, len(sets))
	ctx := context.Background()
	for res := range out {
		s, ok := stats[res.params]
		if !ok {
			s = &setStats{params: res.params}
			stats[res.params] = s
		}
		s.add(res.match)
		if store != nil {
			if _, err := store.Record(ctx, res.match); err != nil {
				log.WithError(err).Warn("record match")
			}
		}
	}

	all := make([]*setStats, 0, len(stats))
	for _, s := range stats {
		all = append(all, s)
	}
	// Closest matches first: the smaller the average score margin the better
	// the parameters balance the two sides.
	sort.Slice(all, func(i, j int) bool { return all[i].avgMargin() < all[j].avgMargin() })

	fmt.Printf("\nMost even parameter sets (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		s := all[i]
		fmt.Printf("%2d) margin=%.2f blue=%d red=%d draws=%d deaths/match=%.2f params=%s\n",
			i+1, s.avgMargin(), s.blue, s.red, s.draws, float64(s.deaths)/float64(s.matches), s.params)
	}

	if store != nil {
		if err := report(ctx, os.Stdout, store, *recent); err != nil {
			log.WithError(err).Fatal("summarise results")
		}
	}
}

// report prints the database totals and the most recent matches.
func report(ctx context.Context, w io.Writer, store *results.Store, recent int) error {
	sum, err := store.Summary(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nDatabase: %d matches, blue %d, red %d, draws %d, avg score %.2f/%.2f, avg deaths %.2f\n",
		sum.Matches, sum.BlueWins, sum.RedWins, sum.Draws, sum.AvgBlue, sum.AvgRed, sum.AvgDeaths)
	if recent <= 0 {
		return nil
	}
	matches, err := store.Recent(ctx, recent)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Latest %d matches:\n", len(matches))
	for _, m := range matches {
		fmt.Fprintf(w, "  seed=%d winner=%s blue=%d red=%d deaths=%d/%d lava=%.1f %s\n",
			m.Seed, m.Winner, m.BlueScore, m.RedScore, m.BlueDeaths, m.RedDeaths, m.MaxLava, m.Label)
	}
	return nil
}

func (s *setStats) add(m results.Match) {
	s.matches++
	s.deaths += m.BlueDeaths + m.RedDeaths
	s.margin += math.Abs(float64(m.BlueScore - m.RedScore))
	switch m.Winner {
	case arena.TeamBlue.String():
		s.blue++
	case arena.TeamRed.String():
		s.red++
	default:
		s.draws++
	}
}

func (s *setStats) avgMargin() float64 {
	if s.matches == 0 {
		return 0
	}
	return s.margin / float64(s.matches)
}

const tickDT = 1.0 / 60

func runMatch(base arena.Config, j job) results.Match {
	cfg := base
	cfg.Seed = j.seed
	cfg.Params.LavaSpeed = j.params.lavaSpeed
	cfg.Params.SpawnChance = j.params.spawnChance
	cfg.Params.PlayerSpeed = j.params.playerSpeed

	world := arena.NewWithConfig(cfg)
	world.SetLogger(quietLogger())
	world.Start()

	deaths := map[arena.Team]int{}
	maxLava := world.Lava()
	limit := int(math.Ceil(cfg.Params.MatchDuration/tickDT)) + 1
	if cfg.Params.MatchDuration <= 0 {
		limit = 60 * 60
	}
	for i := 0; i < limit && world.Phase() != arena.PhaseOver; i++ {
		world.Step(tickDT)
		for _, e := range world.Events() {
			if e.Kind == arena.EventStateChanged && e.To == arena.StateDying {
				deaths[e.Team]++
			}
		}
		maxLava = math.Max(maxLava, world.Lava())
	}

	snap := world.Snapshot()
	return results.Match{
		Label:      j.params.String(),
		Seed:       j.seed,
		Duration:   world.RunTime(),
		Ticks:      world.Tick(),
		BlueScore:  snap.Score("blue"),
		RedScore:   snap.Score("red"),
		BlueDeaths: deaths[arena.TeamBlue],
		RedDeaths:  deaths[arena.TeamRed],
		Winner:     world.Winner().String(),
		MaxLava:    maxLava,
	}
}

func quietLogger() *log.Logger {
	logger := log.New()
	logger.SetLevel(log.WarnLevel)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	return logger
}
