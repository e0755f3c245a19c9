// Command rsteg_eval measures how often payloads survive bit flips, crops and
// block damage at each error correction level, and writes markdown and JSON
// reports.
package main

import (
	"bytes"
	"flag"
	"fmt"
	mrand "math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/allanzhao/rsteg/bitfield"
	"github.com/allanzhao/rsteg/internal/damage"
	"github.com/allanzhao/rsteg/stego"
)

type scenario struct {
	Flip   float64 // per-bit flip probability
	Crop   int     // bits removed from the top and left edges
	Blocks int     // random 8x8 blocks overwritten
}

func (s scenario) String() string {
	return fmt.Sprintf("flip=%g crop=%d blocks=%d", s.Flip, s.Crop, s.Blocks)
}

type resultKey struct {
	Level    stego.Level
	Scenario scenario
}

type agg struct {
	Runs      int
	Successes int
	EncTotal  time.Duration
	DecTotal  time.Duration
	Accepted  float64
	Rejected  float64
	Failed    float64 // codewords beyond repair
}

type allResults map[resultKey]*agg

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		var f float64
		if _, err := fmt.Sscanf(p, "%g", &f); err != nil {
			return nil, fmt.Errorf("bad value %q: %w", p, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func parseInts(s string) ([]int, error) {
	fs, err := parseFloats(s)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(fs))
	for i, f := range fs {
		out[i] = int(f)
	}
	return out, nil
}

func parseLevels(s string) ([]stego.Level, error) {
	if s == "all" {
		return []stego.Level{stego.LevelLow, stego.LevelMedium, stego.LevelHigh, stego.LevelVeryHigh}, nil
	}
	var out []stego.Level
	for _, p := range strings.Split(s, ",") {
		l, err := stego.ParseLevel(p)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func main() {
	var (
		runs      = flag.Int("runs", 20, "runs per (level, scenario)")
		size      = flag.Int("size", 512, "bitfield width and height in bits")
		payloadSz = flag.Int("payload", 512, "payload bytes (capped at the level's capacity)")
		levelStr  = flag.String("levels", "all", "comma-separated levels, or all")
		flipStr   = flag.String("flips", "0,0.001,0.003,0.01", "comma-separated bit flip probabilities")
		cropStr   = flag.String("crops", "0,7,15", "comma-separated top/left crops in bits")
		blockStr  = flag.String("blocks", "0,8", "comma-separated counts of 8x8 damaged blocks")
		outPath   = flag.String("out", "docs/reports/rsteg_eval_report.md", "output markdown report path")
		seed      = flag.Int64("seed", 42, "random seed")
		workers   = flag.Int("workers", 0, "concurrent codeword decodes (0 = numCPU)")
		verbose   = flag.Bool("v", false, "log every failed run")
	)
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	levels, err := parseLevels(*levelStr)
	if err != nil {
		fatalf("%v", err)
	}
	flips, err := parseFloats(*flipStr)
	if err != nil {
		fatalf("%v", err)
	}
	crops, err := parseInts(*cropStr)
	if err != nil {
		fatalf("%v", err)
	}
	blocks, err := parseInts(*blockStr)
	if err != nil {
		fatalf("%v", err)
	}

	var scenarios []scenario
	for _, f := range flips {
		if f < 0 || f >= 1 {
			fatalf("invalid flip probability %g", f)
		}
		for _, c := range crops {
			if c < 0 || 2*c >= *size {
				fatalf("invalid crop %d", c)
			}
			for _, b := range blocks {
				scenarios = append(scenarios, scenario{Flip: f, Crop: c, Blocks: b})
			}
		}
	}

	rng := mrand.New(mrand.NewSource(*seed))
	results := make(allResults)
	for _, level := range levels {
		n := min(*payloadSz, stego.Capacity(*size, *size, level))
		if n <= 0 {
			fatalf("level %v: a %dx%d bitfield holds nothing", level, *size, *size)
		}
		for _, sc := range scenarios {
			reg := prometheus.NewRegistry()
			opts := stego.Options{Level: level, Logger: log, Metrics: stego.NewMetrics(reg), Workers: *workers}
			enc, err := stego.NewEncoder(opts)
			if err != nil {
				fatalf("encoder: %v", err)
			}
			dec := stego.NewDecoder(opts)

			a := &agg{Runs: *runs}
			results[resultKey{Level: level, Scenario: sc}] = a
			for run := 0; run < *runs; run++ {
				payload := make([]byte, n)
				rng.Read(payload)

				bf := bitfield.New(*size, *size)
				encStart := time.Now()
				if err := enc.Encode(bf, payload); err != nil {
					fatalf("encode: %v", err)
				}
				a.EncTotal += time.Since(encStart)

				damage.FlipBits(bf, sc.Flip, rng)
				damage.Blocks(bf, sc.Blocks, 8, rng)
				bf = damage.Crop(bf, sc.Crop, 0, sc.Crop, 0)

				decStart := time.Now()
				got, err := dec.Decode(bf)
				a.DecTotal += time.Since(decStart)
				if err == nil && bytes.Equal(got, payload) {
					a.Successes++
					continue
				}
				log.WithFields(logrus.Fields{"level": level, "scenario": sc, "run": run}).WithError(err).Debug("run failed")
			}
			if err := a.collect(reg); err != nil {
				fatalf("gather metrics: %v", err)
			}
			fmt.Fprintf(os.Stderr, "%-9s %-32s %d/%d\n", level, sc, a.Successes, a.Runs)
		}
	}

	if err := ensureDir(*outPath); err != nil {
		fatalf("%v", err)
	}
	ts := time.Now().Format("20060102_150405")
	jsonPath := strings.TrimSuffix(*outPath, ".md") + "_" + ts + ".json"
	mdPath := strings.TrimSuffix(*outPath, ".md") + "_" + ts + ".md"
	if err := writeJSON(jsonPath, results); err != nil {
		fatalf("write json: %v", err)
	}
	if err := writeMarkdown(mdPath, results, *size); err != nil {
		fatalf("write md: %v", err)
	}
	fmt.Printf("Report written: %s\nJSON: %s\n", mdPath, jsonPath)
}

// collect adds up the codec counters gathered from reg.
func (a *agg) collect(reg *prometheus.Registry) error {
	mfs, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		var dst *float64
		switch mf.GetName() {
		case "rsteg_patches_accepted_total":
			dst = &a.Accepted
		case "rsteg_patches_rejected_total":
			dst = &a.Rejected
		case "rsteg_codewords_failed_total":
			dst = &a.Failed
		default:
			continue
		}
		for _, m := range mf.GetMetric() {
			*dst += m.GetCounter().GetValue()
		}
	}
	return nil
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func sortedKeys(res allResults) []resultKey {
	keys := make([]resultKey, 0, len(res))
	for k := range res {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		if a.Scenario.Flip != b.Scenario.Flip {
			return a.Scenario.Flip < b.Scenario.Flip
		}
		if a.Scenario.Crop != b.Scenario.Crop {
			return a.Scenario.Crop < b.Scenario.Crop
		}
		return a.Scenario.Blocks < b.Scenario.Blocks
	})
	return keys
}
