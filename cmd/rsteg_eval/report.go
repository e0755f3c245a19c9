package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/francoispqt/gojay"

	"github.com/allanzhao/rsteg/stego"
)

type jsonRecord struct {
	key resultKey
	agg *agg
}

func (r *jsonRecord) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("level", r.key.Level.String())
	enc.Float64Key("flip", r.key.Scenario.Flip)
	enc.IntKey("crop", r.key.Scenario.Crop)
	enc.IntKey("blocks", r.key.Scenario.Blocks)
	enc.IntKey("runs", r.agg.Runs)
	enc.IntKey("successes", r.agg.Successes)
	enc.Int64Key("enc_ms_total", r.agg.EncTotal.Milliseconds())
	enc.Int64Key("dec_ms_total", r.agg.DecTotal.Milliseconds())
	enc.Float64Key("patches_accepted", r.agg.Accepted)
	enc.Float64Key("patches_rejected", r.agg.Rejected)
	enc.Float64Key("codewords_failed", r.agg.Failed)
}

func (r *jsonRecord) IsNil() bool { return r == nil }

type jsonRecords []*jsonRecord

func (rs jsonRecords) MarshalJSONArray(enc *gojay.Encoder) {
	for _, r := range rs {
		enc.Object(r)
	}
}

func (rs jsonRecords) IsNil() bool { return rs == nil }

type jsonReport struct {
	records jsonRecords
}

func (r *jsonReport) MarshalJSONObject(enc *gojay.Encoder) {
	enc.ArrayKey("records", r.records)
}

func (r *jsonReport) IsNil() bool { return r == nil }

func writeJSON(path string, res allResults) error {
	rep := &jsonReport{records: jsonRecords{}}
	for _, k := range sortedKeys(res) {
		rep.records = append(rep.records, &jsonRecord{key: k, agg: res[k]})
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gojay.NewEncoder(f).EncodeObject(rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeMarkdown(path string, res allResults, size int) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	keys := sortedKeys(res)
	var scenarios []scenario
	seen := map[scenario]bool{}
	for _, k := range keys {
		if !seen[k.Scenario] {
			seen[k.Scenario] = true
			scenarios = append(scenarios, k.Scenario)
		}
	}
	var levels []stego.Level
	for _, k := range keys {
		if len(levels) == 0 || levels[len(levels)-1] != k.Level {
			levels = append(levels, k.Level)
		}
	}

	fmt.Fprintf(f, "# rsteg Robustness Report (%dx%d bits)\n\n", size, size)
	fmt.Fprintf(f, "Generated: %s\n\n", time.Now().Format(time.RFC3339))

	fmt.Fprintf(f, "## Success Rate (%%)\n\n")
	fmt.Fprintf(f, "| Scenario |")
	for _, l := range levels {
		fmt.Fprintf(f, " %s |", strings.ToUpper(l.String()))
	}
	fmt.Fprintf(f, "\n|---|%s\n", strings.Repeat("---:|", len(levels)))
	for _, sc := range scenarios {
		fmt.Fprintf(f, "| %s |", sc)
		for _, l := range levels {
			a := res[resultKey{Level: l, Scenario: sc}]
			if a == nil || a.Runs == 0 {
				fmt.Fprintf(f, "  |")
				continue
			}
			fmt.Fprintf(f, " %.1f |", 100*float64(a.Successes)/float64(a.Runs))
		}
		fmt.Fprintf(f, "\n")
	}

	fmt.Fprintf(f, "\n## Timing and Patch Statistics\n\n")
	fmt.Fprintf(f, "| Level | Scenario | Enc avg (ms) | Dec avg (ms) | Patches accepted/run | Rejected/run | Failed codewords |\n")
	fmt.Fprintf(f, "|---|---|---:|---:|---:|---:|---:|\n")
	for _, k := range keys {
		a := res[k]
		if a.Runs == 0 {
			continue
		}
		r := float64(a.Runs)
		fmt.Fprintf(f, "| %s | %s | %.2f | %.2f | %.1f | %.1f | %.0f |\n",
			strings.ToUpper(k.Level.String()), k.Scenario,
			float64(a.EncTotal.Microseconds())/1000/r, float64(a.DecTotal.Microseconds())/1000/r,
			a.Accepted/r, a.Rejected/r, a.Failed)
	}
	return nil
}
