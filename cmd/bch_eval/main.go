package main

import (
	"flag"
	"fmt"
	mrand "math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/francoispqt/gojay"

	"github.com/litebch/litebch-go/bch"
	"github.com/litebch/litebch-go/internal/noise"
)

type config struct {
	N int
	T int
}

type resultKey struct {
	N      int
	T      int
	Weight int
}

type agg struct {
	Runs      int
	Successes int
	Corrected int
	EncTotal  time.Duration
	DecTotal  time.Duration
	Bytes     int64
}

type allResults map[resultKey]*agg

type jsonRecord struct {
	N         int     `json:"N"`
	K         int     `json:"K"`
	T         int     `json:"t"`
	Weight    int     `json:"weight"`
	Runs      int     `json:"runs"`
	Successes int     `json:"successes"`
	Corrected int     `json:"corrected_bits"`
	EncUS     int64   `json:"enc_us_total"`
	DecUS     int64   `json:"dec_us_total"`
	DecMBps   float64 `json:"dec_mb_per_s"`
}

func (r *jsonRecord) MarshalJSONObject(enc *gojay.Encoder) {
	enc.IntKey("N", r.N)
	enc.IntKey("K", r.K)
	enc.IntKey("t", r.T)
	enc.IntKey("weight", r.Weight)
	enc.IntKey("runs", r.Runs)
	enc.IntKey("successes", r.Successes)
	enc.IntKey("corrected_bits", r.Corrected)
	enc.Int64Key("enc_us_total", r.EncUS)
	enc.Int64Key("dec_us_total", r.DecUS)
	enc.Float64Key("dec_mb_per_s", r.DecMBps)
}

func (r *jsonRecord) IsNil() bool { return r == nil }

func parseConfigs(s string) ([]config, error) {
	parts := strings.Split(s, ";")
	out := make([]config, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		var n, t int
		if _, err := fmt.Sscanf(p, "%d,%d", &n, &t); err != nil {
			return nil, fmt.Errorf("bad config %q: %w", p, err)
		}
		out = append(out, config{N: n, T: t})
	}
	return out, nil
}

func parseWeights(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		var w int
		if _, err := fmt.Sscanf(p, "%d", &w); err != nil {
			return nil, fmt.Errorf("bad weight %q: %w", p, err)
		}
		out = append(out, w)
	}
	return out, nil
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func main() {
	var (
		runs    = flag.Int("runs", 10000, "runs per (config,weight)")
		cfgStr  = flag.String("configs", "63,3;255,8;511,10;1023,24", "semicolon-separated list of N,t pairs")
		wStr    = flag.String("weights", "1,2,4,8,16,32", "comma-separated error weights; weights above t probe overrun behavior")
		ber     = flag.Float64("ber", 0, "if >0, draw weights from a BSC with this bit error rate instead of the fixed list")
		outPath = flag.String("out", "docs/reports/bch_eval_report.md", "output markdown report path")
		seed    = flag.Int64("seed", 42, "random seed")
	)
	flag.Parse()

	cfgs, err := parseConfigs(*cfgStr)
	if err != nil {
		fatalf("%v", err)
	}
	weights, err := parseWeights(*wStr)
	if err != nil {
		fatalf("%v", err)
	}

	rng := mrand.New(mrand.NewSource(*seed))
	results := make(allResults)
	realizedK := map[config]int{}

	for _, cfg := range cfgs {
		c, err := bch.New(cfg.N, cfg.T)
		if err != nil {
			fatalf("codec N=%d t=%d: %v", cfg.N, cfg.T, err)
		}
		realizedK[cfg] = c.K()
		var bsc *noise.BSC
		if *ber > 0 {
			bsc = noise.NewBSC(*ber, rng)
		}

		for _, w := range weights {
			if w > c.N() {
				continue
			}
			key := resultKey{N: cfg.N, T: cfg.T, Weight: w}
			a := &agg{Runs: *runs}
			results[key] = a

			data := make([]byte, c.DataBytes())
			ecc := make([]byte, c.ECCBytes())
			rx := make([]byte, c.DataBytes())
			rxEcc := make([]byte, c.ECCBytes())

			for run := 0; run < *runs; run++ {
				rng.Read(data)
				maskMessagePadding(data, c.K())

				encStart := time.Now()
				if err := c.EncodeBytes(data, ecc); err != nil {
					fatalf("encode: %v", err)
				}
				a.EncTotal += time.Since(encStart)

				copy(rx, data)
				copy(rxEcc, ecc)
				if bsc != nil {
					bsc.CorruptBytes(rx)
					bsc.CorruptBytes(rxEcc)
					maskMessagePadding(rx, c.K())
					maskParityPadding(rxEcc, c.N()-c.K())
				} else {
					for _, pos := range noise.Pattern(rng, c.N(), w) {
						flipCodewordBit(c, rx, rxEcc, pos)
					}
				}

				decStart := time.Now()
				n, err := c.DecodeBytes(rx, rxEcc)
				a.DecTotal += time.Since(decStart)
				a.Bytes += int64(c.DataBytes())
				if err == nil {
					a.Successes++
					a.Corrected += n
				}
			}
		}
	}

	if err := ensureDir(*outPath); err != nil {
		fatalf("%v", err)
	}
	ts := time.Now().Format("20060102_150405")
	jsonlPath := strings.TrimSuffix(*outPath, ".md") + "_" + ts + ".jsonl"
	mdPath := strings.TrimSuffix(*outPath, ".md") + "_" + ts + ".md"

	if err := writeJSONL(jsonlPath, results, realizedK); err != nil {
		fatalf("write jsonl: %v", err)
	}
	if err := writeMarkdown(mdPath, results, realizedK); err != nil {
		fatalf("write md: %v", err)
	}
	fmt.Printf("Report written: %s\nJSONL: %s\n", mdPath, jsonlPath)
}

// maskMessagePadding clears the unused low bits of the last data byte.
func maskMessagePadding(data []byte, k int) {
	if k%8 != 0 {
		data[len(data)-1] &= ^byte(1<<uint(8-k%8) - 1)
	}
}

// maskParityPadding clears the unused high bits of the last parity byte.
func maskParityPadding(ecc []byte, r int) {
	if r%8 != 0 {
		ecc[len(ecc)-1] &= byte(1<<uint(r%8) - 1)
	}
}

// flipCodewordBit flips codeword position pos in the split byte buffers.
func flipCodewordBit(c *bch.Codec, data, ecc []byte, pos int) {
	r := c.N() - c.K()
	if pos >= r {
		sp := c.K() - 1 - (pos - r)
		data[sp/8] ^= 1 << uint(7-sp%8)
	} else {
		ecc[pos/8] ^= 1 << uint(pos%8)
	}
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
		if keys[i].N != keys[j].N {
			return keys[i].N < keys[j].N
		}
		if keys[i].T != keys[j].T {
			return keys[i].T < keys[j].T
		}
		return keys[i].Weight < keys[j].Weight
	})
	return keys
}

func record(k resultKey, a *agg, realizedK map[config]int) *jsonRecord {
	mbps := 0.0
	if a.DecTotal > 0 {
		mbps = float64(a.Bytes) / 1e6 / a.DecTotal.Seconds()
	}
	return &jsonRecord{
		N:         k.N,
		K:         realizedK[config{N: k.N, T: k.T}],
		T:         k.T,
		Weight:    k.Weight,
		Runs:      a.Runs,
		Successes: a.Successes,
		Corrected: a.Corrected,
		EncUS:     a.EncTotal.Microseconds(),
		DecUS:     a.DecTotal.Microseconds(),
		DecMBps:   mbps,
	}
}

// writeJSONL streams one record per line.
func writeJSONL(path string, res allResults, realizedK map[config]int) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := gojay.NewEncoder(f)
	for _, k := range sortedKeys(res) {
		if err := enc.EncodeObject(record(k, res[k], realizedK)); err != nil {
			return err
		}
		if _, err := f.WriteString("\n"); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdown(path string, res allResults, realizedK map[config]int) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "# BCH Evaluation Report\n\n")
	fmt.Fprintf(f, "Generated: %s\n\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(f, "| N | K | t | weight | runs | success %% | corrected bits | enc total (ms) | dec total (ms) | dec MB/s |\n")
	fmt.Fprintf(f, "|---|---|---|---|---|---:|---:|---:|---:|---:|\n")
	for _, k := range sortedKeys(res) {
		r := record(k, res[k], realizedK)
		sr := 0.0
		if r.Runs > 0 {
			sr = 100.0 * float64(r.Successes) / float64(r.Runs)
		}
		fmt.Fprintf(f, "| %d | %d | %d | %d | %d | %.2f | %d | %d | %d | %.2f |\n",
			r.N, r.K, r.T, r.Weight, r.Runs, sr, r.Corrected, r.EncUS/1000, r.DecUS/1000, r.DecMBps)
	}
	fmt.Fprintf(f, "\n---\n\nNotes:\n\n- Weights at or below t must succeed every run; weights above t probe the bounded-distance failure region.\n- Decode throughput counts message bytes only.\n")
	return nil
}
