package main

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cobra"

	"github.com/bitfsorg/fsdb-go/digest"
	"github.com/bitfsorg/fsdb-go/storage"
)

const (
	benchKeyPrefix   = "testkey"
	benchValuePrefix = "testvalue"
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure store, retrieve and delete throughput",
		Long: `bench stores n generated key-value pairs, reads them back and deletes
them with and without directory cleanup, printing operations per second for
each phase. Keys are distinct per operation, so parallel workers never touch
the same key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, _ := cmd.Flags().GetInt("n")
			workers, _ := cmd.Flags().GetInt("workers")
			if n < 1 {
				return fmt.Errorf("n must be positive, got %d", n)
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = e.Close() }()

			results, err := runBench(e.store, e.cfg.Hash, n, workers)
			if err != nil {
				return err
			}
			printResults(cmd, results)
			return nil
		},
	}
	cmd.Flags().Int("n", 10000, "number of keys per phase")
	cmd.Flags().Int("workers", 1, "number of concurrent workers")
	return cmd
}

type benchResult struct {
	phase   string
	ops     int
	elapsed time.Duration
}

func (r benchResult) opsPerSec() float64 {
	if r.elapsed <= 0 {
		return 0
	}
	return float64(r.ops) / r.elapsed.Seconds()
}

func benchKey(i int) string   { return benchKeyPrefix + strconv.Itoa(i) }
func benchValue(i int) []byte { return []byte(benchValuePrefix + strconv.Itoa(i)) }

// runBench runs the benchmark phases against s. hashName only labels the
// hash baseline; the store's own hash function is what the other phases use.
func runBench(s *storage.Store, hashName string, n, workers int) ([]benchResult, error) {
	hash, err := digest.Lookup(hashName)
	if err != nil {
		hash = digest.MD5
		hashName = "md5"
	}

	put := func(i int) error { return s.Put(benchKey(i), benchValue(i)) }
	phases := []struct {
		name string
		fn   func(i int) error
	}{
		{hashName, func(i int) error { hash(benchKey(i)); return nil }},
		{"store", put},
		{"retrieve", func(i int) error { s.Retrieve(benchKey(i)); return nil }},
		{"delete (cleanup)", func(i int) error { return s.Delete(benchKey(i), true) }},
		{"store (prepare)", put},
		{"delete (no cleanup)", func(i int) error { return s.Delete(benchKey(i), false) }},
		{"retrieve (missing)", func(i int) error { s.Retrieve(benchKey(i)); return nil }},
	}

	results := make([]benchResult, 0, len(phases))
	for _, p := range phases {
		elapsed, err := runPhase(n, workers, p.fn)
		if err != nil {
			return nil, fmt.Errorf("bench %s: %w", p.name, err)
		}
		results = append(results, benchResult{phase: p.name, ops: n, elapsed: elapsed})
	}
	return results, nil
}

// runPhase calls fn for 0..n-1, on a pool of workers when workers > 1, and
// returns the wall time taken and the first error.
func runPhase(n, workers int, fn func(i int) error) (time.Duration, error) {
	start := time.Now()
	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return 0, err
			}
		}
		return time.Since(start), nil
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			if err := fn(i); err != nil {
				errOnce.Do(func() { firstErr = err })
			}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return 0, fmt.Errorf("submit job: %w", err)
		}
	}
	wg.Wait()
	if firstErr != nil {
		return 0, firstErr
	}
	return time.Since(start), nil
}

func printResults(cmd *cobra.Command, results []benchResult) {
	out := tablewriter.NewWriter(cmd.OutOrStdout())
	out.SetHeader([]string{"Phase", "Ops", "Duration", "Ops/sec"})
	out.SetAutoWrapText(false)

	for _, r := range results {
		out.Append([]string{
			r.phase,
			strconv.Itoa(r.ops),
			r.elapsed.Round(time.Microsecond).String(),
			strconv.FormatFloat(r.opsPerSec(), 'f', 0, 64),
		})
	}

	out.Render()
}
