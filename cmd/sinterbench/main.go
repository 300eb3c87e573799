// main.go: concurrent load generator against the sinter interner
//
// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	flashflags "github.com/agilira/flash-flags"

	"github.com/ickk/sinter"
)

func main() {
	fs := flashflags.New("sinterbench")
	goroutines := fs.Int("goroutines", 8, "number of concurrent interning goroutines")
	perGoroutine := fs.Int("per-goroutine", 50000, "interns performed by each goroutine")
	distinct := fs.Int("distinct", 1000, "number of distinct strings cycled through per goroutine")
	metrics := fs.Bool("metrics", true, "report BasicMetrics after the run")

	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "sinterbench:", err)
		os.Exit(2)
	}

	var collector *sinter.BasicMetrics
	var opts []sinter.Option
	if *metrics {
		collector = sinter.NewBasicMetrics()
		opts = append(opts, sinter.WithMetrics(collector))
	}
	in := sinter.NewInterner(opts...)

	var total atomic.Int64
	var wg sync.WaitGroup
	wg.Add(*goroutines)

	start := time.Now()
	for g := 0; g < *goroutines; g++ {
		go func(g int) {
			defer wg.Done()
			for i := 0; i < *perGoroutine; i++ {
				s := fmt.Sprintf("sym-%d", i%*distinct)
				in.Intern(s)
				total.Add(1)
			}
		}(g)
	}
	wg.Wait()
	elapsed := time.Since(start)

	fmt.Printf("goroutines=%d per_goroutine=%d distinct=%d\n", *goroutines, *perGoroutine, *distinct)
	fmt.Printf("interned %d strings (%d unique) in %v (%.0f ops/s)\n",
		total.Load(), in.Len(), elapsed, float64(total.Load())/elapsed.Seconds())

	if collector != nil {
		snap := collector.Snapshot()
		fmt.Printf("hits=%d misses=%d hit_ratio=%.4f drains=%d grows=%d\n",
			snap.Hits, snap.Misses, snap.HitRatio(), snap.Drains, snap.Grows)
	}
}
