package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/poolkit/pool"
)

func init() {
	rootCmd.AddCommand(newStressCmd())
}

func newStressCmd() *cobra.Command {
	var (
		workers    int
		blockSize  int
		iterations int
	)

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run concurrent fixed-size alloc/free churn against a pool",
		Long: `The stress command creates a pool of exactly workers*block-size bytes and
lets every worker loop allocate/free of the same block size. With eager
coalescing every allocation must succeed, and the run ends with the pool
collapsed back to a single free block.

Example:
  poolctl stress --workers 8 --block-size 64 --iterations 100000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress(workers, blockSize, iterations)
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 8, "Number of concurrent workers")
	cmd.Flags().IntVar(&blockSize, "block-size", 64, "Bytes allocated per iteration")
	cmd.Flags().IntVar(&iterations, "iterations", 100000, "Alloc/free iterations per worker")
	return cmd
}

func runStress(workers, blockSize, iterations int) error {
	if workers <= 0 || blockSize <= 0 || iterations <= 0 {
		return fmt.Errorf("workers, block-size, and iterations must be positive")
	}

	capacity := workers * blockSize
	printVerbose("Creating pool of %d bytes (%d workers x %d bytes)\n",
		capacity, workers, blockSize)

	p, err := pool.New(capacity)
	if err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}
	defer p.Close()

	start := time.Now()
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed byte) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				ref, buf, allocErr := p.Alloc(blockSize)
				if allocErr != nil {
					errs <- fmt.Errorf("worker %d: alloc: %w", seed, allocErr)
					return
				}
				buf[0] = seed
				p.Free(ref)
			}
		}(byte(w))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		return err
	}

	elapsed := time.Since(start)
	total := workers * iterations

	if err := p.CheckInvariants(); err != nil {
		return fmt.Errorf("ledger invariants violated after run: %w", err)
	}

	printInfo("%d alloc/free pairs in %s (%.0f ops/sec)\n",
		total, elapsed.Round(time.Millisecond),
		float64(total)/elapsed.Seconds())
	printInfo("\n%s", pool.FormatStats(p.Stats()))
	return nil
}
