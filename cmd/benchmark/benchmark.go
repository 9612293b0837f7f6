package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/limaJavier/eventgrid/pkg/model"
)

type ResultType int

const (
	solved ResultType = iota
	unsatisfiable
	timeout
	failed
)

var resultTypes = map[ResultType]string{
	solved:        "solved",
	unsatisfiable: "unsatisfiable",
	timeout:       "timeout",
	failed:        "failed",
}

type TestMetadata struct {
	Name        string
	Satisfiable bool
	Problem     model.Problem
}

type BenchmarkResult struct {
	Test     TestMetadata
	Ceiling  uint64
	Duration time.Duration
	Stats    model.Stats
	Result   ResultType
}

// Mismatch reports a satisfiable problem left unsolved, or an unsatisfiable one that was solved
func (result BenchmarkResult) Mismatch() bool {
	return (result.Test.Satisfiable && result.Result != solved) || (!result.Test.Satisfiable && result.Result == solved)
}

// Benchmark runs every problem at every ceiling on a fixed pool of workers
type Benchmark struct {
	Workers  int
	Timeout  time.Duration
	Ceilings []uint64
	Logger   *zap.Logger
	Observer model.Observer
}

type job struct {
	index   int
	test    TestMetadata
	ceiling uint64
}

// Run returns one result per (test, ceiling) pair, ordered by test and then by ceiling
func (benchmark Benchmark) Run(tests []TestMetadata) []BenchmarkResult {
	if benchmark.Logger == nil {
		benchmark.Logger = zap.NewNop()
	}

	schedulers := lo.SliceToMap(benchmark.Ceilings, func(ceiling uint64) (uint64, model.Scheduler) {
		return ceiling, model.NewBacktrackingScheduler(model.BacktrackingConfig{
			MaxIterations: ceiling,
			Logger:        benchmark.Logger,
			Observer:      benchmark.Observer,
		})
	})

	results := make([]BenchmarkResult, len(tests)*len(benchmark.Ceilings))
	jobs := make(chan job)

	var wg sync.WaitGroup
	for range max(benchmark.Workers, 1) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for next := range jobs {
				results[next.index] = benchmark.measure(schedulers[next.ceiling], next)
			}
		}()
	}

	for i, test := range tests {
		for j, ceiling := range benchmark.Ceilings {
			jobs <- job{index: i*len(benchmark.Ceilings) + j, test: test, ceiling: ceiling}
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

func (benchmark Benchmark) measure(scheduler model.Scheduler, next job) BenchmarkResult {
	benchmark.Logger.Info("benchmarking", zap.String("test", next.test.Name), zap.Uint64("ceiling", next.ceiling))

	ctx := context.Background()
	if benchmark.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, benchmark.Timeout)
		defer cancel()
	}

	start := time.Now()
	grid, stats, err := scheduler.Build(ctx, next.test.Problem)
	duration := time.Since(start)

	result := classify(err)
	if result == solved && !scheduler.Verify(grid, next.test.Problem) {
		benchmark.Logger.Error("built grid failed verification", zap.String("test", next.test.Name))
		result = failed
	} else if result == failed {
		benchmark.Logger.Error("search failed", zap.String("test", next.test.Name), zap.Error(err))
	}

	return BenchmarkResult{
		Test:     next.test,
		Ceiling:  next.ceiling,
		Duration: duration,
		Stats:    stats,
		Result:   result,
	}
}

func classify(err error) ResultType {
	switch {
	case err == nil:
		return solved
	case errors.Is(err, context.DeadlineExceeded):
		return timeout
	case errors.Is(err, model.ErrUnsatisfiable):
		return unsatisfiable
	default:
		return failed
	}
}

// Loads every problem under the "satisfiable" and "unsatisfiable" folders of the directory
func loadTests(directory string) ([]TestMetadata, error) {
	tests := make([]TestMetadata, 0)
	for _, tuple := range lo.Zip2([]string{"satisfiable", "unsatisfiable"}, []bool{true, false}) {
		folder, satisfiable := filepath.Join(directory, tuple.A), tuple.B
		testFiles, err := os.ReadDir(folder)
		if err != nil {
			return nil, fmt.Errorf("cannot read directory: %w", err)
		}

		for _, file := range testFiles {
			if file.IsDir() {
				continue
			}
			filename := filepath.Join(folder, file.Name())
			problem, err := model.ProblemFromFile(filename)
			if err != nil {
				return nil, fmt.Errorf("cannot parse problem file %v: %w", filename, err)
			}

			tests = append(tests, TestMetadata{
				Name:        filename,
				Satisfiable: satisfiable,
				Problem:     problem,
			})
		}
	}

	return tests, nil
}

func toCsv(w io.Writer, results []BenchmarkResult) error {
	writer := csv.NewWriter(w)

	header := []string{"Test", "Satisfiable", "Events", "Constraints", "TimeSlots", "Rooms", "Ceiling", "Duration(ms)", "Iterations", "Commits", "Retractions", "Result"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	records := lo.Map(results, func(result BenchmarkResult, _ int) []string {
		return []string{
			result.Test.Name,
			fmt.Sprintf("%v", result.Test.Satisfiable),
			fmt.Sprintf("%d", len(result.Test.Problem.Events)),
			fmt.Sprintf("%d", len(result.Test.Problem.Constraints)),
			fmt.Sprintf("%d", result.Test.Problem.TimeSlots),
			fmt.Sprintf("%d", result.Test.Problem.Rooms),
			fmt.Sprintf("%d", result.Ceiling),
			fmt.Sprintf("%.3f", float64(result.Duration.Microseconds())/1000),
			fmt.Sprintf("%d", result.Stats.Iterations),
			fmt.Sprintf("%d", result.Stats.Commits),
			fmt.Sprintf("%d", result.Stats.Retractions),
			resultTypes[result.Result],
		}
	})
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("cannot write CSV records: %w", err)
	}

	return nil
}
