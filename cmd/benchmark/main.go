package main

import (
	"flag"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/limaJavier/eventgrid/internal/config"
	"github.com/limaJavier/eventgrid/internal/logger"
	"github.com/limaJavier/eventgrid/internal/metrics"
)

func main() {
	directoryPtr := flag.String("dir", "testdata/problems", "Directory holding the \"satisfiable\" and \"unsatisfiable\" problem folders")
	outPtr := flag.String("out", "benchmark_results.csv", "Path to the CSV file the results are written to")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Number of problems searched concurrently")
	ceilingsPtr := flag.String("ceilings", "1000,10000,100000", "Comma-separated iteration ceilings every problem is run with")
	flag.Parse()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}
	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer appLogger.Sync()

	ceilings, err := parseCeilings(*ceilingsPtr)
	if err != nil {
		appLogger.Fatal("invalid ceilings", zap.Error(err))
	} else if *workersPtr <= 0 {
		appLogger.Fatal("workers must be greater than zero", zap.Int("workers", *workersPtr))
	}

	tests, err := loadTests(*directoryPtr)
	if err != nil {
		appLogger.Fatal("cannot load problems", zap.Error(err))
	}

	recorder := metrics.NewRecorder()
	benchmark := Benchmark{
		Workers:  *workersPtr,
		Timeout:  cfg.Scheduler.Timeout,
		Ceilings: ceilings,
		Logger:   appLogger,
		Observer: recorder,
	}
	results := benchmark.Run(tests)

	file, err := os.Create(*outPtr)
	if err != nil {
		appLogger.Fatal("cannot create CSV file", zap.Error(err))
	}
	defer file.Close()

	if err := toCsv(file, results); err != nil {
		appLogger.Fatal("cannot write CSV file", zap.Error(err))
	}

	if cfg.Metrics.File != "" {
		if err := recorder.WriteToTextfile(cfg.Metrics.File); err != nil {
			appLogger.Error("cannot write metrics file", zap.String("path", cfg.Metrics.File), zap.Error(err))
		}
	}

	appLogger.Info("benchmark finished",
		zap.Int("runs", len(results)),
		zap.Int("mismatches", lo.CountBy(results, func(result BenchmarkResult) bool { return result.Mismatch() })),
		zap.String("out", *outPtr),
	)
}

func parseCeilings(raw string) ([]uint64, error) {
	ceilings := make([]uint64, 0)
	for _, field := range strings.Split(raw, ",") {
		ceiling, err := strconv.ParseUint(strings.TrimSpace(field), 10, 64)
		if err != nil {
			return nil, err
		} else if ceiling == 0 {
			return nil, strconv.ErrRange
		}
		ceilings = append(ceilings, ceiling)
	}
	return lo.Uniq(ceilings), nil
}
