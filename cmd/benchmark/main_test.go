package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/limaJavier/eventgrid/internal/metrics"
	"github.com/limaJavier/eventgrid/pkg/model"
)

const problemsDirectory = "../../testdata/problems"

func TestLoadTests(t *testing.T) {
	tests, err := loadTests(problemsDirectory)

	require.NoError(t, err)
	assert.Len(t, tests, 5)
	assert.Equal(t, 3, lo.CountBy(tests, func(test TestMetadata) bool { return test.Satisfiable }))

	_, err = loadTests(t.TempDir())
	assert.Error(t, err)
}

func TestBenchmarkRun(t *testing.T) {
	//** Arrange
	tests, err := loadTests(problemsDirectory)
	require.NoError(t, err)
	benchmark := Benchmark{
		Workers:  3,
		Timeout:  10 * time.Second,
		Ceilings: []uint64{1_000, 10_000},
		Observer: metrics.NewRecorder(),
	}

	//** Act
	results := benchmark.Run(tests)

	//** Assert
	require.Len(t, results, len(tests)*2)
	for i, result := range results {
		assert.Equal(t, tests[i/2].Name, result.Test.Name)
		assert.Equal(t, benchmark.Ceilings[i%2], result.Ceiling)
		assert.False(t, result.Mismatch(), result.Test.Name)
		assert.Equal(t, lo.Ternary(result.Test.Satisfiable, solved, unsatisfiable), result.Result, result.Test.Name)
	}
}

func TestBenchmarkRunLogsEverySearch(t *testing.T) {
	//** Arrange
	core, logs := observer.New(zapcore.InfoLevel)
	problem := model.Problem{Rooms: 2, TimeSlots: 2, Events: []string{"X", "Y"}, Constraints: []model.Constraint{model.NewSequential("X", "Y")}}
	benchmark := Benchmark{Workers: 1, Ceilings: []uint64{100}, Logger: zap.New(core)}

	//** Act
	results := benchmark.Run([]TestMetadata{{Name: "sequential", Satisfiable: true, Problem: problem}})

	//** Assert
	require.Len(t, results, 1)
	assert.Equal(t, solved, results[0].Result)
	searches := logs.FilterMessage("search succeeded").All()
	require.Len(t, searches, 1)
	assert.Contains(t, searches[0].ContextMap(), "run_id")
}

func TestClassify(t *testing.T) {
	assert.Equal(t, solved, classify(nil))
	assert.Equal(t, unsatisfiable, classify(&model.UnsatisfiableError{Reason: model.ErrNoFreeCell}))
	assert.Equal(t, timeout, classify(fmt.Errorf("search interrupted: %w", context.DeadlineExceeded)))
	assert.Equal(t, failed, classify(model.ErrUnsupportedConstraintCombination))
	assert.Equal(t, failed, classify(errors.New("boom")))
}

func TestToCsv(t *testing.T) {
	//** Arrange
	results := []BenchmarkResult{{
		Test:     TestMetadata{Name: "a.json", Satisfiable: true, Problem: model.Problem{Rooms: 2, TimeSlots: 3, Events: []string{"x", "y"}}},
		Ceiling:  100,
		Duration: 1500 * time.Microsecond,
		Stats:    model.Stats{Iterations: 4, Commits: 3, Retractions: 1},
		Result:   solved,
	}}
	var buffer bytes.Buffer

	//** Act
	require.NoError(t, toCsv(&buffer, results))

	//** Assert
	records, err := csv.NewReader(&buffer).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Test", records[0][0])
	assert.Equal(t, []string{"a.json", "true", "2", "0", "3", "2", "100", "1.500", "4", "3", "1", "solved"}, records[1])
}

func TestParseCeilings(t *testing.T) {
	ceilings, err := parseCeilings("1000, 10000,1000")
	require.NoError(t, err)
	assert.Equal(t, []uint64{1000, 10000}, ceilings)

	_, err = parseCeilings("ten")
	assert.Error(t, err)

	_, err = parseCeilings("0")
	assert.Error(t, err)
}
