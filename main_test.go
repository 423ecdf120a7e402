package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// simulateDataDir writes the default poisson and bose traces, shortened.
func simulateDataDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for _, model := range defaultMeasurements {
		conf := defaultSimConfig()
		conf.DataDir = dir
		conf.Model = model
		conf.Samples = 200000
		require.NoError(t, simulate(conf, filepath.Join(dir, model+"."+conf.Format)))
	}

	return dir
}

func outputFile(t *testing.T, outDir, name string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(outDir, "*", "*", name))
	require.NoError(t, err)
	require.Len(t, matches, 1, name)
	return matches[0]
}

func TestRunAnalysisDefaults(t *testing.T) {

	conf := defaultConfig()
	conf.DataDir = simulateDataDir(t)
	conf.OutDir = t.TempDir()
	conf.Windows = []int{1000, 2000}

	require.NoError(t, runAnalysis(conf, nil))

	assertNonEmptyFile(t, outputFile(t, conf.OutDir, "POISSON.png"))
	assertNonEmptyFile(t, outputFile(t, conf.OutDir, "BOSE.png"))
}

func TestRunAnalysisAllOutputs(t *testing.T) {

	conf := defaultConfig()
	conf.DataDir = simulateDataDir(t)
	conf.OutDir = t.TempDir()
	conf.Note = "all outputs"
	conf.Windows = []int{1000, 2000}
	conf.Formats = []string{"svg"}
	conf.Summary = true
	conf.GIF = true

	require.NoError(t, runAnalysis(conf, []string{"poisson"}))

	for _, name := range []string{
		"POISSON.svg",
		"POISSON counts.svg",
		"POISSON peak heights.svg",
		"POISSON.gif",
	} {
		path := outputFile(t, conf.OutDir, name)
		assert.Contains(t, filepath.Base(filepath.Dir(path)), ": all outputs")
		assertNonEmptyFile(t, path)
	}
}

func TestRunAnalysisMissingMeasurement(t *testing.T) {

	conf := defaultConfig()
	conf.DataDir = t.TempDir()
	conf.OutDir = t.TempDir()

	assert.Error(t, runAnalysis(conf, []string{"laser"}))
}
