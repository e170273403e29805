package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/bird-optimizer/backend/internal/domain"
)

func sampleResult() domain.RunResult {
	history := make([]domain.GenerationStats, 30)
	for i := range history {
		best := -106 + 50/float64(i+1)
		history[i] = domain.GenerationStats{
			Generation: i + 1,
			Best:       best,
			Average:    best + 10,
			Worst:      best + 30,
			StdDev:     4,
		}
	}

	return domain.RunResult{
		Generations: 30,
		State:       "exhausted",
		Best:        domain.Point{X: 4.7, Y: 3.15, Fitness: -106.7},
		Population: []domain.Point{
			{X: 4.7, Y: 3.15, Fitness: -106.7},
			{X: 1, Y: 2, Fitness: 3.5},
		},
		History: history,
		Elapsed: 1500 * time.Millisecond,
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "最终种群")
	assert.Contains(t, out, "最优个体: x: 4.700000, y: 3.150000, z: -106.700000")
	assert.Contains(t, out, "迭代代数: 30")
	assert.Contains(t, out, "终止状态: exhausted")
	assert.Contains(t, out, "耗时: 1.5s")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))

	var decoded domain.RunResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, 30, decoded.Generations)
	assert.Equal(t, "exhausted", decoded.State)
	assert.False(t, decoded.Converged)
	assert.Len(t, decoded.Population, 2)
	assert.Len(t, decoded.History, 30)
}

func TestPlotConvergence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "convergence.png")

	err := PlotConvergence(sampleResult().History, PlotOptions{Path: path, TrendDegree: 3})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPlotConvergenceShortHistorySkipsTrend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.svg")

	err := PlotConvergence(sampleResult().History[:2], PlotOptions{Path: path, TrendDegree: 3})
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestPlotConvergenceErrors(t *testing.T) {
	err := PlotConvergence(nil, PlotOptions{Path: filepath.Join(t.TempDir(), "x.png")})
	assert.ErrorIs(t, err, ErrEmptyHistory)

	err = PlotConvergence(sampleResult().History, PlotOptions{})
	assert.Error(t, err)
}
