package optimizer

import (
	"cmp"
	"slices"

	"github.com/sysu-ecnc-dev/bird-optimizer/backend/internal/domain"
	"gonum.org/v1/gonum/stat"
)

func clamp(v float64, lo float64, hi float64) float64 {
	return max(lo, min(hi, v))
}

// sortByFitness 返回按适应度升序排列的副本，适应度相同的个体保持原有顺序
func sortByFitness(individuals []Individual) []Individual {
	sorted := slices.Clone(individuals)
	slices.SortStableFunc(sorted, func(a, b Individual) int {
		return cmp.Compare(a.Fitness, b.Fitness)
	})
	return sorted
}

func generationStats(generation int, individuals []Individual) domain.GenerationStats {
	fitness := make([]float64, len(individuals))
	for i, idv := range individuals {
		fitness[i] = idv.Fitness
	}

	return domain.GenerationStats{
		Generation: generation,
		Best:       slices.Min(fitness),
		Average:    stat.Mean(fitness, nil),
		Worst:      slices.Max(fitness),
		StdDev:     stat.StdDev(fitness, nil),
	}
}

func toPoint(idv Individual) domain.Point {
	return domain.Point{
		X:       idv.X,
		Y:       idv.Y,
		Fitness: idv.Fitness,
	}
}
