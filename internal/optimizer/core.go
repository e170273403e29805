package optimizer

import (
	"iter"
	"math"
	"sort"

	"github.com/sysu-ecnc-dev/bird-optimizer/backend/internal/utils"
)

const (
	DefaultMin    = -10.0
	DefaultMax    = 10.0
	GlobalMinimum = -106.764537 // Mishra's bird function 的全局最小值

	rankWeightMin = 0.0
	rankWeightMax = 100.0
)

/**
 * 计算适应度（越小越好）
 * f(x, y) = sin(x) * e^((1-cos(y))^2) + cos(y) * e^((1-sin(x))^2) + (x-y)^2
 */
func Fitness(x float64, y float64) float64 {
	return math.Sin(x)*math.Exp(math.Pow(1-math.Cos(y), 2)) +
		math.Cos(y)*math.Exp(math.Pow(1-math.Sin(x), 2)) +
		math.Pow(x-y, 2)
}

// randomIndividual 在定义域内随机生成一个个体
func (p *Population) randomIndividual() Individual {
	return NewIndividual(
		utils.Uniform(p.rng, p.params.Min, p.params.Max),
		utils.Uniform(p.rng, p.params.Min, p.params.Max),
	)
}

// RankWeights 计算线性排序选择中每个名次的权重，第 0 名（最优）权重最大
// w(i) = MIN + (MAX - MIN) * (N - i) / (N - 1)
// n <= 0 时返回 nil，n == 1 时唯一的个体取最大权重
func RankWeights(n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{rankWeightMax}
	}

	weights := make([]float64, n)
	for i := range weights {
		weights[i] = rankWeightMin + (rankWeightMax-rankWeightMin)*float64(n-i)/float64(n-1)
	}
	return weights
}

// CumulativeWeights 计算累积权重
func CumulativeWeights(weights []float64) []float64 {
	cumulative := make([]float64, len(weights))
	sum := 0.0
	for i, w := range weights {
		sum += w
		cumulative[i] = sum
	}
	return cumulative
}

/**
 * 在累积权重中找到 draw 落入的名次
 * 第 i 名对应的区间为 (cumulative[i-1], cumulative[i]]，第 0 名为 [0, cumulative[0]]
 * 因此 draw 恰好落在边界上时归入左边（名次更好）的区间
 * 超出总权重的 draw 归入最后一名，因此 N > 0 时返回值总在 [0, N-1] 内
 * cumulative 为空时没有可选的名次，返回 -1
 */
func RankIndex(cumulative []float64, draw float64) int {
	if len(cumulative) == 0 {
		return -1
	}

	idx := sort.SearchFloat64s(cumulative, draw)
	if idx >= len(cumulative) {
		idx = len(cumulative) - 1
	}
	return idx
}

// pairCount 计算每一代需要选出的父本对数 round(N/2)
func pairCount(n int) int {
	return int(math.Round(float64(n) / 2))
}

// elitePoolSize 计算精英选择的候选池大小，至少为 1
func elitePoolSize(n int, fraction float64) int {
	return max(1, min(n, int(math.Round(fraction*float64(n)))))
}

// Select 按照配置的选择策略返回本代的父本对序列
// 序列是有限且一次性的，每一代都需要重新调用 Select
func (p *Population) Select() iter.Seq2[Individual, Individual] {
	switch p.params.Selection {
	case SelectionElitist:
		return p.selectByElite()
	default:
		return p.selectByRank()
	}
}

// 线性排序选择
func (p *Population) selectByRank() iter.Seq2[Individual, Individual] {
	sorted := p.Sorted()
	cumulative := CumulativeWeights(RankWeights(len(sorted)))
	total := cumulative[len(cumulative)-1]

	return oneShot(pairCount(len(sorted)), func() (Individual, Individual) {
		a := RankIndex(cumulative, p.rng.Float64()*total)
		b := RankIndex(cumulative, p.rng.Float64()*total)
		return sorted[a], sorted[b]
	})
}

// 精英选择，在最优的 EliteFraction 个体中有放回地随机选择
func (p *Population) selectByElite() iter.Seq2[Individual, Individual] {
	sorted := p.Sorted()
	elite := sorted[:elitePoolSize(len(sorted), p.params.EliteFraction)]

	return oneShot(pairCount(len(sorted)), func() (Individual, Individual) {
		return elite[p.rng.IntN(len(elite))], elite[p.rng.IntN(len(elite))]
	})
}

// oneShot 把 next 包装成最多产生 n 对、只能遍历一次的序列
func oneShot(n int, next func() (Individual, Individual)) iter.Seq2[Individual, Individual] {
	consumed := false
	return func(yield func(Individual, Individual) bool) {
		if consumed {
			return
		}
		consumed = true

		for range n {
			if !yield(next()) {
				return
			}
		}
	}
}

// Crossover 按照配置的交叉策略由两个父本产生两个子代，子代的适应度未计算
func (p *Population) Crossover(pa Individual, pb Individual) (Individual, Individual) {
	switch p.params.Crossover {
	case CrossoverDiscrete:
		return p.discreteCrossover(pa, pb)
	default:
		return p.arithmeticCrossover(pa, pb)
	}
}

/**
 * 算术交叉
 * 以 1 - CrossoverRate 的概率直接复制父本
 * 否则取 t ~ U(0, 1)，child_a = t*pa + (1-t)*pb，child_b = (1-t)*pa + t*pb
 */
func (p *Population) arithmeticCrossover(pa Individual, pb Individual) (Individual, Individual) {
	if p.rng.Float64() >= p.params.CrossoverRate {
		return NewIndividual(pa.X, pa.Y), NewIndividual(pb.X, pb.Y)
	}

	t := p.rng.Float64()

	return NewIndividual(t*pa.X+(1-t)*pb.X, t*pa.Y+(1-t)*pb.Y),
		NewIndividual((1-t)*pa.X+t*pb.X, (1-t)*pa.Y+t*pb.Y)
}

// 离散重组，每个子代的每个坐标都独立地从两个父本中随机取一个
func (p *Population) discreteCrossover(pa Individual, pb Individual) (Individual, Individual) {
	pick := func(a float64, b float64) float64 {
		if p.rng.IntN(2) == 0 {
			return a
		}
		return b
	}

	return NewIndividual(pick(pa.X, pb.X), pick(pa.Y, pb.Y)),
		NewIndividual(pick(pa.X, pb.X), pick(pa.Y, pb.Y))
}

// Mutate 对每个坐标以 MutationRate 的概率加上 U(-MutationRange, MutationRange) 的偏移
func (p *Population) Mutate(idv Individual) Individual {
	x, y := idv.X, idv.Y

	if p.rng.Float64() < p.params.MutationRate {
		x += utils.Uniform(p.rng, -p.params.MutationRange, p.params.MutationRange)
	}
	if p.rng.Float64() < p.params.MutationRate {
		y += utils.Uniform(p.rng, -p.params.MutationRange, p.params.MutationRange)
	}

	if p.params.ClampToBounds {
		x = clamp(x, p.params.Min, p.params.Max)
		y = clamp(y, p.params.Min, p.params.Max)
	}

	return NewIndividual(x, y)
}
