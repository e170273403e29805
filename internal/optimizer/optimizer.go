package optimizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/sysu-ecnc-dev/bird-optimizer/backend/internal/domain"
	"github.com/sysu-ecnc-dev/bird-optimizer/backend/internal/utils"
)

var ErrInvalidParameters = errors.New("遗传算法参数不合法")

type Population struct {
	params      Parameters // 构造时复制一份，之后不受调用方修改影响
	logger      *slog.Logger
	rng         *rand.Rand
	individuals []Individual
	history     []domain.GenerationStats
	generation  int
	state       State
	elapsed     time.Duration
}

// New 校验参数并随机生成初始种群，logger 为 nil 时使用 slog.Default()
func New(parameters *Parameters, logger *slog.Logger) (*Population, error) {
	if parameters == nil {
		return nil, fmt.Errorf("%w: 参数不能为空", ErrInvalidParameters)
	}
	if err := utils.ValidateStruct(parameters); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidParameters, err.Error())
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Population{
		params:     *parameters,
		logger:     logger,
		rng:        utils.NewRand(parameters.Seed),
		generation: 1,
		state:      StateRunning,
	}
	if p.params.TrackHistory {
		p.history = make([]domain.GenerationStats, 0, min(p.params.MaxGenerations, 4096))
	}

	// 生成初始种群
	p.individuals = make([]Individual, p.params.PopulationSize)
	for i := range p.individuals {
		p.individuals[i] = p.randomIndividual()
	}

	return p, nil
}

// AssessFitness 计算当前种群中每个个体的适应度
func (p *Population) AssessFitness() {
	for i := range p.individuals {
		p.individuals[i].Assess()
	}
}

/**
 * Run 迭代直到找到全局最小值或达到最大迭代次数，返回终止时的代数
 * 每一代：计算适应度 -> 记录统计 -> 判断是否收敛 -> 选择、交叉、变异产生新一代 -> 整体替换
 * 达到最大迭代次数后还会再计算一次适应度，方便调用方查看最终种群
 * ctx 被取消时在两代之间退出并返回 ctx.Err()
 */
func (p *Population) Run(ctx context.Context) (int, error) {
	if p.state != StateRunning {
		return p.generation, nil
	}

	start := time.Now()
	defer func() {
		p.elapsed += time.Since(start)
	}()

	for p.generation < p.params.MaxGenerations {
		if err := ctx.Err(); err != nil {
			return p.generation, err
		}

		p.AssessFitness()
		p.record()

		best, _ := p.Best()
		p.logger.Debug("完成一代迭代", "generation", p.generation, "best", best.Fitness, "x", best.X, "y", best.Y)

		if p.converged(best.Fitness) {
			p.state = StateConverged
			p.logger.Info("已找到全局最小值", "generation", p.generation, "fitness", best.Fitness, "x", best.X, "y", best.Y)
			return p.generation, nil
		}

		p.breed()
		p.generation++
	}

	p.AssessFitness()
	p.record()

	best, _ := p.Best()
	if p.converged(best.Fitness) {
		p.state = StateConverged
		p.logger.Info("已找到全局最小值", "generation", p.generation, "fitness", best.Fitness, "x", best.X, "y", best.Y)
	} else {
		p.state = StateExhausted
		p.logger.Info("达到最大迭代次数", "generation", p.generation, "fitness", best.Fitness, "x", best.X, "y", best.Y)
	}

	return p.generation, nil
}

// breed 由当前种群产生新一代并整体替换，新一代的大小与当前种群相同
func (p *Population) breed() {
	size := len(p.individuals)
	next := make([]Individual, 0, size+1)

	for pa, pb := range p.Select() {
		childA, childB := p.Crossover(pa, pb)
		next = append(next, p.Mutate(childA), p.Mutate(childB))
	}

	// 种群大小为奇数时 round(N/2) 对父本会多产生一个子代
	p.individuals = next[:size]
}

func (p *Population) converged(fitness float64) bool {
	switch p.params.Convergence {
	case ConvergenceRounded:
		return math.Round(fitness) == math.Round(p.params.GlobalMinimum)
	default:
		return fitness == p.params.GlobalMinimum
	}
}

func (p *Population) record() {
	if !p.params.TrackHistory {
		return
	}
	p.history = append(p.history, generationStats(p.generation, p.individuals))
}

// Sorted 返回按当前适应度升序排列的种群副本，不会计算适应度
// 调用方需要先调用 AssessFitness，否则未计算的个体按 0 参与排序
func (p *Population) Sorted() []Individual {
	return sortByFitness(p.individuals)
}

// Assessed 报告当前种群是否每个个体都已经计算过适应度
func (p *Population) Assessed() bool {
	for _, idv := range p.individuals {
		if !idv.Assessed {
			return false
		}
	}
	return len(p.individuals) > 0
}

// Best 返回适应度最小的个体，种群尚未计算适应度时第二个返回值为 false
func (p *Population) Best() (Individual, bool) {
	if !p.Assessed() {
		return Individual{}, false
	}
	return p.Sorted()[0], true
}

func (p *Population) Worst() (Individual, bool) {
	if !p.Assessed() {
		return Individual{}, false
	}
	sorted := p.Sorted()
	return sorted[len(sorted)-1], true
}

func (p *Population) Average() (float64, bool) {
	if !p.Assessed() {
		return 0, false
	}
	return generationStats(p.generation, p.individuals).Average, true
}

// Individuals 返回当前种群的副本
func (p *Population) Individuals() []Individual {
	return append([]Individual(nil), p.individuals...)
}

func (p *Population) History() []domain.GenerationStats {
	return append([]domain.GenerationStats(nil), p.history...)
}

func (p *Population) Parameters() Parameters {
	return p.params
}

func (p *Population) Generation() int {
	return p.generation
}

func (p *Population) State() State {
	return p.state
}

// Result 汇总本次运行的结果，供报告和绘图使用
// 种群尚未计算适应度时 Best 为零值
func (p *Population) Result() domain.RunResult {
	population := make([]domain.Point, len(p.individuals))
	for i, idv := range p.individuals {
		population[i] = toPoint(idv)
	}

	res := domain.RunResult{
		Generations: p.generation,
		State:       p.state.String(),
		Converged:   p.state == StateConverged,
		Population:  population,
		History:     p.History(),
		Elapsed:     p.elapsed,
	}
	if best, ok := p.Best(); ok {
		res.Best = toPoint(best)
	}
	return res
}
