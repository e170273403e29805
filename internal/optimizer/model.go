package optimizer

// Individual: 一个候选解 (x, y)
// 创建后坐标不再修改，Fitness 只有在 Assessed 为 true 时才有意义
type Individual struct {
	X        float64
	Y        float64
	Fitness  float64
	Assessed bool
}

func NewIndividual(x float64, y float64) Individual {
	return Individual{X: x, Y: y}
}

// Assess 计算并保存适应度，之后修改坐标不会自动重新计算
func (idv *Individual) Assess() {
	idv.Fitness = Fitness(idv.X, idv.Y)
	idv.Assessed = true
}

type SelectionStrategy string

const (
	SelectionRank    SelectionStrategy = "rank"    // 线性排序选择
	SelectionElitist SelectionStrategy = "elitist" // 在最优的一部分个体中随机选择
)

type CrossoverStrategy string

const (
	CrossoverArithmetic CrossoverStrategy = "arithmetic" // 算术交叉
	CrossoverDiscrete   CrossoverStrategy = "discrete"   // 离散（均匀）重组
)

type ConvergenceMode string

const (
	ConvergenceExact   ConvergenceMode = "exact"   // 最优适应度与全局最小值完全相等
	ConvergenceRounded ConvergenceMode = "rounded" // 两者四舍五入到同一个整数
)

// 遗传算法参数
type Parameters struct {
	MaxGenerations int               `validate:"min=1"` // 最大迭代次数
	PopulationSize int               `validate:"min=2"` // 种群大小，排序选择需要除以 N-1
	Min            float64           // 定义域下界
	Max            float64           `validate:"gtfield=Min"` // 定义域上界
	GlobalMinimum  float64           // 已知的全局最小值，仅用于判断是否收敛
	Selection      SelectionStrategy `validate:"oneof=rank elitist"`        // 选择策略
	Crossover      CrossoverStrategy `validate:"oneof=arithmetic discrete"` // 交叉策略
	CrossoverRate  float64           `validate:"min=0,max=1"`               // 算术交叉真正发生重组的概率
	MutationRate   float64           `validate:"min=0,max=1"`               // 每个坐标的变异概率
	MutationRange  float64           `validate:"min=0"`                     // 变异偏移量取自 U(-MutationRange, MutationRange)
	EliteFraction  float64           `validate:"gt=0,max=1"`                // 精英选择时候选池占种群的比例
	ClampToBounds  bool              // 变异后是否把坐标截断回定义域
	Convergence    ConvergenceMode   `validate:"oneof=exact rounded"`
	TrackHistory   bool              // 是否记录每一代的统计信息
	Seed           uint64            // 随机种子，0 表示随机
}

// DefaultParameters 返回默认参数，只需要指定最大迭代次数和种群大小
func DefaultParameters(maxGenerations int, populationSize int) *Parameters {
	return &Parameters{
		MaxGenerations: maxGenerations,
		PopulationSize: populationSize,
		Min:            DefaultMin,
		Max:            DefaultMax,
		GlobalMinimum:  GlobalMinimum,
		Selection:      SelectionRank,
		Crossover:      CrossoverArithmetic,
		CrossoverRate:  0.3,
		MutationRate:   0.05,
		MutationRange:  1,
		EliteFraction:  0.3,
		ClampToBounds:  true,
		Convergence:    ConvergenceExact,
		TrackHistory:   true,
	}
}

// State: 迭代过程所处的状态
type State int

const (
	StateRunning State = iota
	StateConverged
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateConverged:
		return "converged"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}
