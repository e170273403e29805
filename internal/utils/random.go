package utils

import "math/rand/v2"

// NewRand 创建随机数生成器，seed 为 0 时使用随机种子
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Uniform 返回 [lo, hi) 上均匀分布的随机数
func Uniform(rng *rand.Rand, lo float64, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
