package domain

import "time"

type Point struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Fitness float64 `json:"fitness"`
}

// GenerationStats 记录某一代种群的适应度统计，仅用于观察，不参与算法本身
type GenerationStats struct {
	Generation int     `json:"generation"`
	Best       float64 `json:"best"`
	Average    float64 `json:"average"`
	Worst      float64 `json:"worst"`
	StdDev     float64 `json:"stdDev"`
}

type RunResult struct {
	Generations int               `json:"generations"`
	State       string            `json:"state"`
	Converged   bool              `json:"converged"`
	Best        Point             `json:"best"`
	Population  []Point           `json:"population"`
	History     []GenerationStats `json:"history,omitempty"`
	Elapsed     time.Duration     `json:"elapsed"`
}
