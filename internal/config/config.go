package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Log         struct {
		Level  string `env:"LEVEL" envDefault:"info"`
		Format string `env:"FORMAT"` // text 或 json，为空时由 Environment 决定
	} `envPrefix:"LOG_"`
	GA struct {
		PopulationSize int     `env:"POPULATION_SIZE" envDefault:"10"`
		MaxGenerations int     `env:"MAX_GENERATIONS" envDefault:"1000"`
		Seed           uint64  `env:"SEED" envDefault:"0"` // 0 表示随机种子
		Selection      string  `env:"SELECTION" envDefault:"rank"`
		Crossover      string  `env:"CROSSOVER" envDefault:"arithmetic"`
		CrossoverRate  float64 `env:"CROSSOVER_RATE" envDefault:"0.3"`
		MutationRate   float64 `env:"MUTATION_RATE" envDefault:"0.05"`
		MutationRange  float64 `env:"MUTATION_RANGE" envDefault:"1"`
		EliteFraction  float64 `env:"ELITE_FRACTION" envDefault:"0.3"`
		ClampToBounds  bool    `env:"CLAMP_TO_BOUNDS" envDefault:"true"`
		Convergence    string  `env:"CONVERGENCE" envDefault:"exact"`
		TrackHistory   bool    `env:"TRACK_HISTORY" envDefault:"true"`
	} `envPrefix:"GA_"`
	Domain struct {
		Min           float64 `env:"MIN" envDefault:"-10"`
		Max           float64 `env:"MAX" envDefault:"10"`
		GlobalMinimum float64 `env:"GLOBAL_MINIMUM" envDefault:"-106.764537"`
	} `envPrefix:"DOMAIN_"`
	Plot struct {
		Output      string  `env:"OUTPUT"`                // 为空时不绘图
		Width       float64 `env:"WIDTH" envDefault:"6"`  // 英寸
		Height      float64 `env:"HEIGHT" envDefault:"4"` // 英寸
		TrendDegree int     `env:"TREND_DEGREE" envDefault:"3"`
	} `envPrefix:"PLOT_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok && len(aggErr.Errors) > 0 {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}

// LogFormat 返回日志格式，未显式配置时生产环境使用 json，其余环境使用 text
func (cfg *Config) LogFormat() string {
	if cfg.Log.Format != "" {
		return cfg.Log.Format
	}
	if cfg.Environment == "production" {
		return "json"
	}
	return "text"
}
