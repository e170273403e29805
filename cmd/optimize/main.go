package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sysu-ecnc-dev/bird-optimizer/backend/internal/config"
	"github.com/sysu-ecnc-dev/bird-optimizer/backend/internal/optimizer"
	"github.com/sysu-ecnc-dev/bird-optimizer/backend/internal/report"
	"github.com/sysu-ecnc-dev/bird-optimizer/backend/internal/utils"
	"gonum.org/v1/plot/vg"
)

func main() {
	os.Exit(run())
}

func run() int {
	/**********************************************
	 * 加载配置
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("无法加载配置", "error", err)
		return 1
	}

	/**********************************************
	 * 命令行参数覆盖环境变量中的配置
	 **********************************************/
	var asJSON bool

	flag.IntVar(&cfg.GA.MaxGenerations, "generations", cfg.GA.MaxGenerations, "最大迭代次数")
	flag.IntVar(&cfg.GA.PopulationSize, "population", cfg.GA.PopulationSize, "种群大小")
	flag.Uint64Var(&cfg.GA.Seed, "seed", cfg.GA.Seed, "随机数种子 (0: 随机)")
	flag.StringVar(&cfg.GA.Selection, "selection", cfg.GA.Selection, "选择策略 (rank, elitist)")
	flag.StringVar(&cfg.GA.Crossover, "crossover", cfg.GA.Crossover, "交叉策略 (arithmetic, discrete)")
	flag.StringVar(&cfg.GA.Convergence, "convergence", cfg.GA.Convergence, "收敛判定 (exact, rounded)")
	flag.StringVar(&cfg.Plot.Output, "plot", cfg.Plot.Output, "收敛曲线的输出路径，为空时不绘图")
	flag.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "日志级别 (debug, info, warn, error)")
	flag.BoolVar(&asJSON, "json", false, "以 JSON 格式输出运行结果")
	flag.Parse()

	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger, err := utils.NewLogger(os.Stderr, cfg.Log.Level, cfg.LogFormat())
	if err != nil {
		slog.Error("无法创建 logger", "error", err)
		return 1
	}
	slog.SetDefault(logger)

	/**********************************************
	 * 创建种群
	 **********************************************/
	params := &optimizer.Parameters{
		MaxGenerations: cfg.GA.MaxGenerations,
		PopulationSize: cfg.GA.PopulationSize,
		Min:            cfg.Domain.Min,
		Max:            cfg.Domain.Max,
		GlobalMinimum:  cfg.Domain.GlobalMinimum,
		Selection:      optimizer.SelectionStrategy(cfg.GA.Selection),
		Crossover:      optimizer.CrossoverStrategy(cfg.GA.Crossover),
		CrossoverRate:  cfg.GA.CrossoverRate,
		MutationRate:   cfg.GA.MutationRate,
		MutationRange:  cfg.GA.MutationRange,
		EliteFraction:  cfg.GA.EliteFraction,
		ClampToBounds:  cfg.GA.ClampToBounds,
		Convergence:    optimizer.ConvergenceMode(cfg.GA.Convergence),
		TrackHistory:   cfg.GA.TrackHistory || cfg.Plot.Output != "",
		Seed:           cfg.GA.Seed,
	}

	population, err := optimizer.New(params, logger)
	if err != nil {
		logger.Error("无法创建种群", "error", err)
		return 1
	}

	/**********************************************
	 * 运行遗传算法，收到中断信号时在两代之间停止
	 **********************************************/
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("开始迭代",
		"population", params.PopulationSize,
		"maxGenerations", params.MaxGenerations,
		"selection", params.Selection,
		"crossover", params.Crossover,
	)

	generations, err := population.Run(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Error("迭代失败", "error", err)
			return 1
		}
		logger.Warn("迭代被中断", "generation", generations)
		// 中断时当前代可能刚产生，尚未计算适应度
		population.AssessFitness()
	}

	/**********************************************
	 * 输出结果
	 **********************************************/
	res := population.Result()

	if asJSON {
		err = report.WriteJSON(os.Stdout, res)
	} else {
		err = report.Summary(os.Stdout, res)
	}
	if err != nil {
		logger.Error("无法输出运行结果", "error", err)
		return 1
	}

	if cfg.Plot.Output != "" {
		err := report.PlotConvergence(res.History, report.PlotOptions{
			Path:        cfg.Plot.Output,
			Width:       vg.Length(cfg.Plot.Width) * vg.Inch,
			Height:      vg.Length(cfg.Plot.Height) * vg.Inch,
			TrendDegree: cfg.Plot.TrendDegree,
		})
		if err != nil {
			logger.Error("无法绘制收敛曲线", "error", err)
			return 1
		}
		logger.Info("已保存收敛曲线", "path", cfg.Plot.Output)
	}

	return 0
}
