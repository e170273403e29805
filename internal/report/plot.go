package report

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/sysu-ecnc-dev/bird-optimizer/backend/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var ErrEmptyHistory = errors.New("没有可供绘制的迭代记录")

type PlotOptions struct {
	Path        string // 文件扩展名决定输出格式，例如 .png / .svg / .pdf
	Title       string // 默认字体不含中文字形，标题请使用 ASCII
	Width       vg.Length
	Height      vg.Length
	TrendDegree int // 小于等于 0 时不绘制趋势线
}

var (
	bestColor  = color.RGBA{R: 46, G: 160, B: 67, A: 255}
	avgColor   = color.RGBA{R: 31, G: 111, B: 235, A: 255}
	worstColor = color.RGBA{R: 218, G: 54, B: 51, A: 255}
	trendColor = color.RGBA{A: 255}
)

// PlotConvergence 绘制每一代最优、平均、最差适应度的变化曲线，并叠加最优值的多项式趋势线
func PlotConvergence(history []domain.GenerationStats, opts PlotOptions) error {
	if len(history) == 0 {
		return ErrEmptyHistory
	}
	if opts.Path == "" {
		return errors.New("图像输出路径不能为空")
	}
	if opts.Width <= 0 {
		opts.Width = 6 * vg.Inch
	}
	if opts.Height <= 0 {
		opts.Height = 4 * vg.Inch
	}
	if opts.Title == "" {
		opts.Title = "Mishra's bird function"
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"
	p.Add(plotter.NewGrid())

	best := make(plotter.XYs, len(history))
	avg := make(plotter.XYs, len(history))
	worst := make(plotter.XYs, len(history))
	for i, h := range history {
		x := float64(h.Generation)
		best[i] = plotter.XY{X: x, Y: h.Best}
		avg[i] = plotter.XY{X: x, Y: h.Average}
		worst[i] = plotter.XY{X: x, Y: h.Worst}
	}

	series := []struct {
		name  string
		data  plotter.XYs
		color color.Color
	}{
		{"best", best, bestColor},
		{"average", avg, avgColor},
		{"worst", worst, worstColor},
	}
	for _, s := range series {
		line, err := plotter.NewLine(s.data)
		if err != nil {
			return fmt.Errorf("无法创建 %s 曲线: %w", s.name, err)
		}
		line.Color = s.color
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}

	if opts.TrendDegree > 0 && len(history) > opts.TrendDegree {
		trend, err := trendLine(best, opts.TrendDegree)
		if err != nil {
			return err
		}
		p.Add(trend)
		p.Legend.Add(fmt.Sprintf("trend (deg %d)", opts.TrendDegree), trend)
	}

	p.Legend.Top = true

	if err := p.Save(opts.Width, opts.Height, opts.Path); err != nil {
		return fmt.Errorf("无法保存收敛曲线: %w", err)
	}
	return nil
}

// trendLine 在归一化到 [0, 1] 的横坐标上拟合，避免代数较大时范德蒙矩阵病态
func trendLine(points plotter.XYs, degree int) (*plotter.Line, error) {
	x0 := points[0].X
	span := points[len(points)-1].X - x0
	if span == 0 {
		span = 1
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, pt := range points {
		xs[i] = (pt.X - x0) / span
		ys[i] = pt.Y
	}

	coef, err := FitPolynomial(xs, ys, degree)
	if err != nil {
		return nil, fmt.Errorf("无法拟合趋势线: %w", err)
	}

	fitted := make(plotter.XYs, len(points))
	for i, pt := range points {
		fitted[i] = plotter.XY{X: pt.X, Y: EvalPolynomial(coef, xs[i])}
	}

	line, err := plotter.NewLine(fitted)
	if err != nil {
		return nil, err
	}
	line.Color = trendColor
	line.Width = vg.Points(1)
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	return line, nil
}
