package report

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var ErrTooFewPoints = errors.New("数据点数量不足以拟合多项式")

/**
 * FitPolynomial 用最小二乘法拟合 degree 次多项式
 * 返回的系数按幂次升序排列，即 coef[i] 对应 x^i
 */
func FitPolynomial(xs []float64, ys []float64, degree int) ([]float64, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("xs 和 ys 长度不一致: %d != %d", len(xs), len(ys))
	}
	if degree < 0 {
		return nil, fmt.Errorf("多项式次数不能为负数: %d", degree)
	}
	if len(xs) <= degree {
		return nil, ErrTooFewPoints
	}

	// 范德蒙矩阵
	a := mat.NewDense(len(xs), degree+1, nil)
	for i, x := range xs {
		v := 1.0
		for j := 0; j <= degree; j++ {
			a.Set(i, j, v)
			v *= x
		}
	}
	b := mat.NewVecDense(len(ys), append([]float64(nil), ys...))

	var coef mat.VecDense
	if err := coef.SolveVec(a, b); err != nil {
		// 病态矩阵仍然会给出结果，只有其它错误才返回
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, err
		}
	}

	out := make([]float64, degree+1)
	for i := range out {
		out[i] = coef.AtVec(i)
	}
	return out, nil
}

// EvalPolynomial 用秦九韶算法求多项式在 x 处的值
func EvalPolynomial(coef []float64, x float64) float64 {
	y := 0.0
	for i := len(coef) - 1; i >= 0; i-- {
		y = y*x + coef[i]
	}
	return y
}
