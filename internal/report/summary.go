package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sysu-ecnc-dev/bird-optimizer/backend/internal/domain"
)

// Summary 输出最终种群、最优个体、迭代代数和耗时
func Summary(w io.Writer, res domain.RunResult) error {
	if _, err := fmt.Fprintln(w, "最终种群:"); err != nil {
		return err
	}
	for i, pt := range res.Population {
		if _, err := fmt.Fprintf(w, "  %3d  x: %10.6f  y: %10.6f  z: %12.6f\n", i, pt.X, pt.Y, pt.Fitness); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w,
		"最优个体: x: %.6f, y: %.6f, z: %.6f\n迭代代数: %d\n终止状态: %s\n耗时: %s\n",
		res.Best.X, res.Best.Y, res.Best.Fitness, res.Generations, res.State, res.Elapsed,
	)
	return err
}

func WriteJSON(w io.Writer, res domain.RunResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("无法序列化运行结果: %w", err)
	}
	return nil
}
