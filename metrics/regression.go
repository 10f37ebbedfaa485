// Package metrics は単一列の行列で表された観測値と予測値に対する回帰指標を提供します。
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/dfelber/regression/core/matrix"
	"github.com/dfelber/regression/pkg/errors"
)

// columns は両者が同じ行数の非空な単一列であることを検証し、値を取り出す
func columns(op string, yTrue, yPred *matrix.Matrix) ([]float64, []float64, error) {
	if yTrue.Columns() != 1 {
		return nil, nil, errors.NewShapeError(op, [2]int{1, -1}, [2]int{yTrue.Columns(), yTrue.Rows()}, "yTrue must be a single column")
	}
	if yPred.Columns() != 1 || yPred.Rows() != yTrue.Rows() {
		return nil, nil, errors.NewShapeError(op, [2]int{1, yTrue.Rows()}, [2]int{yPred.Columns(), yPred.Rows()}, "yPred must match yTrue")
	}
	if yTrue.Rows() == 0 {
		return nil, nil, errors.Wrapf(errors.ErrEmptyData, "%s", op)
	}
	return yTrue.Values(), yPred.Values(), nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *matrix.Matrix) (float64, error) {
	t, p, err := columns("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	// MSE = (1/n) * Σ(yTrue - yPred)²
	d := floats.Distance(t, p, 2)
	return d * d / float64(len(t)), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *matrix.Matrix) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *matrix.Matrix) (float64, error) {
	t, p, err := columns("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Distance(t, p, 1) / float64(len(t)), nil
}

// R2Score は決定係数（R²）を計算する。
// yTrue の分散が 0 の場合は定義できないためエラーを返す。
func R2Score(yTrue, yPred *matrix.Matrix) (float64, error) {
	t, p, err := columns("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// 平均の丸め誤差で全平方和が 0 にならないことがあるため、値そのものを比較する
	if floats.Min(t) == floats.Max(t) {
		return 0, errors.Newf("R2Score: total sum of squares is zero (no variance in yTrue)")
	}
	return stat.RSquaredFrom(p, t, nil), nil
}

// MAPE は平均絶対パーセンテージ誤差を計算する。yTrue が 0 の行は除外される。
func MAPE(yTrue, yPred *matrix.Matrix) (float64, error) {
	t, p, err := columns("MAPE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	valid := 0
	for i, v := range t {
		if v == 0 {
			continue
		}
		sum += math.Abs(v-p[i]) / math.Abs(v)
		valid++
	}
	if valid == 0 {
		return 0, errors.Newf("MAPE: all yTrue values are zero")
	}
	return sum / float64(valid) * 100, nil
}
