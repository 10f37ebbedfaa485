// Package linear は正規方程式による多項式回帰を提供します。
package linear

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dfelber/regression/core/matrix"
	"github.com/dfelber/regression/core/model"
	"github.com/dfelber/regression/metrics"
	"github.com/dfelber/regression/pkg/errors"
	"github.com/dfelber/regression/pkg/log"
)

// ModelType is the ModelWeights.ModelType written by Weights.
const ModelType = "PolynomialRegression"

// IllConditionedRatio はこれ未満のピボット比で IllConditionedWarning を発生させる閾値
const IllConditionedRatio = 1e-12

// PolynomialRegression は y ≈ c0 + c1·x + … + cd·x^d の最小二乗多項式モデル。
// 係数は構築時に一度だけ決まり、以後は読み取り専用。
type PolynomialRegression struct {
	model.BaseEstimator

	degree       int
	coefficients []float64 // 添字 0 が切片
	tol          float64
	samples      int
	pivotRatio   float64
	logger       log.Logger
}

var _ model.Regressor = (*PolynomialRegression)(nil)

// NewPolynomialRegression は x（説明変数）と y（目的変数）の単一列行列から
// 次数 degree の多項式を学習する。
//
// 計画行列 D = [1, x, x², …, x^degree] を作り、正規方程式 DᵀD·β = Dᵀy を
// 部分ピボット付きガウス消去で解く。
//
// エラー:
//   - degree < 1: *ValidationError
//   - x, y が単一列でない、行数が異なる、0 行: *ShapeError
//   - 異なる x の値が degree+1 個未満、または消去中にピボットが 0: *SingularMatrixError
//   - 入力や係数に NaN/Inf: *NumericalInstabilityError
func NewPolynomialRegression(x, y *matrix.Matrix, degree int, opts ...Option) (*PolynomialRegression, error) {
	pr := &PolynomialRegression{degree: degree}
	for _, opt := range opts {
		opt(pr)
	}
	if pr.logger == nil {
		pr.logger = log.GetLogger()
	}
	pr.logger = pr.logger.With(log.ModelNameKey, ModelType, log.DegreeKey, degree)

	if err := pr.fit(x, y); err != nil {
		return nil, err
	}
	return pr, nil
}

func (pr *PolynomialRegression) fit(x, y *matrix.Matrix) error {
	const op = "PolynomialRegression.Fit"
	start := time.Now()

	if pr.degree < 1 {
		return errors.NewValidationError("degree", "must be at least 1", pr.degree)
	}
	if x.Columns() != 1 {
		return errors.NewShapeError(op, [2]int{1, -1}, [2]int{x.Columns(), x.Rows()}, "x must be a single column")
	}
	if y.Columns() != 1 || y.Rows() != x.Rows() {
		return errors.NewShapeError(op, [2]int{1, x.Rows()}, [2]int{y.Columns(), y.Rows()}, "y must be a single column with one row per x")
	}
	if x.Rows() == 0 {
		return errors.NewShapeError(op, [2]int{1, -1}, [2]int{1, 0}, "at least one sample is required")
	}

	xs := x.Values()
	if err := errors.CheckNumericalStability(op+" x", xs); err != nil {
		return err
	}
	if err := errors.CheckNumericalStability(op+" y", y.Values()); err != nil {
		return err
	}

	distinct := countDistinct(xs)
	if distinct < pr.degree+1 {
		return errors.NewRankDeficientError(op,
			fmt.Sprintf("%d distinct x values cannot determine %d coefficients", distinct, pr.degree+1))
	}

	d, err := pr.design(x)
	if err != nil {
		return err
	}
	dt := d.Transpose()
	dtd, err := dt.Multiply(d)
	if err != nil {
		return err
	}
	dty, err := dt.Multiply(y)
	if err != nil {
		return err
	}

	beta, lu, err := matrix.SolveWithFactor(dtd, dty, pr.tol)
	if err != nil {
		return errors.Wrap(err, op)
	}

	coefficients := beta.Values()
	if err := errors.CheckNumericalStability(op, coefficients); err != nil {
		return err
	}

	pr.pivotRatio = lu.PivotRatio()
	if pr.pivotRatio < IllConditionedRatio {
		errors.Warn(errors.NewIllConditionedWarning(op, pr.pivotRatio))
	}

	pr.coefficients = coefficients
	pr.samples = x.Rows()
	pr.SetFitted()

	pr.logger.Debug("fit completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, pr.samples,
		log.DistinctKey, distinct,
		log.PivotRatioKey, pr.pivotRatio,
		log.CoefficientsKey, coefficients,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// design は x から計画行列 [1, x, x², …, x^degree] を構築する
func (pr *PolynomialRegression) design(x *matrix.Matrix) (*matrix.Matrix, error) {
	d, err := matrix.NewFilled(1, x.Rows(), 1)
	if err != nil {
		return nil, err
	}
	for p := 1; p <= pr.degree; p++ {
		power := float64(p)
		col := x.Map(func(v float64) float64 { return math.Pow(v, power) })
		if d, err = d.AppendHorizontal(col); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func countDistinct(values []float64) int {
	seen := make(map[float64]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// Predict は x の各行に対する予測値を単一列で返す
func (pr *PolynomialRegression) Predict(x *matrix.Matrix) (*matrix.Matrix, error) {
	if !pr.IsFitted() {
		return nil, errors.NewNotFittedError(ModelType, "Predict")
	}
	if x.Columns() != 1 || x.Rows() == 0 {
		return nil, errors.NewShapeError("PolynomialRegression.Predict", [2]int{1, -1}, [2]int{x.Columns(), x.Rows()},
			"x must be a single column with at least one row")
	}

	d, err := pr.design(x)
	if err != nil {
		return nil, err
	}
	out, err := d.Multiply(matrix.Column(pr.coefficients))
	if err != nil {
		return nil, err
	}

	if pr.logger.Enabled(context.Background(), log.LevelDebug) {
		pr.logger.Debug("predict completed", log.OperationKey, log.OperationPredict, log.SamplesKey, x.Rows())
	}
	return out, nil
}

// Degree は多項式の次数を返す
func (pr *PolynomialRegression) Degree() int {
	return pr.degree
}

// Coefficients は係数のコピーを返す。添字 0 が切片、添字 i が x^i の係数。
// 未学習の場合は nil。
func (pr *PolynomialRegression) Coefficients() []float64 {
	if pr.coefficients == nil {
		return nil
	}
	out := make([]float64, len(pr.coefficients))
	copy(out, pr.coefficients)
	return out
}

// PivotRatio は学習時の LU 分解のピボット比（最小/最大）を返す
func (pr *PolynomialRegression) PivotRatio() float64 {
	return pr.pivotRatio
}

// Score はモデルの決定係数（R²）を計算する
func (pr *PolynomialRegression) Score(x, y *matrix.Matrix) (float64, error) {
	if !pr.IsFitted() {
		return 0, errors.NewNotFittedError(ModelType, "Score")
	}
	yPred, err := pr.Predict(x)
	if err != nil {
		return 0, err
	}
	score, err := metrics.R2Score(y, yPred)
	if err != nil {
		return 0, err
	}
	pr.logger.Debug("score computed", log.OperationKey, log.OperationScore, log.R2ScoreKey, score)
	return score, nil
}

// Weights は学習済みパラメータを永続化用の ModelWeights として返す
func (pr *PolynomialRegression) Weights() (*model.ModelWeights, error) {
	if !pr.IsFitted() {
		return nil, errors.NewNotFittedError(ModelType, "Weights")
	}
	return &model.ModelWeights{
		ModelType:       ModelType,
		Version:         model.WeightsVersion,
		Degree:          pr.degree,
		Coefficients:    pr.Coefficients(),
		Hyperparameters: map[string]interface{}{"tolerance": pr.tol},
		Metadata: map[string]interface{}{
			"n_samples":   pr.samples,
			"pivot_ratio": pr.pivotRatio,
		},
		IsFitted: true,
	}, nil
}

// FromWeights は保存済みの重みから学習済みモデルを復元する
func FromWeights(w *model.ModelWeights, opts ...Option) (*PolynomialRegression, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if w.ModelType != ModelType {
		return nil, errors.NewValidationError("model_type", "expected "+ModelType, w.ModelType)
	}
	if !w.IsFitted {
		return nil, errors.NewNotFittedError(ModelType, "FromWeights")
	}

	pr := &PolynomialRegression{degree: w.Degree}
	if tol, ok := w.Hyperparameters["tolerance"].(float64); ok {
		pr.tol = tol
	}
	for _, opt := range opts {
		opt(pr)
	}
	if pr.logger == nil {
		pr.logger = log.GetLogger()
	}
	pr.logger = pr.logger.With(log.ModelNameKey, ModelType, log.DegreeKey, pr.degree)

	pr.coefficients = make([]float64, len(w.Coefficients))
	copy(pr.coefficients, w.Coefficients)
	pr.samples = int(metadataNumber(w.Metadata, "n_samples"))
	pr.pivotRatio = metadataNumber(w.Metadata, "pivot_ratio")
	pr.SetFitted()
	return pr, nil
}

// metadataNumber は JSON 経由（float64）と直接生成（int）の両方の数値を読む
func metadataNumber(meta map[string]interface{}, key string) float64 {
	switch v := meta[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}
