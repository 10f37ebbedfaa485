// Package model はモデルのライフサイクル（学習状態・インターフェース・重みの永続化）を定義します。
package model

import (
	"github.com/dfelber/regression/core/matrix"
)

// EstimatorState はモデルの学習状態を表す
type EstimatorState int

const (
	// NotFitted はモデルが未学習の状態
	NotFitted EstimatorState = iota
	// Fitted はモデルが学習済みの状態
	Fitted
)

func (s EstimatorState) String() string {
	if s == Fitted {
		return "fitted"
	}
	return "not_fitted"
}

// BaseEstimator は全てのモデルに埋め込まれる学習状態。ゼロ値は未学習。
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted はモデルが学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// State は現在の学習状態を返す
func (e *BaseEstimator) State() EstimatorState {
	return e.state
}

// SetFitted はモデルを学習済み状態に設定する
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset はモデルを初期状態にリセットする
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}

// Predictor は単一列の入力に対して単一列の予測を返す
type Predictor interface {
	Predict(x *matrix.Matrix) (*matrix.Matrix, error)
}

// Scorer は決定係数 R² を計算する
type Scorer interface {
	Score(x, y *matrix.Matrix) (float64, error)
}

// WeightsExporter は学習済みパラメータを ModelWeights として取り出せるモデル
type WeightsExporter interface {
	Weights() (*ModelWeights, error)
}

// Regressor は回帰モデルの基本インターフェース
type Regressor interface {
	Predictor
	Scorer
	WeightsExporter
	IsFitted() bool
}
