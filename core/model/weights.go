package model

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/dfelber/regression/pkg/errors"
)

// WeightsVersion は現在のシリアライズ形式のバージョン
const WeightsVersion = "1"

// ModelWeights はモデルの重みを表す構造体（シリアライゼーション用）
type ModelWeights struct {
	// ModelType はモデルの種類（PolynomialRegression 等）
	ModelType string `json:"model_type"`

	// Version は形式のバージョン（互換性チェック用）
	Version string `json:"version"`

	// Degree は多項式の次数
	Degree int `json:"degree"`

	// Coefficients は係数。添字 0 が切片、添字 i が x^i の係数
	Coefficients []float64 `json:"coefficients"`

	// Hyperparameters はモデルのハイパーパラメータ
	Hyperparameters map[string]interface{} `json:"hyperparameters,omitempty"`

	// Metadata は追加のメタデータ（学習時の統計等）
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool `json:"is_fitted"`
}

// ToJSON はModelWeightsをJSON形式にシリアライズ
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(mw, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode model weights")
	}
	return data, nil
}

// FromJSON はJSON形式からModelWeightsをデシリアライズ
func (mw *ModelWeights) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, mw); err != nil {
		return errors.Wrap(err, "decode model weights")
	}
	return nil
}

// Validate はModelWeightsの妥当性を検証
func (mw *ModelWeights) Validate() error {
	switch {
	case mw.ModelType == "":
		return errors.NewValidationError("model_type", "is required", mw.ModelType)
	case mw.Version != WeightsVersion:
		return errors.NewValidationError("version", "unsupported weights version", mw.Version)
	case !mw.IsFitted && len(mw.Coefficients) > 0:
		return errors.NewValidationError("coefficients", "unfitted model should not have coefficients", len(mw.Coefficients))
	case !mw.IsFitted:
		return nil
	case mw.Degree < 1:
		return errors.NewValidationError("degree", "must be at least 1", mw.Degree)
	case len(mw.Coefficients) != mw.Degree+1:
		return errors.NewValidationError("coefficients", "fitted model must have degree+1 coefficients", len(mw.Coefficients))
	}
	return errors.CheckNumericalStability("ModelWeights.Validate", mw.Coefficients)
}

// Clone はModelWeightsのディープコピーを作成
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := *mw
	clone.Coefficients = slices.Clone(mw.Coefficients)
	clone.Hyperparameters = maps.Clone(mw.Hyperparameters)
	clone.Metadata = maps.Clone(mw.Metadata)
	return &clone
}
