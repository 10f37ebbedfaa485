// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// 行列演算と回帰で発生する失敗を型付きのエラーとして表現し、
// cockroachdb/errors によるスタックトレースと zerolog 向けの構造化情報を付与します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("regression-warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため pkg/log から注入される）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します。nil を渡すと解除されます。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	センチネルエラー
//
// ===========================================================================

var (
	// ErrShape はオペランドの次元が一致しない場合のセンチネルです。
	ErrShape = errors.New("shape mismatch")

	// ErrIndex は要素・範囲アクセスが範囲外の場合のセンチネルです。
	ErrIndex = errors.New("index out of range")

	// ErrSingularMatrix は特異行列（または数値的に特異な行列）の場合のセンチネルです。
	ErrSingularMatrix = errors.New("singular matrix")

	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = errors.New("empty data")
)

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// IllConditionedWarning は連立方程式は解けたがピボット比が極端に小さい場合の警告です。
// 結果は返されますが、精度が失われている可能性があります。
type IllConditionedWarning struct {
	Op         string
	PivotRatio float64
}

func (w *IllConditionedWarning) Error() string {
	return fmt.Sprintf("%s: system is ill-conditioned (min/max pivot ratio %.3g); results may be inaccurate", w.Op, w.PivotRatio)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *IllConditionedWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Float64("pivot_ratio", w.PivotRatio).
		Str("type", "IllConditionedWarning")
}

// NewIllConditionedWarning は新しいIllConditionedWarningを作成します。
func NewIllConditionedWarning(op string, ratio float64) *IllConditionedWarning {
	return &IllConditionedWarning{Op: op, PivotRatio: ratio}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// ShapeError はオペランドの形状（列数×行数）が期待と異なる場合のエラーです。
// Want/Got は {columns, rows} の順で保持します。負の値は「任意」を意味します。
type ShapeError struct {
	Op     string
	Want   [2]int
	Got    [2]int
	Reason string
}

func (e *ShapeError) Error() string {
	msg := fmt.Sprintf("regression: %s: shape mismatch: want %s, got %s",
		e.Op, formatShape(e.Want), formatShape(e.Got))
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

// Is は ErrShape との比較を可能にします。
func (e *ShapeError) Is(target error) bool { return target == ErrShape }

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ShapeError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("want", formatShape(e.Want)).
		Str("got", formatShape(e.Got)).
		Str("reason", e.Reason).
		Str("type", "ShapeError")
}

// NewShapeError は新しいShapeErrorを作成し、スタックトレースを付与します。
func NewShapeError(op string, want, got [2]int, reason string) error {
	return errors.WithStack(&ShapeError{Op: op, Want: want, Got: got, Reason: reason})
}

func formatShape(s [2]int) string {
	dim := func(v int) string {
		if v < 0 {
			return "*"
		}
		return fmt.Sprint(v)
	}
	return dim(s[0]) + "x" + dim(s[1])
}

// IndexError は要素・範囲アクセスが範囲外の場合のエラーです。
type IndexError struct {
	Op    string
	Index int
	Limit int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("regression: %s: index %d out of range [0,%d)", e.Op, e.Index, e.Limit)
}

// Is は ErrIndex との比較を可能にします。
func (e *IndexError) Is(target error) bool { return target == ErrIndex }

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *IndexError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("index", e.Index).
		Int("limit", e.Limit).
		Str("type", "IndexError")
}

// NewIndexError は新しいIndexErrorを作成し、スタックトレースを付与します。
func NewIndexError(op string, index, limit int) error {
	return errors.WithStack(&IndexError{Op: op, Index: index, Limit: limit})
}

// SingularMatrixError は逆行列計算や連立方程式の求解で特異行列を検出した場合のエラーです。
// Step は失敗したピボットの段（-1 はピボット以前の前提条件チェック）、Pivot はその値です。
type SingularMatrixError struct {
	Op     string
	Step   int
	Pivot  float64
	Reason string
}

func (e *SingularMatrixError) Error() string {
	if e.Step < 0 {
		return fmt.Sprintf("regression: %s: singular matrix: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("regression: %s: singular matrix: pivot %d is %g", e.Op, e.Step, e.Pivot)
}

// Is は ErrSingularMatrix との比較を可能にします。
func (e *SingularMatrixError) Is(target error) bool { return target == ErrSingularMatrix }

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *SingularMatrixError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("step", e.Step).
		Float64("pivot", e.Pivot).
		Str("reason", e.Reason).
		Str("type", "SingularMatrixError")
}

// NewSingularMatrixError はピボット段で検出された特異性のエラーを作成します。
func NewSingularMatrixError(op string, step int, pivot float64) error {
	return errors.WithStack(&SingularMatrixError{Op: op, Step: step, Pivot: pivot})
}

// NewRankDeficientError は分解前に検出された階数落ちのエラーを作成します。
func NewRankDeficientError(op, reason string) error {
	return errors.WithStack(&SingularMatrixError{Op: op, Step: -1, Reason: reason})
}

// NotFittedError はモデルが未学習の状態で `Predict` などを呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("regression: %s: this model is not fitted yet. Fit it before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("regression: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// NumericalInstabilityError は数値計算の結果に NaN や Inf が含まれた場合のエラーです。
type NumericalInstabilityError struct {
	Operation string
	Values    []float64
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("regression: numerical instability detected in %s. Values: [%s]", e.Operation, valStr)
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64) error {
	return errors.WithStack(&NumericalInstabilityError{Operation: operation, Values: values})
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// CombineErrors は 2 つのエラーを結合します。どちらかが nil の場合はもう一方を返します。
func CombineErrors(err, otherErr error) error {
	return errors.CombineErrors(err, otherErr)
}
