// Package log defines standard attribute keys for fitting operations.
//
// Keys follow a hierarchical naming convention ("model.name",
// "data.samples") so records from matrix, regression and curve code can be
// filtered the same way.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the model type, e.g. "PolynomialRegression".
	ModelNameKey = "model.name"

	// DegreeKey is the polynomial degree of a regression.
	DegreeKey = "model.degree"

	// CoefficientsKey holds fitted coefficients, intercept first.
	CoefficientsKey = "model.coefficients"

	// OperationKey specifies the operation being performed.
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is logging.
	ComponentKey = "ml.component"

	// PanelIDKey identifies a curve panel on a board.
	PanelIDKey = "panel.id"
)

// Data shape.
const (
	// SamplesKey is the number of sample rows.
	SamplesKey = "data.samples"

	// DistinctKey is the number of distinct x values among the samples.
	DistinctKey = "data.distinct"

	// ShapeKey is a "columns x rows" description of a matrix.
	ShapeKey = "data.shape"

	// PointsKey is the number of points in a traced curve.
	PointsKey = "curve.points"
)

// Performance and quality.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// R2ScoreKey records the coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// PivotRatioKey is the min/max absolute pivot ratio of a factorisation.
	PivotRatioKey = "linalg.pivot_ratio"
)

// Error context.
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// SuggestionKey provides a hint for resolving the issue.
	SuggestionKey = "error.suggestion"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
	OperationSolve   = "solve"
	OperationInvert  = "invert"
	OperationRefit   = "refit"
	OperationPublish = "publish"

	ErrorShapeMismatch = "SHAPE_MISMATCH"
	ErrorIndex         = "INDEX_OUT_OF_RANGE"
	ErrorSingular      = "SINGULAR_MATRIX"
	ErrorNotFitted     = "NOT_FITTED"
)
