// Package curve is the boundary between polynomial fitting and a drawing
// front end. It turns sample points into models, evaluates models at single
// x positions and produces the polyline a renderer should stroke.
//
// A Panel is one curve-fit pane with its own requested degree; a Board fans
// every published point out to all subscribed panels, as a touch surface
// with several panes of different degree would.
package curve

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/dfelber/regression/core/matrix"
	"github.com/dfelber/regression/core/parallel"
	"github.com/dfelber/regression/linear"
	"github.com/dfelber/regression/pkg/errors"
)

// traceParallelThreshold is the trace width above which predictions are
// computed in parallel chunks.
const traceParallelThreshold = 4096

// MaxTraceWidth is the widest surface Trace samples. One prediction is made
// per integer x, so wider surfaces must use TraceRange instead.
const MaxTraceWidth = 1 << 16

// Point is a 2-D sample, typically in surface pixel coordinates.
type Point struct {
	X, Y float64
}

// Fit builds single-column x and y matrices from points and fits a
// polynomial of the given degree.
func Fit(points []Point, degree int, opts ...linear.Option) (*linear.PolynomialRegression, error) {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	return linear.NewPolynomialRegression(matrix.Column(xs), matrix.Column(ys), degree, opts...)
}

// Predict evaluates model at x. It returns NaN when model is nil, when the
// prediction fails or when the result is not finite.
func Predict(model *linear.PolynomialRegression, x float64) float64 {
	if model == nil {
		return math.NaN()
	}
	out, err := model.Predict(matrix.Column([]float64{x}))
	if err != nil {
		return math.NaN()
	}
	v, err := out.At(0, 0)
	if err != nil {
		return math.NaN()
	}
	return errors.FiniteOrNaN(v)
}

// ClampDegree caps requested so that it never reaches pointCount: with n
// points at most degree n-1 can be determined. The result is never negative;
// 0 means there is not enough data for any curve.
func ClampDegree(requested, pointCount int) int {
	if pointCount <= requested {
		return max(pointCount-1, 0)
	}
	return requested
}

// Trace returns the polyline to draw for model on a surface width units wide.
// A straight line only needs its end points at x=0 and x=width; higher
// degrees are sampled at every integer x in [0, width). Points whose
// prediction is NaN are dropped. A nil model, or a width that is negative or
// above MaxTraceWidth, yields nil.
func Trace(model *linear.PolynomialRegression, width int) []Point {
	if model == nil || width < 0 || width > MaxTraceWidth {
		return nil
	}

	if model.Degree() == 1 {
		w := float64(width)
		start, end := Predict(model, 0), Predict(model, w)
		if math.IsNaN(start) || math.IsNaN(end) {
			return nil
		}
		return []Point{{X: 0, Y: start}, {X: w, Y: end}}
	}

	ys := make([]float64, width)
	parallel.ParallelizeWithThreshold(width, traceParallelThreshold, func(lo, hi int) {
		xs := make([]float64, hi-lo)
		for i := range xs {
			xs[i] = float64(lo + i)
		}
		out, err := model.Predict(matrix.Column(xs))
		if err != nil {
			for i := lo; i < hi; i++ {
				ys[i] = math.NaN()
			}
			return
		}
		vals := out.Values()
		for i, v := range vals {
			ys[lo+i] = errors.FiniteOrNaN(v)
		}
	})

	trace := make([]Point, 0, width)
	for x, y := range ys {
		if !math.IsNaN(y) {
			trace = append(trace, Point{X: float64(x), Y: y})
		}
	}
	return trace
}

// TraceRange samples model at n evenly spaced x in [lo, hi], both ends
// included, independent of how far apart lo and hi are. A straight line is
// reduced to its two end points. NaN predictions are dropped; a nil model,
// n < 2 or a range that is empty or not finite yields nil.
func TraceRange(model *linear.PolynomialRegression, lo, hi float64, n int) []Point {
	if model == nil || n < 2 || !(hi > lo) || !errors.IsFinite(hi-lo) {
		return nil
	}
	if model.Degree() == 1 {
		n = 2
	}

	xs := floats.Span(make([]float64, n), lo, hi)
	out, err := model.Predict(matrix.Column(xs))
	if err != nil {
		return nil
	}
	trace := make([]Point, 0, n)
	for i, v := range out.Values() {
		if y := errors.FiniteOrNaN(v); !math.IsNaN(y) {
			trace = append(trace, Point{X: xs[i], Y: y})
		}
	}
	return trace
}
