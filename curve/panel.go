package curve

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dfelber/regression/linear"
	"github.com/dfelber/regression/pkg/errors"
	"github.com/dfelber/regression/pkg/log"
)

// Panel is one curve-fit pane: a requested degree, the points placed on it
// so far, and the model and trace from the latest Refit. It is safe for
// concurrent use.
type Panel struct {
	id     uuid.UUID
	degree int
	round  bool
	logger log.Logger

	mu     sync.RWMutex
	points []Point
	model  *linear.PolynomialRegression
	trace  []Point
}

// PanelOption configures a Panel.
type PanelOption func(*Panel)

// WithPanelLogger sets the logger for refit records and for the models the
// panel fits.
func WithPanelLogger(logger log.Logger) PanelOption {
	return func(p *Panel) {
		p.logger = logger
	}
}

// WithPixelRounding controls whether point coordinates are rounded to whole
// units before fitting. It is on by default, matching a pixel surface.
func WithPixelRounding(round bool) PanelOption {
	return func(p *Panel) {
		p.round = round
	}
}

// NewPanel creates an empty panel that fits polynomials of the given degree.
func NewPanel(degree int, opts ...PanelOption) *Panel {
	p := &Panel{id: uuid.New(), degree: degree, round: true}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = log.GetLogger()
	}
	p.logger = p.logger.With(log.PanelIDKey, p.id.String(), log.DegreeKey, degree)
	return p
}

// ID returns the panel's unique identifier.
func (p *Panel) ID() uuid.UUID { return p.id }

// Degree returns the requested degree.
func (p *Panel) Degree() int { return p.degree }

// Add appends pt. The model is not refitted until Refit is called.
func (p *Panel) Add(pt Point) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.points = append(p.points, pt)
}

// Clear removes all points together with the model and trace.
func (p *Panel) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.points = nil
	p.model = nil
	p.trace = nil
}

// Refit fits the panel's points with its degree clamped to the point count
// and traces the result across width. Too few points, or points that do not
// determine a unique curve, leave the panel without a model; that is not an
// error. Other fit failures clear the model and are returned. width must lie
// in [0, MaxTraceWidth].
func (p *Panel) Refit(width int) error {
	if width < 0 || width > MaxTraceWidth {
		return errors.NewValidationError("width", fmt.Sprintf("must be in [0, %d]", MaxTraceWidth), width)
	}

	start := time.Now()
	p.mu.Lock()
	defer p.mu.Unlock()

	p.model, p.trace = nil, nil
	if len(p.points) == 0 {
		return nil
	}

	degree := ClampDegree(p.degree, len(p.points))
	if degree < 1 {
		p.logger.Debug("insufficient data, curve hidden",
			log.OperationKey, log.OperationRefit, log.SamplesKey, len(p.points))
		return nil
	}

	pts := p.points
	if p.round {
		pts = make([]Point, len(p.points))
		for i, pt := range p.points {
			pts[i] = Point{X: math.Round(pt.X), Y: math.Round(pt.Y)}
		}
	}

	model, err := Fit(pts, degree, linear.WithLogger(p.logger))
	if err != nil {
		if errors.Is(err, errors.ErrSingularMatrix) {
			p.logger.Debug("insufficient data, curve hidden",
				log.OperationKey, log.OperationRefit, log.SamplesKey, len(pts), "reason", err.Error())
			return nil
		}
		return errors.Wrapf(err, "panel %s refit", p.id)
	}

	p.model = model
	p.trace = Trace(model, width)
	p.logger.Debug("refit completed",
		log.OperationKey, log.OperationRefit,
		log.SamplesKey, len(pts),
		"model.effective_degree", degree,
		log.PointsKey, len(p.trace),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Model returns the model from the latest Refit, or nil when there is none.
func (p *Panel) Model() *linear.PolynomialRegression {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.model
}

// Points returns a copy of the points added so far.
func (p *Panel) Points() []Point {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Point, len(p.points))
	copy(out, p.points)
	return out
}

// Trace returns a copy of the polyline from the latest Refit.
func (p *Panel) Trace() []Point {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.trace == nil {
		return nil
	}
	out := make([]Point, len(p.trace))
	copy(out, p.trace)
	return out
}
