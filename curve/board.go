package curve

import (
	"slices"
	"sync"

	"github.com/dfelber/regression/core/parallel"
	"github.com/dfelber/regression/pkg/errors"
	"github.com/dfelber/regression/pkg/log"
)

// Subscriber receives every point published on a Board and the board-wide
// clear. *Panel implements it.
type Subscriber interface {
	Add(Point)
	Clear()
}

// Refitter is a subscriber that can be refitted by Board.Refit.
type Refitter interface {
	Refit(width int) error
}

// Board fans published points out to its subscribers.
type Board struct {
	logger log.Logger

	mu            sync.RWMutex
	nextID        uint64
	subscriptions []subscription
}

// subscription pairs a subscriber with the token its unsubscribe func
// removes, so subscribers need not be comparable.
type subscription struct {
	id uint64
	s  Subscriber
}

// NewBoard creates a board with no subscribers. A nil logger uses the
// process default.
func NewBoard(logger log.Logger) *Board {
	if logger == nil {
		logger = log.GetLogger()
	}
	return &Board{logger: logger.With(log.ComponentKey, "curve.Board")}
}

// NewPanelBoard creates a board with one subscribed Panel per degree, in the
// given order. opts apply to every panel after the board's logger.
func NewPanelBoard(logger log.Logger, degrees []int, opts ...PanelOption) (*Board, []*Panel) {
	b := NewBoard(logger)
	panelOpts := append([]PanelOption{WithPanelLogger(b.logger)}, opts...)
	panels := make([]*Panel, len(degrees))
	for i, d := range degrees {
		panels[i] = NewPanel(d, panelOpts...)
		b.Subscribe(panels[i])
	}
	return b, panels
}

// Subscribe registers s and returns a function that unregisters this
// registration. Calling it more than once is a no-op. Subscribing the same
// value twice delivers every point twice.
func (b *Board) Subscribe(s Subscriber) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subscriptions = append(b.subscriptions, subscription{id: id, s: s})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		i := slices.IndexFunc(b.subscriptions, func(sub subscription) bool { return sub.id == id })
		if i >= 0 {
			b.subscriptions = slices.Delete(b.subscriptions, i, i+1)
		}
	}
}

// Len returns the number of subscribers.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscriptions)
}

func (b *Board) snapshot() []Subscriber {
	b.mu.RLock()
	defer b.mu.RUnlock()
	subs := make([]Subscriber, len(b.subscriptions))
	for i, sub := range b.subscriptions {
		subs[i] = sub.s
	}
	return subs
}

// Publish delivers pt to every subscriber in subscription order.
func (b *Board) Publish(pt Point) {
	subs := b.snapshot()
	for _, s := range subs {
		s.Add(pt)
	}
	b.logger.Debug("point published",
		log.OperationKey, log.OperationPublish, "subscribers", len(subs), "x", pt.X, "y", pt.Y)
}

// Clear clears every subscriber.
func (b *Board) Clear() {
	for _, s := range b.snapshot() {
		s.Clear()
	}
}

// Refit refits every subscriber that implements Refitter concurrently.
// A panic in one refit is recovered and reported as an error; all refits run
// regardless of failures and their errors are combined.
func (b *Board) Refit(width int) error {
	var refitters []Refitter
	for _, s := range b.snapshot() {
		if r, ok := s.(Refitter); ok {
			refitters = append(refitters, r)
		}
	}

	err := parallel.ForEach(len(refitters), func(i int) error {
		return errors.SafeExecute("curve.Board.Refit", func() error {
			return refitters[i].Refit(width)
		})
	})
	if err != nil {
		b.logger.Error("refit failed", err, log.OperationKey, log.OperationRefit)
	}
	return err
}
