package astar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/katalvlaran/gridroute/gridgraph"
)

// Sentinel errors returned by Search and ParseHeuristic.
var (
	// ErrNilIndex indicates that a nil *validity.Index was passed to Search.
	ErrNilIndex = errors.New("astar: validity index is nil")

	// ErrNodeOutOfRange indicates that start or goal is not a lattice node.
	ErrNodeOutOfRange = errors.New("astar: node outside the lattice")

	// ErrBadTimeLimit indicates a zero or negative time budget.
	ErrBadTimeLimit = errors.New("astar: time limit must be positive")

	// ErrUnknownHeuristic indicates an unrecognized heuristic name.
	ErrUnknownHeuristic = errors.New("astar: unknown heuristic")
)

// Move costs.
const (
	CostStraight = 1.0
	CostSkirt    = 1.3
	CostDiagonal = 1.5
)

// DefaultTimeLimit is the wall-clock budget of one search.
const DefaultTimeLimit = 10 * time.Second

// Heuristic selects the distance estimate used for h.
type Heuristic int

const (
	// HeuristicCell measures Euclidean distance in cell units.
	HeuristicCell Heuristic = iota
	// HeuristicRaw measures Euclidean distance in raw coordinate units.
	HeuristicRaw
)

// String returns the name accepted by ParseHeuristic.
func (h Heuristic) String() string {
	switch h {
	case HeuristicCell:
		return "cell"
	case HeuristicRaw:
		return "raw"
	default:
		return fmt.Sprintf("Heuristic(%d)", int(h))
	}
}

// ParseHeuristic maps "cell" or "raw" (case-insensitive) to a Heuristic.
// The empty string selects HeuristicCell.
func ParseHeuristic(s string) (Heuristic, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cell":
		return HeuristicCell, nil
	case "raw":
		return HeuristicRaw, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownHeuristic, s)
	}
}

// Options configures a search.
//
// TimeLimit – wall-clock budget, checked once per loop iteration. Must be > 0.
// Heuristic – distance estimate for h.
// Clock     – time source; tests substitute a fake one.
type Options struct {
	TimeLimit time.Duration
	Heuristic Heuristic
	Clock     func() time.Time
}

// Option represents a functional option for configuring Search.
type Option func(*Options)

// WithTimeLimit sets the wall-clock budget.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		o.TimeLimit = d
	}
}

// WithHeuristic selects the distance estimate.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) {
		o.Heuristic = h
	}
}

// WithClock replaces time.Now as the search's time source.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Clock = now
		}
	}
}

// DefaultOptions returns the defaults: DefaultTimeLimit, HeuristicCell and
// time.Now.
func DefaultOptions() Options {
	return Options{
		TimeLimit: DefaultTimeLimit,
		Heuristic: HeuristicCell,
		Clock:     time.Now,
	}
}

// Outcome tells how a search ended.
type Outcome int

const (
	// OutcomeFound means the goal was reached.
	OutcomeFound Outcome = iota
	// OutcomeExhausted means every reachable node was expanded.
	OutcomeExhausted
	// OutcomeTimeout means the time budget ran out.
	OutcomeTimeout
	// OutcomeInvalidEndpoint means start or goal is an invalid node.
	OutcomeInvalidEndpoint
	// OutcomeCanceled means the context was done.
	OutcomeCanceled
)

// String returns a lower-case name for logs and JSON.
func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeInvalidEndpoint:
		return "invalid_endpoint"
	case OutcomeCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is the outcome of one search. Path is empty unless Found.
type Result struct {
	Path     []gridgraph.Node // start..goal inclusive
	Cost     float64          // sum of move costs along Path
	Expanded int              // nodes closed
	Found    bool
	Outcome  Outcome
	Elapsed  time.Duration
}
