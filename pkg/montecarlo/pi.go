// Package montecarlo estimates pi by sampling points in the square
// [-1,1]x[-1,1] and counting how many land inside the unit circle.
package montecarlo

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/ajitpratap0/envprobe/pkg/errors"
)

// DefaultIterations is the number of points drawn per run.
const DefaultIterations = 10_000_000

// Result is one timed estimate.
type Result struct {
	Iterations     int           `json:"iterations" yaml:"iterations"`
	Estimate       float64       `json:"estimate" yaml:"estimate"`
	Reference      float64       `json:"reference" yaml:"reference"`
	Difference     float64       `json:"difference" yaml:"difference"`
	Elapsed        time.Duration `json:"-" yaml:"-"`
	ElapsedSeconds float64       `json:"elapsed_seconds" yaml:"elapsed_seconds"`
}

// Estimator draws its points from rng. A nil rng uses the runtime-seeded
// global source, so estimates differ from run to run.
type Estimator struct {
	rng *rand.Rand
}

// NewEstimator returns an estimator drawing from rng.
func NewEstimator(rng *rand.Rand) *Estimator {
	return &Estimator{rng: rng}
}

// Estimate returns 4 * (points inside the unit circle) / n.
func Estimate(n int) (float64, error) {
	return NewEstimator(nil).Estimate(n)
}

// Estimate draws n point pairs and returns the pi estimate, which always
// lies in [0, 4].
func (e *Estimator) Estimate(n int) (float64, error) {
	if n <= 0 {
		return 0, errors.Newf(errors.ErrorTypeValidation, "iterations must be positive, got %d", n)
	}

	uniform := rand.Float64
	if e.rng != nil {
		uniform = e.rng.Float64
	}

	inside := 0
	for i := 0; i < n; i++ {
		x := 2*uniform() - 1
		y := 2*uniform() - 1
		if x*x+y*y <= 1 {
			inside++
		}
	}
	return 4 * float64(inside) / float64(n), nil
}

// Run times one estimate of n points against the wall clock.
func (e *Estimator) Run(n int) (*Result, error) {
	start := time.Now()
	estimate, err := e.Estimate(n)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	return &Result{
		Iterations:     n,
		Estimate:       estimate,
		Reference:      math.Pi,
		Difference:     math.Abs(estimate - math.Pi),
		Elapsed:        elapsed,
		ElapsedSeconds: elapsed.Seconds(),
	}, nil
}
