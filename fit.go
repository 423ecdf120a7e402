package main

import (
	"fmt"
	"math"

	"github.com/maorshutman/lm"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat/distuv"
)

const fitIterations = 1000

var (
	ErrInsufficientPoints = errors.New("fewer points than fit parameters")
	ErrSingular           = errors.New("singular normal equations")
	ErrNoConvergence      = errors.New("fit did not converge")
)

// Model is a two-parameter distribution f(k; λ, A) together with the policy
// that picks which histogram points it is fitted against.
type Model struct {
	Name   string
	Func   func(k, lambda, amp float64) float64
	Policy FitPolicy
}

// FitPolicy selects the points a model is fitted against.
type FitPolicy func(x, y []float64) ([]float64, []float64)

// FitResult holds the fitted shape λ and amplitude A.
type FitResult struct {
	Model  string
	Lambda float64
	A      float64
	Points int
}

func (r FitResult) String() string {
	return fmt.Sprintf("%s λ=%.4f A=%.4f", r.Model, r.Lambda, r.A)
}

var (
	poissonModel = Model{Name: "Poisson", Func: poisson, Policy: fitFull}
	boseModel    = Model{Name: "Bose-Einstein", Func: bose, Policy: fitFromMode}
)

// Poisson pmf scaled by A.
func poisson(
	k, lambda, amp float64,
) (
	float64,
) {
	return amp * distuv.Poisson{Lambda: lambda}.Prob(k)
}

// Bose-Einstein (geometric) occupation distribution scaled by A.
func bose(
	k, lambda, amp float64,
) (
	float64,
) {
	return amp * math.Pow(lambda, k) / math.Pow(1+lambda, 1+k)
}

func fitFull(x, y []float64) ([]float64, []float64) {
	return x, y
}

// fitFromMode keeps the tail from the first maximum of y onward.
func fitFromMode(x, y []float64) ([]float64, []float64) {
	if len(y) == 0 {
		return x, y
	}
	mode := floats.MaxIdx(y)
	return x[mode:], y[mode:]
}

// fit runs a Levenberg-Marquardt least-squares fit of model to the points
// its policy selects, starting from λ=1, A=1 with no bounds.
func fit(
	model Model,
	x, y []float64,
) (
	res FitResult, err error,
) {

	x, y = model.Policy(x, y)

	const dim = 2
	if len(x) < dim {
		return FitResult{}, errors.Wrapf(ErrInsufficientPoints, "%s: %d points", model.Name, len(x))
	}

	f := func(dst, params []float64) {
		for i := range x {
			dst[i] = model.Func(x[i], params[0], params[1]) - y[i]
		}
	}

	jacobian := lm.NumJac{Func: f}

	problem := lm.LMProblem{
		Dim:        dim,
		Size:       len(x),
		Func:       f,
		Jac:        jacobian.Jac,
		InitParams: []float64{1, 1},
		Tau:        1e-6,
		Eps1:       1e-8,
		Eps2:       1e-8,
	}

	// lm panics when A + mu*I cannot be solved.
	defer func() {
		if r := recover(); r != nil {
			res, err = FitResult{}, errors.Wrapf(ErrSingular, "%s: %v", model.Name, r)
		}
	}()

	result, err := lm.LM(problem, &lm.Settings{Iterations: fitIterations, ObjectiveTol: 1e-16})
	if err != nil {
		return FitResult{}, errors.Wrapf(err, "%s fit", model.Name)
	}

	if result.Status == optimize.IterationLimit {
		return FitResult{}, errors.Wrapf(ErrNoConvergence, "%s: %d iterations", model.Name, fitIterations)
	}

	lambda, amp := result.X[0], result.X[1]
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) || math.IsNaN(amp) || math.IsInf(amp, 0) {
		return FitResult{}, errors.Wrapf(ErrNoConvergence, "%s: λ=%v A=%v", model.Name, lambda, amp)
	}

	return FitResult{
		Model:  model.Name,
		Lambda: lambda,
		A:      amp,
		Points: len(x),
	}, nil
}
