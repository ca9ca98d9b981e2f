// omp2.go --  This file is part of goOMP2 project.
//
//	goOMP2 is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package main

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// System is the orbital-optimization input: the spin-orbital reference data
// a mean-field provider hands over. All tensors are indexed over the unified
// spin-orbital space of size N, with the first NOcc indices occupied.
type System struct {
	N    int        // spin-orbital count, even
	NOcc int        // occupied spin orbitals, 0 < NOcc < N
	H    *mat.Dense // one-electron integrals, raw basis
	G    *Tensor4   // antisymmetrized physicist-ordered two-electron integrals, raw basis
	C    *mat.Dense // initial coefficients, columns sorted by ascending orbital energy
	ENuc float64    // nuclear repulsion constant

	// Overlap is optional; when present the entry check verifies CᵀSC = I.
	Overlap *mat.Dense
}

// Config is the recognized option surface of the optimizer.
type Config struct {
	MaxIter   int     // outer iteration cap
	EnergyTol float64 // |E - E_prev| convergence threshold
	DegenTol  float64 // fatal threshold for orbital-energy denominators

	// OnIteration, when set, is called after every completed iteration.
	// The core itself never prints.
	OnIteration func(iter int, energy, delta, gradRMS float64)
}

func DefaultConfig() Config {
	return Config{MaxIter: 40, EnergyTol: 1e-8, DegenTol: 1e-10}
}

type Status int

const (
	Converged Status = iota
	MaxIterationsExceeded
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "CONVERGED"
	case MaxIterationsExceeded:
		return "MAX-ITERATIONS-EXCEEDED"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is the optimizer's terminal state. On MaxIterationsExceeded the
// best-available energy and coefficients are still populated.
type Result struct {
	Status     Status
	Energy     float64
	C          *mat.Dense
	Iterations int
	Energies   []float64 // total energy after each iteration
}

// DegeneracyError reports an orbital-energy denominator within tolerance of
// zero, with enough context to locate the offending orbitals.
type DegeneracyError struct {
	Iter    int
	Stage   string
	Indices []int
	Value   float64
}

func (e *DegeneracyError) Error() string {
	return fmt.Sprintf("degenerate orbital energies in %s at iteration %d, indices %v: denominator %g",
		e.Stage, e.Iter, e.Indices, e.Value)
}

// LinAlgError reports a dense linear-algebra computation that failed for
// numerical reasons.
type LinAlgError struct {
	Op     string
	Detail string
}

func (e *LinAlgError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Op, e.Detail)
}

const antisymTol = 1e-10

// Validate checks the programming contract on the inputs: dimensions,
// occupied range, antisymmetry of G, and (when an overlap matrix is
// supplied) orthonormality of the initial coefficients.
func (sys *System) Validate() error {
	if sys.N <= 0 || sys.N%2 != 0 {
		return fmt.Errorf("spin-orbital dimension must be positive and even, got %d", sys.N)
	}
	if sys.NOcc <= 0 || sys.NOcc >= sys.N {
		return fmt.Errorf("occupied count %d out of range (0, %d)", sys.NOcc, sys.N)
	}
	if r, c := sys.H.Dims(); r != sys.N || c != sys.N {
		return fmt.Errorf("one-electron tensor is %dx%d, want %dx%d", r, c, sys.N, sys.N)
	}
	if r, c := sys.C.Dims(); r != sys.N || c != sys.N {
		return fmt.Errorf("coefficient matrix is %dx%d, want %dx%d", r, c, sys.N, sys.N)
	}
	d0, d1, d2, d3 := sys.G.Dims()
	if d0 != sys.N || d1 != sys.N || d2 != sys.N || d3 != sys.N {
		return fmt.Errorf("two-electron tensor is %dx%dx%dx%d, want rank-4 of dimension %d", d0, d1, d2, d3, sys.N)
	}
	for p := 0; p < sys.N; p++ {
		for q := 0; q < sys.N; q++ {
			for r := 0; r < sys.N; r++ {
				for s := 0; s < sys.N; s++ {
					v := sys.G.At(p, q, r, s)
					if math.Abs(v+sys.G.At(q, p, r, s)) > antisymTol ||
						math.Abs(v+sys.G.At(p, q, s, r)) > antisymTol {
						return fmt.Errorf("two-electron tensor not antisymmetric at [%d,%d,%d,%d]", p, q, r, s)
					}
				}
			}
		}
	}
	if sys.Overlap != nil {
		var m mat.Dense
		m.Mul(sys.C.T(), sys.Overlap)
		m.Mul(&m, sys.C)
		for i := 0; i < sys.N; i++ {
			for j := 0; j < sys.N; j++ {
				want := 0.0
				if i == j {
					want = 1.0
				}
				if math.Abs(m.At(i, j)-want) > 1e-8 {
					return fmt.Errorf("initial coefficients not orthonormal: (CᵀSC)[%d,%d] = %g", i, j, m.At(i, j))
				}
			}
		}
	}
	return nil
}

// EstimateBytes is the working-set size of one optimization: the raw and
// transformed two-electron tensors, a transform scratch tensor and the
// two-particle density, all O(N^4), plus the O(N^2) matrices. Callers check
// this against their budget before invoking Optimize.
func EstimateBytes(n int) uint64 {
	n4 := uint64(n) * uint64(n) * uint64(n) * uint64(n)
	return 4*n4*8 + 8*uint64(n)*uint64(n)*8
}

// TotalEnergy evaluates
//
//	E = E_nuc + sum_pq hmo[p,q]·opdm[q,p] + 1/4 sum_pqrs gmo[p,q,r,s]·tpdm[r,s,p,q]
func TotalEnergy(hmo *mat.Dense, gmo *Tensor4, opdm *mat.Dense, tpdm *Tensor4, eNuc float64) float64 {
	n, _ := hmo.Dims()
	e := eNuc
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			e += hmo.At(p, q) * opdm.At(q, p)
		}
	}
	two := 0.0
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			for r := 0; r < n; r++ {
				for s := 0; s < n; s++ {
					two += gmo.At(p, q, r, s) * tpdm.At(r, s, p, q)
				}
			}
		}
	}
	return e + 0.25*two
}

// Optimize runs the orbital-optimization fixed point to energy convergence.
// Each iteration rebuilds the Fock matrix, refreshes the amplitudes once,
// assembles the densities, rotates the orbitals along the scaled gradient
// and re-transforms the integrals with the rotated coefficients. The driver
// owns all mutable state; the component calls are pure.
func Optimize(sys *System, cfg Config) (*Result, error) {
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = DefaultConfig().MaxIter
	}
	if cfg.EnergyTol <= 0 {
		cfg.EnergyTol = DefaultConfig().EnergyTol
	}
	if cfg.DegenTol <= 0 {
		cfg.DegenTol = DefaultConfig().DegenTol
	}

	nOcc := sys.NOcc
	nv := sys.N - nOcc
	C := mat.DenseCopyOf(sys.C)
	t := NewTensor4(nv, nv, nOcc, nOcc)

	hmo := TransformOneElectron(sys.H, C)
	gmo := TransformTwoElectron(sys.G, C)

	res := &Result{C: C}
	energy := 0.0
	for iter := 1; iter <= cfg.MaxIter; iter++ {
		ePrev := energy

		f := BuildFock(hmo, gmo, nOcc)
		eps, fprime := SplitFock(f)

		tNew, err := UpdateAmplitudes(gmo, fprime, eps, t, nOcc, iter, cfg.DegenTol)
		if err != nil {
			return nil, err
		}
		t = tNew

		opdm, tpdm := BuildDensities(t, sys.N, nOcc)

		F := GeneralizedFock(hmo, gmo, opdm, tpdm)
		grad := OrbitalGradient(F, nOcc)
		X, err := RotationGenerator(grad, eps, nOcc, iter, cfg.DegenTol)
		if err != nil {
			return nil, err
		}
		U, err := RotationOperator(X)
		if err != nil {
			return nil, err
		}
		var rotated mat.Dense
		rotated.Mul(C, U)
		C.Copy(&rotated)

		hmo = TransformOneElectron(sys.H, C)
		gmo = TransformTwoElectron(sys.G, C)

		energy = TotalEnergy(hmo, gmo, opdm, tpdm, sys.ENuc)
		res.Energies = append(res.Energies, energy)
		if cfg.OnIteration != nil {
			cfg.OnIteration(iter, energy, energy-ePrev, GradientRMS(grad))
		}

		if math.Abs(energy-ePrev) < cfg.EnergyTol {
			res.Status = Converged
			res.Energy = energy
			res.Iterations = iter
			return res, nil
		}
	}
	// Non-convergence is a reported outcome, not an error: the best
	// available energy and coefficients are still returned.
	res.Status = MaxIterationsExceeded
	res.Energy = energy
	res.Iterations = cfg.MaxIter
	return res, nil
}
