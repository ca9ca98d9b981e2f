// rotate.go --  This file is part of goOMP2 project.
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
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// GeneralizedFock builds the effective one-body operator over the full
// densities:
//
//	F[p,q] = sum_r hmo[p,r]·opdm[r,q] + 1/2 sum_{r,s,u} gmo[p,r,s,u]·tpdm[s,u,q,r]
func GeneralizedFock(hmo *mat.Dense, gmo *Tensor4, opdm *mat.Dense, tpdm *Tensor4) *mat.Dense {
	n, _ := hmo.Dims()
	F := mat.NewDense(n, n, nil)
	parallelRange(n, func(lo, hi int) {
		for p := lo; p < hi; p++ {
			for q := 0; q < n; q++ {
				one := 0.0
				for r := 0; r < n; r++ {
					one += hmo.At(p, r) * opdm.At(r, q)
				}
				two := 0.0
				for r := 0; r < n; r++ {
					for s := 0; s < n; s++ {
						for u := 0; u < n; u++ {
							two += gmo.At(p, r, s, u) * tpdm.At(s, u, q, r)
						}
					}
				}
				F.Set(p, q, one+0.5*two)
			}
		}
	})
	return F
}

// OrbitalGradient extracts the virtual-row/occupied-column block of the
// antisymmetric part of the generalized Fock matrix.
func OrbitalGradient(F *mat.Dense, nOcc int) *mat.Dense {
	n, _ := F.Dims()
	nv := n - nOcc
	G := mat.NewDense(nv, nOcc, nil)
	for a := 0; a < nv; a++ {
		for i := 0; i < nOcc; i++ {
			G.Set(a, i, F.At(nOcc+a, i)-F.At(i, nOcc+a))
		}
	}
	return G
}

// GradientRMS is the root-mean-square of the orbital gradient, a
// convergence diagnostic the driver reports alongside the energy delta.
func GradientRMS(G *mat.Dense) float64 {
	sq := mat.DenseCopyOf(G)
	sq.MulElem(sq, sq)
	return math.Sqrt(stat.Mean(sq.RawMatrix().Data, nil))
}

// RotationGenerator scales the gradient by the inverse orbital-energy gaps,
// X[a,i] = G[a,i] / (eps[i] - eps[a]), placed on the virtual-occupied block
// of an otherwise zero N×N matrix. Rotations inside the occupied or virtual
// block leave the energy invariant and are excluded, which keeps the
// generator unique. Gaps within degenTol of zero are fatal.
func RotationGenerator(G *mat.Dense, eps []float64, nOcc, iter int, degenTol float64) (*mat.Dense, error) {
	n := len(eps)
	nv := n - nOcc
	X := mat.NewDense(n, n, nil)
	for a := 0; a < nv; a++ {
		for i := 0; i < nOcc; i++ {
			d := eps[i] - eps[nOcc+a]
			if math.Abs(d) < degenTol {
				return nil, &DegeneracyError{
					Iter:    iter,
					Stage:   "rotation generator",
					Indices: []int{nOcc + a, i},
					Value:   d,
				}
			}
			X.Set(nOcc+a, i, G.At(a, i)/d)
		}
	}
	return X, nil
}

// RotationOperator exponentiates the antisymmetrized generator, U = exp(X - Xᵀ).
// The generator is exactly antisymmetric, so U is orthogonal and the rotated
// coefficient matrix stays an orthonormal orbital basis.
func RotationOperator(X *mat.Dense) (*mat.Dense, error) {
	n, _ := X.Dims()
	gen := mat.NewDense(n, n, nil)
	gen.Sub(X, X.T())
	U := mat.NewDense(n, n, nil)
	U.Exp(gen)
	for _, v := range U.RawMatrix().Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &LinAlgError{Op: "matrix exponential", Detail: "non-finite entries in exp(X - Xᵀ)"}
		}
	}
	return U, nil
}
