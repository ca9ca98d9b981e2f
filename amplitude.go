// amplitude.go --  This file is part of goOMP2 project.
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
)

// UpdateAmplitudes performs one linear refresh of the particle-hole
// amplitude tensor:
//
//	t[a,b,i,j] = ( gmo[a,b,i,j] + P(ab) f'_vv·t - P(ij) f'_oo·t ) / D[a,b,i,j]
//
// where P is the transpose-and-subtract pass over the named index pair and
// D[a,b,i,j] = eps[i]+eps[j]-eps[a]-eps[b]. The update is applied once per
// outer iteration; the amplitudes are not iterated to self-consistency. Any
// denominator within degenTol of zero aborts with a DegeneracyError.
func UpdateAmplitudes(gmo *Tensor4, fprime *mat.Dense, eps []float64, tPrev *Tensor4, nOcc, iter int, degenTol float64) (*Tensor4, error) {
	n := len(eps)
	nv := n - nOcc

	vv := NewTensor4(nv, nv, nOcc, nOcc)
	oo := NewTensor4(nv, nv, nOcc, nOcc)
	for a := 0; a < nv; a++ {
		for b := 0; b < nv; b++ {
			for i := 0; i < nOcc; i++ {
				for j := 0; j < nOcc; j++ {
					s1 := 0.0
					for c := 0; c < nv; c++ {
						s1 += fprime.At(nOcc+a, nOcc+c) * tPrev.At(c, b, i, j)
					}
					vv.Set(a, b, i, j, s1)
					s2 := 0.0
					for k := 0; k < nOcc; k++ {
						s2 += fprime.At(k, i) * tPrev.At(a, b, k, j)
					}
					oo.Set(a, b, i, j, s2)
				}
			}
		}
	}
	vvA := Antisymmetrize(vv, BraPair)
	ooA := Antisymmetrize(oo, KetPair)

	tNew := NewTensor4(nv, nv, nOcc, nOcc)
	for a := 0; a < nv; a++ {
		for b := 0; b < nv; b++ {
			for i := 0; i < nOcc; i++ {
				for j := 0; j < nOcc; j++ {
					d := eps[i] + eps[j] - eps[nOcc+a] - eps[nOcc+b]
					if math.Abs(d) < degenTol {
						return nil, &DegeneracyError{
							Iter:    iter,
							Stage:   "amplitude update",
							Indices: []int{nOcc + a, nOcc + b, i, j},
							Value:   d,
						}
					}
					num := gmo.At(nOcc+a, nOcc+b, i, j) + vvA.At(a, b, i, j) - ooA.At(a, b, i, j)
					tNew.Set(a, b, i, j, num/d)
				}
			}
		}
	}
	return tNew, nil
}
