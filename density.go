// density.go --  This file is part of goOMP2 project.
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

import "gonum.org/v1/gonum/mat"

// BuildDensities assembles the one- and two-particle reduced density
// matrices from the current amplitudes and the reference occupation.
//
// opdm = opdm_ref + opdm_corr with
//
//	opdm_corr[a,b] =  1/2 sum_{c,i,j} t[a,c,i,j] t[b,c,i,j]   (virtual block)
//	opdm_corr[i,j] = -1/2 sum_{a,b,k} t[a,b,i,k] t[a,b,j,k]   (occupied block)
//
// tpdm places t on the vvoo block and its four-leg transpose on oovv, plus
// the antisymmetrized outer products of opdm_corr with opdm_ref (four sign
// terms) and opdm_ref with itself (two sign terms).
func BuildDensities(t *Tensor4, n, nOcc int) (*mat.Dense, *Tensor4) {
	nv := n - nOcc

	corr := mat.NewDense(n, n, nil)
	for a := 0; a < nv; a++ {
		for b := 0; b < nv; b++ {
			sum := 0.0
			for c := 0; c < nv; c++ {
				for i := 0; i < nOcc; i++ {
					for j := 0; j < nOcc; j++ {
						sum += t.At(a, c, i, j) * t.At(b, c, i, j)
					}
				}
			}
			corr.Set(nOcc+a, nOcc+b, 0.5*sum)
		}
	}
	for i := 0; i < nOcc; i++ {
		for j := 0; j < nOcc; j++ {
			sum := 0.0
			for a := 0; a < nv; a++ {
				for b := 0; b < nv; b++ {
					for k := 0; k < nOcc; k++ {
						sum += t.At(a, b, i, k) * t.At(a, b, j, k)
					}
				}
			}
			corr.Set(i, j, -0.5*sum)
		}
	}

	opdm := mat.NewDense(n, n, nil)
	opdm.CloneFrom(corr)
	for i := 0; i < nOcc; i++ {
		opdm.Set(i, i, opdm.At(i, i)+1.0)
	}

	// reference occupation vector: 1 on occupied, 0 on virtual
	ref := func(p int) float64 {
		if p < nOcc {
			return 1.0
		}
		return 0.0
	}

	tpdm := NewTensor4(n, n, n, n)
	for a := 0; a < nv; a++ {
		for b := 0; b < nv; b++ {
			for i := 0; i < nOcc; i++ {
				for j := 0; j < nOcc; j++ {
					tpdm.Set(nOcc+a, nOcc+b, i, j, t.At(a, b, i, j))
					tpdm.Set(i, j, nOcc+a, nOcc+b, t.At(a, b, i, j))
				}
			}
		}
	}
	for r := 0; r < n; r++ {
		for s := 0; s < n; s++ {
			for p := 0; p < n; p++ {
				for q := 0; q < n; q++ {
					v := 0.0
					if s == q {
						v += corr.At(r, p) * ref(s)
					}
					if r == q {
						v -= corr.At(s, p) * ref(r)
					}
					if s == p {
						v -= corr.At(r, q) * ref(s)
					}
					if r == p {
						v += corr.At(s, q) * ref(r)
					}
					if r == p && s == q {
						v += ref(r) * ref(s)
					}
					if s == p && r == q {
						v -= ref(s) * ref(r)
					}
					if v != 0.0 {
						tpdm.Add(r, s, p, q, v)
					}
				}
			}
		}
	}
	return opdm, tpdm
}
