// fock.go --  This file is part of goOMP2 project.
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

// BuildFock assembles f[p,q] = hmo[p,q] + sum_i gmo[p,i,q,i] with i running
// over the occupied block only.
func BuildFock(hmo *mat.Dense, gmo *Tensor4, nOcc int) *mat.Dense {
	n, _ := hmo.Dims()
	f := mat.NewDense(n, n, nil)
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			sum := hmo.At(p, q)
			for i := 0; i < nOcc; i++ {
				sum += gmo.At(p, i, q, i)
			}
			f.Set(p, q, sum)
		}
	}
	return f
}

// SplitFock separates f into its diagonal (the orbital energies) and the
// off-diagonal remainder used by the amplitude update.
func SplitFock(f *mat.Dense) (eps []float64, fprime *mat.Dense) {
	n, _ := f.Dims()
	eps = make([]float64, n)
	fprime = mat.NewDense(n, n, nil)
	fprime.CloneFrom(f)
	for p := 0; p < n; p++ {
		eps[p] = f.At(p, p)
		fprime.Set(p, p, 0.0)
	}
	return eps, fprime
}
