// spinorbital.go --  This file is part of goOMP2 project.
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
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

// Spin-orbital index convention: P = spin*nb + spatial, so alpha orbitals
// occupy the first nb indices before energy sorting.

// SpinBlock expands a converged spatial reference into the unified
// spin-orbital space of size N = 2*nb: block-diagonal one-electron and
// coefficient matrices, physicist-ordered antisymmetrized repulsion
// integrals, and coefficient columns re-sorted by ascending orbital energy.
// The result is exactly the precondition data the orbital optimizer takes.
func SpinBlock(scf *SCFResult, mol *Molecule) *System {
	nb, _ := scf.H1.Dims()
	N := 2 * nb

	hs := mat.NewDense(N, N, nil)
	Ss := mat.NewDense(N, N, nil)
	Cs := mat.NewDense(N, N, nil)
	es := make([]float64, N)
	for P := 0; P < N; P++ {
		sp, p := P/nb, P%nb
		es[P] = scf.Eps[p]
		for Q := 0; Q < N; Q++ {
			sq, q := Q/nb, Q%nb
			if sp != sq {
				continue
			}
			hs.Set(P, Q, scf.H1.At(p, q))
			Ss.Set(P, Q, scf.S.At(p, q))
			Cs.Set(P, Q, scf.C.At(p, q))
		}
	}

	// Stable energy sort of the coefficient columns; spin-degenerate pairs
	// keep alpha before beta.
	order := make([]int, N)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case es[a] < es[b]:
			return -1
		case es[a] > es[b]:
			return 1
		}
		return 0
	})
	Csorted := mat.NewDense(N, N, nil)
	for j, col := range order {
		for r := 0; r < N; r++ {
			Csorted.Set(r, j, Cs.At(r, col))
		}
	}

	// Chemist spin blocking, reorder to physicist <PQ|RS> = (PR|QS), then the
	// shared transpose-and-subtract pass over the ket pair.
	phys := NewTensor4(N, N, N, N)
	for P := 0; P < N; P++ {
		sp, p := P/nb, P%nb
		for Q := 0; Q < N; Q++ {
			sq, q := Q/nb, Q%nb
			for R := 0; R < N; R++ {
				sr, r := R/nb, R%nb
				if sp != sr {
					continue
				}
				for S := 0; S < N; S++ {
					ss, s := S/nb, S%nb
					if sq != ss {
						continue
					}
					phys.Set(P, Q, R, S, scf.Vee.At(p, r, q, s))
				}
			}
		}
	}
	g := Antisymmetrize(phys, KetPair)

	return &System{
		N:       N,
		NOcc:    mol.NElec(),
		H:       hs,
		G:       g,
		C:       Csorted,
		Overlap: Ss,
		ENuc:    mol.NucNuc(),
	}
}
