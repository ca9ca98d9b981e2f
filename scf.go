// scf.go --  This file is part of goOMP2 project.
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
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// SCFResult carries the converged restricted Hartree-Fock reference: the
// spatial orbitals that seed the orbital optimizer plus the raw AO integrals
// the optimizer keeps re-transforming.
type SCFResult struct {
	C   *mat.Dense // spatial MO coefficients, columns in ascending energy order
	Eps []float64  // spatial orbital energies
	H1  *mat.Dense // core Hamiltonian in the AO basis
	S   *mat.Dense // AO overlap matrix
	Vee *Tensor4   // chemist-ordered AO repulsion tensor
	E   float64    // electronic SCF energy
}

// matrixInvSqrt computes S^{-1/2} by symmetric eigendecomposition.
func matrixInvSqrt(S *mat.Dense) (*mat.Dense, error) {
	n, _ := S.Dims()
	sym := mat.NewSymDense(n, S.RawMatrix().Data)
	var eig mat.EigenSym
	if !eig.Factorize(sym, true) {
		return nil, errors.New("overlap eigendecomposition failed")
	}
	var ev mat.Dense
	eig.VectorsTo(&ev)
	vals := eig.Values(nil)
	d := make([]float64, n)
	for i, v := range vals {
		if v <= 0 {
			return nil, fmt.Errorf("overlap matrix not positive definite (eigenvalue %g)", v)
		}
		d[i] = 1.0 / math.Sqrt(v)
	}
	var tmp mat.Dense
	tmp.Mul(&ev, mat.NewDiagDense(n, d))
	res := mat.NewDense(n, n, nil)
	res.Mul(&tmp, ev.T())
	return res, nil
}

// RunSCF drives the restricted Hartree-Fock fixed point: two-electron term
// from the current density, Fock assembly, symmetric orthogonalization,
// diagonalization, density rebuild, energy test.
func RunSCF(mol *Molecule, tol float64, maxSteps int) (*SCFResult, error) {
	if mol.NElec()%2 != 0 {
		return nil, fmt.Errorf("closed-shell reference requires an even electron count, got %d", mol.NElec())
	}
	nOcc := mol.NElec() / 2
	nb := len(mol.Basis)
	if nOcc < 1 || nOcc >= nb {
		return nil, fmt.Errorf("occupied count %d out of range for %d basis functions", nOcc, nb)
	}

	S := Overlap(mol.Basis)
	T := Kinetic(mol.Basis)
	Ven := NucAttr(mol.Basis, mol.Atoms)
	Vee := ElecElec(mol.Basis)

	H1 := mat.NewDense(nb, nb, nil)
	H1.Add(T, Ven)

	A, err := matrixInvSqrt(S)
	if err != nil {
		return nil, err
	}

	dens := mat.NewDense(nb, nb, nil)
	res := &SCFResult{H1: H1, S: S, Vee: Vee}
	energy := 0.0
	for step := 0; step < maxSteps; step++ {
		ePrev := energy

		G := mat.NewDense(nb, nb, nil)
		for i := 0; i < nb; i++ {
			for j := 0; j < nb; j++ {
				sum := 0.0
				for k := 0; k < nb; k++ {
					for l := 0; l < nb; l++ {
						J := Vee.At(i, j, k, l)
						K := Vee.At(i, l, k, j)
						sum += dens.At(k, l) * (J - 0.5*K)
					}
				}
				G.Set(i, j, sum)
			}
		}

		F := mat.NewDense(nb, nb, nil)
		F.Add(H1, G)

		// S^{-1/2} F S^{-1/2}
		var Fp mat.Dense
		Fp.Mul(A, F)
		Fp.Mul(&Fp, A)
		FSym := mat.NewSymDense(nb, Fp.RawMatrix().Data)
		var eig mat.EigenSym
		if !eig.Factorize(FSym, true) {
			return nil, errors.New("transformed Fock eigendecomposition failed")
		}
		var ev mat.Dense
		eig.VectorsTo(&ev)

		C := mat.NewDense(nb, nb, nil)
		C.Mul(A, &ev)
		res.C = C
		res.Eps = eig.Values(nil)

		dens = mat.NewDense(nb, nb, nil)
		for i := 0; i < nb; i++ {
			for j := 0; j < nb; j++ {
				sum := 0.0
				for o := 0; o < nOcc; o++ {
					sum += 2.0 * C.At(i, o) * C.At(j, o)
				}
				dens.Set(i, j, sum)
			}
		}

		energy = 0.0
		for i := 0; i < nb; i++ {
			for j := 0; j < nb; j++ {
				energy += dens.At(i, j) * (H1.At(i, j) + 0.5*G.At(i, j))
			}
		}
		res.E = energy

		if math.Abs(energy-ePrev) < tol {
			return res, nil
		}
	}
	return nil, fmt.Errorf("SCF not converged after %d steps", maxSteps)
}
